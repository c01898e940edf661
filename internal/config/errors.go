// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import "errors"

var (
	// ErrNoEndpointImage is returned if the required endpoint image path is
	// missing from the config.
	ErrNoEndpointImage = errors.New("endpoint image is required")

	// ErrNoInterfaceName is returned if the interface name is empty.
	ErrNoInterfaceName = errors.New("interface name must not be empty")

	// ErrInvalidPollInterval is returned if the poll interval is not a
	// positive duration.
	ErrInvalidPollInterval = errors.New("poll interval must be positive")

	// ErrInvalidWaitTimeout is returned if the wait timeout is shorter than
	// the poll interval.
	ErrInvalidWaitTimeout = errors.New(
		"wait timeout must not be shorter than poll interval",
	)
)

// Error wraps any error that occurs while reading the configuration.
type Error struct {
	msg string
	err error
}

// Error implements the [error] interface.
func (e *Error) Error() string {
	msg := "config"

	if e.msg != "" {
		msg += ": " + e.msg
	}

	if e.err != nil {
		msg += ": " + e.err.Error()
	}

	return msg
}

// Is implements the [errors.Is] interface.
func (*Error) Is(other error) bool {
	_, ok := other.(*Error)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *Error) Unwrap() error {
	return e.err
}
