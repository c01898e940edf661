// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package grant

import "errors"

var (
	// ErrImageNotFound is returned if the image path does not resolve to a
	// regular executable file.
	ErrImageNotFound = errors.New("image is not an executable file")

	// ErrInsufficientAuthority is returned if the invoking context is not
	// allowed to modify the image's file capabilities.
	ErrInsufficientAuthority = errors.New(
		"not allowed to modify file capabilities",
	)
)

// Error wraps any error that occurs while granting a capability.
type Error struct {
	Path string
	Err  error
}

// Error implements the [error] interface.
func (e *Error) Error() string {
	return "grant " + e.Path + ": " + e.Err.Error()
}

// Is implements the [errors.Is] interface.
func (*Error) Is(other error) bool {
	_, ok := other.(*Error)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *Error) Unwrap() error {
	return e.Err
}
