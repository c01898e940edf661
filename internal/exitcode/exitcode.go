// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package exitcode maps the run's outcome to the process exit code.
//
// Each failure class has a distinct code so callers can tell a grant failure
// from a launch or configuration failure. A non-zero endpoint exit code is
// propagated as-is.
package exitcode

import (
	"errors"

	"github.com/aibor/tunup/internal/config"
	"github.com/aibor/tunup/internal/endpoint"
	"github.com/aibor/tunup/internal/grant"
	"github.com/aibor/tunup/internal/nic"
)

// Code is a process exit code.
type Code int

const (
	// Success is returned on clean shutdown: the endpoint exited 0 or a
	// signal-initiated shutdown completed.
	Success Code = 0

	// Internal is returned for failures outside the known classes.
	Internal Code = 1

	// GrantFailure is returned if the capability grant failed.
	GrantFailure Code = 10

	// LaunchFailure is returned if the endpoint process could not be
	// started.
	LaunchFailure Code = 11

	// ConfigureFailure is returned if the interface could not be configured,
	// including the case that it never appeared.
	ConfigureFailure Code = 12

	// TerminationFailure is returned if the forwarded termination request
	// could not be delivered.
	TerminationFailure Code = 13

	// Usage is returned for configuration file and invocation errors.
	Usage Code = 14
)

// FromError maps an error returned by the run to its exit code. A nil error
// maps to [Success]. A [endpoint.ChildExitError] propagates the endpoint's
// own exit code.
func FromError(err error) Code {
	if err == nil {
		return Success
	}

	var childExit *endpoint.ChildExitError
	if errors.As(err, &childExit) {
		if childExit.Code > 0 {
			return Code(childExit.Code)
		}

		// Reaping failed or the endpoint was killed by a signal.
		return Internal
	}

	switch {
	case errors.Is(err, &grant.Error{}):
		return GrantFailure
	case errors.Is(err, &endpoint.LaunchError{}):
		return LaunchFailure
	case errors.Is(err, &nic.Error{}):
		return ConfigureFailure
	case errors.Is(err, &endpoint.SupervisorError{}):
		return TerminationFailure
	case errors.Is(err, &config.Error{}):
		return Usage
	default:
		return Internal
	}
}
