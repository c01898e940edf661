// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package endpoint

import (
	"errors"
	"strconv"
)

// ErrTerminationDelivery is returned if a forwarded termination request
// could not be delivered to the endpoint process.
var ErrTerminationDelivery = errors.New(
	"termination request could not be delivered",
)

// LaunchError wraps any error that occurs while starting the endpoint
// process.
type LaunchError struct {
	Image string
	Err   error
}

// Error implements the [error] interface.
func (e *LaunchError) Error() string {
	return "launch " + e.Image + ": " + e.Err.Error()
}

// Is implements the [errors.Is] interface.
func (*LaunchError) Is(other error) bool {
	_, ok := other.(*LaunchError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *LaunchError) Unwrap() error {
	return e.Err
}

// SupervisorError wraps any error that occurs while supervising the endpoint
// process.
type SupervisorError struct {
	PID int
	Err error
}

// Error implements the [error] interface.
func (e *SupervisorError) Error() string {
	return "supervise pid " + strconv.Itoa(e.PID) + ": " + e.Err.Error()
}

// Is implements the [errors.Is] interface.
func (*SupervisorError) Is(other error) bool {
	_, ok := other.(*SupervisorError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *SupervisorError) Unwrap() error {
	return e.Err
}

// ChildExitError reports a non-zero endpoint exit to the caller so the code
// can be propagated as the supervisor's own exit code.
type ChildExitError struct {
	Code int
}

// Error implements the [error] interface.
func (e *ChildExitError) Error() string {
	return "endpoint exited with code " + strconv.Itoa(e.Code)
}

// Is implements the [errors.Is] interface.
func (*ChildExitError) Is(other error) bool {
	_, ok := other.(*ChildExitError)
	return ok
}
