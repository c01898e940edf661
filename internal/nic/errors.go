// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package nic

import "errors"

var (
	// ErrLinkNotFound is returned by a single existence probe if the
	// interface does not exist yet.
	ErrLinkNotFound = errors.New("link not found")

	// ErrInterfaceNeverAppeared is returned if the interface did not show up
	// within the wait timeout. Usually this means the endpoint process died
	// before creating it.
	ErrInterfaceNeverAppeared = errors.New(
		"interface did not appear within timeout",
	)

	// ErrAddressAssignment is returned if assigning the address failed.
	ErrAddressAssignment = errors.New("address assignment failed")

	// ErrActivation is returned if bringing the interface up failed.
	ErrActivation = errors.New("activation failed")
)

// Op names the configuration step an [Error] occurred in.
type Op string

const (
	OpWait     Op = "wait"
	OpAddress  Op = "address"
	OpActivate Op = "activate"
)

// Error wraps any error that occurs while configuring the interface.
type Error struct {
	Op   Op
	Link string
	Err  error
}

// Error implements the [error] interface.
func (e *Error) Error() string {
	return string(e.Op) + " " + e.Link + ": " + e.Err.Error()
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
