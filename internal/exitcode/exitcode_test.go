// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package exitcode_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aibor/tunup/internal/config"
	"github.com/aibor/tunup/internal/endpoint"
	"github.com/aibor/tunup/internal/exitcode"
	"github.com/aibor/tunup/internal/grant"
	"github.com/aibor/tunup/internal/nic"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected exitcode.Code
	}{
		{
			name:     "success",
			err:      nil,
			expected: exitcode.Success,
		},
		{
			name:     "child exit code propagated",
			err:      &endpoint.ChildExitError{Code: 42},
			expected: exitcode.Code(42),
		},
		{
			name:     "child killed by signal",
			err:      &endpoint.ChildExitError{Code: -1},
			expected: exitcode.Internal,
		},
		{
			name: "grant failure",
			err: &grant.Error{
				Path: "/bin/endpoint",
				Err:  grant.ErrInsufficientAuthority,
			},
			expected: exitcode.GrantFailure,
		},
		{
			name: "launch failure",
			err: &endpoint.LaunchError{
				Image: "/bin/endpoint",
				Err:   errors.New("exec failed"),
			},
			expected: exitcode.LaunchFailure,
		},
		{
			name: "interface never appeared",
			err: &nic.Error{
				Op:   nic.OpWait,
				Link: "tun0",
				Err:  nic.ErrInterfaceNeverAppeared,
			},
			expected: exitcode.ConfigureFailure,
		},
		{
			name: "termination delivery failure",
			err: &endpoint.SupervisorError{
				PID: 1234,
				Err: endpoint.ErrTerminationDelivery,
			},
			expected: exitcode.TerminationFailure,
		},
		{
			name:     "config error",
			err:      fmt.Errorf("load: %w", &config.Error{}),
			expected: exitcode.Usage,
		},
		{
			name:     "unknown error",
			err:      errors.New("boom"),
			expected: exitcode.Internal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, exitcode.FromError(tt.err))
		})
	}
}
