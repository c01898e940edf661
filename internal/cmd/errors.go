// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import "errors"

// ErrTooManyArgs is returned if more than one positional argument is given.
var ErrTooManyArgs = errors.New("too many arguments")
