// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package endpoint launches the privileged endpoint process and supervises
// its lifetime.
//
// The endpoint is treated as an external collaborator reachable only through
// its process boundary: the package knows its pid and exit status, nothing
// else. A single child is supervised per invocation, run once, with no
// restart policy.
package endpoint
