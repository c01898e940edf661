// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cmd wires the bootstrap sequence of the tunup command: grant the
// network-admin capability to the endpoint image, launch it, address and
// activate the virtual interface it creates, then supervise the process
// until shutdown.
package cmd
