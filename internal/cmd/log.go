// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// setupLogging configures the global logger. An unknown level falls back to
// info.
func setupLogging(writer io.Writer, level string) {
	log.SetOutput(writer)

	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}

	log.SetLevel(parsed)
}
