// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config reads the tunup configuration file.
package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"
)

// LocalFile is the config file read from the working directory if no path is
// given on the command line.
const LocalFile = "tunup.toml"

// Config is the complete tunup configuration as decoded from the TOML file.
type Config struct {
	Endpoint  Endpoint  `toml:"endpoint"`
	Interface Interface `toml:"interface"`
	Log       Log       `toml:"log"`
}

// Endpoint describes the supervised endpoint process.
type Endpoint struct {
	// Path to the endpoint executable that creates the virtual interface.
	Image string `toml:"image"`
	// Additional arguments passed to the endpoint process.
	Args []string `toml:"args"`
}

// Interface describes the virtual interface the endpoint process creates.
type Interface struct {
	// Name of the interface as created by the endpoint process.
	Name string `toml:"name"`
	// Address in CIDR notation assigned to the interface.
	Address string `toml:"address"`
	// Upper bound for waiting for the interface to appear after launch.
	WaitTimeout Duration `toml:"wait_timeout"`
	// Interval between existence probes while waiting.
	PollInterval Duration `toml:"poll_interval"`
}

// Log holds logging configuration.
type Log struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
}

// Duration wraps [time.Duration] so it can be given as string in the TOML
// file, like "5s" or "50ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}

	d.Duration = parsed

	return nil
}

// Default returns the configuration with all optional fields set to their
// defaults. The endpoint image has no default and must be set.
func Default() *Config {
	return &Config{
		Interface: Interface{
			Name:         "tun0",
			Address:      "192.168.0.1/24",
			WaitTimeout:  Duration{5 * time.Second},
			PollInterval: Duration{50 * time.Millisecond},
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads the config file at the given path on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &Error{msg: "config file not found: " + path, err: err}
		}

		return nil, &Error{msg: "decode " + path, err: err}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadLocal reads [LocalFile] from the working directory if it exists and
// falls back to plain defaults otherwise.
func LoadLocal(fsys fs.FS) (*Config, error) {
	data, err := fs.ReadFile(fsys, LocalFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, &Error{msg: "read " + LocalFile, err: err}
		}

		cfg := Default()
		if err := cfg.validate(); err != nil {
			return nil, err
		}

		return cfg, nil
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, &Error{msg: "decode " + LocalFile, err: err}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Endpoint.Image == "" {
		return &Error{err: ErrNoEndpointImage}
	}

	if c.Interface.Name == "" {
		return &Error{err: ErrNoInterfaceName}
	}

	if c.Interface.PollInterval.Duration <= 0 {
		return &Error{err: ErrInvalidPollInterval}
	}

	if c.Interface.WaitTimeout.Duration < c.Interface.PollInterval.Duration {
		return &Error{err: ErrInvalidWaitTimeout}
	}

	return nil
}
