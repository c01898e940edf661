// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/aibor/tunup/internal/config"
	"github.com/aibor/tunup/internal/endpoint"
	"github.com/aibor/tunup/internal/exitcode"
	"github.com/aibor/tunup/internal/grant"
	"github.com/aibor/tunup/internal/nic"
)

// IO provides output details for the command. The endpoint's own output is
// pumped to these writers as well.
type IO struct {
	Stdout io.Writer
	Stderr io.Writer
}

// supervisor is the part of [endpoint.Supervisor] the run sequence uses.
type supervisor interface {
	Wait(ctx context.Context) (endpoint.Result, error)
	Abort()
}

// deps are the component seams of the run sequence. Tests replace them with
// fakes.
type deps struct {
	grant     func(image string) error
	launch    func(spec endpoint.LaunchSpec) (endpoint.Process, error)
	configure func(ctx context.Context, name, cidr string) error
	supervise func(child endpoint.Process) supervisor
}

func defaultDeps(cfg *config.Config) deps {
	configurator := nic.NewConfigurator(
		cfg.Interface.WaitTimeout.Duration,
		cfg.Interface.PollInterval.Duration,
	)

	return deps{
		grant: grant.New().Grant,
		launch: func(spec endpoint.LaunchSpec) (endpoint.Process, error) {
			return endpoint.Launch(spec)
		},
		configure: configurator.Configure,
		supervise: func(child endpoint.Process) supervisor {
			return endpoint.NewSupervisor(child)
		},
	}
}

// run executes the bootstrap sequence: grant, launch, configure, supervise.
// Any failure unwinds immediately. Once the child is running, a failure
// terminates the child before run returns so no unsupervised endpoint is
// left behind.
func run(ctx context.Context, cfg *config.Config, d deps, cfgIO IO) error {
	if err := d.grant(cfg.Endpoint.Image); err != nil {
		return err
	}

	log.WithField("image", cfg.Endpoint.Image).Debug("capability granted")

	child, err := d.launch(endpoint.LaunchSpec{
		Image:  cfg.Endpoint.Image,
		Args:   cfg.Endpoint.Args,
		Stdout: cfgIO.Stdout,
		Stderr: cfgIO.Stderr,
	})
	if err != nil {
		return err
	}

	log.WithField("pid", child.PID()).Info("endpoint started")

	sup := d.supervise(child)

	err = d.configure(ctx, cfg.Interface.Name, cfg.Interface.Address)
	if err != nil {
		sup.Abort()
		return err
	}

	log.WithFields(log.Fields{
		"interface": cfg.Interface.Name,
		"address":   cfg.Interface.Address,
	}).Info("interface up")

	result, err := sup.Wait(ctx)
	if err != nil {
		return err
	}

	if result.ChildExited && result.Code != 0 {
		return &endpoint.ChildExitError{Code: result.Code}
	}

	return nil
}

// parseArgs accepts at most one positional argument, the config file path.
// Without it, the local config file is read from the working directory if
// present.
func parseArgs(args []string) (*config.Config, error) {
	const maxArgs = 2

	switch {
	case len(args) <= 1:
		return config.LoadLocal(os.DirFS("."))
	case len(args) == maxArgs:
		return config.Load(args[1])
	default:
		return nil, ErrTooManyArgs
	}
}

// Run is the main entry point for the CLI command.
func Run(ctx context.Context, args []string, cfgIO IO) int {
	log.SetOutput(cfgIO.Stderr)

	cfg, err := parseArgs(args)
	if err != nil {
		if errors.Is(err, ErrTooManyArgs) {
			name := "tunup"
			if len(args) > 0 {
				name = filepath.Base(args[0])
			}

			fmt.Fprintf(cfgIO.Stderr, "usage: %s [configfile]\n", name)

			return int(exitcode.Usage)
		}

		log.Error(err.Error())

		return int(exitcode.FromError(err))
	}

	setupLogging(cfgIO.Stderr, cfg.Log.Level)

	err = run(ctx, cfg, defaultDeps(cfg), cfgIO)
	if err != nil {
		// The endpoint's own non-zero exit code is not an error worth
		// logging, it is just propagated.
		if !errors.Is(err, &endpoint.ChildExitError{}) {
			log.Error(err.Error())
		}
	}

	return int(exitcode.FromError(err))
}
