// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package endpoint

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"syscall"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
)

// LaunchSpec describes how to start the endpoint process.
type LaunchSpec struct {
	// Path to the endpoint executable. It is expected to create the virtual
	// interface as a side effect of starting.
	Image string

	// Additional arguments for the endpoint process.
	Args []string

	// Writers receiving the endpoint's stdout and stderr. If nil, output is
	// discarded.
	Stdout io.Writer
	Stderr io.Writer
}

// ExitStatus is the reaped result of the endpoint process.
type ExitStatus struct {
	Code int
}

// Child is the handle to the single supervised endpoint process. It is owned
// exclusively by the [Supervisor] for the duration of the run.
type Child struct {
	pid    int
	cmd    *exec.Cmd
	pumps  *errgroup.Group
	reaped chan ExitStatus
}

// Launch starts the endpoint image as a detached background process in its
// own process group. It returns once the process started. It does not wait
// for the endpoint to reach any internal state, in particular the virtual
// interface does not exist yet when Launch returns.
func Launch(spec LaunchSpec) (*Child, error) {
	cmd := exec.Command(spec.Image, spec.Args...)

	// Own process group so a terminal SIGINT is not delivered to the child
	// directly. The supervisor forwards termination requests itself.
	// Pdeathsig covers the case of the supervisor dying without cleanup.
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid:   true,
		Pdeathsig: unix.SIGTERM,
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &LaunchError{Image: spec.Image, Err: err}
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, &LaunchError{Image: spec.Image, Err: err}
	}

	if err := cmd.Start(); err != nil {
		return nil, &LaunchError{Image: spec.Image, Err: err}
	}

	pumps := &errgroup.Group{}
	pumps.Go(pump(spec.Stdout, stdout))
	pumps.Go(pump(spec.Stderr, stderr))

	child := &Child{
		pid:    cmd.Process.Pid,
		cmd:    cmd,
		pumps:  pumps,
		reaped: make(chan ExitStatus, 1),
	}

	go child.reap()

	return child, nil
}

// pump copies endpoint output until the pipe closes on process exit.
func pump(dst io.Writer, src io.Reader) func() error {
	if dst == nil {
		dst = io.Discard
	}

	return func() error {
		_, err := io.Copy(dst, src)
		return err
	}
}

// reap drains the output pumps, waits for the process and publishes the exit
// status exactly once.
func (c *Child) reap() {
	_ = c.pumps.Wait()

	err := c.cmd.Wait()
	status := ExitStatus{}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		status.Code = exitErr.ExitCode()
	} else if err != nil {
		status.Code = -1
	}

	c.reaped <- status
}

// PID returns the process identifier of the endpoint process.
func (c *Child) PID() int {
	return c.pid
}

// Terminate forwards a termination request (SIGTERM) to the endpoint
// process. It does not wait for the process to exit.
func (c *Child) Terminate() error {
	if err := c.cmd.Process.Signal(unix.SIGTERM); err != nil {
		return &SupervisorError{
			PID: c.pid,
			Err: fmt.Errorf("%w: %w", ErrTerminationDelivery, err),
		}
	}

	return nil
}

// Reaped returns the channel delivering the endpoint's exit status once the
// process has been reaped.
func (c *Child) Reaped() <-chan ExitStatus {
	return c.reaped
}
