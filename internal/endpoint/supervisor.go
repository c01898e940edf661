// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package endpoint

import (
	"context"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// Process is the child surface the [Supervisor] needs. It is satisfied by
// [*Child] and by test fakes.
type Process interface {
	PID() int
	Terminate() error
	Reaped() <-chan ExitStatus
}

// State is the supervisor lifecycle state.
type State int

const (
	// Starting is the state after launch, before the interface is
	// configured.
	Starting State = iota
	// Running is the state while blocking for a signal or child exit.
	Running
	// Stopping is the state while shutting the child down.
	Stopping
	// Exited is the terminal state.
	Exited
)

// String implements the [fmt.Stringer] interface.
func (s State) String() string {
	switch s {
	case Starting:
		return "starting"
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	case Exited:
		return "exited"
	default:
		return "unknown"
	}
}

// Result describes how the supervised run ended.
type Result struct {
	// Code is the endpoint's exit code. It is meaningful only if ChildExited
	// is set.
	Code int

	// ChildExited is set if the endpoint exited on its own, without a
	// termination request being forwarded.
	ChildExited bool
}

// Supervisor owns the lifetime of the single endpoint process. It is not
// safe for concurrent use; there is exactly one supervisor and one child per
// run.
type Supervisor struct {
	child   Process
	signals []os.Signal
	state   State

	notify func(c chan<- os.Signal, sig ...os.Signal)
	stop   func(c chan<- os.Signal)
}

// NewSupervisor creates a [Supervisor] for the given child. It watches for
// SIGINT and SIGTERM.
func NewSupervisor(child Process) *Supervisor {
	return &Supervisor{
		child:   child,
		signals: []os.Signal{unix.SIGINT, unix.SIGTERM},
		state:   Starting,
		notify:  signal.Notify,
		stop:    signal.Stop,
	}
}

// State returns the current lifecycle state.
func (s *Supervisor) State() State {
	return s.state
}

// Wait blocks until a termination signal arrives or the child exits on its
// own, whichever happens first. Both event sources are watched in a single
// multiplexed wait so neither can be missed.
//
// On a signal, exactly one termination request is forwarded to the child and
// Wait keeps blocking until the child is reaped. If forwarding fails, Wait
// returns with [ErrTerminationDelivery] without the reap; there is no forced
// kill escalation. Context cancellation is treated like a termination
// signal.
func (s *Supervisor) Wait(ctx context.Context) (Result, error) {
	sigCh := make(chan os.Signal, 1)
	s.notify(sigCh, s.signals...)
	defer s.stop(sigCh)

	s.state = Running
	log.WithField("pid", s.child.PID()).Debug("supervising endpoint")

	select {
	case <-ctx.Done():
		log.Debug("context canceled, stopping endpoint")
		return s.shutdown()
	case sig := <-sigCh:
		log.WithField("signal", sig).Debug("forwarding termination request")
		return s.shutdown()
	case status := <-s.child.Reaped():
		s.state = Exited
		log.WithField("code", status.Code).Debug("endpoint exited on its own")

		return Result{Code: status.Code, ChildExited: true}, nil
	}
}

func (s *Supervisor) shutdown() (Result, error) {
	s.state = Stopping

	if err := s.child.Terminate(); err != nil {
		s.state = Exited
		return Result{}, err
	}

	<-s.child.Reaped()
	s.state = Exited

	return Result{}, nil
}

// Abort terminates the child after a bootstrap failure, before Running was
// entered. It is used to avoid leaving an orphaned, half-configured endpoint
// behind. A failed termination request is logged but not escalated.
func (s *Supervisor) Abort() {
	s.state = Stopping

	if err := s.child.Terminate(); err != nil {
		log.WithError(err).Warn("terminating endpoint after failed bootstrap")
		s.state = Exited

		return
	}

	<-s.child.Reaped()
	s.state = Exited
}
