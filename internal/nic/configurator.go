// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package nic addresses and activates the virtual interface created by the
// endpoint process.
//
// The interface is owned by the kernel and comes into existence as a side
// effect of the endpoint process starting. The configurator never creates or
// destroys it, it only waits for it to appear and mutates its state.
package nic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vishvananda/netlink"
)

// linker is the netlink surface used by the [Configurator].
type linker interface {
	LinkByName(name string) (netlink.Link, error)
	AddrAdd(link netlink.Link, addr *netlink.Addr) error
	LinkSetUp(link netlink.Link) error
}

// sysLinker is the real netlink backend.
type sysLinker struct{}

func (sysLinker) LinkByName(name string) (netlink.Link, error) {
	link, err := netlink.LinkByName(name)
	if err != nil {
		var notFound netlink.LinkNotFoundError
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %w", ErrLinkNotFound, err)
		}

		return nil, err
	}

	return link, nil
}

func (sysLinker) AddrAdd(link netlink.Link, addr *netlink.Addr) error {
	return netlink.AddrAdd(link, addr)
}

func (sysLinker) LinkSetUp(link netlink.Link) error {
	return netlink.LinkSetUp(link)
}

// Configurator assigns an address to a virtual interface and brings it up
// once the interface exists.
type Configurator struct {
	// WaitTimeout bounds the total time spent waiting for the interface to
	// appear.
	WaitTimeout time.Duration

	// PollInterval is the time between existence probes.
	PollInterval time.Duration

	links linker
	sleep func(ctx context.Context, d time.Duration) error
}

// NewConfigurator creates a [Configurator] backed by the kernel's netlink
// interface.
func NewConfigurator(waitTimeout, pollInterval time.Duration) *Configurator {
	return &Configurator{
		WaitTimeout:  waitTimeout,
		PollInterval: pollInterval,
		links:        sysLinker{},
		sleep:        sleepContext,
	}
}

// Configure waits for the named interface to exist, assigns the given CIDR
// address to it and brings it up, strictly in that order. No address or
// activation request is ever sent for an interface that has not been observed
// to exist.
func (c *Configurator) Configure(ctx context.Context, name, cidr string) error {
	link, err := c.waitLink(ctx, name)
	if err != nil {
		return err
	}

	addr, err := netlink.ParseAddr(cidr)
	if err != nil {
		return &Error{
			Op:   OpAddress,
			Link: name,
			Err:  fmt.Errorf("%w: %w", ErrAddressAssignment, err),
		}
	}

	if err := c.links.AddrAdd(link, addr); err != nil {
		return &Error{
			Op:   OpAddress,
			Link: name,
			Err:  fmt.Errorf("%w: %w", ErrAddressAssignment, err),
		}
	}

	if err := c.links.LinkSetUp(link); err != nil {
		return &Error{
			Op:   OpActivate,
			Link: name,
			Err:  fmt.Errorf("%w: %w", ErrActivation, err),
		}
	}

	return nil
}

// waitLink polls for the interface until it exists or the probe budget is
// exhausted. The budget is derived from WaitTimeout and PollInterval so a
// fake sleeper exercises the exact same path as real time.
func (c *Configurator) waitLink(
	ctx context.Context,
	name string,
) (netlink.Link, error) {
	probes := int(c.WaitTimeout / c.PollInterval)
	if probes < 1 {
		probes = 1
	}

	for probe := 1; ; probe++ {
		link, err := c.links.LinkByName(name)
		if err == nil {
			return link, nil
		}

		if !errors.Is(err, ErrLinkNotFound) {
			return nil, &Error{Op: OpWait, Link: name, Err: err}
		}

		if probe >= probes {
			return nil, &Error{
				Op:   OpWait,
				Link: name,
				Err:  ErrInterfaceNeverAppeared,
			}
		}

		if err := c.sleep(ctx, c.PollInterval); err != nil {
			return nil, &Error{Op: OpWait, Link: name, Err: err}
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
