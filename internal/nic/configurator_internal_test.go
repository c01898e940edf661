// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package nic

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"
)

// fakeLinker simulates an interface that appears after a number of existence
// probes. It records every call so tests can prove that no address or
// activation request is sent before the interface exists.
type fakeLinker struct {
	appearAfter int
	addrErr     error
	upErr       error

	probes   int
	addrAdds int
	setUps   int
}

type fakeLink struct {
	netlink.LinkAttrs
}

func (l *fakeLink) Attrs() *netlink.LinkAttrs { return &l.LinkAttrs }
func (l *fakeLink) Type() string              { return "tun" }

func (f *fakeLinker) LinkByName(name string) (netlink.Link, error) {
	f.probes++
	if f.probes <= f.appearAfter {
		return nil, ErrLinkNotFound
	}

	link := &fakeLink{}
	link.Name = name

	return link, nil
}

func (f *fakeLinker) AddrAdd(_ netlink.Link, _ *netlink.Addr) error {
	f.addrAdds++
	return f.addrErr
}

func (f *fakeLinker) LinkSetUp(_ netlink.Link) error {
	f.setUps++
	return f.upErr
}

// newTestConfigurator allows 5 probes and counts sleeps instead of sleeping.
func newTestConfigurator(links *fakeLinker, sleeps *int) *Configurator {
	return &Configurator{
		WaitTimeout:  250 * time.Millisecond,
		PollInterval: 50 * time.Millisecond,
		links:        links,
		sleep: func(_ context.Context, _ time.Duration) error {
			*sleeps++
			return nil
		},
	}
}

func TestConfigure(t *testing.T) {
	tests := []struct {
		name           string
		appearAfter    int
		expectedProbes int
		expectedSleeps int
	}{
		{
			name:           "immediately present",
			appearAfter:    0,
			expectedProbes: 1,
			expectedSleeps: 0,
		},
		{
			name:           "appears after three probes",
			appearAfter:    3,
			expectedProbes: 4,
			expectedSleeps: 3,
		},
		{
			name:           "appears on last probe",
			appearAfter:    4,
			expectedProbes: 5,
			expectedSleeps: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			links := &fakeLinker{appearAfter: tt.appearAfter}
			sleeps := 0

			cfgr := newTestConfigurator(links, &sleeps)
			err := cfgr.Configure(context.Background(), "tun0", "192.168.0.1/24")
			require.NoError(t, err)

			assert.Equal(t, tt.expectedProbes, links.probes)
			assert.Equal(t, tt.expectedSleeps, sleeps)
			assert.Equal(t, 1, links.addrAdds)
			assert.Equal(t, 1, links.setUps)
		})
	}
}

func TestConfigureNeverAppears(t *testing.T) {
	links := &fakeLinker{appearAfter: 100}
	sleeps := 0

	cfgr := newTestConfigurator(links, &sleeps)
	err := cfgr.Configure(context.Background(), "tun0", "192.168.0.1/24")
	require.ErrorIs(t, err, ErrInterfaceNeverAppeared)

	// The probe budget is exhausted cleanly and the interface is never
	// addressed or activated.
	assert.Equal(t, 5, links.probes)
	assert.Equal(t, 4, sleeps)
	assert.Zero(t, links.addrAdds)
	assert.Zero(t, links.setUps)
}

func TestConfigureContextCanceled(t *testing.T) {
	links := &fakeLinker{appearAfter: 100}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfgr := &Configurator{
		WaitTimeout:  250 * time.Millisecond,
		PollInterval: 50 * time.Millisecond,
		links:        links,
		sleep:        sleepContext,
	}

	err := cfgr.Configure(ctx, "tun0", "192.168.0.1/24")
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, links.addrAdds)
}

func TestConfigureAddressFailure(t *testing.T) {
	tests := []struct {
		name        string
		cidr        string
		addrErr     error
		expectedErr error
	}{
		{
			name:        "unparsable address",
			cidr:        "not-an-address",
			expectedErr: ErrAddressAssignment,
		},
		{
			name:        "assignment rejected",
			cidr:        "192.168.0.1/24",
			addrErr:     unix.EEXIST,
			expectedErr: ErrAddressAssignment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			links := &fakeLinker{addrErr: tt.addrErr}
			sleeps := 0

			cfgr := newTestConfigurator(links, &sleeps)
			err := cfgr.Configure(context.Background(), "tun0", tt.cidr)
			require.ErrorIs(t, err, tt.expectedErr)

			if tt.addrErr != nil {
				require.ErrorIs(t, err, tt.addrErr)
			}

			assert.Zero(t, links.setUps)
		})
	}
}

func TestConfigureActivationFailure(t *testing.T) {
	links := &fakeLinker{upErr: unix.ENODEV}
	sleeps := 0

	cfgr := newTestConfigurator(links, &sleeps)
	err := cfgr.Configure(context.Background(), "tun0", "192.168.0.1/24")
	require.ErrorIs(t, err, ErrActivation)
	require.ErrorIs(t, err, unix.ENODEV)
	assert.Equal(t, 1, links.addrAdds)
}

func TestConfigureProbeError(t *testing.T) {
	links := &fakeLinker{}
	sleeps := 0

	cfgr := newTestConfigurator(links, &sleeps)
	cfgr.links = &errLinker{err: unix.ENOBUFS}

	err := cfgr.Configure(context.Background(), "tun0", "192.168.0.1/24")
	require.ErrorIs(t, err, unix.ENOBUFS)
	require.NotErrorIs(t, err, ErrInterfaceNeverAppeared)
}

// errLinker fails every probe with a non-not-found error.
type errLinker struct {
	err error
}

func (e *errLinker) LinkByName(string) (netlink.Link, error) {
	return nil, e.err
}

func (e *errLinker) AddrAdd(netlink.Link, *netlink.Addr) error { return e.err }
func (e *errLinker) LinkSetUp(netlink.Link) error              { return e.err }
