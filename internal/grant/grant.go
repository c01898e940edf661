// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package grant attaches the network-admin file capability to the endpoint
// executable so the process started from it can create and configure virtual
// interfaces without running as root.
package grant

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/syndtr/gocapability/capability"
	"golang.org/x/sys/unix"
)

// capSet is the subset of [capability.Capabilities] used for file
// capabilities.
type capSet interface {
	Load() error
	Get(which capability.CapType, what capability.Cap) bool
	Set(which capability.CapType, caps ...capability.Cap)
	Apply(kind capability.CapType) error
}

// Grantor applies the CAP_NET_ADMIN file capability to executable images.
type Grantor struct {
	fileCaps func(path string) (capSet, error)
}

// New creates a [Grantor] backed by the image's security xattr.
func New() *Grantor {
	return &Grantor{
		fileCaps: func(path string) (capSet, error) {
			return capability.NewFile2(path)
		},
	}
}

// Grant sets CAP_NET_ADMIN in the permitted and effective file capability
// sets of the given executable image. The grant is stored in the image's
// filesystem security metadata and so persists across runs. Granting an
// already granted image is a no-op.
func (g *Grantor) Grant(imagePath string) error {
	info, err := os.Stat(imagePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Error{Path: imagePath, Err: ErrImageNotFound}
		}

		return &Error{Path: imagePath, Err: err}
	}

	if !info.Mode().IsRegular() || info.Mode().Perm()&0o111 == 0 {
		return &Error{Path: imagePath, Err: ErrImageNotFound}
	}

	caps, err := g.fileCaps(imagePath)
	if err != nil {
		return classify(imagePath, err)
	}

	if err := caps.Load(); err != nil {
		return classify(imagePath, err)
	}

	if caps.Get(capability.PERMITTED, capability.CAP_NET_ADMIN) &&
		caps.Get(capability.EFFECTIVE, capability.CAP_NET_ADMIN) {
		return nil
	}

	caps.Set(
		capability.PERMITTED|capability.EFFECTIVE,
		capability.CAP_NET_ADMIN,
	)

	if err := caps.Apply(capability.CAPS); err != nil {
		return classify(imagePath, err)
	}

	return nil
}

// classify maps permission errnos to [ErrInsufficientAuthority] so callers
// can distinguish missing ambient authority from other failures.
func classify(path string, err error) error {
	if errors.Is(err, unix.EPERM) || errors.Is(err, unix.EACCES) {
		err = fmt.Errorf("%w: %w", ErrInsufficientAuthority, err)
	}

	return &Error{Path: path, Err: err}
}
