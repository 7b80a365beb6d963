// Batocera Ports
// Copyright (c) 2026 The Batocera Ports Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Batocera Ports.
//
// Batocera Ports is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Batocera Ports is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Batocera Ports.  If not, see <http://www.gnu.org/licenses/>.

package launch

import (
	"errors"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Teardown remembers the files a build placed on disk so they can be removed
// after the launch. A nil *Teardown has nothing to clean up.
type Teardown struct {
	fs    afero.Fs
	paths []string
}

// NewTeardown returns an empty teardown bound to fs.
func NewTeardown(fs afero.Fs) *Teardown {
	return &Teardown{fs: fs}
}

// Track registers path for removal. Paths that never get created are fine.
func (t *Teardown) Track(path string) {
	t.paths = append(t.paths, path)
}

// Paths returns the tracked paths.
func (t *Teardown) Paths() []string {
	if t == nil {
		return nil
	}
	return t.paths
}

// Cleanup removes every tracked file that still exists. It can be called any
// number of times and never fails; problems are logged.
func (t *Teardown) Cleanup() {
	if t == nil {
		return
	}

	for _, path := range t.paths {
		err := t.fs.Remove(path)
		switch {
		case err == nil:
			log.Info().Msgf("removed staged file: %s", path)
		case errors.Is(err, os.ErrNotExist):
			// already gone
		default:
			log.Warn().Err(err).Msgf("failed to remove staged file: %s", path)
		}
	}
}
