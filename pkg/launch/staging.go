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
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// RequireFile returns ErrMissingExecutable unless path is an existing file.
func RequireFile(fs afero.Fs, path string) error {
	info, err := fs.Stat(path)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: %s", ErrMissingExecutable, path)
	}
	return nil
}

// Stage places rom in dir for emulators that only load games from a fixed
// folder. Every other file in dir is removed first so the folder holds a
// single game. The destination is tracked in td before anything is copied,
// unless rom already lives in dir: it is then used in place and never
// tracked, so cleanup cannot remove the only copy.
func Stage(fs afero.Fs, rom, dir string, td *Teardown) (string, error) {
	name := filepath.Base(rom)
	dest := filepath.Join(dir, name)

	if err := fs.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("%w: failed to create staging directory: %w", ErrStagingFailed, err)
	}

	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read staging directory: %w", ErrStagingFailed, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == name {
			continue
		}
		stale := filepath.Join(dir, entry.Name())
		log.Debug().Msgf("removing stale staged file: %s", stale)
		if err := fs.Remove(stale); err != nil {
			return "", fmt.Errorf("%w: failed to remove %s: %w", ErrStagingFailed, stale, err)
		}
	}

	if filepath.Clean(rom) == dest {
		if _, err := fs.Stat(rom); err != nil {
			return "", fmt.Errorf("%w: %w", ErrStagingFailed, err)
		}
		log.Debug().Msgf("rom already in staging directory: %s", dest)
		return dest, nil
	}

	td.Track(dest)

	srcInfo, err := fs.Stat(rom)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrStagingFailed, err)
	}
	if destInfo, err := fs.Stat(dest); err == nil && destInfo.Size() == srcInfo.Size() {
		log.Debug().Msgf("rom already staged: %s", dest)
		return dest, nil
	}

	if err := copyFile(fs, rom, dest); err != nil {
		return "", fmt.Errorf("%w: %w", ErrStagingFailed, err)
	}

	log.Info().Msgf("staged rom: %s", dest)
	return dest, nil
}

func copyFile(fs afero.Fs, src, dest string) (err error) {
	in, err := fs.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open rom: %w", err)
	}
	defer func() {
		if closeErr := in.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msgf("error closing rom: %s", src)
		}
	}()

	out, err := fs.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create staged file: %w", err)
	}
	defer func() {
		closeErr := out.Close()
		if err == nil && closeErr != nil && !errors.Is(closeErr, os.ErrClosed) {
			err = fmt.Errorf("failed to close staged file: %w", closeErr)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy rom: %w", err)
	}
	return nil
}
