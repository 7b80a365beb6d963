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

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

type Emulators struct {
	Custom []EmulatorsCustom `toml:"custom,omitempty"`
}

// EmulatorsCustom defines an emulator launched from an argument template.
type EmulatorsCustom struct {
	ID         string   `toml:"id"`
	Executable string   `toml:"executable"`
	WorkingDir string   `toml:"working_dir,omitempty"`
	StageDir   string   `toml:"stage_dir,omitempty"`
	Args       []string `toml:"args,omitempty,multiline"`
	Cores      []string `toml:"cores,omitempty"`
}

// CustomEmulators returns the emulators defined in the config file followed
// by those loaded from the emulators directory.
func (c *Instance) CustomEmulators() []EmulatorsCustom {
	c.mu.RLock()
	defer c.mu.RUnlock()

	emulators := make([]EmulatorsCustom, 0, len(c.vals.Emulators.Custom)+len(c.external))
	emulators = append(emulators, c.vals.Emulators.Custom...)
	emulators = append(emulators, c.external...)
	return emulators
}

// loadCustomEmulators reads every .toml file under dir. Files that fail to
// parse are logged and skipped. A missing directory holds no emulators.
func loadCustomEmulators(fs afero.Fs, dir string) ([]EmulatorsCustom, error) {
	if _, err := fs.Stat(dir); errors.Is(err, os.ErrNotExist) {
		log.Debug().Msgf("custom emulators directory not found: %s", dir)
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat emulators directory: %w", err)
	}

	var files []string
	err := afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if strings.ToLower(filepath.Ext(info.Name())) != ".toml" {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk emulators directory: %w", err)
	}
	log.Info().Msgf("found %d custom emulator files", len(files))

	var emulators []EmulatorsCustom
	for _, path := range files {
		log.Debug().Msgf("loading custom emulators: %s", path)

		data, err := afero.ReadFile(fs, path)
		if err != nil {
			log.Error().Err(err).Msgf("error reading custom emulators: %s", path)
			continue
		}

		var vals Values
		if err := toml.Unmarshal(data, &vals); err != nil {
			log.Error().Err(err).Msgf("error parsing custom emulators: %s", path)
			continue
		}

		emulators = append(emulators, vals.Emulators.Custom...)
	}

	log.Info().Msgf("loaded %d custom emulators", len(emulators))
	return emulators, nil
}
