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

// Package model2 prepares Model 2 Emulator launches. The emulator only loads
// games from its own roms folder, so the requested game is staged there
// for the duration of the launch.
package model2

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/waal/batocera-ports/pkg/launch"
)

const (
	// EmulatorID is the emulator identifier of the single CPU build.
	EmulatorID = "m2emulator"
	// MultiCPUEmulatorID selects the multi CPU build.
	MultiCPUEmulatorID = "model2"

	// RootSetting names the global setting holding the emulator directory.
	RootSetting = "m2emulator"

	defaultExecutable = "emulator.exe"
	stagingDirName    = "roms"
)

// executables maps core or emulator identifiers to the binary they run.
var executables = map[string]string{
	"model2":   "emulator_multicpu.exe",
	"multicpu": "emulator_multicpu.exe",
}

// Builder builds Model 2 Emulator launches. The zero value is ready to use.
type Builder struct{}

// New returns a Model 2 builder.
func New() *Builder {
	return &Builder{}
}

func executableName(req launch.Request) string {
	if exe, ok := executables[strings.ToLower(req.Core)]; ok {
		return exe
	}
	if exe, ok := executables[strings.ToLower(req.Emulator)]; ok {
		return exe
	}
	return defaultExecutable
}

// Build stages the ROM into the emulator's roms folder and returns a plan
// running the emulator from its root with the game name as argument. The
// returned teardown removes the staged copy.
func (*Builder) Build(env launch.Env, req launch.Request) (launch.Plan, *launch.Teardown, error) {
	root, ok := env.Settings.Global().Get(RootSetting)
	if !ok || root == "" {
		return launch.Plan{}, nil, fmt.Errorf("%w: %s path is not configured", launch.ErrMissingExecutable, RootSetting)
	}

	// nothing is staged unless the emulator is installed
	exe := filepath.Join(root, executableName(req))
	if err := launch.RequireFile(env.Fs, exe); err != nil {
		return launch.Plan{}, nil, err
	}

	td := launch.NewTeardown(env.Fs)
	staged, err := launch.Stage(env.Fs, req.ROM, filepath.Join(root, stagingDirName), td)
	if err != nil {
		return launch.Plan{}, td, err
	}

	name := filepath.Base(staged)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	log.Info().Msgf("model 2 launch prepared for %s", name)
	return launch.Plan{
		Executable: exe,
		WorkDir:    root,
		Args:       []string{name},
	}, td, nil
}
