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

// Package libretro prepares RetroArch launches. It keeps retroarch.cfg and
// retroarch-core-options.cfg in line with the launcher settings and starts
// RetroArch with the requested core.
package libretro

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/waal/batocera-ports/pkg/kvstore"
	"github.com/waal/batocera-ports/pkg/launch"
)

const (
	// EmulatorID is the emulator identifier RetroArch launches use.
	EmulatorID = "libretro"

	// RootSetting names the global setting holding the RetroArch directory.
	RootSetting = "retroarch"
	// CoresSetting names the global setting holding the cores directory. It
	// defaults to the cores folder inside the RetroArch directory.
	CoresSetting = "retroarch.cores"

	MainConfigFile        = "retroarch.cfg"
	CoreOptionsConfigFile = "retroarch-core-options.cfg"

	// system settings copied verbatim into the two config files
	mainPassThroughPrefix = "retroarch."
	corePassThroughPrefix = "retroarchcore."
)

// Builder builds RetroArch launches. The zero value is ready to use.
type Builder struct{}

// New returns a RetroArch builder.
func New() *Builder {
	return &Builder{}
}

// Build writes the RetroArch configuration for req, checks that RetroArch
// and the requested core are installed and returns the command line. It
// never stages files, so the returned teardown is always nil.
func (*Builder) Build(env launch.Env, req launch.Request) (launch.Plan, *launch.Teardown, error) {
	if req.Core == "" {
		return launch.Plan{}, nil, fmt.Errorf("%w: core is required for %s", launch.ErrInvalidRequest, EmulatorID)
	}

	root, ok := env.Settings.Global().Get(RootSetting)
	if !ok || root == "" {
		return launch.Plan{}, nil, fmt.Errorf("%w: %s path is not configured", launch.ErrMissingExecutable, RootSetting)
	}
	coresDir, ok := env.Settings.Global().Get(CoresSetting)
	if !ok || coresDir == "" {
		coresDir = filepath.Join(root, "cores")
	}

	opts, err := loadOptions(env.Settings)
	if err != nil {
		return launch.Plan{}, nil, err
	}

	ctx := launch.RuleContext{Env: env, Request: req}

	_, err = launch.Configure(ctx, filepath.Join(root, MainConfigFile), kvstore.RetroArch, opts.mainRules()...)
	if err != nil {
		return launch.Plan{}, nil, fmt.Errorf("failed to configure retroarch: %w", err)
	}
	_, err = launch.Configure(ctx, filepath.Join(root, CoreOptionsConfigFile), kvstore.RetroArch, coreRules()...)
	if err != nil {
		return launch.Plan{}, nil, fmt.Errorf("failed to configure core options: %w", err)
	}

	exe := filepath.Join(root, executableName(env.GOOS()))
	if err := launch.RequireFile(env.Fs, exe); err != nil {
		return launch.Plan{}, nil, err
	}
	core := filepath.Join(coresDir, coreLibraryName(req.Core, env.GOOS()))
	if err := launch.RequireFile(env.Fs, core); err != nil {
		return launch.Plan{}, nil, err
	}

	args := []string{"-L", core, req.ROM}
	args = append(args, opts.netplayArgs()...)

	log.Info().Msgf("retroarch launch prepared with core %s", req.Core)
	return launch.Plan{Executable: exe, WorkDir: root, Args: args}, nil, nil
}

func executableName(goos string) string {
	if goos == "windows" {
		return "retroarch.exe"
	}
	return "retroarch"
}

func coreLibraryName(core, goos string) string {
	switch goos {
	case "windows":
		return core + "_libretro.dll"
	case "darwin":
		return core + "_libretro.dylib"
	default:
		return core + "_libretro.so"
	}
}
