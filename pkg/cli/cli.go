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

// Package cli implements the emulatorlauncher command line.
package cli

import (
	"flag"

	"github.com/waal/batocera-ports/pkg/launch"
)

type Flags struct {
	System      *string
	Emulator    *string
	Core        *string
	ROM         *string
	Controllers *string
	Resolution  *string
	Config      *string
	DryRun      *bool
	Debug       *bool
	Version     *bool
}

func SetupFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		System: fs.String(
			"system",
			"",
			"system the game belongs to, e.g. msx2",
		),
		Emulator: fs.String(
			"emulator",
			"",
			"emulator family to launch, e.g. libretro",
		),
		Core: fs.String(
			"core",
			"",
			"emulator core, e.g. bluemsx",
		),
		ROM: fs.String(
			"rom",
			"",
			"absolute path of the game to launch",
		),
		Controllers: fs.String(
			"controllers",
			"",
			"controller configuration passed by the front-end",
		),
		Resolution: fs.String(
			"resolution",
			"",
			"game resolution passed by the front-end",
		),
		Config: fs.String(
			"config",
			"",
			"path of the launcher config file",
		),
		DryRun: fs.Bool(
			"dry-run",
			false,
			"write the emulator config and print the launch plan without running it",
		),
		Debug: fs.Bool(
			"debug",
			false,
			"enable debug logging",
		),
		Version: fs.Bool(
			"version",
			false,
			"print version and exit",
		),
	}
}

// Request returns the launch request described by the flags.
func (f *Flags) Request() launch.Request {
	return launch.Request{
		System:      *f.System,
		Emulator:    *f.Emulator,
		Core:        *f.Core,
		ROM:         *f.ROM,
		Controllers: *f.Controllers,
		Resolution:  *f.Resolution,
	}
}
