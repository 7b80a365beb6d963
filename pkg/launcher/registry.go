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

package launcher

import (
	"github.com/rs/zerolog/log"
	"github.com/waal/batocera-ports/pkg/config"
	"github.com/waal/batocera-ports/pkg/launch"
	"github.com/waal/batocera-ports/pkg/launch/custom"
	"github.com/waal/batocera-ports/pkg/launch/libretro"
	"github.com/waal/batocera-ports/pkg/launch/model2"
)

// DefaultRegistry returns a registry with the built-in emulator families
// and every valid custom emulator from cfg. Invalid custom emulators are
// logged and skipped.
func DefaultRegistry(cfg *config.Instance) *launch.Registry {
	r := launch.NewRegistry()

	ra := libretro.New()
	r.Register(libretro.EmulatorID, ra)
	r.Register("retroarch", ra)

	m2 := model2.New()
	r.Register(model2.EmulatorID, m2)
	r.Register(model2.MultiCPUEmulatorID, m2)

	if cfg == nil {
		return r
	}

	for _, v := range cfg.CustomEmulators() {
		b, err := custom.New(custom.Definition{
			ID:         v.ID,
			Executable: v.Executable,
			WorkingDir: v.WorkingDir,
			StageDir:   v.StageDir,
			Args:       v.Args,
			Cores:      v.Cores,
		})
		if err != nil {
			log.Error().Err(err).Msgf("skipping custom emulator: %s", v.ID)
			continue
		}
		b.Register(r)
		log.Debug().Msgf("registered custom emulator: %s", v.ID)
	}

	return r
}
