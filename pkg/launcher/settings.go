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
	"github.com/spf13/afero"
	"github.com/waal/batocera-ports/pkg/config"
	"github.com/waal/batocera-ports/pkg/launch"
	"github.com/waal/batocera-ports/pkg/settings"
)

// LoadSettings builds the resolver for req from the launcher config and the
// per-system settings file it points to.
func LoadSettings(fs afero.Fs, cfg *config.Instance, req launch.Request) (*settings.Resolver, error) {
	global := cfg.GlobalScope()

	path := cfg.SystemConfPath()
	if path == "" {
		return settings.NewResolver(global, nil), nil
	}

	system, err := settings.LoadSystemConf(fs, path, req.System, req.ROM)
	if err != nil {
		return nil, err //nolint:wrapcheck // already carries the file path
	}
	return settings.NewResolver(global, system), nil
}
