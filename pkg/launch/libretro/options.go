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

package libretro

import (
	"fmt"

	"github.com/waal/batocera-ports/pkg/settings"
)

const (
	netplayModeHost   = "host"
	netplayModeClient = "client"
)

type netplaySettings struct {
	Port          string `setting:"port" validate:"omitempty,numeric"`
	Nickname      string `setting:"nickname"`
	Relay         string `setting:"relay"`
	ServerAddress string `setting:"server.address"`
	Spectator     bool   `setting:"spectator"`
}

type achievementSettings struct {
	Username     string `setting:"username"`
	Password     string `setting:"password"`
	Hardcore     bool   `setting:"hardcore"`
	Leaderboards bool   `setting:"leaderboards"`
	Verbose      bool   `setting:"verbose"`
	Screenshot   bool   `setting:"screenshot"`
}

type aiSettings struct {
	URL        string `setting:"service_url"`
	TargetLang string `setting:"target_lang"`
	Enabled    bool   `setting:"service_enabled"`
	Pause      bool   `setting:"service_pause"`
}

// options are the grouped settings read once per build.
type options struct {
	netplayMode string
	netplayIP   string
	netplayPort string
	netplay     netplaySettings

	achievements achievementSettings
	ai           aiSettings

	netplayEnabled      bool
	achievementsEnabled bool
}

func loadOptions(r *settings.Resolver) (options, error) {
	opts := options{
		netplayMode:         r.GetString("netplaymode"),
		netplayIP:           r.GetString("netplayip"),
		netplayPort:         r.GetString("netplayport"),
		netplayEnabled:      r.GetBoolean("netplay"),
		achievementsEnabled: r.GetBoolean("retroachievements"),
	}

	if opts.netplayActive() {
		if err := settings.Decode(r, "netplay.", &opts.netplay); err != nil {
			return options{}, fmt.Errorf("failed to read netplay settings: %w", err)
		}
	} else if opts.netplayMode != "" {
		// the address is still needed for --connect
		opts.netplay.ServerAddress = r.GetString("netplay.server.address")
	}

	if opts.achievementsEnabled {
		if err := settings.Decode(r, "retroachievements.", &opts.achievements); err != nil {
			return options{}, fmt.Errorf("failed to read retroachievements settings: %w", err)
		}
	}

	if err := settings.Decode(r, "ai_", &opts.ai); err != nil {
		return options{}, fmt.Errorf("failed to read ai service settings: %w", err)
	}

	return opts, nil
}

func (o options) netplayActive() bool {
	return o.netplayEnabled && o.netplayMode != ""
}

func (o options) netplayArgs() []string {
	switch o.netplayMode {
	case netplayModeHost:
		return []string{"--host"}
	case netplayModeClient:
		addr := o.netplay.ServerAddress
		if addr == "" {
			addr = o.netplayIP
		}
		return []string{"--connect", addr}
	default:
		return nil
	}
}
