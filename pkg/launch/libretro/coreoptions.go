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
	"strings"

	"github.com/waal/batocera-ports/pkg/launch"
)

var msxTypes = map[string]string{
	"colecovision": "ColecoVision",
	"msx1":         "MSX",
	"msx2":         "MSX2",
	"msx2+":        "MSX2+",
	"msxturbor":    "MSXturboR",
}

// coreOptionRules holds the retroarch-core-options.cfg rule of each core
// that needs one.
var coreOptionRules = map[string]launch.Rule{
	"atari800":      atari800Rule,
	"bluemsx":       blueMSXRule,
	"mame078":       fixedOptions("mame2003_skip_disclaimer", "enabled", "mame2003_skip_warnings", "enabled"),
	"mame2003":      fixedOptions("mame2003_skip_disclaimer", "enabled", "mame2003_skip_warnings", "enabled"),
	"mame078plus":   fixedOptions("mame2003-plus_skip_disclaimer", "enabled", "mame2003-plus_skip_warnings", "enabled"),
	"mame2003_plus": fixedOptions("mame2003-plus_skip_disclaimer", "enabled", "mame2003-plus_skip_warnings", "enabled"),
	"virtualjaguar": fixedOptions("virtualjaguar_usefastblitter", "enabled"),
	"flycast":       fixedOptions("reicast_threaded_rendering", "enabled"),
}

func coreRules() []launch.Rule {
	return []launch.Rule{
		func(t *launch.Target, ctx launch.RuleContext) {
			if rule, ok := coreOptionRules[strings.ToLower(ctx.Request.Core)]; ok {
				rule(t, ctx)
			}
		},
		launch.PassThrough(corePassThroughPrefix),
	}
}

// fixedOptions returns a rule writing the given key/value pairs.
func fixedOptions(kv ...string) launch.Rule {
	return func(t *launch.Target, _ launch.RuleContext) {
		for i := 0; i+1 < len(kv); i += 2 {
			t.Set(kv[i], kv[i+1])
		}
	}
}

func atari800Rule(t *launch.Target, ctx launch.RuleContext) {
	if ctx.Request.System == "atari800" {
		t.Set("atari800_system", "800XL (64K)")
		t.Set("RAM_SIZE", "64")
		t.Set("STEREO_POKEY", "1")
		t.Set("BUILTIN_BASIC", "1")
		return
	}
	t.Set("atari800_system", "5200")
	t.Set("RAM_SIZE", "16")
	t.Set("STEREO_POKEY", "0")
	t.Set("BUILTIN_BASIC", "0")
}

func blueMSXRule(t *launch.Target, ctx launch.RuleContext) {
	t.Set("bluemsx_overscan", "enabled")

	msxType, ok := msxTypes[ctx.Request.System]
	if !ok {
		msxType = "Auto"
	}
	t.Set("bluemsx_msxtype", msxType)
}
