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

package settings

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const confPath = "/userdata/system/batocera.conf"

const batoceraConf = `# batocera.conf
global.smooth=false
global.retroarch.menu_driver=ozone
global.ai_target_lang=En
msx2.smooth=true
msx2.ratio=4/3
msx2["game.rom"].ratio=16/9
snes.smooth=1
msx2.retroarch.video_driver=vulkan # not a comment
this line is junk
`

func TestLoadSystemConf(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, confPath, []byte(batoceraConf), 0o644))

	t.Run("applies_global_then_system_then_game", func(t *testing.T) {
		t.Parallel()

		scope, err := LoadSystemConf(fs, confPath, "msx2", "/roms/msx2/game.rom")
		require.NoError(t, err)

		r := NewResolver(nil, scope)
		assert.True(t, r.GetBoolean("smooth"))
		assert.Equal(t, "16/9", r.GetString("ratio"))
		assert.Equal(t, "ozone", r.GetString("retroarch.menu_driver"))
		assert.Equal(t, "En", r.GetString("ai_target_lang"))
		assert.Equal(t, "vulkan # not a comment", r.GetString("retroarch.video_driver"))
	})

	t.Run("other_system_only_sees_globals", func(t *testing.T) {
		t.Parallel()

		scope, err := LoadSystemConf(fs, confPath, "nes", "/roms/nes/game.nes")
		require.NoError(t, err)

		assert.Equal(t, []Entry{
			{Key: "smooth", Value: "false"},
			{Key: "retroarch.menu_driver", Value: "ozone"},
			{Key: "ai_target_lang", Value: "En"},
		}, scope.Entries())
	})

	t.Run("game_override_needs_matching_rom", func(t *testing.T) {
		t.Parallel()

		scope, err := LoadSystemConf(fs, confPath, "msx2", "/roms/msx2/other.rom")
		require.NoError(t, err)

		v, _ := scope.Get("ratio")
		assert.Equal(t, "4/3", v)
	})

	t.Run("keeps_file_order", func(t *testing.T) {
		t.Parallel()

		scope, err := LoadSystemConf(fs, confPath, "msx2", "")
		require.NoError(t, err)

		keys := make([]string, 0, scope.Len())
		for _, e := range scope.Entries() {
			keys = append(keys, e.Key)
		}
		assert.Equal(t, []string{
			"smooth", "retroarch.menu_driver", "ai_target_lang", "ratio", "retroarch.video_driver",
		}, keys)
	})
}

func TestLoadSystemConf_MissingFile(t *testing.T) {
	t.Parallel()

	scope, err := LoadSystemConf(afero.NewMemMapFs(), confPath, "msx2", "")
	require.NoError(t, err)
	assert.Equal(t, 0, scope.Len())
}
