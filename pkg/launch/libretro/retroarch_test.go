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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waal/batocera-ports/pkg/launch"
)

func snesRequest() launch.Request {
	return launch.Request{
		System:   "snes",
		Emulator: EmulatorID,
		Core:     "snes9x",
		ROM:      "/roms/snes/game.sfc",
	}
}

func TestDirectories(t *testing.T) {
	t.Parallel()

	t.Run("defaults_without_directories", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "snes9x")
		f.global.Set("bios", "/missing/bios")
		f.global.Set("saves", "/missing/saves")
		f.build(t, snesRequest())

		assert.Equal(t, ":/system", f.value(t, mainCfg, "system_directory"))
		assert.Equal(t, ":/thumbnails", f.value(t, mainCfg, "thumbnails_directory"))
		f.absent(t, mainCfg, "savestate_directory")
		f.absent(t, mainCfg, "savefile_directory")
	})

	t.Run("existing_directories", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "snes9x")
		for _, dir := range []string{"/bios", "/thumbs", "/saves"} {
			require.NoError(t, f.fs.MkdirAll(dir, 0o750))
		}
		f.global.Set("bios", "/bios")
		f.global.Set("thumbnails", "/thumbs")
		f.global.Set("saves", "/saves")
		f.build(t, snesRequest())

		assert.Equal(t, "/bios", f.value(t, mainCfg, "system_directory"))
		assert.Equal(t, "/thumbs", f.value(t, mainCfg, "thumbnails_directory"))
		assert.Equal(t, "/saves/snes", f.value(t, mainCfg, "savestate_directory"))
		assert.Equal(t, "/saves/snes", f.value(t, mainCfg, "savefile_directory"))
	})
}

func TestVideo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		system        map[string]string
		name          string
		wantSmooth    string
		wantShader    string
		wantShaderDir string
		shadersRoot   bool
	}{
		{
			name:       "defaults",
			wantSmooth: "false",
			wantShader: "false",
		},
		{
			name:       "smooth",
			system:     map[string]string{"smooth": "true"},
			wantSmooth: "true",
			wantShader: "false",
		},
		{
			name:       "smooth_needs_literal_true",
			system:     map[string]string{"smooth": "1"},
			wantSmooth: "false",
			wantShader: "false",
		},
		{
			name:          "shader_disables_smooth",
			system:        map[string]string{"smooth": "true", "shader": "crt-geom"},
			shadersRoot:   true,
			wantSmooth:    "false",
			wantShader:    "true",
			wantShaderDir: "/shaders",
		},
		{
			name:        "shader_none",
			system:      map[string]string{"smooth": "true", "shader": "None"},
			shadersRoot: true,
			wantSmooth:  "true",
			wantShader:  "false",
		},
		{
			name:       "shader_without_shaders_root",
			system:     map[string]string{"shader": "crt-geom"},
			wantSmooth: "false",
			wantShader: "false",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, "snes9x")
			for k, v := range tt.system {
				f.system.Set(k, v)
			}
			if tt.shadersRoot {
				f.global.Set("shaders", "/shaders")
			}
			f.build(t, snesRequest())

			assert.Equal(t, tt.wantSmooth, f.value(t, mainCfg, "video_smooth"))
			assert.Equal(t, tt.wantShader, f.value(t, mainCfg, "video_shader_enable"))
			if tt.wantShaderDir != "" {
				assert.Equal(t, tt.wantShaderDir, f.value(t, mainCfg, "video_shader_dir"))
			} else {
				f.absent(t, mainCfg, "video_shader_dir")
			}
		})
	}
}

func TestAspectRatio(t *testing.T) {
	t.Parallel()

	t.Run("unset_clears_index", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "snes9x")
		f.build(t, snesRequest())

		assert.Empty(t, f.value(t, mainCfg, "aspect_ratio_index"))
		f.absent(t, mainCfg, "video_aspect_ratio_auto")
	})

	t.Run("known_ratio", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "snes9x")
		f.system.Set("ratio", "16/9")
		f.build(t, snesRequest())

		assert.Equal(t, "1", f.value(t, mainCfg, "aspect_ratio_index"))
		assert.Equal(t, "false", f.value(t, mainCfg, "video_aspect_ratio_auto"))
	})

	t.Run("last_known_ratio", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "snes9x")
		f.system.Set("ratio", "core")
		f.build(t, snesRequest())

		assert.Equal(t, "22", f.value(t, mainCfg, "aspect_ratio_index"))
	})

	t.Run("custom_keeps_index", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "snes9x")
		f.system.Set("ratio", "custom")
		f.build(t, snesRequest())

		assert.Equal(t, "false", f.value(t, mainCfg, "video_aspect_ratio_auto"))
		f.absent(t, mainCfg, "aspect_ratio_index")
	})

	t.Run("unknown_ratio_is_auto", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "snes9x")
		f.system.Set("ratio", "5/3")
		f.build(t, snesRequest())

		assert.Equal(t, "true", f.value(t, mainCfg, "video_aspect_ratio_auto"))
		assert.Empty(t, f.value(t, mainCfg, "aspect_ratio_index"))
	})
}

func TestToggles(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "snes9x")
	f.system.Set("rewind", "true")
	f.system.Set("showFPS", "true")
	f.system.Set("integerscale", "false")
	f.system.Set("autosave", "true")
	f.build(t, snesRequest())

	assert.Equal(t, "true", f.value(t, mainCfg, "rewind_enable"))
	assert.Equal(t, "true", f.value(t, mainCfg, "fps_show"))
	assert.Equal(t, "false", f.value(t, mainCfg, "video_scale_integer"))
	assert.Equal(t, "false", f.value(t, mainCfg, "video_threaded"))
	assert.Equal(t, "true", f.value(t, mainCfg, "savestate_auto_save"))
	assert.Equal(t, "true", f.value(t, mainCfg, "savestate_auto_load"))
}

func TestAchievements(t *testing.T) {
	t.Parallel()

	enable := func(f *fixture) {
		f.system.Set("retroachievements", "true")
		f.system.Set("retroachievements.username", "player")
		f.system.Set("retroachievements.password", "secret")
		f.system.Set("retroachievements.hardcore", "true")
		f.system.Set("retroachievements.verbose", "true")
	}

	t.Run("supported_system", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "snes9x")
		enable(f)
		f.build(t, snesRequest())

		assert.Equal(t, "true", f.value(t, mainCfg, "cheevos_enable"))
		assert.Equal(t, "player", f.value(t, mainCfg, "cheevos_username"))
		assert.Equal(t, "secret", f.value(t, mainCfg, "cheevos_password"))
		assert.Equal(t, "true", f.value(t, mainCfg, "cheevos_hardcore_mode_enable"))
		assert.Equal(t, "true", f.value(t, mainCfg, "cheevos_verbose_enable"))
		assert.Equal(t, "false", f.value(t, mainCfg, "cheevos_leaderboards_enable"))
		assert.Equal(t, "false", f.value(t, mainCfg, "cheevos_auto_screenshot"))
	})

	t.Run("unsupported_system", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "bluemsx")
		enable(f)
		f.build(t, msx2Request())

		assert.Equal(t, "false", f.value(t, mainCfg, "cheevos_enable"))
		f.absent(t, mainCfg, "cheevos_username")
	})

	t.Run("netplay_disables_hardcore", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "snes9x")
		enable(f)
		f.system.Set("netplay", "true")
		f.system.Set("netplaymode", "host")
		f.build(t, snesRequest())

		assert.Equal(t, "true", f.value(t, mainCfg, "cheevos_enable"))
		assert.Equal(t, "false", f.value(t, mainCfg, "cheevos_hardcore_mode_enable"))
	})
}

func TestNetplay(t *testing.T) {
	t.Parallel()

	t.Run("host", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "snes9x")
		f.system.Set("netplay", "true")
		f.system.Set("netplaymode", "host")
		f.system.Set("netplay.port", "55435")
		f.system.Set("netplay.nickname", "player1")
		f.system.Set("netplay.spectator", "true")
		plan := f.build(t, snesRequest())

		assert.Equal(t, []string{"-L", raCores + "/snes9x_libretro.so", "/roms/snes/game.sfc", "--host"}, plan.Args)
		assert.Equal(t, "false", f.value(t, mainCfg, "netplay_mode"))
		assert.Equal(t, "55435", f.value(t, mainCfg, "netplay_ip_port"))
		assert.Equal(t, "player1", f.value(t, mainCfg, "netplay_nickname"))
		assert.Equal(t, "true", f.value(t, mainCfg, "netplay_spectator_mode_enable"))
		assert.Equal(t, "false", f.value(t, mainCfg, "netplay_client_swap_input"))
		assert.Equal(t, "false", f.value(t, mainCfg, "netplay_use_mitm_server"))
		assert.Equal(t, "false", f.value(t, mainCfg, "cheevos_hardcore_mode_enable"))
		f.absent(t, mainCfg, "netplay_ip_address")
	})

	t.Run("client", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "snes9x")
		f.system.Set("netplay", "true")
		f.system.Set("netplaymode", "client")
		f.system.Set("netplayip", "10.0.0.2")
		f.system.Set("netplayport", "55436")
		f.system.Set("netplay.port", "55435")
		f.system.Set("netplay.relay", "nyc")
		f.system.Set("netplay.server.address", "192.168.1.20")
		plan := f.build(t, snesRequest())

		assert.Equal(t, []string{"--connect", "192.168.1.20"}, plan.Args[3:])
		assert.Equal(t, "true", f.value(t, mainCfg, "netplay_mode"))
		assert.Equal(t, "10.0.0.2", f.value(t, mainCfg, "netplay_ip_address"))
		assert.Equal(t, "55436", f.value(t, mainCfg, "netplay_ip_port"))
		assert.Equal(t, "true", f.value(t, mainCfg, "netplay_client_swap_input"))
		assert.Equal(t, "nyc", f.value(t, mainCfg, "netplay_mitm_server"))
		assert.Equal(t, "true", f.value(t, mainCfg, "netplay_use_mitm_server"))
	})

	t.Run("client_falls_back_to_netplay_ip", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "snes9x")
		f.system.Set("netplaymode", "client")
		f.system.Set("netplayip", "10.0.0.2")
		plan := f.build(t, snesRequest())

		assert.Equal(t, []string{"--connect", "10.0.0.2"}, plan.Args[3:])
		f.absent(t, mainCfg, "netplay_mode")
	})

	t.Run("disabled_without_mode", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "snes9x")
		f.system.Set("netplay", "true")
		plan := f.build(t, snesRequest())

		assert.Len(t, plan.Args, 3)
		f.absent(t, mainCfg, "netplay_mode")
		f.absent(t, mainCfg, "cheevos_hardcore_mode_enable")
	})
}

func TestAIService(t *testing.T) {
	t.Parallel()

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "snes9x")
		f.build(t, snesRequest())

		assert.Equal(t, "false", f.value(t, mainCfg, "ai_service_enable"))
		f.absent(t, mainCfg, "ai_service_url")
	})

	t.Run("default_url", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "snes9x")
		f.system.Set("ai_service_enabled", "true")
		f.system.Set("ai_target_lang", "En")
		f.build(t, snesRequest())

		assert.Equal(t, "true", f.value(t, mainCfg, "ai_service_enable"))
		assert.Equal(t, "0", f.value(t, mainCfg, "ai_service_mode"))
		assert.Equal(t, "0", f.value(t, mainCfg, "ai_service_source_lang"))
		assert.Equal(t,
			"http://ztranslate.net/service?api_key=BATOCERA&mode=Fast&output=png&target_lang=En",
			f.value(t, mainCfg, "ai_service_url"))
		assert.Equal(t, "false", f.value(t, mainCfg, "ai_service_pause"))
	})

	t.Run("custom_url", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "snes9x")
		f.system.Set("ai_service_enabled", "true")
		f.system.Set("ai_service_url", "http://localhost:4404/?key=abc")
		f.system.Set("ai_target_lang", "Fr")
		f.system.Set("ai_service_pause", "true")
		f.build(t, snesRequest())

		assert.Equal(t,
			"http://localhost:4404/?key=abc&mode=Fast&output=png&target_lang=Fr",
			f.value(t, mainCfg, "ai_service_url"))
		assert.Equal(t, "true", f.value(t, mainCfg, "ai_service_pause"))
	})
}

func TestMainPassThrough(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "snes9x")
	f.system.Set("retroarch.menu_driver", "rgui")
	f.system.Set("retroarch.video_fullscreen", "false")
	f.build(t, snesRequest())

	assert.Equal(t, "rgui", f.value(t, mainCfg, "menu_driver"))
	assert.Equal(t, "true", f.value(t, mainCfg, "video_fullscreen"))
}
