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
	"path/filepath"
	"slices"
	"strconv"

	"github.com/spf13/afero"
	"github.com/waal/batocera-ports/pkg/launch"
)

const (
	defaultSystemDir     = ":/system"
	defaultThumbnailsDir = ":/thumbnails"
	defaultAIServiceURL  = "http://ztranslate.net/service?api_key=BATOCERA"
	ratioCustom          = "custom"
	shaderNone           = "None"
)

// ratioIndexes lists RetroArch aspect ratio presets by aspect_ratio_index.
var ratioIndexes = []string{
	"4/3", "16/9", "16/10", "16/15", "21/9", "1/1", "2/1", "3/2", "3/4", "4/1",
	"4/4", "5/4", "6/5", "7/9", "8/3", "8/7", "19/12", "19/14", "30/17", "32/9",
	"config", "squarepixel", "core", "custom",
}

// achievementSystems are the systems RetroAchievements supports.
var achievementSystems = map[string]struct{}{
	"atari2600": {}, "atari7800": {}, "atarijaguar": {}, "colecovision": {},
	"nes": {}, "snes": {}, "virtualboy": {}, "n64": {}, "sg1000": {},
	"mastersystem": {}, "megadrive": {}, "segacd": {}, "sega32x": {},
	"saturn": {}, "pcengine": {}, "pcenginecd": {}, "supergrafx": {},
	"psx": {}, "mame": {}, "fbneo": {}, "neogeo": {}, "lightgun": {},
	"apple2": {}, "lynx": {}, "wswan": {}, "wswanc": {}, "gb": {}, "gbc": {},
	"gba": {}, "nds": {}, "pokemini": {}, "gamegear": {}, "ngp": {}, "ngpc": {},
}

// systemToggles map boolean system settings onto retroarch.cfg keys.
var systemToggles = []struct {
	setting string
	key     string
}{
	{setting: "rewind", key: "rewind_enable"},
	{setting: "integerscale", key: "video_scale_integer"},
	{setting: "video_threaded", key: "video_threaded"},
	{setting: "showFPS", key: "fps_show"},
}

// Every key is written at most once per pass. Writing a key twice with
// different values would mark the file dirty even when the final value
// matches what is on disk.
func (o options) mainRules() []launch.Rule {
	return []launch.Rule{
		frontendRule,
		directoriesRule,
		videoRule,
		aspectRatioRule,
		togglesRule,
		autosaveRule,
		o.achievementsRule,
		o.netplayRule,
		o.aiServiceRule,
		launch.PassThrough(mainPassThroughPrefix),
	}
}

func formatBool(b bool) string {
	return strconv.FormatBool(b)
}

func frontendRule(t *launch.Target, _ launch.RuleContext) {
	t.Set("quit_press_twice", "false")
	t.Set("pause_nonactive", "false")
	t.Set("video_fullscreen", "true")
}

// globalDir returns the global setting key if it names an existing
// directory.
func globalDir(ctx launch.RuleContext, key string) (string, bool) {
	dir, ok := ctx.Env.Settings.Global().Get(key)
	if !ok || dir == "" {
		return "", false
	}
	exists, err := afero.DirExists(ctx.Env.Fs, dir)
	if err != nil || !exists {
		return "", false
	}
	return dir, true
}

func directoriesRule(t *launch.Target, ctx launch.RuleContext) {
	if dir, ok := globalDir(ctx, "bios"); ok {
		t.Set("system_directory", dir)
	} else {
		t.Set("system_directory", defaultSystemDir)
	}

	if dir, ok := globalDir(ctx, "thumbnails"); ok {
		t.Set("thumbnails_directory", dir)
	} else {
		t.Set("thumbnails_directory", defaultThumbnailsDir)
	}

	if dir, ok := globalDir(ctx, "saves"); ok {
		saves := filepath.Join(dir, ctx.Request.System)
		t.Set("savestate_directory", saves)
		t.Set("savefile_directory", saves)
	}
}

func videoRule(t *launch.Target, ctx launch.RuleContext) {
	s := ctx.Env.Settings
	shadersDir, shadersSet := s.Global().Get("shaders")
	shaderOn := shadersSet && s.IsSet("shader") && s.GetString("shader") != shaderNone

	// smoothing is forced off under a shader
	t.Set("video_smooth", formatBool(s.GetBoolean("smooth") && !shaderOn))
	t.Set("video_shader_enable", formatBool(shaderOn))
	if shaderOn {
		t.Set("video_shader_dir", shadersDir)
	}
}

func aspectRatioRule(t *launch.Target, ctx launch.RuleContext) {
	s := ctx.Env.Settings
	if !s.IsSet("ratio") {
		t.Set("aspect_ratio_index", "")
		return
	}

	ratio := s.GetString("ratio")
	if ratio == ratioCustom {
		t.Set("video_aspect_ratio_auto", "false")
		return
	}

	if idx := slices.Index(ratioIndexes, ratio); idx >= 0 {
		t.Set("aspect_ratio_index", strconv.Itoa(idx))
		t.Set("video_aspect_ratio_auto", "false")
	} else {
		t.Set("video_aspect_ratio_auto", "true")
		t.Set("aspect_ratio_index", "")
	}
}

func togglesRule(t *launch.Target, ctx launch.RuleContext) {
	for _, toggle := range systemToggles {
		t.Set(toggle.key, formatBool(ctx.Env.Settings.GetBoolean(toggle.setting)))
	}
}

func autosaveRule(t *launch.Target, ctx launch.RuleContext) {
	autosave := formatBool(ctx.Env.Settings.GetBoolean("autosave"))
	t.Set("savestate_auto_save", autosave)
	t.Set("savestate_auto_load", autosave)
}

func (o options) achievementsRule(t *launch.Target, ctx launch.RuleContext) {
	_, supported := achievementSystems[ctx.Request.System]
	enabled := o.achievementsEnabled && supported

	t.Set("cheevos_enable", formatBool(enabled))
	if enabled {
		a := o.achievements
		t.Set("cheevos_username", a.Username)
		t.Set("cheevos_password", a.Password)
		t.Set("cheevos_leaderboards_enable", formatBool(a.Leaderboards))
		t.Set("cheevos_verbose_enable", formatBool(a.Verbose))
		t.Set("cheevos_auto_screenshot", formatBool(a.Screenshot))
	}

	// hardcore mode disables save states, which netplay needs
	if enabled || o.netplayActive() {
		t.Set("cheevos_hardcore_mode_enable", formatBool(enabled && o.achievements.Hardcore && !o.netplayActive()))
	}
}

func (o options) netplayRule(t *launch.Target, _ launch.RuleContext) {
	if !o.netplayActive() {
		return
	}

	n := o.netplay
	client := o.netplayMode == netplayModeClient

	t.Set("netplay_mode", formatBool(client))
	if client {
		t.Set("netplay_ip_address", o.netplayIP)
		t.Set("netplay_ip_port", o.netplayPort)
	} else {
		t.Set("netplay_ip_port", n.Port)
	}
	t.Set("netplay_nickname", n.Nickname)
	t.Set("netplay_mitm_server", n.Relay)
	t.Set("netplay_use_mitm_server", formatBool(n.Relay != ""))
	t.Set("netplay_spectator_mode_enable", formatBool(n.Spectator))
	t.Set("netplay_client_swap_input", formatBool(client))
}

func (o options) aiServiceRule(t *launch.Target, _ launch.RuleContext) {
	ai := o.ai
	t.Set("ai_service_enable", formatBool(ai.Enabled))
	if !ai.Enabled {
		return
	}

	t.Set("ai_service_mode", "0")
	t.Set("ai_service_source_lang", "0")

	url := ai.URL
	if url == "" {
		url = defaultAIServiceURL
	}
	t.Set("ai_service_url", url+"&mode=Fast&output=png&target_lang="+ai.TargetLang)
	t.Set("ai_service_pause", formatBool(ai.Pause))
}
