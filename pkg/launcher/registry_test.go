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
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/waal/batocera-ports/pkg/config"
	"github.com/waal/batocera-ports/pkg/helpers/command"
	"github.com/waal/batocera-ports/pkg/kvstore"
	"github.com/waal/batocera-ports/pkg/launch"
	"github.com/waal/batocera-ports/pkg/testing/helpers"
	"github.com/waal/batocera-ports/pkg/testing/mocks"
)

const installRoot = "/userdata"

type installFixture struct {
	fsh     *helpers.FSHelper
	cfg     *config.Instance
	install helpers.Installation
}

func newInstallFixture(t *testing.T, customs ...config.EmulatorsCustom) *installFixture {
	t.Helper()

	fsh := helpers.NewMemoryFS()
	install, err := fsh.SetupInstallation(installRoot)
	require.NoError(t, err)

	defaults := config.BaseDefaults
	defaults.Paths = config.Paths{
		RetroArch:  install.RetroArch,
		M2Emulator: install.M2Emulator,
		Bios:       filepath.Join(installRoot, "bios"),
	}
	defaults.Settings.SystemConf = filepath.Join(installRoot, "system", "batocera.conf")
	defaults.Emulators.Custom = customs

	cfg, err := config.Open(fsh.Fs, filepath.Join(installRoot, "system", config.CfgFile), defaults)
	require.NoError(t, err)

	return &installFixture{fsh: fsh, cfg: cfg, install: install}
}

func (f *installFixture) run(t *testing.T, req launch.Request, executor command.Executor) (Result, error) {
	t.Helper()

	resolver, err := LoadSettings(f.fsh.Fs, f.cfg, req)
	require.NoError(t, err)

	l := New(f.fsh.Fs, DefaultRegistry(f.cfg), executor, WithOS("linux"))
	return l.Run(context.Background(), req, resolver)
}

func TestDefaultRegistry_BuiltIns(t *testing.T) {
	t.Parallel()

	r := DefaultRegistry(nil)
	for _, emulator := range []string{"libretro", "retroarch", "m2emulator", "model2"} {
		_, err := r.Resolve(emulator, "")
		require.NoError(t, err, emulator)
	}

	_, err := r.Resolve("dolphin", "")
	require.ErrorIs(t, err, launch.ErrUnsupportedTarget)
}

func TestDefaultRegistry_CustomEmulators(t *testing.T) {
	t.Parallel()

	f := newInstallFixture(t,
		config.EmulatorsCustom{ID: "dosbox", Executable: "/usr/bin/dosbox", Cores: []string{"pure"}},
		config.EmulatorsCustom{ID: "broken"},
	)

	r := DefaultRegistry(f.cfg)

	_, err := r.Resolve("dosbox", "pure")
	require.NoError(t, err)
	_, err = r.Resolve("broken", "")
	require.ErrorIs(t, err, launch.ErrUnsupportedTarget)
}

func TestRun_RetroArch(t *testing.T) {
	t.Parallel()

	f := newInstallFixture(t)
	require.NoError(t, f.fsh.WriteFile(f.cfg.SystemConfPath(), []byte(
		"global.retroarch.menu_driver=rgui\nmsx2.smooth=true\n",
	)))

	rom := filepath.Join(f.install.ROMs, "msx2", "game.rom")
	executor := &mocks.MockCommandExecutor{}
	executor.On("Run",
		mock.Anything,
		command.RunOptions{Dir: f.install.RetroArch},
		filepath.Join(f.install.RetroArch, "retroarch"),
		[]string{"-L", filepath.Join(f.install.Cores, "bluemsx_libretro.so"), rom},
	).Return(nil).Once()

	result, err := f.run(t, launch.Request{System: "msx2", Emulator: "libretro", Core: "bluemsx", ROM: rom}, executor)
	require.NoError(t, err)
	executor.AssertExpectations(t)
	helpers.AssertValidLaunch(t, result.ID, result.Started, result.Plan)

	mainCfg := kvstore.Load(f.fsh.Fs, filepath.Join(f.install.RetroArch, "retroarch.cfg"), kvstore.RetroArch)
	v, _ := mainCfg.Get("menu_driver")
	assert.Equal(t, "rgui", v)
	v, _ = mainCfg.Get("video_smooth")
	assert.Equal(t, "true", v)
	v, _ = mainCfg.Get("system_directory")
	assert.Equal(t, filepath.Join(installRoot, "bios"), v)

	coreCfg := kvstore.Load(f.fsh.Fs, filepath.Join(f.install.RetroArch, "retroarch-core-options.cfg"), kvstore.RetroArch)
	v, _ = coreCfg.Get("bluemsx_msxtype")
	assert.Equal(t, "MSX2", v)
}

func TestRun_Model2(t *testing.T) {
	t.Parallel()

	f := newInstallFixture(t)
	staging := filepath.Join(f.install.M2Emulator, "roms")
	require.NoError(t, f.fsh.WriteFile(filepath.Join(staging, "leftover.zip"), []byte("old")))

	executor := &mocks.MockCommandExecutor{}
	executor.On("Run",
		mock.Anything,
		command.RunOptions{Dir: f.install.M2Emulator},
		filepath.Join(f.install.M2Emulator, "emulator_multicpu.exe"),
		[]string{"daytona"},
	).Run(func(mock.Arguments) {
		// only the requested game is staged while the emulator runs
		files, err := f.fsh.ListFiles(staging)
		assert.NoError(t, err)
		assert.Equal(t, []string{"daytona.zip"}, files)
	}).Return(nil).Once()

	rom := filepath.Join(f.install.ROMs, "model2", "daytona.zip")
	result, err := f.run(t, launch.Request{System: "model2", Emulator: "model2", ROM: rom}, executor)
	require.NoError(t, err)
	executor.AssertExpectations(t)
	helpers.AssertValidLaunch(t, result.ID, result.Started, result.Plan)

	files, err := f.fsh.ListFiles(staging)
	require.NoError(t, err)
	assert.Empty(t, files)
	assert.True(t, f.fsh.FileExists(rom))
}

func TestRun_MissingCore(t *testing.T) {
	t.Parallel()

	f := newInstallFixture(t)
	executor := &mocks.MockCommandExecutor{}

	rom := filepath.Join(f.install.ROMs, "msx2", "game.rom")
	_, err := f.run(t, launch.Request{System: "msx2", Emulator: "retroarch", Core: "fmsx", ROM: rom}, executor)
	require.ErrorIs(t, err, launch.ErrMissingExecutable)
	executor.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLoadSettings(t *testing.T) {
	t.Parallel()

	f := newInstallFixture(t)
	require.NoError(t, f.fsh.WriteFile(f.cfg.SystemConfPath(), []byte(
		"global.ratio=4/3\nsnes.ratio=16/9\nsnes[\"mario.sfc\"].ratio=custom\n",
	)))

	req := launch.Request{System: "snes", Emulator: "libretro", Core: "snes9x", ROM: "/roms/snes/mario.sfc"}
	resolver, err := LoadSettings(f.fsh.Fs, f.cfg, req)
	require.NoError(t, err)

	assert.Equal(t, "custom", resolver.GetString("ratio"))
	assert.Equal(t, f.install.RetroArch, resolver.GetString("retroarch"))

	req.ROM = "/roms/snes/zelda.sfc"
	resolver, err = LoadSettings(f.fsh.Fs, f.cfg, req)
	require.NoError(t, err)
	assert.Equal(t, "16/9", resolver.GetString("ratio"))
}
