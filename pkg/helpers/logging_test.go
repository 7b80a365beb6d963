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

package helpers

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waal/batocera-ports/pkg/config"
)

// InitLogging swaps the global logger, so these tests do not run in
// parallel.

func TestInitLogging(t *testing.T) {
	previous := log.Logger
	previousLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = previous
		zerolog.SetGlobalLevel(previousLevel)
	})

	t.Run("writes_to_file_and_extra_writers", func(t *testing.T) {
		logDir := filepath.Join(t.TempDir(), "logs", "nested")
		var buf bytes.Buffer

		require.NoError(t, InitLogging(logDir, false, &buf))

		log.Info().Msg("launch started")
		log.Debug().Msg("hidden detail")

		assert.Contains(t, buf.String(), "launch started")
		assert.NotContains(t, buf.String(), "hidden detail")

		data, err := os.ReadFile(filepath.Join(logDir, config.LogFile))
		require.NoError(t, err)
		assert.Contains(t, string(data), "launch started")
	})

	t.Run("debug_level", func(t *testing.T) {
		var buf bytes.Buffer

		require.NoError(t, InitLogging(t.TempDir(), true, &buf))

		log.Debug().Msg("visible detail")
		assert.Contains(t, buf.String(), "visible detail")
	})

	t.Run("unwritable_directory", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

		err := InitLogging(filepath.Join(file, "logs"), false)
		require.Error(t, err)
	})
}

func TestPaths(t *testing.T) {
	t.Parallel()

	assert.True(t, strings.HasSuffix(ConfigDir(), config.AppName))
	assert.Equal(t, LogsDir, filepath.Base(LogDir()))
	assert.Equal(t, config.AppName, filepath.Base(filepath.Dir(LogDir())))
}
