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

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/waal/batocera-ports/pkg/helpers/syncutil"
)

const (
	SchemaVersion = 1
	CfgEnv        = "EMULATORLAUNCHER_CFG"
)

type Values struct {
	Options      map[string]string `toml:"options,omitempty"`
	Paths        Paths             `toml:"paths"`
	Settings     Settings          `toml:"settings,omitempty"`
	EmulatorsDir string            `toml:"emulators_dir,omitempty"`
	Emulators    Emulators         `toml:"emulators,omitempty"`
	ConfigSchema int               `toml:"config_schema"`
	DebugLogging bool              `toml:"debug_logging"`
}

type Settings struct {
	SystemConf string `toml:"system_conf,omitempty"`
}

var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
	Settings: Settings{
		SystemConf: "batocera.conf",
	},
}

type Instance struct {
	fs       afero.Fs
	cfgPath  string
	external []EmulatorsCustom
	vals     Values
	defaults Values
	mu       syncutil.RWMutex
}

// NewConfig loads the config file from configDir, or from the path in the
// CfgEnv environment variable when set. A missing file is created with the
// defaults.
func NewConfig(fs afero.Fs, configDir string, defaults Values) (*Instance, error) {
	cfgPath := os.Getenv(CfgEnv)
	log.Debug().Msgf("env config path: %s", cfgPath)

	if cfgPath == "" {
		cfgPath = filepath.Join(configDir, CfgFile)
	}

	return Open(fs, cfgPath, defaults)
}

// Open loads the config file at cfgPath, creating it with the defaults when
// missing.
func Open(fs afero.Fs, cfgPath string, defaults Values) (*Instance, error) {
	cfg := Instance{
		fs:       fs,
		cfgPath:  cfgPath,
		vals:     defaults,
		defaults: defaults,
	}

	if _, err := fs.Stat(cfgPath); errors.Is(err, os.ErrNotExist) {
		log.Info().Msg("saving new default config to disk")

		err := fs.MkdirAll(filepath.Dir(cfgPath), 0o750)
		if err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		err = cfg.Save()
		if err != nil {
			return nil, err
		}
	}

	err := cfg.Load()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	data, err := afero.ReadFile(c.fs, c.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then unmarshal file values on top.
	newVals := c.defaults
	err = toml.Unmarshal(data, &newVals)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if newVals.ConfigSchema != SchemaVersion {
		log.Error().Msgf(
			"schema version mismatch: got %d, expecting %d",
			newVals.ConfigSchema,
			SchemaVersion,
		)
		return errors.New("schema version mismatch")
	}

	c.vals = newVals
	c.external = nil

	if c.vals.EmulatorsDir != "" {
		external, err := loadCustomEmulators(c.fs, c.resolvePath(c.vals.EmulatorsDir))
		if err != nil {
			return err
		}
		c.external = external
	}

	return nil
}

func (c *Instance) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	// set current schema version
	c.vals.ConfigSchema = SchemaVersion

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := afero.WriteFile(c.fs, c.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Path returns the location of the config file.
func (c *Instance) Path() string {
	return c.cfgPath
}

// Dir returns the directory relative paths in the config are resolved
// against.
func (c *Instance) Dir() string {
	return filepath.Dir(c.cfgPath)
}

func (c *Instance) resolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}

func (c *Instance) SetDebugLogging(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.DebugLogging = enabled
}

// SystemConfPath returns the resolved path of the per-system settings
// file, or "" when none is configured.
func (c *Instance) SystemConfPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resolvePath(c.vals.Settings.SystemConf)
}

func (c *Instance) SetSystemConfPath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Settings.SystemConf = path
}
