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
	"maps"
	"slices"

	"github.com/waal/batocera-ports/pkg/settings"
)

// Paths are the installation roots handed to emulator builders.
type Paths struct {
	RetroArch      string `toml:"retroarch,omitempty"`
	RetroArchCores string `toml:"retroarch_cores,omitempty"`
	M2Emulator     string `toml:"m2emulator,omitempty"`
	Bios           string `toml:"bios,omitempty"`
	Saves          string `toml:"saves,omitempty"`
	Thumbnails     string `toml:"thumbnails,omitempty"`
	Shaders        string `toml:"shaders,omitempty"`
}

// Paths returns the installation roots with relative entries resolved
// against the config directory.
func (c *Instance) Paths() Paths {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.vals.Paths
	return Paths{
		RetroArch:      c.resolvePath(p.RetroArch),
		RetroArchCores: c.resolvePath(p.RetroArchCores),
		M2Emulator:     c.resolvePath(p.M2Emulator),
		Bios:           c.resolvePath(p.Bios),
		Saves:          c.resolvePath(p.Saves),
		Thumbnails:     c.resolvePath(p.Thumbnails),
		Shaders:        c.resolvePath(p.Shaders),
	}
}

func (c *Instance) SetPaths(p Paths) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Paths = p
}

// Option returns a free-form global option.
func (c *Instance) Option(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.vals.Options[key]
	return v, ok
}

func (c *Instance) SetOption(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.vals.Options == nil {
		c.vals.Options = make(map[string]string)
	}
	c.vals.Options[key] = value
}

// GlobalScope returns the global settings every launch sees: the
// configured installation roots followed by the options sorted by key.
// Unset roots are left out rather than set to "".
func (c *Instance) GlobalScope() *settings.Scope {
	paths := c.Paths()

	c.mu.RLock()
	defer c.mu.RUnlock()

	scope := settings.NewScope()
	for _, e := range []settings.Entry{
		{Key: "retroarch", Value: paths.RetroArch},
		{Key: "retroarch.cores", Value: paths.RetroArchCores},
		{Key: "m2emulator", Value: paths.M2Emulator},
		{Key: "bios", Value: paths.Bios},
		{Key: "saves", Value: paths.Saves},
		{Key: "thumbnails", Value: paths.Thumbnails},
		{Key: "shaders", Value: paths.Shaders},
	} {
		if e.Value != "" {
			scope.Set(e.Key, e.Value)
		}
	}

	for _, key := range slices.Sorted(maps.Keys(c.vals.Options)) {
		scope.Set(key, c.vals.Options[key])
	}

	return scope
}
