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

package launch

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/waal/batocera-ports/pkg/helpers/syncutil"
)

// Registry maps emulator and core identifiers to builders.
type Registry struct {
	builders map[string]Builder
	mu       syncutil.RWMutex
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]Builder)}
}

func registryKey(emulator, core string) string {
	emulator = strings.ToLower(emulator)
	if core == "" {
		return emulator
	}
	return emulator + "/" + strings.ToLower(core)
}

// Register adds b for emulator. With no cores, b handles every core of the
// emulator not registered more specifically. Later registrations replace
// earlier ones for the same key.
func (r *Registry) Register(emulator string, b Builder, cores ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(cores) == 0 {
		r.builders[registryKey(emulator, "")] = b
		log.Debug().Msgf("registered builder for emulator %s", emulator)
		return
	}
	for _, core := range cores {
		r.builders[registryKey(emulator, core)] = b
	}
	log.Debug().Msgf("registered builder for emulator %s cores %v", emulator, cores)
}

// Resolve returns the builder for the emulator and core, preferring an exact
// core registration over the emulator wide one. Identifiers are matched
// case-insensitively.
func (r *Registry) Resolve(emulator, core string) (Builder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if core != "" {
		if b, ok := r.builders[registryKey(emulator, core)]; ok {
			return b, nil
		}
	}
	if b, ok := r.builders[registryKey(emulator, "")]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("%w: emulator %q core %q", ErrUnsupportedTarget, emulator, core)
}
