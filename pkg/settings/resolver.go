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

import "strings"

// Resolver answers settings queries for one launch, consulting the system
// scope first and falling back to the global scope.
type Resolver struct {
	global *Scope
	system *Scope
}

// NewResolver returns a resolver over the given scopes. Either may be nil.
func NewResolver(global, system *Scope) *Resolver {
	if global == nil {
		global = NewScope()
	}
	if system == nil {
		system = NewScope()
	}
	return &Resolver{global: global, system: system}
}

// Global returns the global scope.
func (r *Resolver) Global() *Scope {
	return r.global
}

// System returns the per-system scope.
func (r *Resolver) System() *Scope {
	return r.system
}

func (r *Resolver) lookup(key string) (string, bool) {
	if v, ok := r.system.Get(key); ok {
		return v, true
	}
	return r.global.Get(key)
}

// IsSet reports whether key is present in either scope.
func (r *Resolver) IsSet(key string) bool {
	_, ok := r.lookup(key)
	return ok
}

// GetString returns the value of key, or "" when absent.
func (r *Resolver) GetString(key string) string {
	v, _ := r.lookup(key)
	return v
}

// GetBoolean is true only when the stored value is exactly "true".
func (r *Resolver) GetBoolean(key string) bool {
	return r.GetString(key) == "true"
}

// WithPrefix returns every entry whose key starts with prefix, with shadowing
// applied. Keys known to the global scope come first in global order,
// followed by keys only the system scope has, in system order.
func (r *Resolver) WithPrefix(prefix string) []Entry {
	var entries []Entry
	for _, e := range r.global.Entries() {
		if !strings.HasPrefix(e.Key, prefix) {
			continue
		}
		if v, ok := r.system.Get(e.Key); ok {
			e.Value = v
		}
		entries = append(entries, e)
	}
	for _, e := range r.system.Entries() {
		if !strings.HasPrefix(e.Key, prefix) || r.global.IsSet(e.Key) {
			continue
		}
		entries = append(entries, e)
	}
	return entries
}
