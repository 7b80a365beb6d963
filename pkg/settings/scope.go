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

// Package settings exposes the two read-only settings scopes consulted while
// preparing a launch: global application settings and the settings of the
// system being launched. System values shadow global ones.
package settings

// Entry is a single key/value pair of a scope.
type Entry struct {
	Key   string
	Value string
}

// Scope is a string map that remembers insertion order. A nil *Scope reads
// as an empty scope.
type Scope struct {
	values map[string]string
	keys   []string
}

// NewScope returns an empty scope.
func NewScope() *Scope {
	return &Scope{values: make(map[string]string)}
}

// ScopeFrom builds a scope from entries, in order.
func ScopeFrom(entries ...Entry) *Scope {
	s := NewScope()
	for _, e := range entries {
		s.Set(e.Key, e.Value)
	}
	return s
}

// Set stores value under key. Overwriting a key keeps its original position.
func (s *Scope) Set(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Get returns the value for key and whether the key is present at all.
func (s *Scope) Get(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.values[key]
	return v, ok
}

// IsSet reports whether key is present, even with an empty value.
func (s *Scope) IsSet(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Len returns the number of keys.
func (s *Scope) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Entries returns all entries in insertion order.
func (s *Scope) Entries() []Entry {
	if s == nil {
		return nil
	}
	entries := make([]Entry, 0, len(s.keys))
	for _, k := range s.keys {
		entries = append(entries, Entry{Key: k, Value: s.values[k]})
	}
	return entries
}
