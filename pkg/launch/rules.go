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
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/waal/batocera-ports/pkg/kvstore"
)

// RuleContext is the input every rule is a pure function of.
type RuleContext struct {
	Env     Env
	Request Request
}

// Target is the document being synthesised. It records which keys the rules
// of the current pass wrote.
type Target struct {
	doc     *kvstore.Document
	written map[string]struct{}
}

// NewTarget wraps doc for one synthesis pass.
func NewTarget(doc *kvstore.Document) *Target {
	return &Target{doc: doc, written: make(map[string]struct{})}
}

// Set writes key in the underlying document.
func (t *Target) Set(key, value string) {
	t.doc.Set(key, value)
	t.written[key] = struct{}{}
}

// Get reads key from the underlying document.
func (t *Target) Get(key string) (string, bool) {
	return t.doc.Get(key)
}

// Written reports whether a rule in this pass already set key.
func (t *Target) Written(key string) bool {
	_, ok := t.written[key]
	return ok
}

// Rule maps a request and its settings to document writes.
type Rule func(t *Target, ctx RuleContext)

// Apply runs rules over doc in order.
func Apply(doc *kvstore.Document, ctx RuleContext, rules ...Rule) {
	t := NewTarget(doc)
	for _, rule := range rules {
		rule(t, ctx)
	}
}

// PassThrough copies every system setting named prefix+key into the document
// as key. Only the system scope is consulted, so launcher paths such as
// retroarch.cores never leak into emulator files. It is meant to be the last
// rule of a pass and never overrides a key an earlier rule of the same pass
// wrote.
func PassThrough(prefix string) Rule {
	return func(t *Target, ctx RuleContext) {
		for _, e := range ctx.Env.Settings.System().Entries() {
			if !strings.HasPrefix(e.Key, prefix) {
				continue
			}
			key := strings.TrimPrefix(e.Key, prefix)
			if key == "" {
				continue
			}
			if t.Written(key) {
				log.Debug().Msgf("ignoring %s, %s is managed", e.Key, key)
				continue
			}
			t.Set(key, e.Value)
		}
	}
}

// Configure loads the document at path, applies rules and saves it with a
// backup if anything changed. The document is returned even when saving
// fails.
func Configure(
	ctx RuleContext,
	path string,
	format kvstore.Format,
	rules ...Rule,
) (*kvstore.Document, error) {
	doc := kvstore.Load(ctx.Env.Fs, path, format)
	Apply(doc, ctx, rules...)
	if _, err := doc.Save(path, true); err != nil {
		return doc, err //nolint:wrapcheck // already wrapped by kvstore
	}
	return doc, nil
}
