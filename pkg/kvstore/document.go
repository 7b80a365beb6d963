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

// Package kvstore reads and writes line-oriented key/value configuration
// files such as retroarch.cfg. Lines that are never set are written back
// exactly as they were read, and a document is only written to disk when a
// value actually changed.
package kvstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	// BackupSuffix is appended to a document path to name the copy of the
	// previous file kept by Save when a backup is requested.
	BackupSuffix = ".bak"
	tempSuffix   = ".tmp"
	bom          = "\ufeff"
)

// Format controls how new and updated lines are rendered.
type Format struct {
	// Separator is written between the key and the value.
	Separator string
	// QuoteValues wraps written values in double quotes.
	QuoteValues bool
}

var (
	// RetroArch renders lines as `key = "value"`.
	RetroArch = Format{Separator: " = ", QuoteValues: true}
	// Plain renders lines as `key=value`.
	Plain = Format{Separator: "="}
)

type line struct {
	raw   string
	key   string
	value string
}

// Document is an ordered set of key/value lines with a dirty flag. It is not
// safe for concurrent use.
type Document struct {
	fs     afero.Fs
	index  map[string]int
	format Format
	lines  []line
	crlf   bool
	dirty  bool
}

// New returns an empty document bound to fs.
func New(fs afero.Fs, format Format) *Document {
	return &Document{
		fs:     fs,
		format: format,
		index:  make(map[string]int),
		lines:  []line{{}},
	}
}

// Load reads the document at path. It never fails: a missing or unreadable
// file gives an empty document and lines that are not key/value pairs are
// carried through untouched.
func Load(fs afero.Fs, path string, format Format) *Document {
	doc := New(fs, format)

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Msgf("failed to read config file, starting empty: %s", path)
		}
		return doc
	}

	doc.parse(string(data))
	log.Debug().Msgf("loaded %d keys from %s", len(doc.index), path)
	return doc
}

func (d *Document) parse(data string) {
	raws := strings.Split(data, "\n")
	d.lines = make([]line, 0, len(raws))
	for i, raw := range raws {
		l := line{raw: raw}
		if strings.HasSuffix(raw, "\r") {
			d.crlf = true
		}
		if key, value, ok := parseLine(raw); ok {
			l.key = key
			l.value = value
			d.index[key] = i
		}
		d.lines = append(d.lines, l)
	}
}

func parseLine(raw string) (key, value string, ok bool) {
	s := strings.TrimPrefix(raw, bom)
	s = strings.TrimSpace(strings.TrimSuffix(s, "\r"))
	if s == "" || s[0] == '#' || s[0] == ';' {
		return "", "", false
	}

	i := strings.IndexByte(s, '=')
	if i <= 0 {
		return "", "", false
	}

	key = strings.TrimSpace(s[:i])
	if key == "" {
		return "", "", false
	}

	value = strings.TrimSpace(s[i+1:])
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		value = value[1 : len(value)-1]
	}

	return key, value, true
}

// Get returns the value stored for key. When a key appears more than once
// the last occurrence wins.
func (d *Document) Get(key string) (string, bool) {
	i, ok := d.index[key]
	if !ok {
		return "", false
	}
	return d.lines[i].value, true
}

// Set stores value under key. The document only becomes dirty if the stored
// value changes, which includes adding a key that was absent.
func (d *Document) Set(key, value string) {
	if i, ok := d.index[key]; ok {
		current := d.lines[i]
		if current.value == value {
			return
		}

		raw := d.render(key, value)
		if strings.HasPrefix(current.raw, bom) {
			raw = bom + raw
		}
		if strings.HasSuffix(current.raw, "\r") {
			raw += "\r"
		}
		d.lines[i] = line{raw: raw, key: key, value: value}
		d.dirty = true
		return
	}

	raw := d.render(key, value)
	if d.crlf {
		raw += "\r"
	}
	newLine := line{raw: raw, key: key, value: value}

	// keep the trailing newline at the end of the file
	last := len(d.lines) - 1
	if last >= 0 && d.lines[last].raw == "" {
		trailing := d.lines[last]
		d.lines = append(d.lines[:last], newLine, trailing)
		d.index[key] = last
	} else {
		d.lines = append(d.lines, newLine)
		d.index[key] = len(d.lines) - 1
	}
	d.dirty = true
}

func (d *Document) render(key, value string) string {
	if d.format.QuoteValues {
		value = `"` + value + `"`
	}
	return key + d.format.Separator + value
}

// Keys returns every key in the order its authoritative line appears.
func (d *Document) Keys() []string {
	keys := make([]string, 0, len(d.index))
	for i, l := range d.lines {
		if l.key == "" {
			continue
		}
		if d.index[l.key] == i {
			keys = append(keys, l.key)
		}
	}
	return keys
}

// Len returns the number of distinct keys.
func (d *Document) Len() int {
	return len(d.index)
}

// IsDirty reports whether a value changed since the document was loaded or
// last saved.
func (d *Document) IsDirty() bool {
	return d.dirty
}

// Bytes returns the serialised document.
func (d *Document) Bytes() []byte {
	raws := make([]string, len(d.lines))
	for i, l := range d.lines {
		raws[i] = l.raw
	}
	return []byte(strings.Join(raws, "\n"))
}

// Save writes the document to path if it is dirty and reports whether a write
// happened. With backup set, the file being replaced is first copied next to
// it with BackupSuffix.
func (d *Document) Save(path string, backup bool) (bool, error) {
	if !d.dirty {
		return false, nil
	}

	if err := d.fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	if backup {
		d.backup(path)
	}

	tmpPath := path + tempSuffix
	if err := afero.WriteFile(d.fs, tmpPath, d.Bytes(), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	if err := d.fs.Rename(tmpPath, path); err != nil {
		if rmErr := d.fs.Remove(tmpPath); rmErr != nil {
			log.Warn().Err(rmErr).Msgf("failed to remove temp file: %s", tmpPath)
		}
		return false, fmt.Errorf("failed to replace config file: %w", err)
	}

	d.dirty = false
	log.Info().Msgf("saved config file: %s", path)
	return true, nil
}

func (d *Document) backup(path string) {
	data, err := afero.ReadFile(d.fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return
	} else if err != nil {
		log.Warn().Err(err).Msgf("failed to read config file for backup: %s", path)
		return
	}

	err = afero.WriteFile(d.fs, path+BackupSuffix, data, 0o644)
	if err != nil {
		log.Warn().Err(err).Msgf("failed to write config backup: %s", path+BackupSuffix)
	}
}
