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

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"gopkg.in/ini.v1"
)

// GlobalPrefix namespaces entries of a system settings file that apply to
// every system.
const GlobalPrefix = "global."

// LoadSystemConf builds the system scope for a launch from a batocera.conf
// style file. Entries are applied in increasing precedence:
//
//	global.<key>
//	<system>.<key>
//	<system>["<rom file name>"].<key>
//
// A missing file gives an empty scope.
func LoadSystemConf(fs afero.Fs, path, system, rom string) (*Scope, error) {
	scope := NewScope()

	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		log.Debug().Msgf("system settings file not found: %s", path)
		return scope, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read system settings file: %w", err)
	}

	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		IgnoreContinuation:      true,
		SkipUnrecognizableLines: true,
		KeyValueDelimiters:      "=",
	}, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse system settings file: %w", err)
	}

	keys := cfg.Section(ini.DefaultSection).Keys()
	prefixes := []string{GlobalPrefix, system + "."}
	if rom != "" {
		prefixes = append(prefixes, system+`["`+filepath.Base(rom)+`"].`)
	}

	for _, prefix := range prefixes {
		for _, key := range keys {
			name, ok := strings.CutPrefix(key.Name(), prefix)
			if !ok || name == "" {
				continue
			}
			scope.Set(name, key.Value())
		}
	}

	log.Debug().Msgf("loaded %d system settings for %s", scope.Len(), system)
	return scope, nil
}
