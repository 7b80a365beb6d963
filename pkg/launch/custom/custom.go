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

// Package custom builds launches for emulators described in the launcher
// config rather than in code.
package custom

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/waal/batocera-ports/pkg/launch"
)

// Argument template tokens.
const (
	TokenROM         = "[rom]"
	TokenROMName     = "[rom_name]"
	TokenROMDir      = "[rom_dir]"
	TokenSystem      = "[system]"
	TokenCore        = "[core]"
	TokenControllers = "[controllers]"
	TokenResolution  = "[resolution]"
	TokenStaged      = "[staged]"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Definition describes one operator-defined emulator.
type Definition struct {
	ID         string `validate:"required,excludesall=/"`
	Executable string `validate:"required"`
	// WorkingDir is the process working directory and the base of a
	// relative Executable or StageDir.
	WorkingDir string
	// StageDir enables exclusive ROM staging when set.
	StageDir string
	// Args is the argument template, see the Token constants.
	Args  []string
	Cores []string `validate:"dive,required"`
}

// Validate checks the definition is complete enough to launch.
func (d Definition) Validate() error {
	if err := validate.Struct(d); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return fmt.Errorf("invalid custom emulator %q: %w", d.ID, err)
		}
		msgs := make([]string, 0, len(validationErrors))
		for _, fe := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", strings.ToLower(fe.Field()), fe.Tag()))
		}
		return fmt.Errorf("invalid custom emulator %q: %s", d.ID, strings.Join(msgs, "; "))
	}

	if d.WorkingDir != "" && !filepath.IsAbs(d.WorkingDir) {
		return fmt.Errorf("invalid custom emulator %q: working_dir must be absolute", d.ID)
	}
	if !filepath.IsAbs(d.Executable) && d.WorkingDir == "" {
		return fmt.Errorf("invalid custom emulator %q: relative executable needs a working_dir", d.ID)
	}
	if d.StageDir != "" && !filepath.IsAbs(d.StageDir) && d.WorkingDir == "" {
		return fmt.Errorf("invalid custom emulator %q: relative stage_dir needs a working_dir", d.ID)
	}
	return nil
}

// Builder builds launches from a Definition.
type Builder struct {
	def Definition
}

// New validates def and returns a builder for it.
func New(def Definition) (*Builder, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &Builder{def: def}, nil
}

// Definition returns the definition the builder was created from.
func (b *Builder) Definition() Definition {
	return b.def
}

// Register adds the builder to r under the definition's ID, limited to its
// cores when any are listed.
func (b *Builder) Register(r *launch.Registry) {
	r.Register(b.def.ID, b, b.def.Cores...)
}

func (b *Builder) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(b.def.WorkingDir, path)
}

// Build checks the executable exists, stages the ROM when a staging
// directory is configured and expands the argument template.
func (b *Builder) Build(env launch.Env, req launch.Request) (launch.Plan, *launch.Teardown, error) {
	exe := b.resolve(b.def.Executable)
	if err := launch.RequireFile(env.Fs, exe); err != nil {
		return launch.Plan{}, nil, err
	}

	var td *launch.Teardown
	staged := ""
	if b.def.StageDir != "" {
		td = launch.NewTeardown(env.Fs)
		var err error
		staged, err = launch.Stage(env.Fs, req.ROM, b.resolve(b.def.StageDir), td)
		if err != nil {
			return launch.Plan{}, td, err
		}
	}

	replacer := templateReplacer(req, staged)
	args := make([]string, 0, len(b.def.Args))
	for _, arg := range b.def.Args {
		args = append(args, replacer.Replace(arg))
	}

	log.Info().Msgf("custom emulator %s launch prepared", b.def.ID)
	return launch.Plan{
		Executable: exe,
		WorkDir:    b.def.WorkingDir,
		Args:       args,
	}, td, nil
}

func templateReplacer(req launch.Request, staged string) *strings.Replacer {
	name := filepath.Base(req.ROM)
	return strings.NewReplacer(
		TokenROMName, strings.TrimSuffix(name, filepath.Ext(name)),
		TokenROMDir, filepath.Dir(req.ROM),
		TokenROM, req.ROM,
		TokenSystem, req.System,
		TokenCore, req.Core,
		TokenControllers, req.Controllers,
		TokenResolution, req.Resolution,
		TokenStaged, staged,
	)
}
