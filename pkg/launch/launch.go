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

// Package launch turns a launch request into a launch plan: it synthesises
// emulator configuration files, resolves the emulator executable and builds
// the argument vector. Each emulator family is a Builder registered in a
// Registry.
//
// Configuration files and staging directories are shared, unlocked state:
// at most one launch may be prepared at a time per installation.
package launch

import (
	"errors"
	"runtime"

	"github.com/spf13/afero"
	"github.com/waal/batocera-ports/pkg/settings"
)

var (
	// ErrMissingExecutable means the resolved emulator binary does not exist.
	ErrMissingExecutable = errors.New("missing executable")
	// ErrStagingFailed means the ROM could not be placed where the emulator
	// expects it.
	ErrStagingFailed = errors.New("staging failed")
	// ErrUnsupportedTarget means no builder is registered for the requested
	// emulator and core.
	ErrUnsupportedTarget = errors.New("unsupported target")
	// ErrInvalidRequest means the request is missing required fields.
	ErrInvalidRequest = errors.New("invalid request")
)

// Request describes what to launch. It is passed by value and never
// modified.
type Request struct {
	System   string `json:"system" validate:"required"`
	Emulator string `json:"emulator" validate:"required"`
	Core     string `json:"core,omitempty"`
	ROM      string `json:"rom" validate:"required,abspath"`
	// Controllers and Resolution are opaque tokens forwarded from the
	// front-end.
	Controllers string `json:"controllers,omitempty"`
	Resolution  string `json:"resolution,omitempty"`
}

// Plan is the process invocation that starts the emulator.
type Plan struct {
	Executable string   `json:"executable"`
	WorkDir    string   `json:"workDir,omitempty"`
	Args       []string `json:"args"`
}

// Env carries everything a builder may consult besides the request.
type Env struct {
	Fs       afero.Fs
	Settings *settings.Resolver
	// OS selects platform specific file names, defaults to runtime.GOOS.
	OS string
}

// GOOS returns the target operating system of the environment.
func (e Env) GOOS() string {
	if e.OS == "" {
		return runtime.GOOS
	}
	return e.OS
}

// Builder prepares launches for one emulator family.
//
// Build runs configuration synthesis, executable resolution and argument
// construction, in that order. The returned Teardown must be cleaned up
// once the emulator exits or the launch is abandoned, including when Build
// returns an error.
type Builder interface {
	Build(env Env, req Request) (Plan, *Teardown, error)
}

// BuilderFunc adapts a function to the Builder interface.
type BuilderFunc func(env Env, req Request) (Plan, *Teardown, error)

// Build calls f.
func (f BuilderFunc) Build(env Env, req Request) (Plan, *Teardown, error) {
	return f(env, req)
}
