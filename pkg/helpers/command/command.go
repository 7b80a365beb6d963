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

// Package command runs external processes behind an interface so callers
// can substitute a mock in tests.
package command

import (
	"context"
	"os/exec"
)

type RunOptions struct {
	// Dir is the working directory of the process. Empty means the
	// current directory.
	Dir string
	// HideWindow prevents a console window from appearing (Windows-only).
	// On non-Windows platforms, this field is ignored.
	HideWindow bool
}

type Executor interface {
	// Run executes a command and waits for it to complete.
	// Returns an error if the command fails to start or exits with non-zero status.
	Run(ctx context.Context, opts RunOptions, name string, args ...string) error
}

type RealExecutor struct{}

func (*RealExecutor) Run(ctx context.Context, opts RunOptions, name string, args ...string) error {
	//nolint:gosec // Intentional: runs the emulator resolved for the launch
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = opts.Dir
	applyOptions(cmd, opts)
	return cmd.Run()
}
