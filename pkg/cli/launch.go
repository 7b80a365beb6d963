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

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/waal/batocera-ports/pkg/config"
	"github.com/waal/batocera-ports/pkg/helpers/command"
	"github.com/waal/batocera-ports/pkg/launch"
	"github.com/waal/batocera-ports/pkg/launcher"
	"github.com/waal/batocera-ports/pkg/settings"
)

type dryRunOutput struct {
	Session *launcher.Session `json:"session"`
	Staged  []string          `json:"staged,omitempty"`
}

// Launch runs the request described by the flags. The request is validated
// and resolved before any file is read. In dry-run mode the plan is printed
// as JSON to out and staged files are removed straight away.
func Launch(
	ctx context.Context,
	fs afero.Fs,
	cfg *config.Instance,
	executor command.Executor,
	flags *Flags,
	out io.Writer,
	opts ...launcher.Option,
) error {
	req := flags.Request()
	l := launcher.New(fs, launcher.DefaultRegistry(cfg), executor, opts...)

	// unknown targets are rejected before the settings file is read
	if _, err := l.Resolve(req); err != nil {
		return err //nolint:wrapcheck // launcher errors are already descriptive
	}

	resolver, err := launcher.LoadSettings(fs, cfg, req)
	if err != nil {
		return err //nolint:wrapcheck // already carries the file path
	}

	if *flags.DryRun {
		return dryRun(l, req, resolver, out)
	}

	result, err := l.Run(ctx, req, resolver)
	if err != nil {
		return err //nolint:wrapcheck // launcher errors are already descriptive
	}
	log.Info().Msgf("emulator ran for %s", result.Duration)
	return nil
}

func dryRun(l *launcher.Launcher, req launch.Request, resolver *settings.Resolver, out io.Writer) error {
	session, err := l.Prepare(req, resolver)
	if err != nil {
		return err //nolint:wrapcheck // launcher errors are already descriptive
	}
	defer session.Close()

	data, err := json.MarshalIndent(dryRunOutput{
		Session: session,
		Staged:  session.StagedFiles(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode launch plan: %w", err)
	}

	if _, err := fmt.Fprintln(out, string(data)); err != nil {
		return fmt.Errorf("failed to write launch plan: %w", err)
	}
	return nil
}
