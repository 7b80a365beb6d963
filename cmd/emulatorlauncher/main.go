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

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/waal/batocera-ports/pkg/cli"
	"github.com/waal/batocera-ports/pkg/config"
	"github.com/waal/batocera-ports/pkg/helpers"
	"github.com/waal/batocera-ports/pkg/helpers/command"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := cli.SetupFlags(flag.CommandLine)
	flag.Parse()

	if *flags.Version {
		_, _ = fmt.Printf("%s %s\n", config.AppName, config.AppVersion)
		return nil
	}

	fs := afero.NewOsFs()

	var (
		cfg *config.Instance
		err error
	)
	if *flags.Config != "" {
		cfg, err = config.Open(fs, *flags.Config, config.BaseDefaults)
	} else {
		cfg, err = config.NewConfig(fs, helpers.ConfigDir(), config.BaseDefaults)
	}
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	debug := *flags.Debug || cfg.DebugLogging()
	var logWriters []io.Writer
	if debug {
		logWriters = []io.Writer{zerolog.ConsoleWriter{Out: os.Stderr}}
	}
	if err := helpers.InitLogging(helpers.LogDir(), debug, logWriters...); err != nil {
		return fmt.Errorf("error initializing logging: %w", err)
	}

	defer func() {
		if err := recover(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Panic: %s\n", err)
			log.Fatal().Msgf("panic: %v", err)
		}
	}()

	log.Info().Msgf("%s v%s started", config.AppName, config.AppVersion)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return cli.Launch(ctx, fs, cfg, &command.RealExecutor{}, flags, os.Stdout)
}
