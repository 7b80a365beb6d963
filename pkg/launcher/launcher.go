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

// Package launcher runs a launch request end to end: it validates the
// request, resolves the emulator builder, builds the plan, runs the
// emulator and always cleans up afterwards.
package launcher

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/waal/batocera-ports/pkg/helpers/command"
	"github.com/waal/batocera-ports/pkg/launch"
	"github.com/waal/batocera-ports/pkg/settings"
)

// Launcher turns launch requests into running emulators.
type Launcher struct {
	fs       afero.Fs
	registry *launch.Registry
	executor command.Executor
	clock    clockwork.Clock
	goos     string
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithClock replaces the clock used to time sessions.
func WithClock(clock clockwork.Clock) Option {
	return func(l *Launcher) {
		l.clock = clock
	}
}

// WithOS makes builders pick file names for goos instead of the host.
func WithOS(goos string) Option {
	return func(l *Launcher) {
		l.goos = goos
	}
}

// New returns a launcher resolving builders from registry and starting
// emulators with executor.
func New(fs afero.Fs, registry *launch.Registry, executor command.Executor, opts ...Option) *Launcher {
	l := &Launcher{
		fs:       fs,
		registry: registry,
		executor: executor,
		clock:    clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Session is a prepared launch. Close must be called once the emulator has
// exited or the launch is abandoned.
type Session struct {
	teardown *launch.Teardown
	Plan     launch.Plan    `json:"plan"`
	Request  launch.Request `json:"request"`
	ID       uuid.UUID      `json:"id"`
}

// Close removes anything the build staged. It is safe to call repeatedly.
func (s *Session) Close() {
	s.teardown.Cleanup()
}

// StagedFiles lists the files Close removes.
func (s *Session) StagedFiles() []string {
	return s.teardown.Paths()
}

// Result describes a finished launch.
type Result struct {
	Started  time.Time     `json:"started"`
	Plan     launch.Plan   `json:"plan"`
	ID       uuid.UUID     `json:"id"`
	Duration time.Duration `json:"duration"`
}

// Resolve validates req and returns the builder registered for it. It
// never touches the filesystem, so callers can reject a request before
// loading any settings.
func (l *Launcher) Resolve(req launch.Request) (launch.Builder, error) {
	if err := req.Validate(); err != nil {
		return nil, err //nolint:wrapcheck // already wraps ErrInvalidRequest
	}

	builder, err := l.registry.Resolve(req.Emulator, req.Core)
	if err != nil {
		return nil, err //nolint:wrapcheck // already wraps ErrUnsupportedTarget
	}
	return builder, nil
}

// Prepare validates req, resolves its builder and builds the plan. No file
// is touched when the request is invalid or no builder is registered. If
// the build fails, anything it staged is removed before returning.
func (l *Launcher) Prepare(req launch.Request, resolver *settings.Resolver) (*Session, error) {
	builder, err := l.Resolve(req)
	if err != nil {
		return nil, err
	}

	if resolver == nil {
		resolver = settings.NewResolver(nil, nil)
	}
	env := launch.Env{Fs: l.fs, Settings: resolver, OS: l.goos}

	id := uuid.New()
	log.Info().Msgf("preparing launch %s: system=%s emulator=%s core=%s rom=%s",
		id, req.System, req.Emulator, req.Core, req.ROM)

	plan, td, err := builder.Build(env, req)
	if err != nil {
		td.Cleanup()
		return nil, fmt.Errorf("failed to prepare %s launch: %w", req.Emulator, err)
	}

	log.Debug().Msgf("launch %s plan: %s %v (dir %q)", id, plan.Executable, plan.Args, plan.WorkDir)
	return &Session{
		ID:       id,
		Request:  req,
		Plan:     plan,
		teardown: td,
	}, nil
}

// Run prepares req, runs the emulator until it exits and cleans up. The
// result is filled in whenever the emulator was started.
func (l *Launcher) Run(ctx context.Context, req launch.Request, resolver *settings.Resolver) (Result, error) {
	session, err := l.Prepare(req, resolver)
	if err != nil {
		return Result{}, err
	}
	defer session.Close()

	result := Result{
		ID:      session.ID,
		Plan:    session.Plan,
		Started: l.clock.Now(),
	}

	log.Info().Msgf("starting launch %s: %s", session.ID, session.Plan.Executable)
	err = l.executor.Run(
		ctx,
		command.RunOptions{Dir: session.Plan.WorkDir},
		session.Plan.Executable,
		session.Plan.Args...,
	)
	result.Duration = l.clock.Since(result.Started)

	if err != nil {
		log.Error().Err(err).Msgf("launch %s failed after %s", session.ID, result.Duration)
		return result, fmt.Errorf("emulator exited with error: %w", err)
	}

	log.Info().Msgf("launch %s finished after %s", session.ID, result.Duration)
	return result, nil
}
