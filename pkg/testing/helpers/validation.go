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

package helpers

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/waal/batocera-ports/pkg/launch"
)

// AssertValidPlan checks the fields every builder must fill in. Args may be
// empty for emulators that take no arguments, but never nil.
func AssertValidPlan(t *testing.T, plan launch.Plan) {
	t.Helper()

	require.NotEmpty(t, plan.Executable, "Plan.Executable is required")
	require.True(t, filepath.IsAbs(plan.Executable), "Plan.Executable must be absolute: %s", plan.Executable)
	require.NotNil(t, plan.Args, "Plan.Args must not be nil")
	if plan.WorkDir != "" {
		require.True(t, filepath.IsAbs(plan.WorkDir), "Plan.WorkDir must be absolute: %s", plan.WorkDir)
	}
}

// AssertValidLaunch checks what the launcher reports for a launch that
// started.
func AssertValidLaunch(t *testing.T, id uuid.UUID, started time.Time, plan launch.Plan) {
	t.Helper()

	// a zero start time makes the session duration meaningless
	require.False(t, started.IsZero(), "launch start time must be set")
	require.NotEqual(t, uuid.Nil, id, "launch ID is required")
	AssertValidPlan(t, plan)
}
