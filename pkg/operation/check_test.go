// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/operation"
)

// 🧪 TestCheckReportsEveryTarget verifies a dry run covers all files,
// failed ones included, and writes nothing
func TestCheckReportsEveryTarget(t *testing.T) {
	ctx, dir, statusMgr, console := createTestEnv(t)

	cfg := &config.Config{
		Targets: []config.Target{
			{Path: "would-patch.ts"},
			{Path: "missing.ts"},
			{Path: "unchanged.ts"},
		},
		Replacements: []config.Replacement{{Old: "debugMode", New: "releaseMode"}},
	}
	writeTarget(t, dir, "would-patch.ts", "debugMode = true")
	writeTarget(t, dir, "unchanged.ts", "nothing to do here")

	op := newOperator(t, cfg, statusMgr, console)
	results, err := op.Check(ctx, operation.CheckOptions{})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "would-patch.ts", results[0].Path)
	assert.Equal(t, log.CheckWouldPatch, results[0].Outcome)
	assert.Equal(t, 1, results[0].Replacements)
	assert.Empty(t, results[0].Diff, "diff is opt-in")

	// The failed target in the middle must not cut the report short
	assert.Equal(t, "missing.ts", results[1].Path)
	assert.Equal(t, log.CheckFailed, results[1].Outcome)
	assert.Error(t, results[1].Error)

	assert.Equal(t, "unchanged.ts", results[2].Path)
	assert.Equal(t, log.CheckUnchanged, results[2].Outcome)

	// Dry run leaves the tree exactly as it was
	assert.Equal(t, "debugMode = true", readTarget(t, dir, "would-patch.ts"))
	assert.Equal(t, "nothing to do here", readTarget(t, dir, "unchanged.ts"))
	_, statErr := os.Stat(filepath.Join(dir, "missing.ts"))
	assert.True(t, os.IsNotExist(statErr))
}

// 🧪 TestCheckDiff verifies the rendered diff shows the patched text
func TestCheckDiff(t *testing.T) {
	ctx, dir, statusMgr, console := createTestEnv(t)

	cfg := &config.Config{
		Targets:      []config.Target{{Path: "app.ts"}},
		Replacements: []config.Replacement{{Old: "debugMode", New: "releaseMode"}},
	}
	writeTarget(t, dir, "app.ts", "const flag = debugMode;")

	op := newOperator(t, cfg, statusMgr, console)
	results, err := op.Check(ctx, operation.CheckOptions{Diff: true})
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, log.CheckWouldPatch, results[0].Outcome)
	assert.NotEmpty(t, results[0].Diff)
	assert.Contains(t, results[0].Diff, "const flag = ", "unchanged text frames the diff")
	assert.Contains(t, results[0].Diff, "\x1b[32m", "inserted text is color coded")

	// Still a dry run, even with diff rendering on
	assert.Equal(t, "const flag = debugMode;", readTarget(t, dir, "app.ts"))
}

// 🧪 TestCheckStockRuleset dry-runs the builtin rules
func TestCheckStockRuleset(t *testing.T) {
	ctx, dir, statusMgr, console := createTestEnv(t)

	cfg := config.DefaultConfig()
	writeTarget(t, dir, cfg.Targets[0].Path, "authService.hasRole('admin') && authService.hasRole('field_enumerator')")

	op := newOperator(t, cfg, statusMgr, console)
	results, err := op.Check(ctx, operation.CheckOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, log.CheckWouldPatch, results[0].Outcome)
	assert.Equal(t, 2, results[0].Replacements)
	assert.Equal(t, "authService.hasRole('admin') && authService.hasRole('field_enumerator')", readTarget(t, dir, cfg.Targets[0].Path))
}
