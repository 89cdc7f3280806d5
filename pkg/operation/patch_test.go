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
	"github.com/walteh/patchrc/pkg/status"
)

// 🧪 TestPatchStockRuleset runs the builtin rules over a realistic component
func TestPatchStockRuleset(t *testing.T) {
	ctx, dir, statusMgr, console := createTestEnv(t)

	source := `const name = authService.getUserDisplayName();
const role = authService.getUserRoleDisplayName();
if (authService.hasPermission('citizen.create') && authService.hasRole('admin')) {
  render();
}
`
	want := `const name = "System Administrator";
const role = "System Administrator";
if (true && true) {
  render();
}
`

	cfg := config.DefaultConfig()
	writeTarget(t, dir, cfg.Targets[0].Path, source)

	op := newOperator(t, cfg, statusMgr, console)
	require.NoError(t, op.Patch(ctx))

	assert.Equal(t, want, readTarget(t, dir, cfg.Targets[0].Path))

	info, err := statusMgr.GetFileInfo(ctx, cfg.Targets[0].Path)
	require.NoError(t, err)
	assert.Equal(t, status.StatusPatched, info.Status)
	assert.Equal(t, 4, info.Replacements)
}

// 🧪 TestPatchIsIdempotent verifies a second run changes nothing
func TestPatchIsIdempotent(t *testing.T) {
	ctx, dir, statusMgr, console := createTestEnv(t)

	cfg := config.DefaultConfig()
	writeTarget(t, dir, cfg.Targets[0].Path, "authService.hasRole('admin')")

	op := newOperator(t, cfg, statusMgr, console)
	require.NoError(t, op.Patch(ctx))
	assert.Equal(t, "true", readTarget(t, dir, cfg.Targets[0].Path))

	firstStat, err := os.Stat(filepath.Join(dir, cfg.Targets[0].Path))
	require.NoError(t, err)

	// Second run finds nothing to replace and must not rewrite the file
	require.NoError(t, op.Patch(ctx))
	assert.Equal(t, "true", readTarget(t, dir, cfg.Targets[0].Path))

	secondStat, err := os.Stat(filepath.Join(dir, cfg.Targets[0].Path))
	require.NoError(t, err)
	assert.Equal(t, firstStat.ModTime(), secondStat.ModTime(), "unchanged file should keep its mtime")

	info, err := statusMgr.GetFileInfo(ctx, cfg.Targets[0].Path)
	require.NoError(t, err)
	assert.Equal(t, status.StatusUnchanged, info.Status)
}

// 🧪 TestPatchMissingTarget verifies a read failure creates nothing
func TestPatchMissingTarget(t *testing.T) {
	ctx, dir, statusMgr, console := createTestEnv(t)

	cfg := config.DefaultConfig()
	op := newOperator(t, cfg, statusMgr, console)

	err := op.Patch(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading target")

	_, statErr := os.Stat(filepath.Join(dir, cfg.Targets[0].Path))
	assert.True(t, os.IsNotExist(statErr), "failed target must not be created")

	info, err := statusMgr.GetFileInfo(ctx, cfg.Targets[0].Path)
	require.NoError(t, err)
	assert.Equal(t, status.StatusFailed, info.Status)
}

// 🧪 TestPatchZeroMatch verifies unmatched rules are fine by default
func TestPatchZeroMatch(t *testing.T) {
	ctx, dir, statusMgr, console := createTestEnv(t)

	cfg := &config.Config{
		Targets:      []config.Target{{Path: "app.ts"}},
		Replacements: []config.Replacement{{Old: "nothing here matches", New: "x"}},
	}
	writeTarget(t, dir, "app.ts", "untouched content")

	op := newOperator(t, cfg, statusMgr, console)
	require.NoError(t, op.Patch(ctx))
	assert.Equal(t, "untouched content", readTarget(t, dir, "app.ts"))
}

// 🧪 TestPatchStrict verifies strict mode fails on unmatched rules
func TestPatchStrict(t *testing.T) {
	t.Run("unmatched_shared_rule", func(t *testing.T) {
		ctx, dir, statusMgr, console := createTestEnv(t)

		cfg := &config.Config{
			Targets: []config.Target{{Path: "app.ts"}},
			Replacements: []config.Replacement{
				{Old: "debugMode", New: "releaseMode"},
				{Old: "never present", New: "x"},
			},
			Flags: &config.FlagsBlock{Strict: true},
		}
		writeTarget(t, dir, "app.ts", "debugMode = true")

		op := newOperator(t, cfg, statusMgr, console)
		err := op.Patch(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "strict mode")
		assert.Contains(t, err.Error(), `"never present"`)

		// The matched rule still landed before strict failed the run
		assert.Equal(t, "releaseMode = true", readTarget(t, dir, "app.ts"))
	})

	t.Run("rule_matched_in_one_of_many_targets", func(t *testing.T) {
		ctx, dir, statusMgr, console := createTestEnv(t)

		cfg := &config.Config{
			Targets:      []config.Target{{Path: "a.ts"}, {Path: "b.ts"}},
			Replacements: []config.Replacement{{Old: "debugMode", New: "releaseMode"}},
			Flags:        &config.FlagsBlock{Strict: true},
		}
		writeTarget(t, dir, "a.ts", "no match in this one")
		writeTarget(t, dir, "b.ts", "debugMode")

		// Matching anywhere is enough
		op := newOperator(t, cfg, statusMgr, console)
		require.NoError(t, op.Patch(ctx))
	})

	t.Run("unmatched_local_rule", func(t *testing.T) {
		ctx, dir, statusMgr, console := createTestEnv(t)

		cfg := &config.Config{
			Targets: []config.Target{{
				Path:         "app.ts",
				Replacements: []config.Replacement{{Old: "missing", New: "x"}},
			}},
			Flags: &config.FlagsBlock{Strict: true},
		}
		writeTarget(t, dir, "app.ts", "content")

		op := newOperator(t, cfg, statusMgr, console)
		err := op.Patch(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"missing" (target app.ts)`)
	})
}

// 🧪 TestPatchRuleOrdering verifies shared rules run before target-local ones
func TestPatchRuleOrdering(t *testing.T) {
	ctx, dir, statusMgr, console := createTestEnv(t)

	cfg := &config.Config{
		Targets: []config.Target{{
			Path:         "app.ts",
			Replacements: []config.Replacement{{Old: "y", New: "z"}},
		}},
		Replacements: []config.Replacement{{Old: "x", New: "y"}},
	}
	writeTarget(t, dir, "app.ts", "x y")

	op := newOperator(t, cfg, statusMgr, console)
	require.NoError(t, op.Patch(ctx))

	// Shared turns "x" into "y", then the local rule sees both y's
	assert.Equal(t, "z z", readTarget(t, dir, "app.ts"))
}

// 🧪 TestPatchFileGlob verifies rules scoped by glob skip other targets
func TestPatchFileGlob(t *testing.T) {
	ctx, dir, statusMgr, console := createTestEnv(t)

	glob := "src/**/*.ts"
	cfg := &config.Config{
		Targets: []config.Target{
			{Path: "src/app/main.ts"},
			{Path: "lib/util.txt"},
		},
		Replacements: []config.Replacement{{Old: "debugMode", New: "releaseMode", File: &glob}},
	}
	writeTarget(t, dir, "src/app/main.ts", "debugMode")
	writeTarget(t, dir, "lib/util.txt", "debugMode")

	op := newOperator(t, cfg, statusMgr, console)
	require.NoError(t, op.Patch(ctx))

	assert.Equal(t, "releaseMode", readTarget(t, dir, "src/app/main.ts"))
	assert.Equal(t, "debugMode", readTarget(t, dir, "lib/util.txt"), "glob should exclude this target")
}

// 🧪 TestPatchBackup verifies the backup flag keeps the original
func TestPatchBackup(t *testing.T) {
	ctx, dir, statusMgr, console := createTestEnv(t)

	cfg := &config.Config{
		Targets:      []config.Target{{Path: "app.ts"}},
		Replacements: []config.Replacement{{Old: "old", New: "new"}},
		Flags:        &config.FlagsBlock{Backup: true},
	}
	writeTarget(t, dir, "app.ts", "old value")

	op := newOperator(t, cfg, statusMgr, console)
	require.NoError(t, op.Patch(ctx))

	assert.Equal(t, "new value", readTarget(t, dir, "app.ts"))
	assert.Equal(t, "old value", readTarget(t, dir, "app.ts.bak"))
}

// 🧪 TestPatchAtomic verifies the atomic flag leaves no temp file
func TestPatchAtomic(t *testing.T) {
	ctx, dir, statusMgr, console := createTestEnv(t)

	cfg := &config.Config{
		Targets:      []config.Target{{Path: "app.ts"}},
		Replacements: []config.Replacement{{Old: "old", New: "new"}},
		Flags:        &config.FlagsBlock{Atomic: true},
	}
	writeTarget(t, dir, "app.ts", "old value")

	op := newOperator(t, cfg, statusMgr, console)
	require.NoError(t, op.Patch(ctx))

	assert.Equal(t, "new value", readTarget(t, dir, "app.ts"))
	_, err := os.Stat(filepath.Join(dir, "app.ts.tmp"))
	assert.True(t, os.IsNotExist(err))
}

// 🧪 TestPatchAsync verifies concurrent runs patch every target
func TestPatchAsync(t *testing.T) {
	ctx, dir, statusMgr, console := createTestEnv(t)

	cfg := &config.Config{
		Targets: []config.Target{
			{Path: "a.ts"},
			{Path: "b.ts"},
			{Path: "c.ts"},
		},
		Replacements: []config.Replacement{{Old: "old", New: "new"}},
		Flags:        &config.FlagsBlock{Async: true},
	}
	for _, name := range []string{"a.ts", "b.ts", "c.ts"} {
		writeTarget(t, dir, name, "old value")
	}

	op := newOperator(t, cfg, statusMgr, console)
	require.NoError(t, op.Patch(ctx))

	for _, name := range []string{"a.ts", "b.ts", "c.ts"} {
		assert.Equal(t, "new value", readTarget(t, dir, name))
	}

	patched, unchanged, failed := statusMgr.Counts()
	assert.Equal(t, 3, patched)
	assert.Equal(t, 0, unchanged)
	assert.Equal(t, 0, failed)
}
