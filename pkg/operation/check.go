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

package operation

import (
	"bytes"
	"context"

	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/log"
)

// 🔍 CheckOptions controls the dry run
type CheckOptions struct {
	// Diff renders a character diff for files that would change
	Diff bool
}

// 🔍 Check reports what Patch would do without writing anything.
// Unlike Patch it does not stop at the first failed target, so the
// report always covers every configured file.
func (o *operator) Check(ctx context.Context, opts CheckOptions) ([]log.CheckResult, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Int("targets", len(o.config.Targets)).Bool("diff", opts.Diff).Msg("starting dry run")

	results := make([]log.CheckResult, 0, len(o.config.Targets))
	for _, t := range o.config.Targets {
		results = append(results, o.checkTarget(ctx, t, opts))
	}
	return results, nil
}

// 📄 checkTarget dry-runs a single file
func (o *operator) checkTarget(ctx context.Context, t config.Target, opts CheckOptions) log.CheckResult {
	rs, err := o.rulesFor(t)
	if err != nil {
		return log.CheckResult{Path: t.Path, Outcome: log.CheckFailed, Error: err}
	}

	content, err := o.status.ReadFile(ctx, t.Path)
	if err != nil {
		return log.CheckResult{Path: t.Path, Outcome: log.CheckFailed, Error: err}
	}

	res, err := o.replacer.Replace(ctx, bytes.NewReader(content), rs.rules)
	if err != nil {
		return log.CheckResult{Path: t.Path, Outcome: log.CheckFailed, Error: err}
	}

	if !res.WasModified || bytes.Equal(res.Original, res.Patched) {
		return log.CheckResult{Path: t.Path, Outcome: log.CheckUnchanged}
	}

	out := log.CheckResult{
		Path:         t.Path,
		Outcome:      log.CheckWouldPatch,
		Replacements: res.ReplacementCount,
	}
	if opts.Diff {
		out.Diff = renderDiff(res.Original, res.Patched)
	}
	return out
}

// 🎨 renderDiff renders a character diff between current and patched content
func renderDiff(original, patched []byte) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(original), string(patched), false)
	return dmp.DiffPrettyText(diffs)
}
