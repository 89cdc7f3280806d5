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
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/patch"
	"github.com/walteh/patchrc/pkg/status"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🏃 Patch applies the configured rules to every target
func (o *operator) Patch(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	flags := o.config.FlagsOrDefault()
	targets := o.config.Targets

	logger.Debug().
		Int("targets", len(targets)).
		Bool("async", flags.Async).
		Bool("strict", flags.Strict).
		Msg("starting patch run")

	// Start tracking progress
	o.status.StartOperation(ctx, len(targets))
	defer o.status.FinishOperation(ctx)

	// Matched counts per shared rule, for strict mode
	sharedMatched := make([]int, len(o.config.Replacements))
	var localMisses []string
	var mu sync.Mutex
	var processed int32

	patchOne := func(ctx context.Context, t config.Target) error {
		res, rs, err := o.patchTarget(ctx, t)
		o.status.UpdateProgress(ctx, int(atomic.AddInt32(&processed, 1)))
		if err != nil {
			return err
		}

		mu.Lock()
		defer mu.Unlock()
		for i, idx := range rs.sharedIdx {
			if idx >= 0 {
				sharedMatched[idx] += res.RuleMatches[i]
			} else if res.RuleMatches[i] == 0 {
				localMisses = append(localMisses, fmt.Sprintf("%q (target %s)", rs.rules[i].Old, t.Path))
			}
		}
		return nil
	}

	if flags.Async && len(targets) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		for _, t := range targets {
			t := t // per-iteration copy; required while go.mod declares go < 1.22
			g.Go(func() error {
				return patchOne(gctx, t)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	} else {
		for _, t := range targets {
			if err := patchOne(ctx, t); err != nil {
				return err
			}
		}
	}

	if flags.Strict {
		var misses []string
		for i, count := range sharedMatched {
			if count == 0 {
				misses = append(misses, fmt.Sprintf("%q", o.config.Replacements[i].Old))
			}
		}
		misses = append(misses, localMisses...)
		if len(misses) > 0 {
			return errors.Errorf("strict mode: %d rule(s) matched nothing: %s", len(misses), strings.Join(misses, ", "))
		}
	}

	return nil
}

// 📄 patchTarget patches a single file
func (o *operator) patchTarget(ctx context.Context, t config.Target) (*patch.Result, ruleSet, error) {
	flags := o.config.FlagsOrDefault()

	rs, err := o.rulesFor(t)
	if err != nil {
		return nil, rs, err
	}

	// Read before any write. A target that cannot be read is never
	// created or truncated.
	content, err := o.status.ReadFile(ctx, t.Path)
	if err != nil {
		o.trackFailure(ctx, t.Path, err)
		return nil, rs, errors.Errorf("reading target %s: %w", t.Path, err)
	}

	res, err := o.replacer.Replace(ctx, bytes.NewReader(content), rs.rules)
	if err != nil {
		o.trackFailure(ctx, t.Path, err)
		return nil, rs, errors.Errorf("applying rules to %s: %w", t.Path, err)
	}

	// Nothing matched, or the rules produced identical bytes. Skip the
	// write so the target keeps its original mtime.
	if !res.WasModified || bytes.Equal(res.Original, res.Patched) {
		o.track(ctx, t.Path, status.StatusUnchanged, res)
		return res, rs, nil
	}

	if flags.Backup {
		if err := o.status.BackupFile(ctx, t.Path); err != nil {
			o.trackFailure(ctx, t.Path, err)
			return nil, rs, errors.Errorf("backing up %s: %w", t.Path, err)
		}
	}

	write := o.status.WriteFile
	if flags.Atomic {
		write = o.status.WriteFileAtomic
	}
	if err := write(ctx, t.Path, res.Patched); err != nil {
		o.trackFailure(ctx, t.Path, err)
		return nil, rs, errors.Errorf("writing target %s: %w", t.Path, err)
	}

	o.track(ctx, t.Path, status.StatusPatched, res)
	return res, rs, nil
}

// 📊 track records the outcome and mirrors it to the console in verbose mode
func (o *operator) track(ctx context.Context, path string, st status.FileStatus, res *patch.Result) {
	o.status.TrackFile(ctx, path, status.FileInfo{
		Path:         path,
		Status:       st,
		Size:         int64(len(res.Patched)),
		Checksum:     status.Checksum(res.Patched),
		Replacements: res.ReplacementCount,
	})

	if o.verbose {
		o.console.LogFileOperation(ctx, log.FileOperation{
			Path:         path,
			Status:       st.String(),
			IsPatched:    st == status.StatusPatched,
			Replacements: res.ReplacementCount,
		})
	}
}

// 📊 trackFailure records a failed target
func (o *operator) trackFailure(ctx context.Context, path string, err error) {
	o.status.TrackFile(ctx, path, status.FileInfo{
		Path:   path,
		Status: status.StatusFailed,
		Error:  err,
	})

	if o.verbose {
		o.console.LogFileOperation(ctx, log.FileOperation{
			Path:     path,
			Status:   status.StatusFailed.String(),
			IsFailed: true,
		})
	}
}
