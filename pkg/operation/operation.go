// Package operation provides core functionality for patching and checking files
package operation

import (
	"context"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/patch"
	"github.com/walteh/patchrc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operator defines the main interface for patchrc operations
type Operator interface {
	// Patch applies the configured rules to every target and writes the results
	Patch(ctx context.Context) error
	// Check is a read-only operation reporting what Patch would do
	Check(ctx context.Context, opts CheckOptions) ([]log.CheckResult, error)
}

// 🔧 Options contains configuration for the operator
type Options struct {
	// Config is the patchrc configuration
	Config *config.Config
	// StatusMgr manages file I/O and outcome tracking
	StatusMgr *status.Manager
	// Console is the user-facing logger
	Console *log.Logger
	// Verbose enables per-file console lines during Patch
	Verbose bool
}

// 🏭 New creates a new operator with the given options
func New(opts Options) (Operator, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.StatusMgr == nil {
		return nil, errors.Errorf("status manager is required")
	}
	if opts.Console == nil {
		return nil, errors.Errorf("console logger is required")
	}
	return &operator{
		config:   opts.Config,
		status:   opts.StatusMgr,
		console:  opts.Console,
		verbose:  opts.Verbose,
		replacer: patch.NewLiteralReplacer(),
	}, nil
}

// 🎮 operator implements the Operator interface
type operator struct {
	config   *config.Config
	status   *status.Manager
	console  *log.Logger
	verbose  bool
	replacer patch.Replacer
}

// ruleSet is the resolved ruleset for one target
type ruleSet struct {
	rules []patch.Rule
	// sharedIdx maps each rule back to its index in Config.Replacements,
	// -1 for target-local rules
	sharedIdx []int
}

// 🔍 rulesFor resolves the rules that apply to a target. Shared rules run
// first in config order, then the target's own rules.
func (o *operator) rulesFor(t config.Target) (ruleSet, error) {
	var rs ruleSet

	for i, r := range o.config.Replacements {
		applies, err := matchesTarget(r, t.Path)
		if err != nil {
			return ruleSet{}, err
		}
		if !applies {
			continue
		}
		rs.rules = append(rs.rules, patch.Rule{Old: r.Old, New: r.New})
		rs.sharedIdx = append(rs.sharedIdx, i)
	}

	for _, r := range t.Replacements {
		applies, err := matchesTarget(r, t.Path)
		if err != nil {
			return ruleSet{}, err
		}
		if !applies {
			continue
		}
		rs.rules = append(rs.rules, patch.Rule{Old: r.Old, New: r.New})
		rs.sharedIdx = append(rs.sharedIdx, -1)
	}

	return rs, nil
}

// 🔍 matchesTarget checks whether a rule's file glob admits the target path
func matchesTarget(r config.Replacement, path string) (bool, error) {
	if r.File == nil {
		return true, nil
	}
	matched, err := doublestar.Match(*r.File, path)
	if err != nil {
		return false, errors.Errorf("matching file glob %q: %w", *r.File, err)
	}
	return matched, nil
}
