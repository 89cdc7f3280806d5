package patch

import (
	"context"
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// LiteralReplacer implements Replacer using plain string replacement.
// Matching is exact substring equality: every non-overlapping occurrence
// of a rule's Old text is replaced leftmost-first, strings.ReplaceAll
// semantics. There is deliberately no regexp support here.
type LiteralReplacer struct{}

// NewLiteralReplacer creates a new LiteralReplacer
func NewLiteralReplacer() *LiteralReplacer {
	return &LiteralReplacer{}
}

// Replace implements Replacer.Replace
func (r *LiteralReplacer) Replace(ctx context.Context, content io.Reader, rules []Rule) (*Result, error) {
	original, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &Result{
		Original:    original,
		Patched:     original,
		RuleMatches: make([]int, len(rules)),
	}

	// Apply each rule in order. Order matters: a rule operates on text
	// already transformed by the rules before it.
	current := string(original)
	for i, rule := range rules {
		// Skip empty rules
		if rule.Old == "" {
			continue
		}

		count := strings.Count(current, rule.Old)
		if count == 0 {
			continue
		}

		current = strings.ReplaceAll(current, rule.Old, rule.New)
		result.RuleMatches[i] = count
		result.ReplacementCount += count
		result.WasModified = true
	}

	result.Patched = []byte(current)
	return result, nil
}

// ValidateRules implements Replacer.ValidateRules
func (r *LiteralReplacer) ValidateRules(rules []Rule) error {
	for i, rule := range rules {
		if rule.Old == "" {
			return errors.Errorf("rule %d: old is required", i)
		}
	}
	return nil
}

// TODO(dr.methodical): 🧪 Add benchmarks for large content
