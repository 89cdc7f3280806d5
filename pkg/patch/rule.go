package patch

import (
	"context"
	"io"
)

// Rule defines a single literal replacement operation
type Rule struct {
	// Old is the exact text to replace (no pattern syntax)
	Old string

	// New is the replacement text
	New string
}

// Result contains the results of applying a sequence of rules
type Result struct {
	// WasModified indicates if any replacements were made
	WasModified bool

	// ReplacementCount is the total number of replacements made
	ReplacementCount int

	// RuleMatches holds the number of occurrences each rule replaced,
	// indexed by rule position. Counts are taken against the document as
	// it stood when the rule ran, so later rules see earlier rules' output.
	RuleMatches []int

	// Original is the content before replacements
	Original []byte

	// Patched is the content after replacements
	Patched []byte
}

// Replacer defines the interface for literal replacement engines
type Replacer interface {
	// Replace applies the rules to the content, in order, one forward
	// pass per rule. Rules are never reapplied to their own output.
	Replace(ctx context.Context, content io.Reader, rules []Rule) (*Result, error)

	// ValidateRules checks that all rules are valid
	ValidateRules(rules []Rule) error
}
