// Package rule loads the guardrail catalog from a directory of
// declarative rule documents: markdown files with a YAML frontmatter
// header and a free-text body used as the rule's message.
package rule

import (
	"fmt"
	"regexp"

	"github.com/railguard/railguard/internal/model"
)

// Rule is one named, declarative policy unit.
//
// A file_pattern on a rule whose event is not file or stage is
// accepted and has no effect: events of other kinds carry no path, so
// the gate never engages. This mirrors how rules behaved historically
// and keeps documents portable between event kinds.
type Rule struct {
	ID      string
	Enabled bool
	Event   model.EventKind
	Action  model.RuleAction
	Message string

	// Pattern is tested against the event payload with regexp search.
	// Required for bash, file and commit rules; a stage or any rule
	// without a pattern fires unconditionally once its gates pass.
	Pattern *regexp.Regexp
	// FilePattern restricts file/stage rules to matching paths.
	FilePattern *regexp.Regexp

	// Raw pattern sources and origin document, kept for list output.
	RawPattern     string
	RawFilePattern string
	Source         string
}

// PatternRequired reports whether the event kind demands a pattern.
func PatternRequired(kind model.EventKind) bool {
	switch kind {
	case model.EventBash, model.EventFile, model.EventCommit:
		return true
	default:
		return false
	}
}

// Validate checks the invariants a parsed rule must hold. Regex
// compilation happens in the parser; this covers the cross-field ones.
func (r *Rule) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("rule has no id")
	}
	if PatternRequired(r.Event) && r.Pattern == nil {
		return fmt.Errorf("event %q requires a pattern", r.Event)
	}
	return nil
}
