// Package engine evaluates events against a loaded rule catalog.
// Matching and evaluation are pure: no I/O, no retries, no state held
// across calls. The catalog may be reused for several events within
// one invocation; re-loading it is always safe.
package engine

import (
	"github.com/railguard/railguard/internal/model"
	"github.com/railguard/railguard/internal/rule"
)

// MatchRule tests one rule against one event.
//
// The rule applies only when its event kind equals the event's (or is
// "any"). When a file_pattern is set and the event carries a path, a
// non-matching path disqualifies the rule outright — its payload
// pattern is never consulted. A rule without a payload pattern fires
// unconditionally once those gates pass.
func MatchRule(r *rule.Rule, ev model.Event) model.Match {
	if r.Event != model.EventAny && r.Event != ev.Kind {
		return model.Match{}
	}

	if r.FilePattern != nil && ev.Path != "" {
		if !r.FilePattern.MatchString(ev.Path) {
			return model.Match{}
		}
	}

	if r.Pattern == nil {
		return model.Match{Hit: true}
	}

	// Search, not full match: the rule fires if the pattern occurs
	// anywhere in the payload. Case folding is up to the pattern.
	loc := r.Pattern.FindStringIndex(ev.Payload)
	if loc == nil {
		return model.Match{}
	}
	return model.Match{Hit: true, Text: ev.Payload[loc[0]:loc[1]]}
}

// Evaluate runs every enabled rule in catalog order against the event
// and aggregates the hits into one decision. It never short-circuits
// on a block: a blocking rule must not hide unrelated warnings.
func Evaluate(cat *rule.Catalog, ev model.Event) model.Decision {
	var d model.Decision
	if cat == nil {
		return d
	}
	for _, r := range cat.Rules {
		if !r.Enabled {
			continue
		}
		m := MatchRule(r, ev)
		if !m.Hit {
			continue
		}
		d.Append(model.Fired{
			RuleID:  r.ID,
			Action:  r.Action,
			Message: r.Message,
			Matched: m.Text,
			Path:    ev.Path,
		})
	}
	return d
}
