package model

// EventKind classifies a workflow occurrence submitted for evaluation.
type EventKind string

const (
	EventBash   EventKind = "bash"
	EventFile   EventKind = "file"
	EventStage  EventKind = "stage"
	EventCommit EventKind = "commit"

	// EventAny is valid on rules only: such rules are considered
	// for every event kind. Events themselves are always concrete.
	EventAny EventKind = "any"
)

// ParseEventKind maps a string to an EventKind. Unknown strings are
// rejected so a typo in a rule document fails at load time.
func ParseEventKind(s string) (EventKind, bool) {
	switch EventKind(s) {
	case EventBash, EventFile, EventStage, EventCommit, EventAny:
		return EventKind(s), true
	default:
		return "", false
	}
}

// RuleAction is what a fired rule does to the decision.
type RuleAction string

const (
	ActionWarn  RuleAction = "warn"
	ActionBlock RuleAction = "block"
)

// ParseRuleAction maps a string to a RuleAction.
func ParseRuleAction(s string) (RuleAction, bool) {
	switch RuleAction(s) {
	case ActionWarn, ActionBlock:
		return RuleAction(s), true
	default:
		return "", false
	}
}

// Event is one occurrence to be evaluated: a shell command about to
// run, a file about to be written, a staging attempt, or a commit.
type Event struct {
	Kind    EventKind `json:"kind"`
	Payload string    `json:"payload"`
	// Path is set for file and stage events and is tested against a
	// rule's file_pattern gate.
	Path string `json:"path,omitempty"`
}

// Match is the result of testing one rule against one event.
type Match struct {
	Hit bool `json:"hit"`
	// Text is the literal substring the pattern matched, kept for
	// diagnostics. Empty when a rule fires unconditionally.
	Text string `json:"text,omitempty"`
}

// Fired records one rule that matched an event.
type Fired struct {
	RuleID  string     `json:"rule_id"`
	Action  RuleAction `json:"action"`
	Message string     `json:"message"`
	Matched string     `json:"matched,omitempty"`
	// Path identifies which staged file triggered the rule when one
	// evaluation spans several files.
	Path string `json:"path,omitempty"`
	// Builtin marks the synthetic guard policy, which is not loaded
	// from a rule document and cannot be edited or disabled.
	Builtin bool `json:"builtin,omitempty"`
}

// Decision is the aggregate outcome of evaluating all applicable rules
// against one event. Invariant: Blocked is true iff at least one Fired
// entry has ActionBlock.
type Decision struct {
	Blocked bool    `json:"blocked"`
	Fired   []Fired `json:"fired"`
}

// Append adds a fired rule and maintains the Blocked invariant.
func (d *Decision) Append(f Fired) {
	d.Fired = append(d.Fired, f)
	if f.Action == ActionBlock {
		d.Blocked = true
	}
}

// Merge folds another decision into this one, preserving order.
func (d *Decision) Merge(other Decision) {
	for _, f := range other.Fired {
		d.Append(f)
	}
}

// Warnings returns the fired entries with ActionWarn, in order.
func (d Decision) Warnings() []Fired {
	var out []Fired
	for _, f := range d.Fired {
		if f.Action == ActionWarn {
			out = append(out, f)
		}
	}
	return out
}

// Blockers returns the fired entries with ActionBlock, in order.
func (d Decision) Blockers() []Fired {
	var out []Fired
	for _, f := range d.Fired {
		if f.Action == ActionBlock {
			out = append(out, f)
		}
	}
	return out
}

// ExitCode maps the decision onto the CLI exit contract:
// 0 allowed (warnings may have printed), 1 blocked.
func (d Decision) ExitCode() int {
	if d.Blocked {
		return 1
	}
	return 0
}
