// Package guard layers the built-in staging/commit policy on top of
// the generic rule engine. The policy — the session-progress record
// must be part of the change set — is expressed as a synthetic rule so
// it aggregates through the same Decision model as user rules.
package guard

import (
	"path/filepath"
	"strings"

	"github.com/railguard/railguard/internal/engine"
	"github.com/railguard/railguard/internal/model"
	"github.com/railguard/railguard/internal/rule"
)

// BuiltinRuleID identifies the synthetic progress-staged policy in
// fired output. It is not loaded from a document and cannot be edited.
const BuiltinRuleID = "builtin/progress-staged"

const builtinMessage = "**Progress file not staged**\n\n" +
	"Update the session-progress record and stage it with this change\n" +
	"set so the next session can pick up where this one left off."

// codeExtensions gates the staging-time progress reminder: staging
// only docs or config should not nag about session notes.
var codeExtensions = map[string]bool{
	".py": true, ".js": true, ".jsx": true, ".ts": true, ".tsx": true,
	".go": true, ".rs": true, ".java": true, ".rb": true,
}

// StagedFile is one file in the change set under evaluation.
type StagedFile struct {
	Path    string
	Content string
}

// CheckStage evaluates every staged file against the user catalog and
// appends the built-in progress policy.
//
// Each file is checked twice: as a stage event (patternless stage
// rules fire per file) and against file-event rules — staging is the
// last gate before content lands in a commit, so file rules apply
// there too. "any" rules are only run on the stage pass to avoid
// double fires.
func CheckStage(cat *rule.Catalog, staged []StagedFile, progressPath string) model.Decision {
	var d model.Decision

	fileOnly := fileRulesOnly(cat)
	for _, f := range staged {
		ev := model.Event{Kind: model.EventStage, Path: f.Path, Payload: f.Content}
		d.Merge(engine.Evaluate(cat, ev))

		ev.Kind = model.EventFile
		d.Merge(engine.Evaluate(fileOnly, ev))
	}

	if progressPath != "" && stagesCode(staged) && !containsProgress(pathsOf(staged), progressPath) {
		d.Append(builtinFired())
	}
	return d
}

// CheckCommit evaluates the pending commit message against the user
// catalog and appends the built-in progress policy. Unlike staging,
// the commit check does not gate on file types: every commit is
// expected to carry the progress record.
//
// An empty progressPath means no workspace was resolved; the built-in
// policy degrades to no opinion rather than failing the evaluation.
func CheckCommit(cat *rule.Catalog, message string, stagedPaths []string, progressPath string) model.Decision {
	d := engine.Evaluate(cat, model.Event{Kind: model.EventCommit, Payload: message})

	if progressPath != "" && !containsProgress(stagedPaths, progressPath) {
		d.Append(builtinFired())
	}
	return d
}

func builtinFired() model.Fired {
	return model.Fired{
		RuleID:  BuiltinRuleID,
		Action:  model.ActionWarn,
		Message: builtinMessage,
		Builtin: true,
	}
}

func fileRulesOnly(cat *rule.Catalog) *rule.Catalog {
	if cat == nil {
		return nil
	}
	out := &rule.Catalog{}
	for _, r := range cat.Rules {
		if r.Event == model.EventFile {
			out.Rules = append(out.Rules, r)
		}
	}
	return out
}

func stagesCode(staged []StagedFile) bool {
	for _, f := range staged {
		if codeExtensions[strings.ToLower(filepath.Ext(f.Path))] {
			return true
		}
	}
	return false
}

func pathsOf(staged []StagedFile) []string {
	out := make([]string, len(staged))
	for i, f := range staged {
		out[i] = f.Path
	}
	return out
}

// containsProgress reports whether the progress record is in the
// change set. Staged paths come from git relative to the repository
// root; the progress path may be absolute or relative, so compare on
// cleaned slash-separated suffixes.
func containsProgress(paths []string, progressPath string) bool {
	want := filepath.ToSlash(filepath.Clean(progressPath))
	for _, p := range paths {
		got := filepath.ToSlash(filepath.Clean(p))
		if got == want || strings.HasSuffix(want, "/"+got) || strings.HasSuffix(got, "/"+want) {
			return true
		}
	}
	return false
}
