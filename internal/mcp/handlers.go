package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/railguard/railguard/internal/engine"
	"github.com/railguard/railguard/internal/guard"
	"github.com/railguard/railguard/internal/model"
)

// --- Input/Output types ---

// CheckBashInput defines parameters for the railguard_check_bash tool.
type CheckBashInput struct {
	Command string `json:"command" jsonschema:"the shell command about to run"`
}

// CheckFileInput defines parameters for the railguard_check_file tool.
type CheckFileInput struct {
	Path    string `json:"path" jsonschema:"path of the file being written"`
	Content string `json:"content" jsonschema:"new file content"`
}

// CheckStageInput is empty: staged paths come from the repository.
type CheckStageInput struct{}

// CheckCommitInput defines parameters for railguard_check_commit.
type CheckCommitInput struct {
	Message string `json:"message,omitempty" jsonschema:"pending commit message; read from the repository when omitted"`
}

// FiredItem is one fired rule in a decision output.
type FiredItem struct {
	RuleID  string `json:"rule_id"`
	Action  string `json:"action"`
	Message string `json:"message"`
	Matched string `json:"matched,omitempty"`
	Path    string `json:"path,omitempty"`
	Builtin bool   `json:"builtin,omitempty"`
}

// DecisionOutput renders a decision for the calling agent.
type DecisionOutput struct {
	Blocked bool        `json:"blocked"`
	Fired   []FiredItem `json:"fired"`
}

// RulesInput is empty — no parameters needed.
type RulesInput struct{}

// RuleItem describes one catalog entry for the rules listing.
type RuleItem struct {
	ID          string `json:"id"`
	Event       string `json:"event"`
	Action      string `json:"action"`
	Enabled     bool   `json:"enabled"`
	Pattern     string `json:"pattern,omitempty"`
	FilePattern string `json:"file_pattern,omitempty"`
}

// RulesOutput lists the catalog plus any documents that failed to load.
type RulesOutput struct {
	Rules      []RuleItem `json:"rules"`
	LoadErrors []string   `json:"load_errors,omitempty"`
}

// --- Handlers ---

func (s *Server) handleCheckBash(ctx context.Context, req *mcpsdk.CallToolRequest, input CheckBashInput) (*mcpsdk.CallToolResult, DecisionOutput, error) {
	cat, _ := s.snapshot()
	ev := model.Event{Kind: model.EventBash, Payload: input.Command}
	d := engine.Evaluate(cat, ev)
	s.recordAudit(ev, d)
	return decisionResult(d)
}

func (s *Server) handleCheckFile(ctx context.Context, req *mcpsdk.CallToolRequest, input CheckFileInput) (*mcpsdk.CallToolResult, DecisionOutput, error) {
	cat, _ := s.snapshot()
	ev := model.Event{Kind: model.EventFile, Path: input.Path, Payload: input.Content}
	d := engine.Evaluate(cat, ev)
	s.recordAudit(ev, d)
	return decisionResult(d)
}

func (s *Server) handleCheckStage(ctx context.Context, req *mcpsdk.CallToolRequest, input CheckStageInput) (*mcpsdk.CallToolResult, DecisionOutput, error) {
	cat, _ := s.snapshot()

	// Outside a repository the guard has no opinion.
	paths, _ := guard.StagedPaths()
	staged := guard.LoadStagedFiles(guard.RepoRoot(), paths)

	d := guard.CheckStage(cat, staged, s.cfg.ProgressPath)
	s.recordAudit(model.Event{Kind: model.EventStage}, d)
	return decisionResult(d)
}

func (s *Server) handleCheckCommit(ctx context.Context, req *mcpsdk.CallToolRequest, input CheckCommitInput) (*mcpsdk.CallToolResult, DecisionOutput, error) {
	cat, _ := s.snapshot()

	message := input.Message
	if message == "" {
		message, _ = guard.CommitMessage()
	}
	paths, _ := guard.StagedPaths()

	d := guard.CheckCommit(cat, message, paths, s.cfg.ProgressPath)
	s.recordAudit(model.Event{Kind: model.EventCommit, Payload: message}, d)
	return decisionResult(d)
}

func (s *Server) handleRules(ctx context.Context, req *mcpsdk.CallToolRequest, input RulesInput) (*mcpsdk.CallToolResult, RulesOutput, error) {
	cat, loadErrs := s.snapshot()

	out := RulesOutput{Rules: []RuleItem{}}
	for _, r := range cat.Rules {
		out.Rules = append(out.Rules, RuleItem{
			ID:          r.ID,
			Event:       string(r.Event),
			Action:      string(r.Action),
			Enabled:     r.Enabled,
			Pattern:     r.RawPattern,
			FilePattern: r.RawFilePattern,
		})
	}
	for _, e := range loadErrs {
		out.LoadErrors = append(out.LoadErrors, e.Error())
	}
	return nil, out, nil
}

// decisionResult renders a decision; blocked decisions are surfaced as
// tool errors so the host agent treats them as a refusal.
func decisionResult(d model.Decision) (*mcpsdk.CallToolResult, DecisionOutput, error) {
	out := DecisionOutput{Blocked: d.Blocked, Fired: []FiredItem{}}
	for _, f := range d.Fired {
		out.Fired = append(out.Fired, FiredItem{
			RuleID:  f.RuleID,
			Action:  string(f.Action),
			Message: f.Message,
			Matched: f.Matched,
			Path:    f.Path,
			Builtin: f.Builtin,
		})
	}
	if d.Blocked {
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}
	return nil, out, nil
}
