package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/railguard/railguard/internal/engine"
	"github.com/railguard/railguard/internal/guard"
	"github.com/railguard/railguard/internal/model"
	"github.com/railguard/railguard/internal/rule"
)

func init() {
	rootCmd.AddCommand(hookCmd)
	hookCmd.AddCommand(hookClaudeCmd)
}

var hookCmd = &cobra.Command{
	Use:    "hook",
	Short:  "Stdin adapters invoked by installed agent hooks",
	Hidden: true,
}

// hookClaudeCmd implements the Claude Code PreToolUse protocol: the
// hook payload arrives as JSON on stdin, exit 2 blocks the tool call,
// and stderr is fed back to the model. Anything unexpected fails open;
// a guardrail must never brick the agent's shell.
var hookClaudeCmd = &cobra.Command{
	Use:  "claude",
	Args: cobra.NoArgs,
	RunE: runHookClaude,
}

// claudeHookPayload is the subset of the PreToolUse payload we read.
type claudeHookPayload struct {
	ToolName  string `json:"tool_name"`
	ToolInput struct {
		Command string `json:"command"`
	} `json:"tool_input"`
}

var gitCommitRe = regexp.MustCompile(`(?:^|[;&|]\s*|\s)git\s+commit\b`)

// commitMessageRe pulls an inline -m argument out of the command so
// commit rules can see the message before git ever runs.
var commitMessageRe = regexp.MustCompile(`-m\s+(?:"([^"]*)"|'([^']*)')`)

func runHookClaude(cmd *cobra.Command, args []string) error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil
	}
	var payload claudeHookPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil
	}
	command := payload.ToolInput.Command
	if command == "" {
		return nil
	}

	cat, loadErrs, err := rule.Load(resolveRulesDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "railguard: %v\n", err)
		return nil
	}
	for _, le := range loadErrs {
		fmt.Fprintf(os.Stderr, "warning: skipping rule document: %v\n", le)
	}

	ev := model.Event{Kind: model.EventBash, Payload: command}
	d := engine.Evaluate(cat, ev)

	if gitCommitRe.MatchString(command) {
		message := extractCommitMessage(command)
		if message == "" {
			if m, err := guard.CommitMessage(); err == nil {
				message = m
			}
		}
		paths, _ := guard.StagedPaths()
		d.Merge(guard.CheckCommit(cat, message, paths, resolveProgressPath()))
	}

	recordAudit(ev, d)
	printDecision(os.Stderr, d)
	if d.Blocked {
		os.Exit(2)
	}
	return nil
}

func extractCommitMessage(command string) string {
	m := commitMessageRe.FindStringSubmatch(command)
	if m == nil {
		return ""
	}
	if m[1] != "" {
		return m[1]
	}
	return m[2]
}
