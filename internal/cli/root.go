// Package cli wires the guardrail engine into the railguard command
// tree. Commands resolve the workspace, load the catalog, evaluate,
// and map the decision onto the exit contract: 0 allowed, 1 blocked,
// 2 configuration error.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/railguard/railguard/internal/audit"
	"github.com/railguard/railguard/internal/model"
	"github.com/railguard/railguard/internal/rule"
	"github.com/railguard/railguard/internal/workspace"
)

var (
	flagRules    string
	flagProgress string
	flagAudit    string
)

var rootCmd = &cobra.Command{
	Use:   "railguard",
	Short: "Declarative guardrails for development workflows",
	Long: "Matches shell commands, file writes, staging and commits against\n" +
		"rule documents in .railguard/rules/ and answers allow, warn or block.\n" +
		"Enforcement lives in the caller: railguard only decides.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRules, "rules", "", "Rules directory (default: .railguard/rules in the nearest workspace)")
	rootCmd.PersistentFlags().StringVar(&flagProgress, "progress", "", "Session-progress file path (default: .railguard/progress.md)")
	rootCmd.PersistentFlags().StringVar(&flagAudit, "audit", "", "Append decisions to a hash-chained audit log at this path")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(2)
	}
}

// resolveRulesDir honors --rules, then the nearest workspace, then the
// conventional relative path. A nonexistent directory loads as an
// empty catalog, so the fallback never turns into an error.
func resolveRulesDir() string {
	if flagRules != "" {
		return flagRules
	}
	cwd, err := os.Getwd()
	if err != nil {
		return filepath.Join(workspace.DirName, workspace.RulesDirName)
	}
	if ws, ok := workspace.Resolve(cwd); ok {
		return ws.RulesDir()
	}
	return filepath.Join(workspace.DirName, workspace.RulesDirName)
}

// resolveProgressPath returns the progress-file path the staging and
// commit guards look for, or "" when no workspace is configured. An
// empty path disables the progress policy: no workspace, no opinion.
func resolveProgressPath() string {
	if flagProgress != "" {
		return flagProgress
	}
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	if ws, ok := workspace.Resolve(cwd); ok {
		return ws.ProgressPath()
	}
	return ""
}

// mustLoadCatalog loads the rules directory or exits 2. Per-document
// parse errors are reported to stderr and the valid subset serves.
func mustLoadCatalog() *rule.Catalog {
	cat, loadErrs, err := rule.Load(resolveRulesDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "railguard: %v\n", err)
		os.Exit(2)
	}
	for _, le := range loadErrs {
		fmt.Fprintf(os.Stderr, "warning: skipping rule document: %v\n", le)
	}
	return cat
}

// recordAudit appends the decision to the audit log when --audit is
// set. Audit failures never change the decision; they go to stderr.
func recordAudit(ev model.Event, d model.Decision) {
	if flagAudit == "" {
		return
	}
	log, err := audit.Open(flagAudit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log: %v\n", err)
		return
	}
	defer log.Close()
	if err := log.RecordDecision(ev, d); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log: %v\n", err)
	}
}
