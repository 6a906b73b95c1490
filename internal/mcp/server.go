// Package mcp exposes the guardrail engine to host agents over the
// Model Context Protocol. The server is an external collaborator in
// engine terms: it translates tool calls into events, renders
// decisions back, and caches the catalog between calls — re-reading
// only when the rules directory changes.
package mcp

import (
	"context"
	"fmt"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/railguard/railguard/internal/audit"
	"github.com/railguard/railguard/internal/model"
	"github.com/railguard/railguard/internal/rule"
)

const serverVersion = "0.1.0"

// Config holds MCP server configuration. RulesDir and ProgressPath
// are explicit inputs, never discovered from hidden global state.
type Config struct {
	RulesDir     string
	ProgressPath string
	AuditLogPath string
}

// Server wraps the MCP SDK server around the rule engine.
type Server struct {
	mcpServer *mcpsdk.Server
	cfg       Config
	auditLog  *audit.Log

	mu       sync.RWMutex
	catalog  *rule.Catalog
	loadErrs []rule.LoadError
}

// New creates an MCP server with the catalog loaded once up front.
// Per-document load errors are tolerated (the valid subset serves);
// only an unreadable rules directory is fatal.
func New(cfg Config) (*Server, error) {
	cat, loadErrs, err := rule.Load(cfg.RulesDir)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}

	var auditLog *audit.Log
	if cfg.AuditLogPath != "" {
		auditLog, err = audit.Open(cfg.AuditLogPath)
		if err != nil {
			return nil, fmt.Errorf("open audit log: %w", err)
		}
	}

	s := &Server{
		cfg:      cfg,
		auditLog: auditLog,
		catalog:  cat,
		loadErrs: loadErrs,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "railguard",
			Version: serverVersion,
		},
		nil,
	)
	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport. Blocks until ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Close closes the audit log if configured.
func (s *Server) Close() error {
	if s.auditLog != nil {
		return s.auditLog.Close()
	}
	return nil
}

// Reload re-reads the rules directory and atomically swaps the
// catalog. Called by the file watcher on rule edits.
func (s *Server) Reload() error {
	cat, loadErrs, err := rule.Load(s.cfg.RulesDir)
	if err != nil {
		return fmt.Errorf("reload rules: %w", err)
	}
	s.mu.Lock()
	s.catalog = cat
	s.loadErrs = loadErrs
	s.mu.Unlock()
	return nil
}

func (s *Server) snapshot() (*rule.Catalog, []rule.LoadError) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog, s.loadErrs
}

func (s *Server) recordAudit(ev model.Event, d model.Decision) {
	if s.auditLog != nil {
		s.auditLog.RecordDecision(ev, d)
	}
}

// registerTools adds all railguard tools to the MCP server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "railguard_check_bash",
		Description: "Check a shell command against the project's guardrail rules before running it. A blocked result means the command must not run.",
	}, s.handleCheckBash)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "railguard_check_file",
		Description: "Check a file write (path plus new content) against the project's guardrail rules.",
	}, s.handleCheckFile)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "railguard_check_stage",
		Description: "Check the currently staged files against staging rules and the session-progress policy.",
	}, s.handleCheckStage)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "railguard_check_commit",
		Description: "Check a pending commit message and the staged files against commit rules and the session-progress policy.",
	}, s.handleCheckCommit)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "railguard_rules",
		Description: "List the loaded guardrail rules without evaluating anything.",
	}, s.handleRules)
}
