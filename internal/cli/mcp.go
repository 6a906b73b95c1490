package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	railmcp "github.com/railguard/railguard/internal/mcp"
)

func init() {
	rootCmd.AddCommand(mcpCmd)
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP tool server for agent integration",
	Long: "Runs railguard as an MCP (Model Context Protocol) server over stdio.\n" +
		"Exposes the check tools plus rule listing, and hot-reloads the\n" +
		"catalog when rule documents change.",
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg := railmcp.Config{
		RulesDir:     resolveRulesDir(),
		ProgressPath: resolveProgressPath(),
		AuditLogPath: flagAudit,
	}

	srv, err := railmcp.New(cfg)
	if err != nil {
		return fmt.Errorf("create MCP server: %w", err)
	}
	defer srv.Close()

	reloader, err := railmcp.NewReloader(srv)
	if err != nil {
		return fmt.Errorf("create rules watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down MCP server...")
		cancel()
	}()

	go func() {
		if err := reloader.Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "rules watcher stopped: %v\n", err)
		}
	}()

	fmt.Fprintln(os.Stderr, "railguard MCP server running on stdio")
	fmt.Fprintf(os.Stderr, "Rules: %s\n", cfg.RulesDir)
	return srv.Run(ctx)
}
