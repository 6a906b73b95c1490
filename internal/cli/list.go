package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/railguard/railguard/internal/rule"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the loaded rule catalog",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	dir := resolveRulesDir()
	cat, loadErrs, err := rule.Load(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "railguard: %v\n", err)
		os.Exit(2)
	}

	fmt.Printf("Rules directory: %s\n", dir)
	if cat.Len() == 0 {
		fmt.Println("No rules loaded. Run 'railguard init' to scaffold starters.")
	}
	for _, r := range cat.Rules {
		status := "enabled"
		if !r.Enabled {
			status = "disabled"
		}
		fmt.Printf("  %-28s %-8s event=%-6s action=%s", r.ID, status, r.Event, r.Action)
		if r.RawPattern != "" {
			fmt.Printf(" pattern=%s", r.RawPattern)
		}
		if r.RawFilePattern != "" {
			fmt.Printf(" file_pattern=%s", r.RawFilePattern)
		}
		fmt.Println()
	}

	if len(loadErrs) > 0 {
		fmt.Println()
		fmt.Println("Documents that failed to load:")
		for _, le := range loadErrs {
			fmt.Printf("  %v\n", le)
		}
	}
	return nil
}
