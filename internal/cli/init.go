package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/railguard/railguard/internal/guard"
	"github.com/railguard/railguard/internal/rule"
	"github.com/railguard/railguard/internal/workspace"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold a .railguard workspace with starter rules",
	Long: "Creates .railguard/rules/ with starter rule documents and a\n" +
		"progress.md template. Existing files are never overwritten; edit\n" +
		"or delete starters freely.",
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	// Anchor at the repository root when inside one, so hooks and
	// checks run from subdirectories find the same workspace.
	root := guard.RepoRoot()
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolve working directory: %w", err)
		}
		root = cwd
	}

	created, err := workspace.Init(root, rule.StarterDocs)
	if err != nil {
		return err
	}

	if len(created) == 0 {
		fmt.Println("Workspace already initialized; nothing to do.")
		return nil
	}
	fmt.Println("railguard init complete.")
	fmt.Println()
	fmt.Println("Created:")
	for _, path := range created {
		fmt.Printf("  %s\n", path)
	}
	fmt.Println()
	fmt.Println("Next:")
	fmt.Println("  railguard list              # review the starter rules")
	fmt.Println("  railguard hooks install --agent claude")
	return nil
}
