package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/railguard/railguard/internal/guard"
)

var (
	addAll       bool
	addCheckOnly bool
	addForce     bool
)

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().BoolVarP(&addAll, "all", "A", false, "Stage all modified and untracked files")
	addCmd.Flags().BoolVarP(&addCheckOnly, "check-only", "c", false, "Evaluate without staging anything")
	addCmd.Flags().BoolVarP(&addForce, "force", "f", false, "Stage even when a rule blocks")
}

var addCmd = &cobra.Command{
	Use:   "add [files]...",
	Short: "Check files against staging rules, then git add them",
	Long: "Evaluates the named files (or every changed file with -A) against\n" +
		"stage and file rules before handing them to git add. A block stops\n" +
		"staging unless --force is set.",
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	if !addAll && len(args) == 0 {
		return fmt.Errorf("nothing to stage: name files or pass -A")
	}

	cat := mustLoadCatalog()

	paths := args
	if addAll {
		all, err := guard.ChangedPaths()
		if err != nil {
			fmt.Fprintf(os.Stderr, "railguard: %v\n", err)
			os.Exit(2)
		}
		paths = all
	}
	staged := guard.LoadStagedFiles("", paths)

	d := guard.CheckStage(cat, staged, resolveProgressPath())
	printDecision(os.Stdout, d)

	if d.Blocked && !addForce {
		os.Exit(1)
	}
	if addCheckOnly {
		fmt.Println("Check only; nothing staged.")
		for _, p := range paths {
			fmt.Printf("  would stage: %s\n", p)
		}
		return nil
	}

	gitArgs := args
	if addAll {
		gitArgs = []string{"-A"}
	}
	if err := guard.Add(gitArgs); err != nil {
		return fmt.Errorf("git add: %w", err)
	}
	fmt.Printf("Staged %d path(s).\n", len(paths))
	return nil
}
