package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/railguard/railguard/internal/guard"
	"github.com/railguard/railguard/internal/hooks"
)

var hooksAgent string

func init() {
	rootCmd.AddCommand(hooksCmd)
	hooksCmd.AddCommand(hooksInstallCmd)
	hooksInstallCmd.Flags().StringVar(&hooksAgent, "agent", "claude", "Host agent to configure (claude|cursor)")
}

var hooksCmd = &cobra.Command{
	Use:   "hooks",
	Short: "Manage agent hook integration",
}

var hooksInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install project-local hooks that route agent events through railguard",
	Args:  cobra.NoArgs,
	RunE:  runHooksInstall,
}

func runHooksInstall(cmd *cobra.Command, args []string) error {
	agent, ok := hooks.ParseAgent(hooksAgent)
	if !ok {
		return fmt.Errorf("unknown agent %q: use claude or cursor", hooksAgent)
	}

	projectDir := guard.RepoRoot()
	if projectDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolve working directory: %w", err)
		}
		projectDir = cwd
	}

	path, changed, err := hooks.Install(agent, projectDir)
	if err != nil {
		return err
	}
	if changed {
		fmt.Printf("Installed %s hooks at %s\n", agent, path)
	} else {
		fmt.Printf("Hooks already installed at %s\n", path)
	}
	return nil
}
