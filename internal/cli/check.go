package cli

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/railguard/railguard/internal/engine"
	"github.com/railguard/railguard/internal/guard"
	"github.com/railguard/railguard/internal/model"
)

var (
	checkStrict  bool
	checkContent string
	checkMessage string
)

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.PersistentFlags().BoolVar(&checkStrict, "strict", false, "Exit 1 on warnings as well as blocks")

	checkCmd.AddCommand(checkBashCmd)
	checkCmd.AddCommand(checkFileCmd)
	checkCmd.AddCommand(checkStageCmd)
	checkCmd.AddCommand(checkCommitCmd)

	checkFileCmd.Flags().StringVar(&checkContent, "content", "", "File content to evaluate (default: read the file from disk)")
	checkCommitCmd.Flags().StringVarP(&checkMessage, "message", "m", "", "Commit message to evaluate (default: .git/COMMIT_EDITMSG)")
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate an event against the rule catalog",
	Long: "Evaluates one workflow event and exits 0 (allowed), 1 (blocked) or\n" +
		"2 (configuration error). Warnings print but do not fail unless\n" +
		"--strict is set.",
}

var checkBashCmd = &cobra.Command{
	Use:   "bash <command>...",
	Short: "Check a shell command before it runs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := mustLoadCatalog()
		ev := model.Event{Kind: model.EventBash, Payload: strings.Join(args, " ")}
		finish(ev, engine.Evaluate(cat, ev))
		return nil
	},
}

var checkFileCmd = &cobra.Command{
	Use:   "file <path> [content]",
	Short: "Check a file write against file rules",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := mustLoadCatalog()

		content := checkContent
		if content == "" && len(args) > 1 {
			content = args[1]
		}
		if content == "" {
			// Missing or binary files are checked by path alone.
			if data, err := os.ReadFile(args[0]); err == nil && utf8.Valid(data) {
				content = string(data)
			}
		}

		ev := model.Event{Kind: model.EventFile, Payload: content, Path: args[0]}
		finish(ev, engine.Evaluate(cat, ev))
		return nil
	},
}

var checkStageCmd = &cobra.Command{
	Use:   "stage",
	Short: "Check the currently staged files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := mustLoadCatalog()

		paths, err := guard.StagedPaths()
		if err != nil {
			fmt.Fprintf(os.Stderr, "railguard: %v\n", err)
			os.Exit(2)
		}
		staged := guard.LoadStagedFiles(guard.RepoRoot(), paths)

		ev := model.Event{Kind: model.EventStage, Payload: strings.Join(paths, "\n")}
		finish(ev, guard.CheckStage(cat, staged, resolveProgressPath()))
		return nil
	},
}

var checkCommitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Check the pending commit message and staged files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := mustLoadCatalog()

		message := checkMessage
		if message == "" {
			if m, err := guard.CommitMessage(); err == nil {
				message = m
			}
		}
		paths, _ := guard.StagedPaths()

		d := guard.CheckCommit(cat, message, paths, resolveProgressPath())
		ev := model.Event{Kind: model.EventCommit, Payload: message}

		recordAudit(ev, d)
		printDecision(os.Stdout, d)
		if len(d.Fired) > 0 {
			// The metadata block gives the author what the progress
			// record should quote.
			fmt.Print(guard.CommitMetadata().Format())
		}
		exitOnDecision(d)
		return nil
	},
}

// finish records, renders and exits per the decision. Only the allowed
// path returns to cobra.
func finish(ev model.Event, d model.Decision) {
	recordAudit(ev, d)
	printDecision(os.Stdout, d)
	exitOnDecision(d)
}

func exitOnDecision(d model.Decision) {
	code := d.ExitCode()
	if code == 0 && checkStrict && len(d.Warnings()) > 0 {
		code = 1
	}
	if code != 0 {
		os.Exit(code)
	}
}
