package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/railguard/railguard/internal/audit"
)

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditVerifyCmd)
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the decision audit log",
}

var auditVerifyCmd = &cobra.Command{
	Use:   "verify <log-file>",
	Short: "Verify the audit log's hash chain",
	Long: "Recomputes the sha256 chain over every entry. A broken link means\n" +
		"the log was edited after the fact. Exit 0 when intact, 1 when not.",
	Args: cobra.ExactArgs(1),
	RunE: runAuditVerify,
}

func runAuditVerify(cmd *cobra.Command, args []string) error {
	res := audit.Verify(args[0])

	out, _ := json.MarshalIndent(res, "", "  ")
	fmt.Println(string(out))

	if !res.Valid {
		os.Exit(1)
	}
	return nil
}
