package cli

import (
	"fmt"
	"io"

	"github.com/railguard/railguard/internal/model"
)

// printDecision renders fired rules in evaluation order. Blocking
// entries are marked distinctly so a human scanning hook output can
// tell a reminder from a refusal. An empty decision prints nothing.
func printDecision(w io.Writer, d model.Decision) {
	for _, f := range d.Fired {
		marker := "warn"
		if f.Action == model.ActionBlock {
			marker = "BLOCK"
		}
		fmt.Fprintf(w, "[%s] %s", marker, f.RuleID)
		if f.Path != "" {
			fmt.Fprintf(w, " (%s)", f.Path)
		}
		fmt.Fprintln(w)
		if f.Message != "" {
			fmt.Fprintf(w, "  %s\n", f.Message)
		}
		if f.Matched != "" {
			fmt.Fprintf(w, "  matched: %q\n", f.Matched)
		}
	}
	if d.Blocked {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Blocked. Resolve the rules above or adjust .railguard/rules/.")
	}
}
