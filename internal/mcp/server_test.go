package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeRule(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	writeRule(t, dir, "block-rm.md",
		"---\nname: block-rm\nevent: bash\npattern: rm\\s+-rf\naction: block\n---\nDo not.")
	writeRule(t, dir, "warn-sudo.md",
		"---\nname: warn-sudo\nevent: bash\npattern: sudo\naction: warn\n---\nCareful.")

	s, err := New(Config{RulesDir: dir})
	if err != nil {
		t.Fatalf("server create failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, dir
}

func TestCheckBashBlockedIsToolError(t *testing.T) {
	s, _ := newTestServer(t)

	res, out, err := s.handleCheckBash(context.Background(), nil, CheckBashInput{Command: "rm -rf /"})
	if err != nil {
		t.Fatal(err)
	}
	if res == nil || !res.IsError {
		t.Error("blocked decision must surface as a tool error")
	}
	if !out.Blocked || len(out.Fired) != 1 || out.Fired[0].RuleID != "block-rm" {
		t.Errorf("unexpected output: %+v", out)
	}
}

func TestCheckBashWarningIsNotToolError(t *testing.T) {
	s, _ := newTestServer(t)

	res, out, err := s.handleCheckBash(context.Background(), nil, CheckBashInput{Command: "sudo ls"})
	if err != nil {
		t.Fatal(err)
	}
	if res != nil {
		t.Error("warn-only decision must not be a tool error")
	}
	if out.Blocked || len(out.Fired) != 1 || out.Fired[0].Action != "warn" {
		t.Errorf("unexpected output: %+v", out)
	}
}

func TestCheckFileUsesPathGate(t *testing.T) {
	s, dir := newTestServer(t)
	writeRule(t, dir, "ts-console.md",
		"---\nname: ts-console\nevent: file\nfile_pattern: \\.ts$\npattern: console\\.log\\(\naction: warn\n---\nDebug code.")
	if err := s.Reload(); err != nil {
		t.Fatal(err)
	}

	_, out, err := s.handleCheckFile(context.Background(), nil, CheckFileInput{Path: "a.py", Content: "console.log(1)"})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Fired) != 0 {
		t.Errorf("file_pattern gate should disqualify a.py, got %+v", out.Fired)
	}
}

func TestRulesListing(t *testing.T) {
	s, dir := newTestServer(t)
	writeRule(t, dir, "zz-broken.md", "---\nevent: bash\naction: warn\n---\nno pattern")
	if err := s.Reload(); err != nil {
		t.Fatal(err)
	}

	_, out, err := s.handleRules(context.Background(), nil, RulesInput{})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Rules) != 2 {
		t.Errorf("rules = %d, want 2 valid", len(out.Rules))
	}
	if len(out.LoadErrors) != 1 {
		t.Errorf("load errors = %d, want 1", len(out.LoadErrors))
	}
}

func TestReloadSwapsCatalog(t *testing.T) {
	s, dir := newTestServer(t)

	// Command passes before the new rule lands.
	_, out, _ := s.handleCheckBash(context.Background(), nil, CheckBashInput{Command: "git push --force"})
	if len(out.Fired) != 0 {
		t.Fatalf("unexpected fire before reload: %+v", out.Fired)
	}

	writeRule(t, dir, "block-force.md",
		"---\nname: block-force\nevent: bash\npattern: --force\naction: block\n---\nNo force push.")
	if err := s.Reload(); err != nil {
		t.Fatal(err)
	}

	_, out, _ = s.handleCheckBash(context.Background(), nil, CheckBashInput{Command: "git push --force"})
	if !out.Blocked {
		t.Error("reloaded catalog must pick up the new rule")
	}
}

func TestNewMissingRulesDirIsEmptyCatalog(t *testing.T) {
	s, err := New(Config{RulesDir: filepath.Join(t.TempDir(), "absent")})
	if err != nil {
		t.Fatalf("missing rules dir must not fail server creation: %v", err)
	}
	defer s.Close()

	_, out, _ := s.handleCheckBash(context.Background(), nil, CheckBashInput{Command: "rm -rf /"})
	if out.Blocked || len(out.Fired) != 0 {
		t.Errorf("empty catalog must allow everything, got %+v", out)
	}
}
