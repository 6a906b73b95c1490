package audit

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/railguard/railguard/internal/model"
)

func decision(blocked bool, ids ...string) model.Decision {
	var d model.Decision
	for _, id := range ids {
		action := model.ActionWarn
		if blocked {
			action = model.ActionBlock
		}
		d.Append(model.Fired{RuleID: id, Action: action})
	}
	return d
}

func TestRecordAndVerifyChain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decisions.jsonl")
	log, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}

	events := []model.Event{
		{Kind: model.EventBash, Payload: "rm -rf /tmp"},
		{Kind: model.EventFile, Path: "a.ts", Payload: "console.log(1)"},
		{Kind: model.EventCommit, Payload: "fix: bug"},
	}
	for i, ev := range events {
		if err := log.RecordDecision(ev, decision(i == 0, "r1")); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}
	if err := log.Close(); err != nil {
		t.Fatal(err)
	}

	res := Verify(path)
	if !res.Valid {
		t.Fatalf("chain invalid: %s (line %d)", res.Error, res.ErrorLine)
	}
	if res.Lines != 3 {
		t.Errorf("verified %d lines, want 3", res.Lines)
	}
}

func TestReopenContinuesChain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decisions.jsonl")

	log, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := log.RecordDecision(model.Event{Kind: model.EventBash, Payload: "ls"}, model.Decision{}); err != nil {
		t.Fatal(err)
	}
	log.Close()

	log, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := log.RecordDecision(model.Event{Kind: model.EventBash, Payload: "pwd"}, model.Decision{}); err != nil {
		t.Fatal(err)
	}
	log.Close()

	res := Verify(path)
	if !res.Valid || res.Lines != 2 {
		t.Errorf("reopened chain invalid: %+v", res)
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decisions.jsonl")
	log, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{"one", "two", "three"} {
		if err := log.RecordDecision(model.Event{Kind: model.EventBash, Payload: p}, model.Decision{}); err != nil {
			t.Fatal(err)
		}
	}
	log.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	tampered := strings.Replace(string(data), `"blocked":false`, `"blocked":true`, 1)
	if tampered == string(data) {
		t.Fatal("test setup: nothing replaced")
	}
	if err := os.WriteFile(path, []byte(tampered), 0o600); err != nil {
		t.Fatal(err)
	}

	res := Verify(path)
	if res.Valid {
		t.Error("tampered log must fail verification")
	}
	if res.ErrorLine != 2 {
		t.Errorf("tamper detected at line %d, want 2 (first broken link)", res.ErrorLine)
	}
}

func TestPayloadNotStoredVerbatim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decisions.jsonl")
	log, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	const secret = "export TOKEN=supersecretvalue"
	if err := log.RecordDecision(model.Event{Kind: model.EventBash, Payload: secret}, model.Decision{}); err != nil {
		t.Fatal(err)
	}
	log.Close()

	f, _ := os.Open(path)
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.Contains(scanner.Text(), "supersecretvalue") {
			t.Error("payload must be hashed, not logged verbatim")
		}
	}
}
