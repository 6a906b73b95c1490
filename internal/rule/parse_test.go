package rule

import (
	"strings"
	"testing"

	"github.com/railguard/railguard/internal/model"
)

const sampleDoc = `---
name: warn-dangerous-rm
enabled: true
event: bash
pattern: rm\s+-rf
action: warn
---

**Dangerous rm command detected!**

Please verify the path before proceeding.
`

func TestParseFullDocument(t *testing.T) {
	r, err := Parse("rules/warn-dangerous-rm.md", sampleDoc)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if r.ID != "warn-dangerous-rm" {
		t.Errorf("id = %q, want warn-dangerous-rm", r.ID)
	}
	if !r.Enabled {
		t.Error("expected rule enabled")
	}
	if r.Event != model.EventBash {
		t.Errorf("event = %q, want bash", r.Event)
	}
	if r.Action != model.ActionWarn {
		t.Errorf("action = %q, want warn", r.Action)
	}
	if r.Pattern == nil || !r.Pattern.MatchString("rm -rf /tmp/x") {
		t.Error("pattern must compile and match")
	}
	if !strings.HasPrefix(r.Message, "**Dangerous rm command detected!**") {
		t.Errorf("message lost its body: %q", r.Message)
	}
	if strings.HasPrefix(r.Message, "\n") || strings.HasSuffix(r.Message, "\n") {
		t.Error("message must be trimmed")
	}
}

func TestParseIDDefaultsToFilenameStem(t *testing.T) {
	doc := "---\nevent: stage\naction: warn\n---\n\nmessage\n"
	r, err := Parse("rules/my-stage-rule.md", doc)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if r.ID != "my-stage-rule" {
		t.Errorf("id = %q, want my-stage-rule", r.ID)
	}
}

func TestParseEnabledDefaultsTrue(t *testing.T) {
	doc := "---\nevent: stage\naction: warn\n---\nbody"
	r, err := Parse("r.md", doc)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !r.Enabled {
		t.Error("enabled must default to true when absent")
	}
}

func TestParseExplicitlyDisabled(t *testing.T) {
	doc := "---\nenabled: false\nevent: stage\naction: warn\n---\nbody"
	r, err := Parse("r.md", doc)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if r.Enabled {
		t.Error("enabled: false must be honored")
	}
}

func TestParseUnknownKeysIgnored(t *testing.T) {
	doc := "---\nevent: bash\npattern: x\naction: block\nseverity: high\nowner: me\n---\nbody"
	if _, err := Parse("r.md", doc); err != nil {
		t.Errorf("unknown frontmatter keys must be ignored, got %v", err)
	}
}

func TestParseMissingPatternRejected(t *testing.T) {
	for _, event := range []string{"bash", "file", "commit"} {
		doc := "---\nevent: " + event + "\naction: warn\n---\nbody"
		_, err := Parse("r.md", doc)
		if err == nil {
			t.Errorf("event %q without pattern must be rejected", event)
			continue
		}
		if !strings.Contains(err.Error(), "pattern") {
			t.Errorf("error should name the pattern field, got %v", err)
		}
	}
}

func TestParsePatternOptionalForStageAndAny(t *testing.T) {
	for _, event := range []string{"stage", "any"} {
		doc := "---\nevent: " + event + "\naction: warn\n---\nbody"
		if _, err := Parse("r.md", doc); err != nil {
			t.Errorf("event %q without pattern must load, got %v", event, err)
		}
	}
}

func TestParseBadRegexRejected(t *testing.T) {
	doc := "---\nevent: bash\npattern: '['\naction: warn\n---\nbody"
	if _, err := Parse("r.md", doc); err == nil {
		t.Error("uncompilable pattern must be a load error")
	}

	doc = "---\nevent: file\npattern: x\nfile_pattern: '('\naction: warn\n---\nbody"
	if _, err := Parse("r.md", doc); err == nil {
		t.Error("uncompilable file_pattern must be a load error")
	}
}

func TestParseMissingRequiredFields(t *testing.T) {
	if _, err := Parse("r.md", "---\naction: warn\n---\nbody"); err == nil {
		t.Error("missing event must be rejected")
	}
	if _, err := Parse("r.md", "---\nevent: stage\n---\nbody"); err == nil {
		t.Error("missing action must be rejected")
	}
	if _, err := Parse("r.md", "---\nevent: nope\naction: warn\n---\nbody"); err == nil {
		t.Error("unknown event must be rejected")
	}
	if _, err := Parse("r.md", "---\nevent: stage\naction: veto\n---\nbody"); err == nil {
		t.Error("unknown action must be rejected")
	}
}

func TestParseMalformedDocuments(t *testing.T) {
	if _, err := Parse("r.md", "no frontmatter at all"); err == nil {
		t.Error("document without frontmatter must be rejected")
	}
	if _, err := Parse("r.md", "---\nevent: stage\naction: warn\nnever closed"); err == nil {
		t.Error("unterminated frontmatter must be rejected")
	}
	if _, err := Parse("r.md", "---\n: [broken\n---\nbody"); err == nil {
		t.Error("invalid YAML must be rejected")
	}
}

func TestParseFilePatternOnBashRuleIsAccepted(t *testing.T) {
	// file_pattern on a non-file/stage rule is a documented no-op,
	// not a validation error.
	doc := "---\nevent: bash\npattern: rm\nfile_pattern: \\.go$\naction: warn\n---\nbody"
	r, err := Parse("r.md", doc)
	if err != nil {
		t.Fatalf("file_pattern on bash rule must load, got %v", err)
	}
	if r.FilePattern == nil {
		t.Error("file_pattern should still be compiled and listed")
	}
}
