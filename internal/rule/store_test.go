package rule

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeRule(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadMissingDirectoryYieldsEmptyCatalog(t *testing.T) {
	cat, loadErrs, err := Load(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("missing directory must not be an error, got %v", err)
	}
	if len(loadErrs) != 0 {
		t.Errorf("expected no load errors, got %v", loadErrs)
	}
	if cat.Len() != 0 {
		t.Errorf("expected empty catalog, got %d rules", cat.Len())
	}
}

func TestLoadCollectsValidAndInvalid(t *testing.T) {
	dir := t.TempDir()
	writeRule(t, dir, "a-good.md", "---\nevent: bash\npattern: rm\naction: warn\n---\nrm warning")
	writeRule(t, dir, "b-bad.md", "---\nevent: bash\naction: warn\n---\nno pattern")
	writeRule(t, dir, "c-good.md", "---\nevent: stage\naction: warn\n---\nstage warning")
	writeRule(t, dir, "ignored.txt", "not a rule document")

	cat, loadErrs, err := Load(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cat.Len() != 2 {
		t.Errorf("catalog = %d rules, want 2", cat.Len())
	}
	if len(loadErrs) != 1 {
		t.Fatalf("load errors = %d, want 1", len(loadErrs))
	}
	if !strings.Contains(loadErrs[0].Path, "b-bad.md") {
		t.Errorf("load error should name the offending document, got %q", loadErrs[0].Path)
	}
}

func TestLoadOrderIsStableByFilename(t *testing.T) {
	dir := t.TempDir()
	writeRule(t, dir, "20-second.md", "---\nname: second\nevent: stage\naction: warn\n---\nm")
	writeRule(t, dir, "10-first.md", "---\nname: first\nevent: stage\naction: warn\n---\nm")
	writeRule(t, dir, "30-third.md", "---\nname: third\nevent: stage\naction: warn\n---\nm")

	cat, _, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, r := range cat.Rules {
		ids = append(ids, r.ID)
	}
	want := []string{"first", "second", "third"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("catalog order = %v, want %v", ids, want)
		}
	}
}

func TestLoadRetainsDisabledRules(t *testing.T) {
	dir := t.TempDir()
	writeRule(t, dir, "off.md", "---\nenabled: false\nevent: stage\naction: warn\n---\nm")
	writeRule(t, dir, "on.md", "---\nevent: stage\naction: warn\n---\nm")

	cat, _, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cat.Len() != 2 {
		t.Errorf("disabled rules must stay in the catalog, got %d", cat.Len())
	}
	if got := len(cat.Enabled()); got != 1 {
		t.Errorf("enabled subset = %d, want 1", got)
	}
}

func TestLoadNotRecursive(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeRule(t, sub, "deep.md", "---\nevent: stage\naction: warn\n---\nm")

	cat, _, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cat.Len() != 0 {
		t.Error("loading must not recurse into subdirectories")
	}
}

func TestStarterDocsAllParse(t *testing.T) {
	for name, content := range StarterDocs {
		if _, err := Parse(name, content); err != nil {
			t.Errorf("starter doc %s does not parse: %v", name, err)
		}
	}
}
