package guard

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// maxStagedFileBytes caps how much of a staged file is read for
// content matching. Bigger files are checked by path only.
const maxStagedFileBytes = 1 << 20

// StagedPaths returns the paths currently staged in the enclosing
// repository, relative to the repository root. Outside a repository
// it returns nil with an error; the guard degrades, it never crashes.
func StagedPaths() ([]string, error) {
	out, err := gitOutput("diff", "--cached", "--name-only")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// CommitMessage returns the pending commit message: the contents of
// .git/COMMIT_EDITMSG with comment lines stripped.
func CommitMessage() (string, error) {
	gitDir, err := gitOutput("rev-parse", "--git-dir")
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(filepath.Join(strings.TrimSpace(gitDir), "COMMIT_EDITMSG"))
	if err != nil {
		return "", fmt.Errorf("read commit message: %w", err)
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// Metadata summarizes the staged change set for session notes: the
// commit guard prints it so the progress record can quote it.
type Metadata struct {
	Branch      string
	LastHash    string
	FileChanges []string
}

// CommitMetadata gathers branch, last commit and diffstat. Each field
// degrades independently to "unknown"/empty on git failure.
func CommitMetadata() Metadata {
	meta := Metadata{Branch: "unknown", LastHash: "unknown"}

	if out, err := gitOutput("branch", "--show-current"); err == nil {
		if b := strings.TrimSpace(out); b != "" {
			meta.Branch = b
		}
	}
	if out, err := gitOutput("rev-parse", "--short", "HEAD"); err == nil {
		if h := strings.TrimSpace(out); h != "" {
			meta.LastHash = h
		}
	}
	if out, err := gitOutput("diff", "--cached", "--stat"); err == nil {
		lines := splitLines(out)
		if len(lines) > 0 {
			// Last line is the summary ("N files changed, ...").
			meta.FileChanges = lines[:len(lines)-1]
		}
	}
	return meta
}

// Format renders the metadata block appended to commit-guard output.
func (m Metadata) Format() string {
	var b strings.Builder
	b.WriteString("Session metadata (for the progress record):\n")
	fmt.Fprintf(&b, "  Commits: %s..HEAD\n", m.LastHash)
	fmt.Fprintf(&b, "  Branch:  %s\n", m.Branch)
	if len(m.FileChanges) > 0 {
		b.WriteString("  Files changed:\n")
		for _, c := range m.FileChanges {
			fmt.Fprintf(&b, "    %s\n", c)
		}
	}
	return b.String()
}

// LoadStagedFiles reads worktree content for the given paths. Files
// that are missing (deletions), unreadable, oversized or binary are
// included with empty content so path-gated rules still see them.
func LoadStagedFiles(root string, paths []string) []StagedFile {
	var out []StagedFile
	for _, p := range paths {
		if p == "" {
			continue
		}
		f := StagedFile{Path: p}
		full := p
		if root != "" {
			full = filepath.Join(root, p)
		}
		if info, err := os.Stat(full); err == nil && info.Mode().IsRegular() && info.Size() <= maxStagedFileBytes {
			if data, err := os.ReadFile(full); err == nil && utf8.Valid(data) {
				f.Content = string(data)
			}
		}
		out = append(out, f)
	}
	return out
}

// ChangedPaths returns every modified or untracked path reported by
// git status, the candidate set for the staging wrapper's -A mode.
func ChangedPaths() ([]string, error) {
	out, err := gitOutput("status", "--porcelain")
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, line := range splitLines(out) {
		if len(line) <= 3 {
			continue
		}
		p := strings.TrimSpace(line[3:])
		// Renames are reported as "old -> new"; the new path is what
		// ends up staged.
		if idx := strings.Index(p, " -> "); idx >= 0 {
			p = p[idx+4:]
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// RepoRoot returns the repository top level, or "" outside a repo.
func RepoRoot() string {
	out, err := gitOutput("rev-parse", "--show-toplevel")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// Add stages the given arguments via git add, inheriting stdio so git
// reports its own errors.
func Add(args []string) error {
	cmd := exec.Command("git", append([]string{"add"}, args...)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func gitOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return string(out), nil
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
