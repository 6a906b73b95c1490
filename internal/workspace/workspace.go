// Package workspace locates and scaffolds the .railguard directory
// that anchors a guarded project.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirName is the workspace marker directory.
const DirName = ".railguard"

// RulesDirName is the rule-document directory inside the workspace.
const RulesDirName = "rules"

// ProgressFileName is the session-progress record the commit guard
// expects to find in the change set.
const ProgressFileName = "progress.md"

// Workspace is a resolved .railguard directory.
type Workspace struct {
	// Root is the directory containing .railguard.
	Root string
}

// Dir returns the .railguard directory path.
func (w Workspace) Dir() string {
	return filepath.Join(w.Root, DirName)
}

// RulesDir returns the rule-document directory path.
func (w Workspace) RulesDir() string {
	return filepath.Join(w.Dir(), RulesDirName)
}

// ProgressPath returns the session-progress file path, relative to the
// workspace root the way git reports staged paths.
func (w Workspace) ProgressPath() string {
	return filepath.Join(DirName, ProgressFileName)
}

// Resolve walks up from start looking for a .railguard directory.
// A project without one is not an error — guardrails are opt-in — so
// the second return value reports whether a workspace was found.
func Resolve(start string) (Workspace, bool) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return Workspace{}, false
	}
	for {
		candidate := filepath.Join(dir, DirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return Workspace{Root: dir}, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Workspace{}, false
		}
		dir = parent
	}
}

// Init creates the workspace layout under root and writes any starter
// document that does not already exist. It returns the paths it
// created. Idempotent: existing files are never overwritten.
func Init(root string, starters map[string]string) ([]string, error) {
	ws := Workspace{Root: root}
	if err := os.MkdirAll(ws.RulesDir(), 0o755); err != nil {
		return nil, fmt.Errorf("create rules directory: %w", err)
	}

	var created []string

	progressPath := filepath.Join(ws.Dir(), ProgressFileName)
	wrote, err := writeIfMissing(progressPath, progressTemplate)
	if err != nil {
		return created, err
	}
	if wrote {
		created = append(created, progressPath)
	}

	for name, content := range starters {
		path := filepath.Join(ws.RulesDir(), name)
		wrote, err := writeIfMissing(path, content)
		if err != nil {
			return created, err
		}
		if wrote {
			created = append(created, path)
		}
	}

	return created, nil
}

func writeIfMissing(path, content string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

const progressTemplate = `# Session progress

Update this file as you work and stage it with your commits. The
commit guard reminds you when it is missing from the change set.

## Current session

- Started:
- Goal:
- Notes:
`
