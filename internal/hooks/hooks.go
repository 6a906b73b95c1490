// Package hooks installs project-local agent hook configuration that
// routes platform events into railguard checks. Each platform is a
// thin adapter: platform concepts stay here and never leak into the
// engine's types.
package hooks

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Agent identifies a supported host platform.
type Agent string

const (
	AgentClaude Agent = "claude"
	AgentCursor Agent = "cursor"
)

// ParseAgent maps a string to an Agent.
func ParseAgent(s string) (Agent, bool) {
	switch Agent(s) {
	case AgentClaude, AgentCursor:
		return Agent(s), true
	default:
		return "", false
	}
}

// commandMarker identifies railguard-installed hooks so installs stay
// idempotent and uninstallable by hand.
const commandMarker = "railguard"

// Install writes the hook configuration for the given agent into the
// project directory. Existing unrelated hooks are preserved; a second
// install is a no-op. Returns the path written and whether anything
// changed.
func Install(agent Agent, projectDir string) (string, bool, error) {
	switch agent {
	case AgentClaude:
		return installClaude(projectDir)
	case AgentCursor:
		return installCursor(projectDir)
	default:
		return "", false, fmt.Errorf("unknown agent %q", agent)
	}
}

// claudeHooks is the hook set merged into .claude/settings.json:
// every Bash tool call is routed through the stdin hook adapter,
// which dispatches to the bash or commit check.
func claudeHooks() map[string]any {
	return map[string]any{
		"PreToolUse": []any{
			map[string]any{
				"matcher": "Bash",
				"hooks": []any{
					map[string]any{
						"type":    "command",
						"command": "railguard hook claude",
					},
				},
			},
		},
	}
}

func installClaude(projectDir string) (string, bool, error) {
	path := filepath.Join(projectDir, ".claude", "settings.json")

	settings, err := readJSONFile(path)
	if err != nil {
		return path, false, err
	}

	existing, _ := settings["hooks"].(map[string]any)
	if existing == nil {
		existing = map[string]any{}
	}

	changed := false
	for event, groups := range claudeHooks() {
		current, _ := existing[event].([]any)
		if hasMarkedHook(current) {
			continue
		}
		existing[event] = append(current, groups.([]any)...)
		changed = true
	}
	if !changed {
		return path, false, nil
	}

	settings["hooks"] = existing
	return path, true, writeJSONFile(path, settings)
}

func installCursor(projectDir string) (string, bool, error) {
	path := filepath.Join(projectDir, ".cursor", "hooks.json")

	config, err := readJSONFile(path)
	if err != nil {
		return path, false, err
	}

	hooksMap, _ := config["hooks"].(map[string]any)
	if hooksMap == nil {
		hooksMap = map[string]any{}
	}

	current, _ := hooksMap["afterFileEdit"].([]any)
	for _, h := range current {
		if entry, ok := h.(map[string]any); ok {
			if cmd, _ := entry["command"].(string); strings.Contains(cmd, commandMarker) {
				return path, false, nil
			}
		}
	}

	hooksMap["afterFileEdit"] = append(current, map[string]any{
		"command": "railguard check stage",
	})
	config["version"] = 1
	config["hooks"] = hooksMap
	return path, true, writeJSONFile(path, config)
}

// hasMarkedHook reports whether any hook group already carries a
// railguard command or prompt.
func hasMarkedHook(groups []any) bool {
	for _, g := range groups {
		group, ok := g.(map[string]any)
		if !ok {
			continue
		}
		inner, _ := group["hooks"].([]any)
		for _, h := range inner {
			entry, ok := h.(map[string]any)
			if !ok {
				continue
			}
			cmd, _ := entry["command"].(string)
			prompt, _ := entry["prompt"].(string)
			if strings.Contains(cmd, commandMarker) || strings.Contains(prompt, commandMarker) {
				return true
			}
		}
	}
	return false
}

func readJSONFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

func writeJSONFile(path string, v map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
