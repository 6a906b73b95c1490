package rule

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/railguard/railguard/internal/model"
)

// frontmatter is the metadata header of a rule document. Unknown keys
// are ignored for forward compatibility; pointer fields distinguish
// "absent" from zero values so defaults apply only when a key is
// genuinely missing.
type frontmatter struct {
	Name        string  `yaml:"name"`
	Enabled     *bool   `yaml:"enabled"`
	Event       string  `yaml:"event"`
	Pattern     *string `yaml:"pattern"`
	FilePattern *string `yaml:"file_pattern"`
	Action      string  `yaml:"action"`
}

const frontmatterDelim = "---"

// splitDocument separates the YAML header from the message body.
func splitDocument(content string) (header, body string, err error) {
	if !strings.HasPrefix(content, frontmatterDelim) {
		return "", "", fmt.Errorf("document does not start with %q frontmatter", frontmatterDelim)
	}
	rest := content[len(frontmatterDelim):]
	idx := strings.Index(rest, "\n"+frontmatterDelim)
	if idx < 0 {
		return "", "", fmt.Errorf("frontmatter is not terminated by %q", frontmatterDelim)
	}
	header = rest[:idx]
	body = rest[idx+1+len(frontmatterDelim):]
	return header, strings.TrimSpace(body), nil
}

// Parse turns one rule document into a Rule. The source path supplies
// the default id (filename stem) and is recorded for diagnostics.
// Regular expressions are compiled eagerly so a bad pattern is a load
// error for this one rule, not a runtime error for every event.
func Parse(source, content string) (*Rule, error) {
	header, body, err := splitDocument(content)
	if err != nil {
		return nil, err
	}

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return nil, fmt.Errorf("invalid frontmatter: %w", err)
	}

	id := fm.Name
	if id == "" {
		base := filepath.Base(source)
		id = strings.TrimSuffix(base, filepath.Ext(base))
	}

	if fm.Event == "" {
		return nil, fmt.Errorf("missing required field %q", "event")
	}
	event, ok := model.ParseEventKind(fm.Event)
	if !ok {
		return nil, fmt.Errorf("unknown event %q", fm.Event)
	}

	if fm.Action == "" {
		return nil, fmt.Errorf("missing required field %q", "action")
	}
	action, ok := model.ParseRuleAction(fm.Action)
	if !ok {
		return nil, fmt.Errorf("unknown action %q", fm.Action)
	}

	r := &Rule{
		ID:      id,
		Enabled: fm.Enabled == nil || *fm.Enabled,
		Event:   event,
		Action:  action,
		Message: body,
		Source:  source,
	}

	if fm.Pattern != nil {
		re, err := regexp.Compile(*fm.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern: %w", err)
		}
		r.Pattern = re
		r.RawPattern = *fm.Pattern
	}
	if fm.FilePattern != nil {
		re, err := regexp.Compile(*fm.FilePattern)
		if err != nil {
			return nil, fmt.Errorf("invalid file_pattern: %w", err)
		}
		r.FilePattern = re
		r.RawFilePattern = *fm.FilePattern
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}
