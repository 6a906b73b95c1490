package rule

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LoadError describes one rule document that failed to load. Loading
// continues past it: a malformed document must not take down the rest
// of the catalog.
type LoadError struct {
	Path string
	Err  error
}

func (e LoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Catalog is the in-memory rule set for one invocation. Rules keep
// the order their documents sort in (by filename), which defines the
// order fired entries appear in a decision. Disabled rules stay in
// the catalog so list commands can show them; evaluation skips them.
type Catalog struct {
	Rules []*Rule
}

// Enabled returns the evaluable subset in catalog order.
func (c *Catalog) Enabled() []*Rule {
	var out []*Rule
	for _, r := range c.Rules {
		if r.Enabled {
			out = append(out, r)
		}
	}
	return out
}

// Len is the total rule count, disabled rules included.
func (c *Catalog) Len() int { return len(c.Rules) }

// Load reads every *.md rule document in dir (non-recursive) and
// returns the valid subset plus per-document errors.
//
// A missing directory is not an error: guardrails are strictly opt-in,
// so it yields an empty catalog. Any other failure to enumerate the
// directory is a configuration error and aborts the load.
func Load(dir string) (*Catalog, []LoadError, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return &Catalog{}, nil, nil
		}
		return nil, nil, fmt.Errorf("read rules directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	cat := &Catalog{}
	var loadErrs []LoadError
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			loadErrs = append(loadErrs, LoadError{Path: path, Err: err})
			continue
		}
		r, err := Parse(path, string(data))
		if err != nil {
			loadErrs = append(loadErrs, LoadError{Path: path, Err: err})
			continue
		}
		cat.Rules = append(cat.Rules, r)
	}

	return cat, loadErrs, nil
}
