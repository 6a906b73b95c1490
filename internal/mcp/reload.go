package mcp

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce is how long after the last rules-directory write the
// catalog reload fires. Editors often write several times in a burst.
const reloadDebounce = 500 * time.Millisecond

// Reloader watches the rules directory and swaps the server's catalog
// when documents change, so a long-lived MCP session picks up rule
// edits without a restart.
type Reloader struct {
	watcher *fsnotify.Watcher
	server  *Server
}

// NewReloader creates a file watcher on the server's rules directory.
// A missing directory is tolerated: the reloader simply idles, and
// the per-invocation load semantics stay intact.
func NewReloader(server *Server) (*Reloader, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	if _, err := os.Stat(server.cfg.RulesDir); err == nil {
		if err := watcher.Add(server.cfg.RulesDir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("watch %q: %w", server.cfg.RulesDir, err)
		}
	}

	return &Reloader{watcher: watcher, server: server}, nil
}

// Run watches for rule-document changes and reloads the catalog.
// Blocks until ctx is cancelled.
func (r *Reloader) Run(ctx context.Context) error {
	defer r.watcher.Close()

	var debounce *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil

		case event, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(reloadDebounce, func() {
					if err := r.server.Reload(); err != nil {
						fmt.Fprintf(os.Stderr, "rules reload failed: %v\n", err)
					} else {
						fmt.Fprintln(os.Stderr, "rules reloaded")
					}
				})
			}

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "file watcher error: %v\n", err)
		}
	}
}
