// Package watch reports runtimes appearing in and disappearing from a repository
// as their manifests are written and removed.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/jvmrepo/jvmrepo/src/internal/constants"
	"github.com/jvmrepo/jvmrepo/src/internal/platform"
	"github.com/jvmrepo/jvmrepo/src/internal/ui"
)

// Op is what happened to a component
type Op string

// Component changes
const (
	OpInstalled Op = "installed"
	OpRemoved   Op = "removed"
)

// Event is a change to one installed component.
type Event struct {
	Op        Op
	Platform  platform.Platform
	Component string
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s for %s", e.Op, e.Component, e.Platform)
}

// Watcher observes a repository root.
type Watcher struct {
	root    string
	watcher *fsnotify.Watcher
}

// New starts watching root and every platform directory below it.
// The root is created if it does not exist.
func New(root string) (*Watcher, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{root: filepath.Clean(root), watcher: fw}
	if err := fw.Add(w.root); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", root, err)
	}

	entries, err := os.ReadDir(w.root)
	if err != nil {
		_ = fw.Close()
		return nil, err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			w.addPlatform(filepath.Join(w.root, entry.Name()))
		}
	}

	return w, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Run delivers events to fn until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context, fn func(Event)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			ui.Debug("Watch error: %v", err)
		case fe, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Dir(fe.Name) == w.root {
				if fe.Has(fsnotify.Create) {
					w.addPlatform(fe.Name)
				}
				continue
			}
			if e, ok := translate(fe); ok {
				fn(e)
			}
		}
	}
}

// addPlatform watches a new directory under the root if it names a platform.
func (w *Watcher) addPlatform(dir string) {
	if _, err := platform.Parse(filepath.Base(dir)); err != nil {
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return
	}
	if err := w.watcher.Add(dir); err != nil {
		ui.Debug("Failed to watch %s: %v", dir, err)
		return
	}
	ui.Debug("Watching %s", dir)
}

// translate maps a file event inside a platform directory to a component change.
func translate(fe fsnotify.Event) (Event, bool) {
	name := filepath.Base(fe.Name)
	if !strings.HasSuffix(name, constants.ExtJSON) || strings.HasPrefix(name, ".") {
		return Event{}, false
	}
	component := strings.TrimSuffix(name, constants.ExtJSON)
	if component == "" {
		return Event{}, false
	}

	p, err := platform.Parse(filepath.Base(filepath.Dir(fe.Name)))
	if err != nil {
		return Event{}, false
	}

	switch {
	case fe.Has(fsnotify.Create), fe.Has(fsnotify.Write):
		return Event{Op: OpInstalled, Platform: p, Component: component}, true
	case fe.Has(fsnotify.Remove), fe.Has(fsnotify.Rename):
		return Event{Op: OpRemoved, Platform: p, Component: component}, true
	default:
		return Event{}, false
	}
}
