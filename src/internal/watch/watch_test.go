package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jvmrepo/jvmrepo/src/internal/manifest"
	"github.com/jvmrepo/jvmrepo/src/internal/platform"
	"github.com/jvmrepo/jvmrepo/src/internal/runtime"
)

func TestTranslate(t *testing.T) {
	dir := filepath.Join("r", "linux-x64")

	tests := []struct {
		name  string
		event fsnotify.Event
		want  Event
		ok    bool
	}{
		{"created manifest", fsnotify.Event{Name: filepath.Join(dir, "17.json"), Op: fsnotify.Create}, Event{OpInstalled, platform.LinuxX64, "17"}, true},
		{"removed manifest", fsnotify.Event{Name: filepath.Join(dir, "17.json"), Op: fsnotify.Remove}, Event{OpRemoved, platform.LinuxX64, "17"}, true},
		{"temp manifest", fsnotify.Event{Name: filepath.Join(dir, ".manifest-123.tmp"), Op: fsnotify.Create}, Event{}, false},
		{"runtime file", fsnotify.Event{Name: filepath.Join(dir, "17"), Op: fsnotify.Create}, Event{}, false},
		{"not a platform", fsnotify.Event{Name: filepath.Join("r", "cache", "17.json"), Op: fsnotify.Create}, Event{}, false},
		{"chmod only", fsnotify.Event{Name: filepath.Join(dir, "17.json"), Op: fsnotify.Chmod}, Event{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := translate(tt.event)
			if ok != tt.ok || got != tt.want {
				t.Errorf("translate() = %v, %v; want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestWatcher(t *testing.T) {
	root := t.TempDir()
	platformDir := filepath.Join(root, "linux-x64")
	if err := os.MkdirAll(platformDir, 0755); err != nil {
		t.Fatal(err)
	}

	w, err := New(root)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer func() { _ = w.Close() }()

	events := make(chan Event, 16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx, func(e Event) { events <- e }) }()

	manifestPath := filepath.Join(platformDir, "17.json")
	m := manifest.New(runtime.Info{Platform: platform.LinuxX64, Version: "17.0.8"}, "mojang", "17")
	if err := manifest.Write(manifestPath, m); err != nil {
		t.Fatal(err)
	}
	expect(t, events, Event{OpInstalled, platform.LinuxX64, "17"})

	if err := os.Remove(manifestPath); err != nil {
		t.Fatal(err)
	}
	expect(t, events, Event{OpRemoved, platform.LinuxX64, "17"})
}

func TestRunStopsOnCancel(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "new-root"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer func() { _ = w.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := w.Run(ctx, func(Event) {}); err != context.Canceled {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
}

// expect waits for want, skipping unrelated events.
func expect(t *testing.T, events <-chan Event, want Event) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case got := <-events:
			if got == want {
				return
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %v", want)
		}
	}
}
