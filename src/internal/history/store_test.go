package history

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordAndList(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	events := []*Event{
		{Action: ActionInstall, Component: "java-runtime-gamma", Platform: "linux-x64", Provider: "mojang", Version: "17.0.8", Success: true, Duration: 1500 * time.Millisecond, Timestamp: base},
		{Action: ActionInstall, Component: "jre-legacy", Platform: "linux-x64", Provider: "mojang", Success: false, Error: "connection reset", Timestamp: base.Add(time.Minute)},
		{Action: ActionUninstall, Component: "java-runtime-gamma", Platform: "linux-x64", Success: true, Timestamp: base.Add(2 * time.Minute)},
	}
	for _, e := range events {
		if err := s.Record(e); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
		if e.ID == 0 {
			t.Error("Record() should set the event ID")
		}
	}

	got, err := s.List(Filter{})
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("List() returned %d events, want 3", len(got))
	}
	if got[0].Action != ActionUninstall || got[2].Version != "17.0.8" {
		t.Errorf("events not newest first: %+v", got)
	}
	if got[1].Error != "connection reset" || got[1].Success {
		t.Errorf("failed event = %+v", got[1])
	}
	if got[2].Duration != 1500*time.Millisecond {
		t.Errorf("Duration = %v", got[2].Duration)
	}
	if !got[2].Timestamp.Equal(base) {
		t.Errorf("Timestamp = %v, want %v", got[2].Timestamp, base)
	}
}

func TestListFilter(t *testing.T) {
	s := openTestStore(t)

	for i, component := range []string{"17", "21", "17", "17"} {
		platform := "linux-x64"
		if i == 3 {
			platform = "osx-arm64"
		}
		e := &Event{Action: ActionInstall, Component: component, Platform: platform, Success: true}
		if err := s.Record(e); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"all", Filter{}, 4},
		{"by component", Filter{Component: "17"}, 3},
		{"by component and platform", Filter{Component: "17", Platform: "linux-x64"}, 2},
		{"limit", Filter{Limit: 2}, 2},
		{"no match", Filter{Component: "8"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.List(tt.filter)
			if err != nil {
				t.Fatalf("List() failed: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("List(%+v) returned %d events, want %d", tt.filter, len(got), tt.want)
			}
		})
	}
}

func TestRecordDefaultsTimestamp(t *testing.T) {
	s := openTestStore(t)

	before := time.Now()
	e := &Event{Action: ActionInstall, Component: "17", Platform: "linux-x64"}
	if err := s.Record(e); err != nil {
		t.Fatal(err)
	}
	if e.Timestamp.Before(before) {
		t.Errorf("Timestamp = %v, want at least %v", e.Timestamp, before)
	}
}

func TestPrune(t *testing.T) {
	s := openTestStore(t)
	now := time.Now()

	for _, age := range []time.Duration{48 * time.Hour, 24 * time.Hour, time.Minute} {
		e := &Event{Action: ActionInstall, Component: "17", Platform: "linux-x64", Timestamp: now.Add(-age)}
		if err := s.Record(e); err != nil {
			t.Fatal(err)
		}
	}

	n, err := s.Prune(now.Add(-12 * time.Hour))
	if err != nil {
		t.Fatalf("Prune() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Prune() removed %d events, want 2", n)
	}

	got, err := s.List(Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("%d events left, want 1", len(got))
	}
}

func TestOpenCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := s.Record(&Event{Action: ActionInstall, Component: "17", Platform: "linux-x64"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	// Reopening keeps existing events
	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = s.Close() }()

	got, err := s.List(Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("List() after reopen returned %d events, want 1", len(got))
	}
}
