// Package catalog reads the runtime catalog: which Java runtime components exist
// for each platform, and where their file sets are published.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/jvmrepo/jvmrepo/src/internal/remote"
)

// Source is the interface for retrieving the catalog index from various backends.
// Implementations include the filesystem and remote HTTP.
type Source interface {
	// GetIndex retrieves the complete catalog index.
	GetIndex(ctx context.Context) (Index, error)
}

// Index maps catalog platform names ("linux", "mac-os-arm64", ...) to the
// components published for them. A component lists its builds, newest first.
type Index map[string]map[string][]Entry

// Entry is one published build of a component.
type Entry struct {
	Availability Availability       `json:"availability"`
	Manifest     remote.Download    `json:"manifest"`
	Version      remote.VersionInfo `json:"version"`
}

// Availability describes the staged rollout of a build.
type Availability struct {
	Group    int `json:"group"`
	Progress int `json:"progress"`
}

// ParseIndex parses a catalog index document.
func ParseIndex(data []byte) (Index, error) {
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("failed to parse catalog index: %w", err)
	}
	if idx == nil {
		return nil, fmt.Errorf("failed to parse catalog index: empty document")
	}
	return idx, nil
}

// Lookup returns the current build of a component for a catalog platform.
func (idx Index) Lookup(platform, component string) (*Entry, error) {
	entries := idx[platform][component]
	if len(entries) == 0 {
		return nil, &ErrComponentNotFound{Platform: platform, Component: component}
	}
	entry := entries[0]
	return &entry, nil
}

// Components returns the names of the components published for a platform
// that have at least one build, sorted.
func (idx Index) Components(platform string) []string {
	var names []string
	for name, entries := range idx[platform] {
		if len(entries) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Platforms returns the catalog platform names in the index, sorted.
func (idx Index) Platforms() []string {
	names := make([]string, 0, len(idx))
	for name := range idx {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ErrComponentNotFound is returned when the catalog has no build of a component for a platform.
type ErrComponentNotFound struct {
	Platform  string
	Component string
}

func (e *ErrComponentNotFound) Error() string {
	if e.Platform == "" {
		return fmt.Sprintf("component not found in catalog: %s (platform not published)", e.Component)
	}
	return fmt.Sprintf("component not found in catalog: %s for %s", e.Component, e.Platform)
}

// IsComponentNotFound checks if an error indicates a missing component.
func IsComponentNotFound(err error) bool {
	var target *ErrComponentNotFound
	return errors.As(err, &target)
}
