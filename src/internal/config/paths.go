// Package config manages jvmrepo paths and user settings
package config

import (
	"os"
	"path/filepath"
	"sync"
)

// RootEnvVar overrides the jvmrepo home directory.
const RootEnvVar = "JVMREPO_ROOT"

// File names below the root
const (
	SettingsFileName = "config.yaml"
	HistoryFileName  = "history.db"
)

// Paths holds all important jvmrepo directory paths
type Paths struct {
	Root     string // Root jvmrepo directory (~/.jvmrepo)
	Runtimes string // Repository root holding <platform>/<component> (~/.jvmrepo/runtimes)
	Cache    string // Catalog cache (~/.jvmrepo/cache)
	Settings string // Settings file (~/.jvmrepo/config.yaml)
	History  string // Install history database (~/.jvmrepo/history.db)
}

var (
	defaultPaths *Paths
	pathsOnce    sync.Once
)

// DefaultPaths returns the default jvmrepo paths.
// This function is thread-safe and guarantees single initialization.
func DefaultPaths() *Paths {
	pathsOnce.Do(func() {
		defaultPaths = PathsAt(getRootDir())
	})
	return defaultPaths
}

// PathsAt lays out the jvmrepo paths below root.
func PathsAt(root string) *Paths {
	return &Paths{
		Root:     root,
		Runtimes: filepath.Join(root, "runtimes"),
		Cache:    filepath.Join(root, "cache"),
		Settings: filepath.Join(root, SettingsFileName),
		History:  filepath.Join(root, HistoryFileName),
	}
}

// getRootDir returns the root jvmrepo directory
func getRootDir() string {
	if root := os.Getenv(RootEnvVar); root != "" {
		if abs, err := filepath.Abs(root); err == nil {
			return abs
		}
		return root
	}

	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home is not available
		return ".jvmrepo"
	}

	return filepath.Join(home, ".jvmrepo")
}

// EnsureDirectories creates the directories of p
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.Root, p.Runtimes, p.Cache} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// ResetPathsCache resets the cached paths, forcing reinitialization on next access.
// This is primarily useful for testing.
func ResetPathsCache() {
	pathsOnce = sync.Once{}
	defaultPaths = nil
}
