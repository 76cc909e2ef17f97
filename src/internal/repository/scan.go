package repository

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jvmrepo/jvmrepo/src/internal/constants"
	"github.com/jvmrepo/jvmrepo/src/internal/manifest"
	"github.com/jvmrepo/jvmrepo/src/internal/platform"
	"github.com/jvmrepo/jvmrepo/src/internal/runtime"
	"github.com/jvmrepo/jvmrepo/src/internal/ui"
)

// errOrphaned marks a manifest whose installation directory is gone.
var errOrphaned = errors.New("installation directory missing")

// ListInstalled returns every managed runtime installed for p.
// Broken entries are logged and skipped; the scan itself never fails.
func (r *Repository) ListInstalled(p platform.Platform) []*runtime.Runtime {
	runtimes := make([]*runtime.Runtime, 0)

	root := r.PlatformRoot(p)
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return runtimes
	}

	// ReadDir returns the entries read so far alongside an error
	entries, err := os.ReadDir(root)
	if err != nil {
		ui.Debug("Listing %s stopped early: %v", root, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, constants.ExtJSON) {
			continue
		}
		component := strings.TrimSuffix(name, constants.ExtJSON)
		if component == "" {
			continue
		}

		manifestPath := filepath.Join(root, name)
		if info, err := os.Stat(manifestPath); err != nil || !info.Mode().IsRegular() {
			continue
		}

		rt, err := r.load(p, component)
		if err != nil {
			if errors.Is(err, errOrphaned) {
				ui.Debug("Skipping orphaned manifest %s", manifestPath)
				continue
			}
			ui.Debug("Skipping %s: %v", manifestPath, err)
			if !expectedScanFailure(err) {
				r.report(fmt.Errorf("load %s: %w", manifestPath, err))
			}
			continue
		}
		runtimes = append(runtimes, rt)
	}

	return runtimes
}

// Find returns the managed runtime installed as component for p.
func (r *Repository) Find(p platform.Platform, component string) (*runtime.Runtime, error) {
	if err := validateComponent(component); err != nil {
		return nil, err
	}
	if _, err := os.Stat(r.ManifestFile(p, component)); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s for %s: %w", component, p, ErrComponentNotInstalled)
		}
		return nil, err
	}

	rt, err := r.load(p, component)
	if errors.Is(err, errOrphaned) {
		return nil, fmt.Errorf("%s for %s: %w", component, p, ErrComponentNotInstalled)
	}
	return rt, err
}

// Platforms returns the platforms that have a directory under the root, sorted by name.
func (r *Repository) Platforms() []platform.Platform {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		return nil
	}

	var platforms []platform.Platform
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		p, err := platform.Parse(entry.Name())
		if err != nil {
			continue
		}
		platforms = append(platforms, p)
	}

	sort.Slice(platforms, func(i, j int) bool {
		return platforms[i].String() < platforms[j].String()
	})
	return platforms
}

// load builds the handle of one installed component.
func (r *Repository) load(p platform.Platform, component string) (*runtime.Runtime, error) {
	dir := r.JavaDir(p, component)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, errOrphaned
	}

	executable, err := ResolveExecutable(p, dir)
	if err != nil {
		return nil, err
	}

	m, err := manifest.Read(r.ManifestFile(p, component))
	if err != nil {
		return nil, err
	}

	return runtime.New(executable, m.Info, p, true), nil
}

// expectedScanFailure reports whether err is ordinary on-disk corruption
// rather than something worth reporting.
func expectedScanFailure(err error) bool {
	return manifest.IsParseError(err) || IsExecutableNotFound(err)
}

// validateComponent rejects component names that are not a single path element.
func validateComponent(component string) error {
	switch {
	case component == "", component == ".", component == "..":
		return fmt.Errorf("invalid component name %q", component)
	case strings.ContainsAny(component, `/\`):
		return fmt.Errorf("component name %q must not contain path separators", component)
	}
	return nil
}
