package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jvmrepo/jvmrepo/src/internal/platform"
	"github.com/jvmrepo/jvmrepo/src/internal/runtime"
	"github.com/jvmrepo/jvmrepo/src/internal/task"
	"github.com/jvmrepo/jvmrepo/src/internal/ui"
)

// Uninstall removes a managed runtime: its manifest first, then its directory.
// Handles that are unmanaged or do not point into the platform root are ignored,
// and removing an already removed runtime succeeds.
func (r *Repository) Uninstall(ctx context.Context, rt *runtime.Runtime) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	component, ok := r.Component(rt)
	if !ok {
		ui.Debug("Not uninstalling %v: not owned by this repository", rt)
		return nil
	}

	return r.remove(rt.Platform, component)
}

// UninstallComponent removes component for p by name. It needs no loadable
// handle, so it also clears installs that Find rejects: a missing executable,
// a malformed manifest, or a directory left without a manifest.
func (r *Repository) UninstallComponent(ctx context.Context, p platform.Platform, component string) error {
	if err := validateComponent(component); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.remove(p, component)
}

// Leftovers reports whether anything of component remains on disk for p.
func (r *Repository) Leftovers(p platform.Platform, component string) bool {
	if validateComponent(component) != nil {
		return false
	}
	for _, path := range []string{r.ManifestFile(p, component), r.JavaDir(p, component)} {
		if _, err := os.Lstat(path); err == nil {
			return true
		}
	}
	return false
}

// remove deletes the manifest first, then the installation directory.
func (r *Repository) remove(p platform.Platform, component string) error {
	manifestPath := r.ManifestFile(p, component)
	if err := os.Remove(manifestPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove manifest %s: %w", manifestPath, err)
	}

	dir := r.JavaDir(p, component)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove %s: %w", dir, err)
	}

	ui.Debug("Uninstalled %s for %s", component, p)
	return nil
}

// StartUninstall runs Uninstall in the background.
func (r *Repository) StartUninstall(ctx context.Context, rt *runtime.Runtime) *task.Task[struct{}] {
	return task.Go(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.Uninstall(ctx, rt)
	})
}

// StartUninstallComponent runs UninstallComponent in the background.
func (r *Repository) StartUninstallComponent(ctx context.Context, p platform.Platform, component string) *task.Task[struct{}] {
	return task.Go(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.UninstallComponent(ctx, p, component)
	})
}

// IsDamaged reports whether err from Find describes an install that exists
// on disk but cannot be loaded.
func IsDamaged(err error) bool {
	return expectedScanFailure(err)
}

// Component returns the name of the managed component that contains rt's binary.
// The binary must sit at least one level below the component directory.
func (r *Repository) Component(rt *runtime.Runtime) (string, bool) {
	if rt == nil || !rt.Managed || rt.Binary == "" {
		return "", false
	}

	root := r.PlatformRoot(rt.Platform)
	bases := []string{root}
	if abs, err := filepath.Abs(root); err == nil && abs != root {
		bases = append(bases, abs)
	}
	// Binaries are symlink-resolved, so compare against the resolved root too
	if resolved, err := filepath.EvalSymlinks(root); err == nil && resolved != root {
		bases = append(bases, resolved)
	}

	for _, base := range bases {
		rel, err := filepath.Rel(base, rt.Binary)
		if err != nil {
			continue
		}
		segments := strings.Split(filepath.ToSlash(rel), "/")
		if len(segments) < 2 {
			continue
		}
		first := segments[0]
		if first == ".." || first == "." || first == "" {
			continue
		}
		return first, true
	}
	return "", false
}
