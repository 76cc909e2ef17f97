package repository

import (
	"path/filepath"

	"github.com/jvmrepo/jvmrepo/src/internal/constants"
	"github.com/jvmrepo/jvmrepo/src/internal/platform"
)

// Root returns the repository root directory.
func (r *Repository) Root() string {
	return r.root
}

// PlatformRoot returns the directory holding all runtimes for a platform.
func (r *Repository) PlatformRoot(p platform.Platform) string {
	return filepath.Join(r.root, p.String())
}

// JavaDir returns the installation directory of a component.
func (r *Repository) JavaDir(p platform.Platform, name string) string {
	return filepath.Join(r.PlatformRoot(p), name)
}

// ManifestFile returns the manifest path of a component, a sibling of its installation directory.
func (r *Repository) ManifestFile(p platform.Platform, name string) string {
	return filepath.Join(r.PlatformRoot(p), name+constants.ExtJSON)
}
