// Package repository manages the Java runtimes installed under a root directory.
//
// Each platform gets its own subdirectory. Every installed component consists of
// an installation directory and a sibling manifest file:
//
//	<root>/<platform>/<component>/       the runtime files
//	<root>/<platform>/<component>.json   what was installed, from where
//
// The manifest is written last; a component without one is not installed.
package repository

import (
	"context"

	"github.com/jvmrepo/jvmrepo/src/internal/platform"
	"github.com/jvmrepo/jvmrepo/src/internal/remote"
	"github.com/jvmrepo/jvmrepo/src/internal/runtime"
)

// Downloader materializes the files of a runtime into an installation directory.
type Downloader interface {
	// Name identifies the downloader in the manifest's update block.
	Name() string
	// Download fetches the requested runtime into req.Dir and describes what it wrote.
	Download(ctx context.Context, req DownloadRequest) (*DownloadResult, error)
}

// DownloadRequest tells a Downloader what to fetch and where to put it.
type DownloadRequest struct {
	Dir      string              // Installation directory, created by the downloader if needed
	Version  runtime.JavaVersion // Requested component
	Platform platform.Platform   // Target platform

	// CatalogPlatform is the target platform in catalog naming ("linux", "mac-os-arm64", ...).
	// Empty when the catalog does not publish runtimes for the platform.
	CatalogPlatform string
}

// DownloadResult describes a completed download.
type DownloadResult struct {
	Files   *remote.FileSet
	Version remote.VersionInfo
}

// Prober reads the identity of a java executable.
type Prober interface {
	Probe(ctx context.Context, executable string) (*runtime.Info, error)
}

// Reporter receives failures that are not expected during normal operation.
type Reporter interface {
	Report(err error)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(err error)

// Report calls f(err).
func (f ReporterFunc) Report(err error) {
	f(err)
}

// Repository is a runtime repository rooted at a directory.
// It holds no mutable state; concurrent use is safe, but installs of the same
// component must be serialized by the caller.
type Repository struct {
	root        string
	prober      Prober
	reporter    Reporter
	host        platform.Platform
	catalogName func(platform.Platform) (string, bool)
}

// Option configures a Repository.
type Option func(*Repository)

// WithProber replaces the default exec-based prober.
func WithProber(p Prober) Option {
	return func(r *Repository) {
		r.prober = p
	}
}

// WithReporter sets the sink for unexpected failures.
func WithReporter(rep Reporter) Option {
	return func(r *Repository) {
		r.reporter = rep
	}
}

// WithHost overrides the platform the repository runs on.
func WithHost(p platform.Platform) Option {
	return func(r *Repository) {
		r.host = p
	}
}

// WithCatalogNames overrides the platform-to-catalog mapping passed to downloaders.
func WithCatalogNames(fn func(platform.Platform) (string, bool)) Option {
	return func(r *Repository) {
		r.catalogName = fn
	}
}

// New creates a repository rooted at root.
func New(root string, opts ...Option) *Repository {
	r := &Repository{
		root:        root,
		prober:      runtime.NewExecProber(0),
		host:        platform.Current(),
		catalogName: platform.CatalogName,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Host returns the platform the repository assumes it runs on.
func (r *Repository) Host() platform.Platform {
	return r.host
}

func (r *Repository) report(err error) {
	if r.reporter != nil && err != nil {
		r.reporter.Report(err)
	}
}
