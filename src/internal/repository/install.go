package repository

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jvmrepo/jvmrepo/src/internal/manifest"
	"github.com/jvmrepo/jvmrepo/src/internal/platform"
	"github.com/jvmrepo/jvmrepo/src/internal/remote"
	"github.com/jvmrepo/jvmrepo/src/internal/runtime"
	"github.com/jvmrepo/jvmrepo/src/internal/task"
	"github.com/jvmrepo/jvmrepo/src/internal/ui"
)

// Install downloads v for p with d and records it in a manifest.
// Installing an already installed component replaces it: the old manifest is
// removed before the downloader touches the directory.
// The manifest write is the commit point: on any earlier failure no
// manifest is left, although downloaded files may remain.
func (r *Repository) Install(ctx context.Context, d Downloader, p platform.Platform, v runtime.JavaVersion) (*runtime.Runtime, error) {
	rt, err := r.install(ctx, d, p, v)
	if err != nil {
		return nil, &InstallError{Component: v.Component, Platform: p, Err: err}
	}
	return rt, nil
}

// StartInstall runs Install in the background.
func (r *Repository) StartInstall(ctx context.Context, d Downloader, p platform.Platform, v runtime.JavaVersion) *task.Task[*runtime.Runtime] {
	return task.Go(ctx, func(ctx context.Context) (*runtime.Runtime, error) {
		return r.Install(ctx, d, p, v)
	})
}

func (r *Repository) install(ctx context.Context, d Downloader, p platform.Platform, v runtime.JavaVersion) (*runtime.Runtime, error) {
	if err := validateComponent(v.Component); err != nil {
		return nil, err
	}
	if d == nil {
		return nil, errors.New("no downloader")
	}

	dir := r.JavaDir(p, v.Component)
	catalogPlatform, _ := r.catalogName(p)

	ui.Debug("Installing %s for %s into %s with %s", v.Component, p, dir, d.Name())

	manifestPath := r.ManifestFile(p, v.Component)
	if err := os.Remove(manifestPath); err == nil {
		ui.Debug("Removed previous manifest %s", manifestPath)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("remove previous manifest: %w", err)
	}

	result, err := d.Download(ctx, DownloadRequest{
		Dir:             dir,
		Version:         v,
		Platform:        p,
		CatalogPlatform: catalogPlatform,
	})
	if err != nil {
		return nil, err
	}
	if result == nil || result.Files == nil {
		return nil, fmt.Errorf("%s returned no file set", d.Name())
	}

	executable, err := ResolveExecutable(p, dir)
	if err != nil {
		return nil, err
	}

	info, err := r.identify(ctx, p, executable, result.Version)
	if err != nil {
		return nil, err
	}

	m := manifest.New(*info, d.Name(), v.Component)
	if err := addFiles(m, result.Files); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := manifest.Write(manifestPath, m); err != nil {
		return nil, err
	}

	ui.Debug("Installed %s %s (%d entries)", v.Component, info.Version, m.Files.Len())
	return runtime.New(executable, *info, p, true), nil
}

// identify probes the executable when the host can run it, and otherwise
// falls back to the version name the download declared.
func (r *Repository) identify(ctx context.Context, p platform.Platform, executable string, version remote.VersionInfo) (*runtime.Info, error) {
	if !p.Probeable(r.host) {
		ui.Debug("%s cannot run on %s, using declared version %q", p, r.host, version.Name)
		return &runtime.Info{Platform: p, Version: version.Name}, nil
	}

	probed, err := r.prober.Probe(ctx, executable)
	if err != nil || probed == nil {
		return nil, &ArtifactMalformedError{Executable: executable, Err: err}
	}

	info := *probed
	if info.Platform.IsZero() {
		info.Platform = p
	}
	return &info, nil
}

// addFiles translates a remote file set into manifest entries.
func addFiles(m *manifest.Manifest, files *remote.FileSet) error {
	var err error
	files.Files.Range(func(path string, f remote.File) bool {
		if err = manifest.ValidatePath(path); err != nil {
			return false
		}

		switch f.Type {
		case remote.TypeFile:
			raw, ok := f.Raw()
			if !ok {
				ui.Debug("Not recording %s: no raw download", path)
				return true
			}
			m.Files.Set(path, manifest.File(raw.SHA1, raw.Size))
		case remote.TypeDirectory:
			m.Files.Set(path, manifest.Directory())
		case remote.TypeLink:
			m.Files.Set(path, manifest.Link(f.Target))
		default:
			ui.Debug("Not recording %s: unknown type %q", path, f.Type)
		}
		return true
	})
	return err
}
