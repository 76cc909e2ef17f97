// Package mojang installs runtimes published in the Mojang Java runtime catalog.
//
// A catalog entry points to a file set listing every file, directory and link of
// the runtime. Files are fetched individually, preferring the LZMA representation
// when one is offered, and checked against the SHA-1 of their raw content.
package mojang

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/jvmrepo/jvmrepo/src/internal/catalog"
	"github.com/jvmrepo/jvmrepo/src/internal/download"
	"github.com/jvmrepo/jvmrepo/src/internal/manifest"
	"github.com/jvmrepo/jvmrepo/src/internal/remote"
	"github.com/jvmrepo/jvmrepo/src/internal/repository"
	"github.com/jvmrepo/jvmrepo/src/internal/ui"
	"golang.org/x/sync/errgroup"
)

// Name identifies the provider in manifests.
const Name = "mojang"

// DefaultWorkers is the number of files downloaded concurrently.
const DefaultWorkers = 8

// Provider downloads runtimes described by a catalog.
type Provider struct {
	source  catalog.Source
	client  *http.Client
	workers int
}

// New creates a provider reading the given catalog.
func New(source catalog.Source, client *http.Client, workers int) *Provider {
	if client == nil {
		client = http.DefaultClient
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Provider{
		source:  source,
		client:  client,
		workers: workers,
	}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return Name
}

// Download resolves the requested component in the catalog and writes its files into req.Dir.
func (p *Provider) Download(ctx context.Context, req repository.DownloadRequest) (*repository.DownloadResult, error) {
	if req.CatalogPlatform == "" {
		return nil, &catalog.ErrComponentNotFound{Component: req.Version.Component}
	}

	idx, err := p.source.GetIndex(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	entry, err := idx.Lookup(req.CatalogPlatform, req.Version.Component)
	if err != nil {
		return nil, err
	}
	ui.Debug("Catalog: %s for %s is %s", req.Version.Component, req.CatalogPlatform, entry.Version.Name)

	files, err := catalog.FetchFileSet(ctx, p.client, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch file set: %w", err)
	}

	if err := p.Materialize(ctx, req.Dir, files); err != nil {
		return nil, err
	}

	return &repository.DownloadResult{Files: files, Version: entry.Version}, nil
}

// job is one entry of a file set, resolved to its location on disk.
type job struct {
	path string
	full string
	file remote.File
}

// Materialize writes a file set into dir: directories first, then files, then links.
// Files already present with the right content are kept.
func (p *Provider) Materialize(ctx context.Context, dir string, files *remote.FileSet) error {
	var dirs, regular, links []job
	var invalid error
	files.Files.Range(func(path string, f remote.File) bool {
		if invalid = manifest.ValidatePath(path); invalid != nil {
			return false
		}
		j := job{path: path, full: filepath.Join(dir, filepath.FromSlash(path)), file: f}
		switch f.Type {
		case remote.TypeDirectory:
			dirs = append(dirs, j)
		case remote.TypeFile:
			regular = append(regular, j)
		case remote.TypeLink:
			links = append(links, j)
		default:
			ui.Debug("Skipping %s: unknown type %q", path, f.Type)
		}
		return true
	})
	if invalid != nil {
		return invalid
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, j := range dirs {
		if err := os.MkdirAll(j.full, 0755); err != nil {
			return err
		}
	}

	bar := download.CountBar(len(regular), "Downloading files")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for _, j := range regular {
		g.Go(func() error {
			if err := p.fetchFile(gctx, j.full, j.file); err != nil {
				return fmt.Errorf("%s: %w", j.path, err)
			}
			_ = bar.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	_ = bar.Finish()

	for _, j := range links {
		if err := createLink(dir, j); err != nil {
			return fmt.Errorf("%s: %w", j.path, err)
		}
	}

	return nil
}

// fetchFile downloads one file to full through a temporary sibling.
func (p *Provider) fetchFile(ctx context.Context, full string, f remote.File) error {
	mode := os.FileMode(0644)
	if f.Executable {
		mode = 0755
	}

	raw, hasRaw := f.Raw()
	if hasRaw && alreadyPresent(full, raw) {
		ui.Debug("Keeping %s", full)
		return os.Chmod(full, mode)
	}

	src, compressed := f.LZMA()
	if !compressed {
		if !hasRaw {
			return fmt.Errorf("no downloadable representation")
		}
		src = raw
	}

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return err
	}

	body, _, err := download.Open(ctx, p.client, src.URL)
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()

	tmp := full + ".part"
	out, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}

	hasher := sha1.New()
	w := io.MultiWriter(out, hasher)
	if compressed {
		_, err = download.DecompressLZMA(w, body)
	} else {
		_, err = io.Copy(w, body)
	}
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return err
	}

	if hasRaw {
		actual := hex.EncodeToString(hasher.Sum(nil))
		if !strings.EqualFold(actual, raw.SHA1) {
			_ = os.Remove(tmp)
			return &download.ErrChecksumMismatch{Path: full, Expected: raw.SHA1, Actual: actual}
		}
	}

	if err := os.Rename(tmp, full); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Chmod(full, mode)
}

// alreadyPresent reports whether full already holds the raw content.
func alreadyPresent(full string, raw remote.Download) bool {
	info, err := os.Lstat(full)
	if err != nil || !info.Mode().IsRegular() || info.Size() != raw.Size {
		return false
	}
	sum, err := download.ComputeSHA1(full)
	return err == nil && strings.EqualFold(sum, raw.SHA1)
}

// createLink replaces whatever is at the link's path with a symlink.
// Relative targets must resolve inside dir.
func createLink(dir string, j job) error {
	target := filepath.FromSlash(j.file.Target)
	if target == "" {
		return fmt.Errorf("link without target")
	}
	if filepath.IsAbs(target) {
		return fmt.Errorf("absolute link target %q", j.file.Target)
	}

	resolved := filepath.Join(filepath.Dir(j.full), target)
	base := filepath.Clean(dir)
	if resolved != base && !strings.HasPrefix(resolved, base+string(os.PathSeparator)) {
		return fmt.Errorf("link target %q escapes the installation directory", j.file.Target)
	}

	if err := os.MkdirAll(filepath.Dir(j.full), 0755); err != nil {
		return err
	}
	if err := os.Remove(j.full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Symlink(target, j.full)
}
