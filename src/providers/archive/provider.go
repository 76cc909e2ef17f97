// Package archive installs a runtime from a single JDK or JRE archive
// (zip, tar.gz or 7z), fetched over HTTP or read from a local path.
package archive

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jvmrepo/jvmrepo/src/internal/download"
	"github.com/jvmrepo/jvmrepo/src/internal/remote"
	"github.com/jvmrepo/jvmrepo/src/internal/repository"
	"github.com/jvmrepo/jvmrepo/src/internal/ui"
)

// Name identifies the provider in manifests.
const Name = "archive"

// Archive locates the archive to install.
type Archive struct {
	Location string // http(s) URL or local path
	SHA256   string // Optional expected checksum of the archive
	Version  string // Optional version name; derived from the file name when empty
}

// Provider installs one archive.
type Provider struct {
	archive Archive
	client  *http.Client
}

// New creates a provider for an archive.
func New(a Archive, client *http.Client) *Provider {
	if client == nil {
		client = http.DefaultClient
	}
	return &Provider{archive: a, client: client}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return Name
}

// Download fetches, verifies and unpacks the archive into req.Dir, replacing its contents.
func (p *Provider) Download(ctx context.Context, req repository.DownloadRequest) (*repository.DownloadResult, error) {
	parent := filepath.Dir(req.Dir)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return nil, err
	}

	// Stage next to the destination so the final move is a rename
	staging, err := os.MkdirTemp(parent, ".download-*")
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.RemoveAll(staging) }()

	archivePath, err := p.fetch(ctx, staging)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	extractDir := filepath.Join(staging, "extract")
	ui.Debug("Extracting %s", archivePath)
	if err := download.Extract(archivePath, extractDir); err != nil {
		return nil, fmt.Errorf("failed to extract archive: %w", err)
	}
	if err := download.StripTopLevelDir(extractDir); err != nil {
		return nil, fmt.Errorf("failed to strip top-level directory: %w", err)
	}

	runtimeRoot := extractDir
	// macOS JDK bundles keep the runtime under Contents/Home
	if home := filepath.Join(extractDir, "Contents", "Home"); isDir(filepath.Join(home, "bin")) {
		runtimeRoot = home
	}

	// Link targets are relative, so scanning before the move describes the final layout
	files, err := Scan(runtimeRoot)
	if err != nil {
		return nil, err
	}

	if err := os.RemoveAll(req.Dir); err != nil {
		return nil, err
	}
	if err := os.Rename(runtimeRoot, req.Dir); err != nil {
		return nil, fmt.Errorf("failed to move runtime into place: %w", err)
	}

	return &repository.DownloadResult{
		Files:   files,
		Version: remote.VersionInfo{Name: p.versionName()},
	}, nil
}

// fetch places the archive (or finds it locally) and verifies its checksum.
func (p *Provider) fetch(ctx context.Context, staging string) (string, error) {
	loc := p.archive.Location
	if loc == "" {
		return "", fmt.Errorf("no archive location")
	}

	if !isRemote(loc) {
		if p.archive.SHA256 != "" {
			if err := download.VerifyFile(loc, download.SHA256, p.archive.SHA256); err != nil {
				return "", err
			}
		}
		return loc, nil
	}

	dest := filepath.Join(staging, archiveName(loc))
	if p.archive.SHA256 == "" {
		ui.Debug("No checksum given for %s", loc)
		return dest, download.File(ctx, p.client, loc, dest)
	}
	return dest, download.FileVerified(ctx, p.client, loc, dest, download.SHA256, p.archive.SHA256)
}

// versionPattern finds a Java version inside an archive name, e.g. "17.0.8+7" or "8u382".
var versionPattern = regexp.MustCompile(`\d+(?:\.\d+)*(?:\+\d+)?(?:u\d+(?:-b\d+)?)?`)

func (p *Provider) versionName() string {
	if p.archive.Version != "" {
		return p.archive.Version
	}
	name := trimArchiveExt(archiveName(p.archive.Location))
	if v := versionPattern.FindString(name); v != "" {
		return v
	}
	return name
}

// Scan describes the runtime installed in dir as a file set, computing
// the SHA-1 of every regular file. Links must resolve inside dir.
func Scan(dir string) (*remote.FileSet, error) {
	set := &remote.FileSet{}
	err := filepath.WalkDir(dir, func(full string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if full == dir {
			return nil
		}
		rel, err := filepath.Rel(dir, full)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)

		info, err := os.Lstat(full)
		if err != nil {
			return err
		}
		switch mode := info.Mode(); {
		case mode&os.ModeSymlink != 0:
			target, err := os.Readlink(full)
			if err != nil {
				return err
			}
			if err := checkLinkTarget(dir, full, target); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			set.Files.Set(key, remote.File{Type: remote.TypeLink, Target: filepath.ToSlash(target)})
		case mode.IsDir():
			set.Files.Set(key, remote.File{Type: remote.TypeDirectory})
		case mode.IsRegular():
			sum, err := download.ComputeSHA1(full)
			if err != nil {
				return err
			}
			set.Files.Set(key, remote.File{
				Type:       remote.TypeFile,
				Executable: mode.Perm()&0111 != 0,
				Downloads: map[string]remote.Download{
					remote.RepresentationRaw: {SHA1: sum, Size: info.Size()},
				},
			})
		default:
			ui.Debug("Skipping %s: unsupported file mode %v", key, mode)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	return set, nil
}

// checkLinkTarget rejects a link at full whose target leaves dir.
func checkLinkTarget(dir, full, target string) error {
	if target == "" {
		return fmt.Errorf("link without target")
	}
	if filepath.IsAbs(target) {
		return fmt.Errorf("absolute link target %q", target)
	}
	resolved := filepath.Join(filepath.Dir(full), target)
	base := filepath.Clean(dir)
	if resolved != base && !strings.HasPrefix(resolved, base+string(os.PathSeparator)) {
		return fmt.Errorf("link target %q escapes the installation directory", target)
	}
	return nil
}

func isRemote(loc string) bool {
	u, err := url.Parse(loc)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

// archiveName returns the file name of a URL or local path.
func archiveName(loc string) string {
	if isRemote(loc) {
		if u, err := url.Parse(loc); err == nil {
			return path.Base(u.Path)
		}
	}
	return filepath.Base(loc)
}

func trimArchiveExt(name string) string {
	for _, ext := range []string{".tar.gz", ".tgz", ".zip", ".7z"} {
		if strings.HasSuffix(strings.ToLower(name), ext) {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
