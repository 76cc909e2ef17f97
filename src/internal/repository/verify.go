package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jvmrepo/jvmrepo/src/internal/download"
	"github.com/jvmrepo/jvmrepo/src/internal/manifest"
	"github.com/jvmrepo/jvmrepo/src/internal/platform"
)

// ProblemKind classifies a difference between a manifest and the disk
type ProblemKind string

// Problem kinds reported by Verify
const (
	ProblemMissing    ProblemKind = "missing"
	ProblemWrongType  ProblemKind = "wrong-type"
	ProblemSize       ProblemKind = "size"
	ProblemHash       ProblemKind = "hash"
	ProblemLinkTarget ProblemKind = "link-target"
)

// Problem is one manifest entry that does not match the installation.
type Problem struct {
	Path     string
	Kind     ProblemKind
	Expected string
	Actual   string
}

func (p Problem) String() string {
	if p.Expected == "" && p.Actual == "" {
		return fmt.Sprintf("%s: %s", p.Path, p.Kind)
	}
	return fmt.Sprintf("%s: %s (expected %s, got %s)", p.Path, p.Kind, p.Expected, p.Actual)
}

// VerifyOptions controls how thoroughly Verify checks files.
type VerifyOptions struct {
	Hashes bool // Recompute SHA-1 of every regular file
}

// VerifyReport is the outcome of checking an installation against its manifest.
type VerifyReport struct {
	Component string
	Platform  platform.Platform
	Manifest  *manifest.Manifest
	Checked   int
	Problems  []Problem
	Extra     []string // Paths on disk that the manifest does not list
}

// OK reports whether every manifest entry matched.
func (r *VerifyReport) OK() bool {
	return len(r.Problems) == 0
}

// Verify checks an installed component against its manifest.
func (r *Repository) Verify(ctx context.Context, p platform.Platform, component string, opts VerifyOptions) (*VerifyReport, error) {
	if err := validateComponent(component); err != nil {
		return nil, err
	}

	manifestPath := r.ManifestFile(p, component)
	m, err := manifest.Read(manifestPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s for %s: %w", component, p, ErrComponentNotInstalled)
		}
		return nil, err
	}

	dir := r.JavaDir(p, component)
	report := &VerifyReport{Component: component, Platform: p, Manifest: m}

	var walkErr error
	m.Files.Range(func(path string, f manifest.LocalFile) bool {
		if walkErr = ctx.Err(); walkErr != nil {
			return false
		}
		report.Checked++
		if problem, ok := checkEntry(filepath.Join(dir, filepath.FromSlash(path)), path, f, opts); !ok {
			report.Problems = append(report.Problems, problem)
		}
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}

	actual, err := Inventory(dir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	for _, path := range actual {
		if _, ok := m.Files.Get(path); !ok {
			report.Extra = append(report.Extra, path)
		}
	}

	return report, nil
}

// checkEntry compares one manifest entry with the file at full.
func checkEntry(full, path string, f manifest.LocalFile, opts VerifyOptions) (Problem, bool) {
	info, err := os.Lstat(full)
	if err != nil {
		return Problem{Path: path, Kind: ProblemMissing}, false
	}

	actualType := typeOf(info)
	if actualType != f.Type {
		return Problem{Path: path, Kind: ProblemWrongType, Expected: string(f.Type), Actual: string(actualType)}, false
	}

	switch f.Type {
	case manifest.TypeFile:
		if info.Size() != f.Size {
			return Problem{
				Path:     path,
				Kind:     ProblemSize,
				Expected: fmt.Sprint(f.Size),
				Actual:   fmt.Sprint(info.Size()),
			}, false
		}
		if opts.Hashes {
			sum, err := download.ComputeSHA1(full)
			if err != nil {
				return Problem{Path: path, Kind: ProblemHash, Expected: f.Hash, Actual: err.Error()}, false
			}
			if !strings.EqualFold(sum, f.Hash) {
				return Problem{Path: path, Kind: ProblemHash, Expected: f.Hash, Actual: sum}, false
			}
		}
	case manifest.TypeLink:
		target, err := os.Readlink(full)
		if err != nil || filepath.ToSlash(target) != f.Target {
			return Problem{Path: path, Kind: ProblemLinkTarget, Expected: f.Target, Actual: target}, false
		}
	}
	return Problem{}, true
}

func typeOf(info os.FileInfo) manifest.FileType {
	switch mode := info.Mode(); {
	case mode&os.ModeSymlink != 0:
		return manifest.TypeLink
	case mode.IsDir():
		return manifest.TypeDirectory
	case mode.IsRegular():
		return manifest.TypeFile
	default:
		return manifest.FileType(mode.Type().String())
	}
}

// Inventory lists every path below dir, slash-separated and sorted.
// Symlinks are listed but not followed.
func Inventory(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	sort.Strings(paths)
	return paths, err
}
