// Package system finds Java runtimes installed outside the repository,
// from JAVA_HOME and the PATH. They are reported as unmanaged runtimes.
package system

import (
	"context"
	"os"
	"path/filepath"
	goruntime "runtime"
	"strings"

	"github.com/jvmrepo/jvmrepo/src/internal/constants"
	"github.com/jvmrepo/jvmrepo/src/internal/platform"
	"github.com/jvmrepo/jvmrepo/src/internal/runtime"
	"github.com/jvmrepo/jvmrepo/src/internal/ui"
)

// Prober reads the identity of a java executable.
type Prober interface {
	Probe(ctx context.Context, executable string) (*runtime.Info, error)
}

// Detector looks for system runtimes.
type Detector struct {
	prober  Prober
	exclude string // Executables below this directory are skipped
	getenv  func(string) string
	goos    string
}

// NewDetector creates a detector that ignores runtimes below exclude,
// typically the repository root.
func NewDetector(prober Prober, exclude string) *Detector {
	if exclude != "" {
		if abs, err := filepath.Abs(exclude); err == nil {
			exclude = abs
		}
		// Candidates are symlink-resolved, so the exclusion must be too
		if resolved, err := filepath.EvalSymlinks(exclude); err == nil {
			exclude = resolved
		}
	}
	return &Detector{
		prober:  prober,
		exclude: exclude,
		getenv:  os.Getenv,
		goos:    goruntime.GOOS,
	}
}

// Candidates returns the java executables found through JAVA_HOME and the PATH,
// symlink-resolved and without duplicates. JAVA_HOME comes first.
func (d *Detector) Candidates() []string {
	name := "java"
	if d.goos == constants.OSWindows {
		name += constants.ExtExe
	}

	var dirs []string
	if home := d.getenv("JAVA_HOME"); home != "" {
		dirs = append(dirs, filepath.Join(home, "bin"))
	}
	dirs = append(dirs, filepath.SplitList(d.getenv("PATH"))...)

	seen := make(map[string]bool)
	var found []string
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		resolved, ok := executable(filepath.Join(dir, name))
		if !ok || seen[resolved] || d.excluded(resolved) {
			continue
		}
		seen[resolved] = true
		found = append(found, resolved)
	}
	return found
}

// Detect probes every candidate and returns the runtimes that answered.
func (d *Detector) Detect(ctx context.Context) []*runtime.Runtime {
	runtimes := make([]*runtime.Runtime, 0)
	for _, exe := range d.Candidates() {
		if ctx.Err() != nil {
			break
		}
		info, err := d.prober.Probe(ctx, exe)
		if err != nil || info == nil {
			ui.Debug("Ignoring %s: %v", exe, err)
			continue
		}
		p := info.Platform
		if p.IsZero() {
			p = platform.Current()
		}
		runtimes = append(runtimes, runtime.New(exe, *info, p, false))
	}
	return runtimes
}

func (d *Detector) excluded(path string) bool {
	if d.exclude == "" {
		return false
	}
	rel, err := filepath.Rel(d.exclude, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// executable resolves path to a regular file with an execute bit (any file on Windows).
func executable(path string) (string, bool) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", false
	}
	info, err := os.Stat(resolved)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	if goruntime.GOOS != constants.OSWindows && info.Mode().Perm()&0111 == 0 {
		return "", false
	}
	if abs, err := filepath.Abs(resolved); err == nil {
		resolved = abs
	}
	return resolved, true
}
