package repository

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jvmrepo/jvmrepo/src/internal/constants"
	"github.com/jvmrepo/jvmrepo/src/internal/platform"
)

// executableLayout computes where a layout expects the java executable inside dir.
type executableLayout func(p platform.Platform, dir string) string

// standardLayout is bin/java (bin/java.exe on Windows).
func standardLayout(p platform.Platform, dir string) string {
	name := "java"
	if p.IsWindows() {
		name += constants.ExtExe
	}
	return filepath.Join(dir, "bin", name)
}

// bundleLayout is the macOS application bundle layout.
func bundleLayout(_ platform.Platform, dir string) string {
	return filepath.Join(dir, "jre.bundle", "Contents", "Home", "bin", "java")
}

// executableLayouts returns the layouts to try for a platform, in order.
func executableLayouts(p platform.Platform) []executableLayout {
	if p.IsOSX() {
		return []executableLayout{standardLayout, bundleLayout}
	}
	return []executableLayout{standardLayout}
}

// ResolveExecutable finds the java executable of the runtime installed in dir
// and returns its absolute, symlink-resolved path.
func ResolveExecutable(p platform.Platform, dir string) (string, error) {
	var tried []string
	for _, layout := range executableLayouts(p) {
		candidate := layout(p, dir)
		tried = append(tried, candidate)

		resolved, err := realPath(candidate)
		if err != nil {
			continue
		}
		return resolved, nil
	}
	return "", &ExecutableNotFoundError{Dir: dir, Tried: tried}
}

// realPath resolves symlinks and requires the result to be a regular file.
func realPath(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", err
	}
	resolved, err = filepath.Abs(resolved)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%s is not a regular file", resolved)
	}
	return resolved, nil
}
