// Package runtime defines the Java runtime handle, its identity and how that identity is probed.
package runtime

import (
	"fmt"

	"github.com/jvmrepo/jvmrepo/src/internal/platform"
)

// Runtime is one usable Java installation.
// Values are never modified after construction; a reinstall produces a new Runtime.
type Runtime struct {
	Binary   string            // Absolute, symlink-resolved path to the java executable
	Info     Info              // Version identity
	Platform platform.Platform // Platform the runtime was installed for
	Managed  bool              // True if the repository owns (and may uninstall) this runtime
}

// New creates a runtime handle.
func New(binary string, info Info, p platform.Platform, managed bool) *Runtime {
	return &Runtime{
		Binary:   binary,
		Info:     info,
		Platform: p,
		Managed:  managed,
	}
}

// String returns a formatted string representation
func (r *Runtime) String() string {
	marker := ""
	if !r.Managed {
		marker = " (unmanaged)"
	}
	return fmt.Sprintf("%s %s%s", r.Info.Version, r.Binary, marker)
}

// JavaVersion is a request for a runtime component, as declared by the workload that needs it.
type JavaVersion struct {
	Component    string `json:"component"`    // e.g. "java-runtime-gamma", "17"
	MajorVersion int    `json:"majorVersion"` // Feature release the workload expects
}

// String returns a formatted string representation
func (v JavaVersion) String() string {
	if v.MajorVersion == 0 {
		return v.Component
	}
	return fmt.Sprintf("%s (Java %d)", v.Component, v.MajorVersion)
}
