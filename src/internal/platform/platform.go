// Package platform identifies the operating system and architecture a runtime is built for.
package platform

import (
	"fmt"
	goruntime "runtime"
	"strings"

	"github.com/jvmrepo/jvmrepo/src/internal/constants"
)

// Platform is an operating system and architecture pair, e.g. "linux-x64".
// It is the partition key of the repository layout.
type Platform struct {
	OS   string
	Arch string
}

// Common platforms.
var (
	WindowsX64   = Platform{OS: constants.PlatformOSWindows, Arch: constants.PlatformArchX64}
	WindowsX86   = Platform{OS: constants.PlatformOSWindows, Arch: constants.PlatformArchX86}
	WindowsARM64 = Platform{OS: constants.PlatformOSWindows, Arch: constants.PlatformArchARM64}
	OSXX64       = Platform{OS: constants.PlatformOSX, Arch: constants.PlatformArchX64}
	OSXARM64     = Platform{OS: constants.PlatformOSX, Arch: constants.PlatformArchARM64}
	LinuxX64     = Platform{OS: constants.PlatformOSLinux, Arch: constants.PlatformArchX64}
	LinuxX86     = Platform{OS: constants.PlatformOSLinux, Arch: constants.PlatformArchX86}
	LinuxARM64   = Platform{OS: constants.PlatformOSLinux, Arch: constants.PlatformArchARM64}
	LinuxARM32   = Platform{OS: constants.PlatformOSLinux, Arch: constants.PlatformArchARM32}
)

// String returns the "<os>-<arch>" form used for directory names.
func (p Platform) String() string {
	return p.OS + "-" + p.Arch
}

// IsZero reports whether p is the zero value.
func (p Platform) IsZero() bool {
	return p.OS == "" && p.Arch == ""
}

// IsWindows reports whether the platform is a Windows platform.
func (p Platform) IsWindows() bool {
	return p.OS == constants.PlatformOSWindows
}

// IsOSX reports whether the platform is a macOS platform.
func (p Platform) IsOSX() bool {
	return p.OS == constants.PlatformOSX
}

// Parse parses a platform string such as "linux-x64".
func Parse(s string) (Platform, error) {
	s = strings.TrimSpace(s)
	idx := strings.LastIndex(s, "-")
	if idx <= 0 || idx == len(s)-1 {
		return Platform{}, fmt.Errorf("invalid platform %q: expected <os>-<arch>", s)
	}
	return Platform{OS: s[:idx], Arch: s[idx+1:]}, nil
}

// MarshalText implements encoding.TextMarshaler.
func (p Platform) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Platform) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Current returns the platform of the running process.
func Current() Platform {
	return FromGo(goruntime.GOOS, goruntime.GOARCH)
}

// FromGo maps Go's GOOS/GOARCH names onto repository platform names.
func FromGo(goos, goarch string) Platform {
	os := goos
	if goos == constants.OSDarwin {
		os = constants.PlatformOSX
	}

	arch := goarch
	switch goarch {
	case constants.ArchAMD64:
		arch = constants.PlatformArchX64
	case constants.Arch386:
		arch = constants.PlatformArchX86
	case constants.ArchARM:
		arch = constants.PlatformArchARM32
	}

	return Platform{OS: os, Arch: arch}
}

// catalogNames maps platforms to the identifiers used by the Mojang runtime catalog.
var catalogNames = map[Platform]string{
	WindowsX64:   "windows-x64",
	WindowsX86:   "windows-x86",
	WindowsARM64: "windows-arm64",
	OSXX64:       "mac-os",
	OSXARM64:     "mac-os-arm64",
	LinuxX64:     "linux",
	LinuxX86:     "linux-i386",
}

// CatalogName translates a platform into the identifier a remote runtime catalog expects.
// The second result is false when the catalog does not publish runtimes for the platform.
func CatalogName(p Platform) (string, bool) {
	name, ok := catalogNames[p]
	return name, ok
}

// Probeable reports whether an executable built for p can be run on host,
// which is what probing its identity requires.
func (p Platform) Probeable(host Platform) bool {
	if p == host {
		return true
	}
	if p.OS != host.OS {
		return false
	}

	switch {
	case host.Arch == constants.PlatformArchX64 && p.Arch == constants.PlatformArchX86:
		// 32-bit x86 binaries run on x64 Windows and Linux hosts
		return p.OS == constants.PlatformOSWindows || p.OS == constants.PlatformOSLinux
	case host.Arch == constants.PlatformArchARM64 && p.Arch == constants.PlatformArchX64:
		// Emulated through Rosetta 2 / Windows on ARM
		return p.OS == constants.PlatformOSWindows || p.OS == constants.PlatformOSX
	default:
		return false
	}
}
