// Package constants defines common constants used across jvmrepo
package constants

// Operating systems as Go reports them
const (
	OSWindows = "windows"
	OSDarwin  = "darwin"
	OSLinux   = "linux"
)

// Operating systems as they appear in repository platform names
const (
	PlatformOSWindows = "windows"
	PlatformOSX       = "osx"
	PlatformOSLinux   = "linux"
)

// CPU architectures as Go reports them
const (
	ArchAMD64 = "amd64"
	ArchARM64 = "arm64"
	Arch386   = "386"
	ArchARM   = "arm"
)

// CPU architectures as they appear in repository platform names
const (
	PlatformArchX64   = "x64"
	PlatformArchX86   = "x86"
	PlatformArchARM64 = "arm64"
	PlatformArchARM32 = "arm32"
)

// User responses
const (
	ResponseYes = "yes"
	ResponseY   = "y"
)

// File extensions
const (
	ExtExe  = ".exe"
	ExtJSON = ".json"
)

// Provenance keys written to a manifest's update block
const (
	UpdateKeyProvider  = "provider"
	UpdateKeyComponent = "component"
)
