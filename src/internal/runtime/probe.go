package runtime

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/jvmrepo/jvmrepo/src/internal/constants"
	"github.com/jvmrepo/jvmrepo/src/internal/platform"
	"github.com/jvmrepo/jvmrepo/src/internal/ui"
)

// DefaultProbeTimeout bounds how long a java executable may take to report its settings.
const DefaultProbeTimeout = 15 * time.Second

// ExecProber reads a runtime's identity by running it with -XshowSettings.
type ExecProber struct {
	Timeout time.Duration
}

// NewExecProber creates a prober with the given timeout (DefaultProbeTimeout if zero).
func NewExecProber(timeout time.Duration) *ExecProber {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &ExecProber{Timeout: timeout}
}

// Probe runs the executable and parses the property dump it prints.
func (p *ExecProber) Probe(ctx context.Context, executable string) (*Info, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ui.Debug("Probing %s", executable)

	// The settings dump goes to stderr; -version makes the JVM exit right after.
	cmd := exec.CommandContext(ctx, executable, "-XshowSettings:properties", "-version")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", executable, err)
	}

	return ParseSettings(string(output))
}

// ParseSettings extracts runtime identity from `java -XshowSettings:properties` output.
func ParseSettings(output string) (*Info, error) {
	props := make(map[string]string)

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		key, value, ok := strings.Cut(line, " = ")
		if !ok {
			continue
		}
		props[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	version := props["java.version"]
	if version == "" {
		return nil, fmt.Errorf("java.version not reported")
	}

	info := &Info{
		Platform: platformFromProperties(props["os.name"], props["os.arch"]),
		Version:  version,
		Vendor:   props["java.vendor"],
	}
	if bits, err := strconv.Atoi(props["sun.arch.data.model"]); err == nil {
		info.Bits = bits
	}
	return info, nil
}

// platformFromProperties maps os.name/os.arch system properties onto a platform.
// Unknown values yield the zero platform.
func platformFromProperties(osName, osArch string) platform.Platform {
	var os string
	lower := strings.ToLower(osName)
	switch {
	case strings.HasPrefix(lower, "windows"):
		os = constants.PlatformOSWindows
	case strings.HasPrefix(lower, "mac"), strings.HasPrefix(lower, "darwin"):
		os = constants.PlatformOSX
	case strings.HasPrefix(lower, "linux"):
		os = constants.PlatformOSLinux
	default:
		return platform.Platform{}
	}

	var arch string
	switch strings.ToLower(osArch) {
	case "amd64", "x86_64", "x64":
		arch = constants.PlatformArchX64
	case "x86", "i386", "i486", "i586", "i686":
		arch = constants.PlatformArchX86
	case "aarch64", "arm64":
		arch = constants.PlatformArchARM64
	case "arm", "arm32", "aarch32":
		arch = constants.PlatformArchARM32
	default:
		return platform.Platform{}
	}

	return platform.Platform{OS: os, Arch: arch}
}
