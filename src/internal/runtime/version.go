package runtime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jvmrepo/jvmrepo/src/internal/platform"
)

// Info identifies an installed Java runtime
type Info struct {
	Platform platform.Platform `json:"platform"`
	Version  string            `json:"version"`
	Vendor   string            `json:"vendor,omitempty"`
	Bits     int               `json:"bits,omitempty"`
}

// Major returns the Java feature release number, e.g. 8 for "1.8.0_51" and 17 for "17.0.8".
// It returns 0 if the version string cannot be parsed.
func (i Info) Major() int {
	return ParseMajor(i.Version)
}

// String returns a formatted string representation
func (i Info) String() string {
	if i.Vendor == "" {
		return fmt.Sprintf("%s (%s)", i.Version, i.Platform)
	}
	return fmt.Sprintf("%s %s (%s)", i.Vendor, i.Version, i.Platform)
}

// ParseMajor extracts the feature release number from a Java version string.
func ParseMajor(version string) int {
	version = strings.TrimSpace(version)
	version = strings.TrimPrefix(version, "jdk-")

	end := strings.IndexAny(version, "+-_ ")
	if end >= 0 {
		version = version[:end]
	}

	parts := strings.Split(version, ".")
	first, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}

	// Legacy "1.x" numbering
	if first == 1 && len(parts) > 1 {
		second, err := strconv.Atoi(parts[1])
		if err != nil {
			return 0
		}
		return second
	}
	return first
}
