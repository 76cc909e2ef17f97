package download

import (
	"context"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/jvmrepo/jvmrepo/src/internal/ui"
)

// Algorithm names a checksum algorithm
type Algorithm string

// Supported checksum algorithms
const (
	SHA1   Algorithm = "sha1"
	SHA256 Algorithm = "sha256"
)

// New returns a fresh hasher for the algorithm.
func (a Algorithm) New() (hash.Hash, error) {
	switch a {
	case SHA1:
		return sha1.New(), nil
	case SHA256:
		return sha256.New(), nil
	default:
		return nil, fmt.Errorf("unsupported checksum algorithm %q", a)
	}
}

// ErrChecksumMismatch is returned when the downloaded file's checksum doesn't match.
type ErrChecksumMismatch struct {
	Path     string
	Expected string
	Actual   string
}

func (e *ErrChecksumMismatch) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("checksum mismatch: expected %s, got %s", e.Expected, e.Actual)
	}
	return fmt.Sprintf("checksum mismatch for %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

// FileVerified downloads a file from a URL and verifies its checksum.
// If the checksum doesn't match, the file is deleted and an error is returned.
func FileVerified(ctx context.Context, client *http.Client, url, destPath string, algo Algorithm, expected string) error {
	ui.Debug("Starting verified download: %s", url)
	ui.Debug("Expected %s: %s", algo, expected)

	hasher, err := algo.New()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return err
	}

	body, size, err := Open(ctx, client, url)
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	bar := BytesBar(size, "Downloading")
	if _, err := io.Copy(io.MultiWriter(out, bar, hasher), body); err != nil {
		ui.Debug("Download failed: %v", err)
		_ = out.Close()
		_ = os.Remove(destPath) // Clean up partial download
		return err
	}
	_ = bar.Finish()

	actual := hex.EncodeToString(hasher.Sum(nil))
	ui.Debug("Actual %s: %s", algo, actual)

	if !sameChecksum(expected, actual) {
		ui.Debug("Checksum mismatch! Removing downloaded file.")
		_ = out.Close()
		_ = os.Remove(destPath)
		return &ErrChecksumMismatch{Path: destPath, Expected: expected, Actual: actual}
	}

	ui.Debug("Checksum verified successfully")
	return nil
}

// VerifyFile checks if an existing file matches the expected checksum.
func VerifyFile(filePath string, algo Algorithm, expected string) error {
	actual, err := ComputeHash(filePath, algo)
	if err != nil {
		return err
	}
	if !sameChecksum(expected, actual) {
		return &ErrChecksumMismatch{Path: filePath, Expected: expected, Actual: actual}
	}
	return nil
}

// ComputeHash computes the checksum of a file.
func ComputeHash(filePath string, algo Algorithm) (string, error) {
	hasher, err := algo.New()
	if err != nil {
		return "", err
	}

	f, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(hasher, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// ComputeSHA1 computes the SHA-1 checksum of a file.
func ComputeSHA1(filePath string) (string, error) {
	return ComputeHash(filePath, SHA1)
}

// ComputeSHA256 computes the SHA256 checksum of a file.
func ComputeSHA256(filePath string) (string, error) {
	return ComputeHash(filePath, SHA256)
}

// sameChecksum compares hex digests ignoring case and surrounding whitespace.
func sameChecksum(expected, actual string) bool {
	return strings.EqualFold(strings.TrimSpace(expected), strings.TrimSpace(actual))
}
