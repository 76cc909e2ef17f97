package download

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// Extract unpacks an archive into destDir, choosing the format by file extension.
func Extract(archivePath, destDir string) error {
	lower := strings.ToLower(archivePath)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return ExtractZip(archivePath, destDir)
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return ExtractTarGz(archivePath, destDir)
	case strings.HasSuffix(lower, ".7z"):
		return Extract7z(archivePath, destDir)
	default:
		return fmt.Errorf("unsupported archive format: %s", filepath.Base(archivePath))
	}
}

// ExtractZip extracts a zip archive to a destination directory
func ExtractZip(zipPath, destDir string) error {
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer func() { _ = reader.Close() }()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return err
	}

	for _, file := range reader.File {
		if err := extractEntry(destDir, file.Name, file.FileInfo(), file.Open); err != nil {
			return fmt.Errorf("failed to extract %s: %w", file.Name, err)
		}
	}

	return nil
}

// Extract7z extracts a 7-Zip archive to a destination directory
func Extract7z(archivePath, destDir string) error {
	reader, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return err
	}
	defer func() { _ = reader.Close() }()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return err
	}

	for _, file := range reader.File {
		if err := extractEntry(destDir, file.Name, file.FileInfo(), file.Open); err != nil {
			return fmt.Errorf("failed to extract %s: %w", file.Name, err)
		}
	}

	return nil
}

// extractEntry writes one zip-like archive entry (a directory or a regular file).
func extractEntry(destDir, name string, info os.FileInfo, open func() (io.ReadCloser, error)) error {
	destPath, err := safeJoin(destDir, name)
	if err != nil {
		return err
	}

	if info.IsDir() {
		return os.MkdirAll(destPath, 0755)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return err
	}

	src, err := open()
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	return writeFile(destPath, src, info.Mode().Perm())
}

// ExtractTarGz extracts a tar.gz archive to a destination directory
func ExtractTarGz(tarGzPath, destDir string) error {
	file, err := os.Open(tarGzPath)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	gzReader, err := gzip.NewReader(file)
	if err != nil {
		return err
	}
	defer func() { _ = gzReader.Close() }()

	tarReader := tar.NewReader(gzReader)

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return err
	}

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		if err := extractTarFile(header, tarReader, destDir); err != nil {
			return fmt.Errorf("failed to extract %s: %w", header.Name, err)
		}
	}

	return nil
}

func extractTarFile(header *tar.Header, reader io.Reader, destDir string) error {
	destPath, err := safeJoin(destDir, header.Name)
	if err != nil {
		return err
	}

	switch header.Typeflag {
	case tar.TypeDir:
		return os.MkdirAll(destPath, 0755)

	case tar.TypeReg:
		if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
			return err
		}
		return writeFile(destPath, reader, os.FileMode(header.Mode).Perm())

	case tar.TypeSymlink:
		if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
			return err
		}
		// Relative targets must stay inside the extraction
		if !filepath.IsAbs(header.Linkname) {
			if _, err := safeJoin(destDir, filepath.Join(filepath.Dir(header.Name), header.Linkname)); err != nil {
				return fmt.Errorf("illegal link target: %s -> %s", header.Name, header.Linkname)
			}
		}
		_ = os.Remove(destPath)
		return os.Symlink(header.Linkname, destPath)

	default:
		// Skip other types
		return nil
	}
}

// safeJoin joins an archive entry name onto destDir, rejecting names that escape it (ZipSlip).
func safeJoin(destDir, name string) (string, error) {
	base := filepath.Clean(destDir)
	destPath := filepath.Join(base, name)
	if destPath != base && !strings.HasPrefix(destPath, base+string(os.PathSeparator)) {
		return "", fmt.Errorf("illegal file path: %s", name)
	}
	return destPath, nil
}

func writeFile(destPath string, src io.Reader, perm os.FileMode) error {
	if perm == 0 {
		perm = 0644
	}
	out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// StripTopLevelDir removes the top-level directory from an extraction
// This is useful when archives contain a single top-level directory
// (e.g., jdk-17.0.8+7/ containing bin/, lib/, etc.)
func StripTopLevelDir(extractDir string) error {
	entries, err := os.ReadDir(extractDir)
	if err != nil {
		return err
	}

	if len(entries) != 1 || !entries[0].IsDir() {
		return nil // Nothing to strip
	}

	tempDir := extractDir + ".tmp"
	if err := os.Rename(extractDir, tempDir); err != nil {
		return err
	}

	if err := os.Rename(filepath.Join(tempDir, entries[0].Name()), extractDir); err != nil {
		// Try to recover
		_ = os.Rename(tempDir, extractDir)
		return err
	}

	return os.RemoveAll(tempDir)
}
