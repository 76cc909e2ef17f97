// Package manifest defines the on-disk descriptor of an installed runtime:
// its identity, where it came from and every file it consists of.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/jvmrepo/jvmrepo/src/internal/constants"
	"github.com/jvmrepo/jvmrepo/src/internal/jsonmap"
	"github.com/jvmrepo/jvmrepo/src/internal/runtime"
)

// Manifest describes one installed component. Field order is the serialized order.
type Manifest struct {
	Info   runtime.Info           `json:"info"`
	Update jsonmap.Map[any]       `json:"update"`
	Files  jsonmap.Map[LocalFile] `json:"files"`
}

// New creates a manifest with the provenance keys set.
func New(info runtime.Info, provider, component string) *Manifest {
	m := &Manifest{Info: info}
	m.Update.Set(constants.UpdateKeyProvider, provider)
	m.Update.Set(constants.UpdateKeyComponent, component)
	return m
}

// Provider returns the provider recorded in the update block.
func (m *Manifest) Provider() string {
	return m.updateString(constants.UpdateKeyProvider)
}

// Component returns the component recorded in the update block.
func (m *Manifest) Component() string {
	return m.updateString(constants.UpdateKeyComponent)
}

func (m *Manifest) updateString(key string) string {
	v, ok := m.Update.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// TotalSize returns the summed size of all regular files.
func (m *Manifest) TotalSize() int64 {
	var total int64
	m.Files.Range(func(_ string, f LocalFile) bool {
		if f.Type == TypeFile {
			total += f.Size
		}
		return true
	})
	return total
}

// Counts returns the number of files, directories and links.
func (m *Manifest) Counts() (files, dirs, links int) {
	m.Files.Range(func(_ string, f LocalFile) bool {
		switch f.Type {
		case TypeFile:
			files++
		case TypeDirectory:
			dirs++
		case TypeLink:
			links++
		}
		return true
	})
	return files, dirs, links
}

// Equal reports whether two manifests describe the same installation.
// Key order of the update and files blocks does not matter.
func (m *Manifest) Equal(other *Manifest) bool {
	if m.Info != other.Info {
		return false
	}
	sameValue := func(a, b any) bool { return fmt.Sprint(a) == fmt.Sprint(b) }
	sameFile := func(a, b LocalFile) bool { return a == b }
	return m.Update.Equal(&other.Update, sameValue) && m.Files.Equal(&other.Files, sameFile)
}

// Marshal serializes the manifest as indented JSON.
func (m *Manifest) Marshal() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// Parse parses a manifest document. Any failure is a *ParseError.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &ParseError{Err: err}
	}
	for _, key := range m.Files.Keys() {
		if err := ValidatePath(key); err != nil {
			return nil, &ParseError{Err: err}
		}
	}
	return &m, nil
}

// ValidatePath rejects inventory keys that would point outside the installation directory.
func ValidatePath(p string) error {
	if p == "" {
		return fmt.Errorf("empty file path")
	}
	if path.IsAbs(p) || strings.HasPrefix(p, "\\") || filepath.VolumeName(p) != "" {
		return fmt.Errorf("absolute file path %q", p)
	}
	clean := path.Clean(p)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("file path %q escapes the installation directory", p)
	}
	return nil
}

// Read loads and parses the manifest at path.
func Read(filePath string) (*Manifest, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	m, err := Parse(data)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.Path = filePath
		}
		return nil, err
	}
	return m, nil
}

// Write atomically replaces the manifest at path: readers see either the
// previous document or the complete new one, never a partial write.
func Write(filePath string, m *Manifest) error {
	buf, err := m.Marshal()
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("prepare manifest directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".manifest-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp manifest: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(buf); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write manifest temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync manifest temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close manifest temp: %w", err)
	}

	if err := os.Rename(tmp.Name(), filePath); err != nil {
		return fmt.Errorf("replace manifest: %w", err)
	}
	return nil
}
