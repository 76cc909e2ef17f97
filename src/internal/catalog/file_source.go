package catalog

import (
	"context"
	"os"
)

// FileSource reads the catalog index from a file on disk, such as a mirror
// or an index saved for offline use.
type FileSource struct {
	path string
}

// NewFileSource creates a Source that reads the index at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// GetIndex reads and parses the index file.
func (s *FileSource) GetIndex(_ context.Context) (Index, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	return ParseIndex(data)
}
