// Package remote describes the files a runtime download consists of, as published by a catalog.
package remote

import (
	"encoding/json"
	"fmt"

	"github.com/jvmrepo/jvmrepo/src/internal/jsonmap"
)

// FileType is the kind of a remote entry
type FileType string

// Remote entry kinds
const (
	TypeFile      FileType = "file"
	TypeDirectory FileType = "directory"
	TypeLink      FileType = "link"
)

// Download representations offered for a file
const (
	RepresentationRaw  = "raw"
	RepresentationLZMA = "lzma"
)

// Download locates one representation of a remote file.
type Download struct {
	SHA1 string `json:"sha1"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

// File is one entry of a remote file set.
type File struct {
	Type       FileType            `json:"type"`
	Executable bool                `json:"executable,omitempty"`
	Downloads  map[string]Download `json:"downloads,omitempty"`
	Target     string              `json:"target,omitempty"`
}

// Raw returns the uncompressed representation of a file, if one is offered.
func (f File) Raw() (Download, bool) {
	d, ok := f.Downloads[RepresentationRaw]
	return d, ok
}

// LZMA returns the LZMA-compressed representation of a file, if one is offered.
func (f File) LZMA() (Download, bool) {
	d, ok := f.Downloads[RepresentationLZMA]
	return d, ok
}

// FileSet is the complete description of a runtime download, keyed by path
// relative to the installation directory. Parents are listed before children.
type FileSet struct {
	Files jsonmap.Map[File] `json:"files"`
}

// ParseFileSet parses a file set document.
func ParseFileSet(data []byte) (*FileSet, error) {
	var fs FileSet
	if err := json.Unmarshal(data, &fs); err != nil {
		return nil, fmt.Errorf("parse file set: %w", err)
	}
	return &fs, nil
}

// VersionInfo identifies the download that was chosen for a request.
type VersionInfo struct {
	Name     string `json:"name"`
	Released string `json:"released,omitempty"`
}
