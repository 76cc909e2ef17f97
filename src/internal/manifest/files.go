package manifest

import (
	"encoding/json"
	"fmt"
)

// FileType discriminates the variants of LocalFile
type FileType string

// The closed set of inventory entry kinds
const (
	TypeFile      FileType = "file"
	TypeDirectory FileType = "dir"
	TypeLink      FileType = "link"
)

// LocalFile is one inventory entry of an installation directory.
// Only the fields belonging to Type are meaningful:
//
//	file: Hash (hex SHA-1) and Size in bytes
//	dir:  nothing
//	link: Target, recorded verbatim
type LocalFile struct {
	Type   FileType
	Hash   string
	Size   int64
	Target string
}

// File creates a regular file entry.
func File(hash string, size int64) LocalFile {
	return LocalFile{Type: TypeFile, Hash: hash, Size: size}
}

// Directory creates a directory entry.
func Directory() LocalFile {
	return LocalFile{Type: TypeDirectory}
}

// Link creates a symbolic link entry.
func Link(target string) LocalFile {
	return LocalFile{Type: TypeLink, Target: target}
}

type wireFile struct {
	Type FileType `json:"type"`
	Hash string   `json:"hash"`
	Size int64    `json:"size"`
}

type wireDirectory struct {
	Type FileType `json:"type"`
}

type wireLink struct {
	Type   FileType `json:"type"`
	Target string   `json:"target"`
}

// MarshalJSON writes only the fields of the entry's variant.
func (f LocalFile) MarshalJSON() ([]byte, error) {
	switch f.Type {
	case TypeFile:
		return json.Marshal(wireFile{Type: f.Type, Hash: f.Hash, Size: f.Size})
	case TypeDirectory:
		return json.Marshal(wireDirectory{Type: f.Type})
	case TypeLink:
		return json.Marshal(wireLink{Type: f.Type, Target: f.Target})
	default:
		return nil, fmt.Errorf("unknown file type %q", f.Type)
	}
}

// UnmarshalJSON reads an entry, rejecting unknown variants and missing fields.
func (f *LocalFile) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type   FileType `json:"type"`
		Hash   *string  `json:"hash"`
		Size   *int64   `json:"size"`
		Target *string  `json:"target"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch raw.Type {
	case TypeFile:
		if raw.Hash == nil || raw.Size == nil {
			return fmt.Errorf("file entry requires hash and size")
		}
		if *raw.Size < 0 {
			return fmt.Errorf("file entry has negative size %d", *raw.Size)
		}
		*f = File(*raw.Hash, *raw.Size)
	case TypeDirectory:
		*f = Directory()
	case TypeLink:
		if raw.Target == nil {
			return fmt.Errorf("link entry requires target")
		}
		*f = Link(*raw.Target)
	default:
		return fmt.Errorf("unknown file type %q", raw.Type)
	}
	return nil
}
