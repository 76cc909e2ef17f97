package remote

import (
	"reflect"
	"testing"
)

const fileSetJSON = `{
  "files": {
    "bin": {"type": "directory"},
    "bin/java": {
      "type": "file",
      "executable": true,
      "downloads": {
        "lzma": {"sha1": "aaa", "size": 10, "url": "https://example.com/java.lzma"},
        "raw": {"sha1": "bbb", "size": 20, "url": "https://example.com/java"}
      }
    },
    "lib/legal": {"type": "link", "target": "../legal"}
  }
}`

func TestParseFileSet(t *testing.T) {
	fs, err := ParseFileSet([]byte(fileSetJSON))
	if err != nil {
		t.Fatalf("ParseFileSet() error: %v", err)
	}

	if got := fs.Files.Keys(); !reflect.DeepEqual(got, []string{"bin", "bin/java", "lib/legal"}) {
		t.Errorf("keys = %v", got)
	}

	java, ok := fs.Files.Get("bin/java")
	if !ok {
		t.Fatal("bin/java missing")
	}
	if !java.Executable || java.Type != TypeFile {
		t.Errorf("bin/java = %+v", java)
	}
	raw, ok := java.Raw()
	if !ok || raw.SHA1 != "bbb" || raw.Size != 20 {
		t.Errorf("Raw() = %+v, %v", raw, ok)
	}
	if lz, ok := java.LZMA(); !ok || lz.SHA1 != "aaa" {
		t.Errorf("LZMA() = %+v, %v", lz, ok)
	}

	link, _ := fs.Files.Get("lib/legal")
	if link.Type != TypeLink || link.Target != "../legal" {
		t.Errorf("lib/legal = %+v", link)
	}

	dir, _ := fs.Files.Get("bin")
	if _, ok := dir.Raw(); ok {
		t.Error("directory should not have a raw download")
	}
}

func TestParseFileSetInvalid(t *testing.T) {
	if _, err := ParseFileSet([]byte(`{"files": [}`)); err == nil {
		t.Error("expected error for malformed file set")
	}
}
