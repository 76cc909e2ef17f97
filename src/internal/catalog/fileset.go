package catalog

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"github.com/jvmrepo/jvmrepo/src/internal/download"
	"github.com/jvmrepo/jvmrepo/src/internal/remote"
)

// FetchFileSet downloads the file set an entry points to and checks its SHA-1.
func FetchFileSet(ctx context.Context, client *http.Client, entry *Entry) (*remote.FileSet, error) {
	if entry.Manifest.URL == "" {
		return nil, fmt.Errorf("catalog entry %s has no file set URL", entry.Version.Name)
	}
	if client == nil {
		client = http.DefaultClient
	}

	data, err := fetch(ctx, client, entry.Manifest.URL)
	if err != nil {
		return nil, err
	}

	if entry.Manifest.SHA1 != "" {
		sum := sha1.Sum(data)
		actual := hex.EncodeToString(sum[:])
		if !strings.EqualFold(actual, entry.Manifest.SHA1) {
			return nil, &download.ErrChecksumMismatch{Path: entry.Manifest.URL, Expected: entry.Manifest.SHA1, Actual: actual}
		}
	}

	return remote.ParseFileSet(data)
}
