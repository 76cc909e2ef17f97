package catalog

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jvmrepo/jvmrepo/src/internal/download"
	"github.com/jvmrepo/jvmrepo/src/internal/remote"
)

func TestHTTPSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/all.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(sampleIndex))
		case "/broken.json":
			_, _ = w.Write([]byte("invalid json"))
		case "/missing.json":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	ctx := context.Background()

	t.Run("GetIndex success", func(t *testing.T) {
		idx, err := NewHTTPSourceWithClient(server.URL+"/all.json", server.Client()).GetIndex(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(idx.Components("linux")) != 2 {
			t.Errorf("Components(linux) = %v", idx.Components("linux"))
		}
	})

	t.Run("GetIndex invalid JSON", func(t *testing.T) {
		if _, err := NewHTTPSource(server.URL + "/broken.json").GetIndex(ctx); err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("GetIndex not found", func(t *testing.T) {
		if _, err := NewHTTPSource(server.URL + "/missing.json").GetIndex(ctx); err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("GetIndex server error", func(t *testing.T) {
		if _, err := NewHTTPSource(server.URL + "/other").GetIndex(ctx); err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("GetIndex canceled", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := NewHTTPSource(server.URL + "/all.json").GetIndex(canceled); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestHTTPSourceUnreachable(t *testing.T) {
	source := NewHTTPSource("http://127.0.0.1:1/all.json")
	if _, err := source.GetIndex(context.Background()); err == nil {
		t.Fatal("expected error for unreachable server")
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "all.json")
	if err := os.WriteFile(path, []byte(sampleIndex), 0644); err != nil {
		t.Fatal(err)
	}

	idx, err := NewFileSource(path).GetIndex(context.Background())
	if err != nil {
		t.Fatalf("GetIndex() error: %v", err)
	}
	if _, err := idx.Lookup("mac-os-arm64", "java-runtime-gamma"); err != nil {
		t.Errorf("Lookup() error: %v", err)
	}

	if _, err := NewFileSource(filepath.Join(t.TempDir(), "missing.json")).GetIndex(context.Background()); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFetchFileSet(t *testing.T) {
	fileSet := `{"files":{"bin":{"type":"directory"},"bin/java":{"type":"file","executable":true,"downloads":{"raw":{"sha1":"aa","size":1,"url":"https://example.com/java"}}}}}`
	sum := sha1.Sum([]byte(fileSet))
	digest := hex.EncodeToString(sum[:])

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(fileSet))
	}))
	defer server.Close()

	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		entry := &Entry{Manifest: remote.Download{SHA1: digest, URL: server.URL + "/gamma.json"}}
		set, err := FetchFileSet(ctx, server.Client(), entry)
		if err != nil {
			t.Fatalf("FetchFileSet() error: %v", err)
		}
		if keys := set.Files.Keys(); len(keys) != 2 || keys[0] != "bin" || keys[1] != "bin/java" {
			t.Errorf("keys = %v", keys)
		}
		java, _ := set.Files.Get("bin/java")
		if !java.Executable {
			t.Error("bin/java should be executable")
		}
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		entry := &Entry{Manifest: remote.Download{SHA1: "0000", URL: server.URL + "/gamma.json"}}
		_, err := FetchFileSet(ctx, server.Client(), entry)
		if _, ok := err.(*download.ErrChecksumMismatch); !ok {
			t.Errorf("expected ErrChecksumMismatch, got %v", err)
		}
	})

	t.Run("no url", func(t *testing.T) {
		if _, err := FetchFileSet(ctx, server.Client(), &Entry{}); err == nil {
			t.Error("expected error for missing URL")
		}
	})
}
