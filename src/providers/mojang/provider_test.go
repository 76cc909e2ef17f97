package mojang

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	goruntime "runtime"
	"sync"
	"testing"

	"github.com/jvmrepo/jvmrepo/src/internal/catalog"
	"github.com/jvmrepo/jvmrepo/src/internal/download"
	"github.com/jvmrepo/jvmrepo/src/internal/platform"
	"github.com/jvmrepo/jvmrepo/src/internal/remote"
	"github.com/jvmrepo/jvmrepo/src/internal/repository"
	"github.com/jvmrepo/jvmrepo/src/internal/runtime"
	"github.com/ulikunitz/xz/lzma"
)

const (
	javaContent    = "#!/bin/sh\necho java\n"
	modulesContent = "modules modules modules modules"
)

func sha1Hex(data []byte) string {
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}

func compress(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := lzma.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// catalogServer serves an index, one file set and the files it lists.
type catalogServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests map[string]int
	javaSHA1 string
}

func newCatalogServer(t *testing.T) *catalogServer {
	t.Helper()
	cs := &catalogServer{requests: make(map[string]int), javaSHA1: sha1Hex([]byte(javaContent))}

	mux := http.NewServeMux()
	cs.Server = httptest.NewServer(cs.count(mux))
	t.Cleanup(cs.Close)

	compressedModules := compress(t, []byte(modulesContent))

	fileSet := func() []byte {
		set := remote.FileSet{}
		set.Files.Set("bin", remote.File{Type: remote.TypeDirectory})
		set.Files.Set("bin/java", remote.File{
			Type:       remote.TypeFile,
			Executable: true,
			Downloads: map[string]remote.Download{
				remote.RepresentationRaw: {SHA1: cs.javaSHA1, Size: int64(len(javaContent)), URL: cs.URL + "/files/java"},
			},
		})
		set.Files.Set("lib/modules", remote.File{
			Type: remote.TypeFile,
			Downloads: map[string]remote.Download{
				remote.RepresentationRaw:  {SHA1: sha1Hex([]byte(modulesContent)), Size: int64(len(modulesContent)), URL: cs.URL + "/files/modules"},
				remote.RepresentationLZMA: {SHA1: sha1Hex(compressedModules), Size: int64(len(compressedModules)), URL: cs.URL + "/files/modules.lzma"},
			},
		})
		set.Files.Set("lib/bin", remote.File{Type: remote.TypeLink, Target: "../bin"})
		data, err := json.Marshal(set)
		if err != nil {
			t.Fatal(err)
		}
		return data
	}

	mux.HandleFunc("/all.json", func(w http.ResponseWriter, r *http.Request) {
		set := fileSet()
		idx := catalog.Index{"linux": {"java-runtime-gamma": {{
			Manifest: remote.Download{SHA1: sha1Hex(set), Size: int64(len(set)), URL: cs.URL + "/gamma.json"},
			Version:  remote.VersionInfo{Name: "17.0.8", Released: "2023-08-01T00:00:00+00:00"},
		}}}}
		_ = json.NewEncoder(w).Encode(idx)
	})
	mux.HandleFunc("/gamma.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(fileSet())
	})
	mux.HandleFunc("/files/java", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(javaContent))
	})
	mux.HandleFunc("/files/modules", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(modulesContent))
	})
	mux.HandleFunc("/files/modules.lzma", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(compressedModules)
	})

	return cs
}

func (cs *catalogServer) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cs.mu.Lock()
		cs.requests[r.URL.Path]++
		cs.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (cs *catalogServer) hits(path string) int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.requests[path]
}

func (cs *catalogServer) provider() *Provider {
	source := catalog.NewHTTPSourceWithClient(cs.URL+"/all.json", cs.Client())
	return New(source, cs.Client(), 2)
}

func gammaRequest(dir string) repository.DownloadRequest {
	return repository.DownloadRequest{
		Dir:             dir,
		Version:         runtime.JavaVersion{Component: "java-runtime-gamma", MajorVersion: 17},
		Platform:        platform.LinuxX64,
		CatalogPlatform: "linux",
	}
}

func TestDownload(t *testing.T) {
	if goruntime.GOOS == "windows" {
		t.Skip("symlinks require privileges on Windows")
	}

	cs := newCatalogServer(t)
	dir := filepath.Join(t.TempDir(), "linux-x64", "java-runtime-gamma")

	result, err := cs.provider().Download(context.Background(), gammaRequest(dir))
	if err != nil {
		t.Fatalf("Download() error: %v", err)
	}

	if result.Version.Name != "17.0.8" {
		t.Errorf("Version = %+v", result.Version)
	}
	if result.Files.Files.Len() != 4 {
		t.Errorf("file set has %d entries, want 4", result.Files.Files.Len())
	}

	java := filepath.Join(dir, "bin", "java")
	data, err := os.ReadFile(java)
	if err != nil || string(data) != javaContent {
		t.Errorf("bin/java = %q, %v", data, err)
	}
	if info, err := os.Stat(java); err != nil || info.Mode().Perm()&0100 == 0 {
		t.Errorf("bin/java should be executable: %v", info.Mode())
	}

	data, err = os.ReadFile(filepath.Join(dir, "lib", "modules"))
	if err != nil || string(data) != modulesContent {
		t.Errorf("lib/modules = %q, %v", data, err)
	}
	if cs.hits("/files/modules.lzma") != 1 || cs.hits("/files/modules") != 0 {
		t.Errorf("LZMA representation should be preferred: lzma=%d raw=%d",
			cs.hits("/files/modules.lzma"), cs.hits("/files/modules"))
	}

	if target, err := os.Readlink(filepath.Join(dir, "lib", "bin")); err != nil || target != "../bin" {
		t.Errorf("lib/bin -> %q, %v", target, err)
	}

	if _, err := os.Stat(java + ".part"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}
}

func TestDownloadKeepsMatchingFiles(t *testing.T) {
	if goruntime.GOOS == "windows" {
		t.Skip("symlinks require privileges on Windows")
	}

	cs := newCatalogServer(t)
	dir := t.TempDir()
	p := cs.provider()

	if _, err := p.Download(context.Background(), gammaRequest(dir)); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Download(context.Background(), gammaRequest(dir)); err != nil {
		t.Fatalf("second Download() error: %v", err)
	}

	if got := cs.hits("/files/java"); got != 1 {
		t.Errorf("bin/java fetched %d times, want 1", got)
	}
}

func TestDownloadChecksumMismatch(t *testing.T) {
	cs := newCatalogServer(t)
	cs.javaSHA1 = "0000000000000000000000000000000000000000"
	dir := t.TempDir()

	_, err := cs.provider().Download(context.Background(), gammaRequest(dir))
	var mismatch *download.ErrChecksumMismatch
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected ErrChecksumMismatch, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "bin", "java")); !os.IsNotExist(err) {
		t.Error("file with bad checksum was kept")
	}
}

func TestDownloadUnknownComponent(t *testing.T) {
	cs := newCatalogServer(t)

	req := gammaRequest(t.TempDir())
	req.Version.Component = "java-runtime-delta"
	if _, err := cs.provider().Download(context.Background(), req); !catalog.IsComponentNotFound(err) {
		t.Errorf("expected ErrComponentNotFound, got %v", err)
	}

	req = gammaRequest(t.TempDir())
	req.CatalogPlatform = ""
	if _, err := cs.provider().Download(context.Background(), req); !catalog.IsComponentNotFound(err) {
		t.Errorf("expected ErrComponentNotFound for unpublished platform, got %v", err)
	}
	if cs.hits("/all.json") != 1 {
		t.Errorf("catalog fetched %d times, want 1", cs.hits("/all.json"))
	}
}

func TestMaterializeRejectsEscapes(t *testing.T) {
	p := New(catalog.NewFileSource("unused"), nil, 1)

	tests := []struct {
		name string
		path string
		file remote.File
	}{
		{"escaping path", "../evil", remote.File{Type: remote.TypeDirectory}},
		{"absolute path", "/evil", remote.File{Type: remote.TypeDirectory}},
		{"escaping link", "lib/evil", remote.File{Type: remote.TypeLink, Target: "../../../etc/passwd"}},
		{"absolute link", "lib/evil", remote.File{Type: remote.TypeLink, Target: "/etc/passwd"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := &remote.FileSet{}
			set.Files.Set(tt.path, tt.file)
			if err := p.Materialize(context.Background(), t.TempDir(), set); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDownloadCanceled(t *testing.T) {
	cs := newCatalogServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := cs.provider().Download(ctx, gammaRequest(t.TempDir())); err == nil {
		t.Error("expected error for canceled context")
	}
}

func TestName(t *testing.T) {
	if got := New(nil, nil, 0).Name(); got != "mojang" {
		t.Errorf("Name() = %q", got)
	}
}
