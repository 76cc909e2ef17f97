package cmd

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jvmrepo/jvmrepo/src/internal/config"
	"github.com/jvmrepo/jvmrepo/src/internal/history"
	"github.com/jvmrepo/jvmrepo/src/internal/platform"
	"github.com/jvmrepo/jvmrepo/src/internal/repository"
	"github.com/jvmrepo/jvmrepo/src/internal/runtime"
	"github.com/jvmrepo/jvmrepo/src/providers/archive"
)

// newTestEnvironment builds an environment on a temporary root whose host is linux-x64.
func newTestEnvironment(t *testing.T) (*environment, *history.Store) {
	t.Helper()
	paths := config.PathsAt(t.TempDir())
	if err := paths.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}

	store, err := history.Open(paths.History)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return &environment{
		paths:    paths,
		settings: config.DefaultSettings(),
		repo:     repository.New(paths.Runtimes, repository.WithHost(platform.LinuxX64)),
	}, store
}

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	w := zip.NewWriter(f)
	for name, content := range files {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestRunInstallRecordsHistory(t *testing.T) {
	env, store := newTestEnvironment(t)

	zipPath := filepath.Join(t.TempDir(), "jdk-17.0.8.zip")
	writeZip(t, zipPath, map[string]string{
		"jdk-17.0.8+7/bin/java.exe": "MZ",
		"jdk-17.0.8+7/release":      `JAVA_VERSION="17.0.8"`,
	})

	d := archive.New(archive.Archive{Location: zipPath, Version: "17.0.8"}, nil)
	v := runtime.JavaVersion{Component: "temurin-17", MajorVersion: 17}

	// Windows runtimes cannot be probed on a linux host, so the declared version is used
	rt, err := runInstall(context.Background(), env, store, d, platform.WindowsX64, v)
	if err != nil {
		t.Fatalf("runInstall() error = %v", err)
	}
	if rt.Info.Version != "17.0.8" {
		t.Errorf("Version = %q, want 17.0.8", rt.Info.Version)
	}
	if _, err := os.Stat(env.repo.ManifestFile(platform.WindowsX64, "temurin-17")); err != nil {
		t.Errorf("manifest not written: %v", err)
	}

	events, err := store.List(history.Filter{Component: "temurin-17"})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	ev := events[0]
	if ev.Action != history.ActionInstall || !ev.Success {
		t.Errorf("event = %+v, want a successful install", ev)
	}
	if ev.Platform != "windows-x64" || ev.Provider != archive.Name || ev.Version != "17.0.8" {
		t.Errorf("event = %+v", ev)
	}
}

func TestRunInstallFailureRecordsHistory(t *testing.T) {
	env, store := newTestEnvironment(t)

	d := archive.New(archive.Archive{Location: filepath.Join(t.TempDir(), "missing.zip")}, nil)
	v := runtime.JavaVersion{Component: "broken"}

	if _, err := runInstall(context.Background(), env, store, d, platform.WindowsX64, v); err == nil {
		t.Fatal("runInstall() expected error")
	}
	if _, err := os.Stat(env.repo.ManifestFile(platform.WindowsX64, "broken")); !os.IsNotExist(err) {
		t.Errorf("manifest should not exist after a failed install, stat error = %v", err)
	}

	events, err := store.List(history.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Success || events[0].Error == "" {
		t.Errorf("events = %+v, want one failed install with an error", events)
	}
}

func TestNewDownloader(t *testing.T) {
	env, _ := newTestEnvironment(t)
	defer func() { installArchiveFlag = "" }()

	installArchiveFlag = ""
	if got := newDownloader(env).Name(); got != "mojang" {
		t.Errorf("default downloader = %q, want mojang", got)
	}

	installArchiveFlag = "https://example.com/jdk.tar.gz"
	if got := newDownloader(env).Name(); got != archive.Name {
		t.Errorf("downloader with --archive = %q, want %q", got, archive.Name)
	}
}
