package cmd

import (
	"fmt"
	"net/http"

	"github.com/jvmrepo/jvmrepo/src/internal/catalog"
	"github.com/jvmrepo/jvmrepo/src/internal/config"
	"github.com/jvmrepo/jvmrepo/src/internal/history"
	"github.com/jvmrepo/jvmrepo/src/internal/platform"
	"github.com/jvmrepo/jvmrepo/src/internal/repository"
	"github.com/jvmrepo/jvmrepo/src/internal/runtime"
	"github.com/jvmrepo/jvmrepo/src/internal/ui"
)

// environment is what every command works against: the paths, the user
// settings and the repository they describe.
type environment struct {
	paths    *config.Paths
	settings *config.Settings
	repo     *repository.Repository
}

func loadEnvironment() (*environment, error) {
	paths := config.DefaultPaths()
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", paths.Root, err)
	}

	settings, err := config.LoadSettings(paths.Settings)
	if err != nil {
		return nil, err
	}
	ui.Debug("Settings: %+v", *settings)

	repo := repository.New(paths.Runtimes,
		repository.WithProber(runtime.NewExecProber(settings.ProbeTimeout)),
		repository.WithReporter(repository.ReporterFunc(func(err error) {
			ui.Warning("%v", err)
		})),
	)

	return &environment{paths: paths, settings: settings, repo: repo}, nil
}

// catalogSource returns the configured catalog, cached under the cache directory.
// A local catalog file, when configured, backs up the remote one.
func (e *environment) catalogSource() *catalog.CachedSource {
	client := &http.Client{Timeout: e.settings.HTTPTimeout}

	var source catalog.Source = catalog.NewHTTPSourceWithClient(e.settings.CatalogURL, client)
	if e.settings.CatalogFile != "" {
		source = catalog.NewFallbackSource(source, catalog.NewFileSource(e.settings.CatalogFile))
	}
	return catalog.NewCachedSource(source, e.paths.Cache, e.settings.CatalogCacheTTL)
}

// downloadClient is used for runtime files, which may take longer than
// the HTTP timeout to transfer, so only the response headers are bounded.
func (e *environment) downloadClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = e.settings.HTTPTimeout
	return &http.Client{Transport: transport}
}

// openHistory opens the history database. History is best-effort:
// commands keep working when it cannot be opened.
func (e *environment) openHistory() *history.Store {
	store, err := history.Open(e.paths.History)
	if err != nil {
		ui.Debug("History unavailable: %v", err)
		return nil
	}
	return store
}

// record stores ev when history is available.
func record(store *history.Store, ev *history.Event) {
	if store == nil {
		return
	}
	if err := store.Record(ev); err != nil {
		ui.Debug("Failed to record history: %v", err)
	}
}

// targetPlatform returns the platform selected with --platform, or the host.
func targetPlatform() (platform.Platform, error) {
	if platformFlag == "" {
		return platform.Current(), nil
	}
	return platform.Parse(platformFlag)
}
