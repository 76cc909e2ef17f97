package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jvmrepo/jvmrepo/src/internal/history"
	"github.com/jvmrepo/jvmrepo/src/internal/manifest"
	"github.com/jvmrepo/jvmrepo/src/internal/platform"
	"github.com/jvmrepo/jvmrepo/src/internal/repository"
	"github.com/jvmrepo/jvmrepo/src/internal/runtime"
	"github.com/jvmrepo/jvmrepo/src/internal/tui"
	"github.com/jvmrepo/jvmrepo/src/internal/ui"
	"github.com/jvmrepo/jvmrepo/src/providers/archive"
	"github.com/jvmrepo/jvmrepo/src/providers/mojang"
	"github.com/spf13/cobra"
)

var (
	installArchiveFlag string
	installSHA256Flag  string
	installVersionFlag string
	installMajorFlag   int
)

var installCmd = &cobra.Command{
	Use:   "install <component>",
	Short: "Install a runtime component",
	Long: `Install a Java runtime component into the repository.

By default the component is looked up in the runtime catalog. With --archive,
a JDK or JRE archive (zip, tar.gz or 7z) is installed under the given name instead.
Installing a component that is already installed replaces it.

Examples:
  jvmrepo install java-runtime-gamma
  jvmrepo install jre-legacy --platform windows-x64
  jvmrepo install temurin-21 --archive https://example.com/jdk-21.tar.gz --sha256 <sum>`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}
		p, err := targetPlatform()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		store := env.openHistory()
		if store != nil {
			defer func() { _ = store.Close() }()
		}

		_, err = runInstall(ctx, env, store, newDownloader(env), p, runtime.JavaVersion{
			Component:    args[0],
			MajorVersion: installMajorFlag,
		})
		return err
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
	installCmd.Flags().StringVar(&installArchiveFlag, "archive", "", "Install from an archive URL or local path instead of the catalog")
	installCmd.Flags().StringVar(&installSHA256Flag, "sha256", "", "Expected SHA-256 of the archive")
	installCmd.Flags().StringVar(&installVersionFlag, "version", "", "Version name recorded for the archive (default: from its file name)")
	installCmd.Flags().IntVar(&installMajorFlag, "major", 0, "Warn unless the installed runtime has this Java feature release")
}

// newDownloader picks the download provider for the install flags.
func newDownloader(env *environment) repository.Downloader {
	if installArchiveFlag != "" {
		return archive.New(archive.Archive{
			Location: installArchiveFlag,
			SHA256:   installSHA256Flag,
			Version:  installVersionFlag,
		}, env.downloadClient())
	}
	return mojang.New(env.catalogSource(), env.downloadClient(), env.settings.DownloadWorkers)
}

// runInstall installs v, reports the outcome and records it in the history.
func runInstall(ctx context.Context, env *environment, store *history.Store, d repository.Downloader, p platform.Platform, v runtime.JavaVersion) (*runtime.Runtime, error) {
	ui.Info("Installing %s for %s with %s", ui.Highlight(v.Component), p, d.Name())

	start := time.Now()
	rt, err := env.repo.StartInstall(ctx, d, p, v).Wait()

	ev := &history.Event{
		Action:    history.ActionInstall,
		Component: v.Component,
		Platform:  p.String(),
		Provider:  d.Name(),
		Success:   err == nil,
		Duration:  time.Since(start),
	}
	if err != nil {
		ev.Error = err.Error()
		record(store, ev)
		return nil, err
	}
	ev.Version = rt.Info.Version
	record(store, ev)

	summary := fmt.Sprintf("%s %s\n%s", tui.RenderComponent(v.Component), tui.RenderVersion(rt.Info.Version), rt.Binary)
	if m, err := manifest.Read(env.repo.ManifestFile(p, v.Component)); err == nil {
		files, dirs, links := m.Counts()
		summary += tui.RenderMuted(fmt.Sprintf("\n%d files, %d directories, %d links, %s",
			files, dirs, links, humanize.IBytes(uint64(m.TotalSize()))))
	}
	fmt.Println(tui.RenderSuccessBox(summary))

	if v.MajorVersion != 0 {
		if major := rt.Info.Major(); major != 0 && major != v.MajorVersion {
			ui.Warning("%s reports Java %d, expected Java %d", v.Component, major, v.MajorVersion)
		}
	}

	ui.Success("Installed %s in %s", v.Component, time.Since(start).Round(time.Millisecond))
	return rt, nil
}
