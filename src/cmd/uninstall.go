package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/jvmrepo/jvmrepo/src/internal/constants"
	"github.com/jvmrepo/jvmrepo/src/internal/history"
	"github.com/jvmrepo/jvmrepo/src/internal/manifest"
	"github.com/jvmrepo/jvmrepo/src/internal/platform"
	"github.com/jvmrepo/jvmrepo/src/internal/repository"
	"github.com/jvmrepo/jvmrepo/src/internal/runtime"
	"github.com/jvmrepo/jvmrepo/src/internal/ui"
	"github.com/spf13/cobra"
)

var uninstallYesFlag bool

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <component>",
	Short: "Uninstall a runtime component",
	Long: `Remove an installed runtime component from the repository.

The manifest is removed first, then the component directory.
Uninstalling a component that is not installed does nothing.

Examples:
  jvmrepo uninstall java-runtime-gamma
  jvmrepo uninstall jre-legacy --platform windows-x64 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		component := args[0]

		env, err := loadEnvironment()
		if err != nil {
			return err
		}
		p, err := targetPlatform()
		if err != nil {
			return err
		}

		target, err := resolveUninstall(env, p, component)
		if err != nil {
			return err
		}
		if target == nil {
			ui.Info("%s is not installed for %s", component, p)
			return nil
		}

		if !uninstallYesFlag {
			fmt.Printf("\n")
			ui.Warning("This will permanently delete:")
			ui.Info("  %s", env.repo.JavaDir(p, component))
			fmt.Printf("\nAre you sure you want to uninstall %s? [y/N]: ", target.label(true))

			var response string
			_, _ = fmt.Scanln(&response)
			response = strings.ToLower(strings.TrimSpace(response))

			if response != constants.ResponseY && response != constants.ResponseYes {
				ui.Info("Uninstall canceled")
				return nil
			}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		store := env.openHistory()
		if store != nil {
			defer func() { _ = store.Close() }()
		}

		return runUninstall(ctx, env, store, p, target)
	},
}

// uninstallTarget is what the uninstall command is about to remove.
// rt is nil when the install is damaged and can only be removed by name.
type uninstallTarget struct {
	component string
	rt        *runtime.Runtime
	version   string
	provider  string
}

func (t *uninstallTarget) label(highlight bool) string {
	name, version := t.component, t.version
	if highlight {
		name = ui.Highlight(name)
		if version != "" {
			version = ui.HighlightVersion(version)
		}
	}
	if version == "" {
		return name
	}
	return name + " " + version
}

// resolveUninstall finds what to remove for component. It returns nil when
// nothing of the component is on disk.
func resolveUninstall(env *environment, p platform.Platform, component string) (*uninstallTarget, error) {
	target := &uninstallTarget{component: component}

	rt, err := env.repo.Find(p, component)
	switch {
	case err == nil:
		target.rt = rt
		target.version = rt.Info.Version
	case errors.Is(err, repository.ErrComponentNotInstalled), repository.IsDamaged(err):
		if !env.repo.Leftovers(p, component) {
			return nil, nil
		}
		ui.Debug("Find %s: %v", component, err)
		ui.Warning("%s for %s is damaged, removing what is left of it", component, p)
	default:
		return nil, err
	}

	if m, err := manifest.Read(env.repo.ManifestFile(p, component)); err == nil {
		target.provider = m.Provider()
		if target.version == "" {
			target.version = m.Info.Version
		}
	}
	return target, nil
}

// runUninstall removes target and records the outcome in the history store.
func runUninstall(ctx context.Context, env *environment, store *history.Store, p platform.Platform, target *uninstallTarget) error {
	spinner := ui.NewSpinner(fmt.Sprintf("Removing %s...", target.label(false)))
	spinner.Start()

	start := time.Now()
	var err error
	if target.rt != nil {
		_, err = env.repo.StartUninstall(ctx, target.rt).Wait()
	} else {
		_, err = env.repo.StartUninstallComponent(ctx, p, target.component).Wait()
	}

	ev := &history.Event{
		Action:    history.ActionUninstall,
		Component: target.component,
		Platform:  p.String(),
		Provider:  target.provider,
		Version:   target.version,
		Success:   err == nil,
		Duration:  time.Since(start),
	}
	if err != nil {
		ev.Error = err.Error()
		record(store, ev)
		spinner.Error(fmt.Sprintf("Failed to remove %s", target.component))
		return err
	}
	record(store, ev)

	spinner.Success(fmt.Sprintf("Uninstalled %s", target.label(false)))
	return nil
}

func init() {
	rootCmd.AddCommand(uninstallCmd)
	uninstallCmd.Flags().BoolVarP(&uninstallYesFlag, "yes", "y", false, "Skip confirmation prompt")
}
