package cmd

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jvmrepo/jvmrepo/src/internal/manifest"
	"github.com/jvmrepo/jvmrepo/src/internal/platform"
	"github.com/jvmrepo/jvmrepo/src/internal/runtime"
	"github.com/jvmrepo/jvmrepo/src/internal/system"
	"github.com/jvmrepo/jvmrepo/src/internal/tui"
	"github.com/jvmrepo/jvmrepo/src/internal/ui"
	"github.com/spf13/cobra"
)

var (
	listAllFlag    bool
	listSystemFlag bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed runtimes",
	Long: `List the runtimes installed in the repository for a platform.

Examples:
  jvmrepo list                        # Runtimes for this machine
  jvmrepo list --platform windows-x64 # Runtimes installed for another platform
  jvmrepo list --all                  # Every platform in the repository
  jvmrepo list --system               # Also show runtimes from JAVA_HOME and PATH`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		var platforms []platform.Platform
		if listAllFlag {
			platforms = env.repo.Platforms()
		} else {
			p, err := targetPlatform()
			if err != nil {
				return err
			}
			platforms = []platform.Platform{p}
		}

		table := tui.NewTable("Component", "Version", "Vendor", "Platform", "Size", "Provider")
		table.SetTitle("Installed Runtimes")
		table.AlignRight(4)

		host := env.repo.Host()
		for _, p := range platforms {
			for _, rt := range env.repo.ListInstalled(p) {
				component, ok := env.repo.Component(rt)
				if !ok {
					continue
				}

				size, provider := "-", "-"
				if m, err := manifest.Read(env.repo.ManifestFile(p, component)); err == nil {
					size = humanize.IBytes(uint64(m.TotalSize()))
					provider = m.Provider()
				}

				cells := []string{component, rt.Info.Version, rt.Info.Vendor, p.String(), size, provider}
				if p == host {
					table.AddActiveRow(cells...)
				} else {
					table.AddRow(cells...)
				}
			}
		}

		if table.RowCount() == 0 {
			ui.Info("No runtimes installed")
		} else {
			fmt.Println(table.Render())
		}

		if listSystemFlag {
			listSystemRuntimes(cmd.Context(), env)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listAllFlag, "all", false, "List runtimes of every platform")
	listCmd.Flags().BoolVar(&listSystemFlag, "system", false, "Also list runtimes installed outside the repository")
}

// listSystemRuntimes prints the unmanaged runtimes found on this machine.
func listSystemRuntimes(ctx context.Context, env *environment) {
	detector := system.NewDetector(runtime.NewExecProber(env.settings.ProbeTimeout), env.repo.Root())
	runtimes := detector.Detect(ctx)
	if len(runtimes) == 0 {
		ui.Info("No system runtimes found")
		return
	}

	table := tui.NewTable("Version", "Vendor", "Platform", "Executable")
	table.SetTitle("System Runtimes")
	for _, rt := range runtimes {
		table.AddRow(rt.Info.Version, rt.Info.Vendor, rt.Platform.String(), rt.Binary)
	}
	fmt.Println(table.Render())
}
