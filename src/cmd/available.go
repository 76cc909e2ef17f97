package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jvmrepo/jvmrepo/src/internal/catalog"
	"github.com/jvmrepo/jvmrepo/src/internal/platform"
	"github.com/jvmrepo/jvmrepo/src/internal/tui"
	"github.com/jvmrepo/jvmrepo/src/internal/ui"
	"github.com/spf13/cobra"
)

var (
	availableRefreshFlag    bool
	availableClearCacheFlag bool
)

var availableCmd = &cobra.Command{
	Use:   "available",
	Short: "List components published in the runtime catalog",
	Long: `List the runtime components the catalog publishes for a platform.

The catalog is cached locally; use --refresh to fetch it again.

Examples:
  jvmrepo available
  jvmrepo available --platform osx-arm64
  jvmrepo available --refresh
  jvmrepo available --clear-cache`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}
		source := env.catalogSource()

		if availableClearCacheFlag {
			if err := source.ClearCache(); err != nil {
				return fmt.Errorf("failed to clear catalog cache: %w", err)
			}
			ui.Success("Catalog cache cleared")
			return nil
		}

		p, err := targetPlatform()
		if err != nil {
			return err
		}
		name, ok := platform.CatalogName(p)
		if !ok {
			ui.Info("The catalog publishes no runtimes for %s", p)
			return nil
		}

		var idx catalog.Index
		err = ui.WithSpinner("Loading runtime catalog", func() error {
			var err error
			if availableRefreshFlag {
				idx, err = source.ForceRefresh(cmd.Context())
			} else {
				idx, err = source.GetIndex(cmd.Context())
			}
			return err
		})
		if err != nil {
			return err
		}

		table := tui.NewTable("Component", "Version", "Released", "File Set", "Installed")
		table.SetTitle(fmt.Sprintf("Catalog for %s", p))
		table.AlignRight(3)

		for _, component := range idx.Components(name) {
			entry, err := idx.Lookup(name, component)
			if err != nil {
				continue
			}

			released := entry.Version.Released
			if t, err := time.Parse(time.RFC3339, released); err == nil {
				released = humanize.Time(t)
			}

			installed := ""
			if rt, err := env.repo.Find(p, component); err == nil {
				installed = rt.Info.Version
			}

			cells := []string{component, entry.Version.Name, released, humanize.IBytes(uint64(entry.Manifest.Size)), installed}
			if installed != "" {
				table.AddActiveRow(cells...)
			} else {
				table.AddRow(cells...)
			}
		}

		if table.RowCount() == 0 {
			ui.Info("No components published for %s", p)
			return nil
		}
		fmt.Println(table.Render())

		if at, ok := source.CachedAt(); ok {
			fmt.Println(tui.RenderMuted(fmt.Sprintf("Catalog cached %s", humanize.Time(at))))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(availableCmd)
	availableCmd.Flags().BoolVar(&availableRefreshFlag, "refresh", false, "Fetch the catalog even if the cache is fresh")
	availableCmd.Flags().BoolVar(&availableClearCacheFlag, "clear-cache", false, "Remove the cached catalog and exit")
}
