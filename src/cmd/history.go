package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jvmrepo/jvmrepo/src/internal/history"
	"github.com/jvmrepo/jvmrepo/src/internal/tui"
	"github.com/jvmrepo/jvmrepo/src/internal/ui"
	"github.com/spf13/cobra"
)

var (
	historyLimitFlag    int
	historyAllPlatforms bool
	historyPruneFlag    time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history [component]",
	Short: "Show past installs and uninstalls",
	Long: `Show the recorded install and uninstall operations, newest first.

Examples:
  jvmrepo history
  jvmrepo history java-runtime-gamma
  jvmrepo history --all-platforms --limit 50
  jvmrepo history --prune 720h          # Forget events older than 30 days`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		store, err := history.Open(env.paths.History)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		if historyPruneFlag > 0 {
			n, err := store.Prune(time.Now().Add(-historyPruneFlag))
			if err != nil {
				return err
			}
			ui.Success("Removed %d events older than %s", n, historyPruneFlag)
			return nil
		}

		filter := history.Filter{Limit: historyLimitFlag}
		if len(args) == 1 {
			filter.Component = args[0]
		}
		if !historyAllPlatforms {
			p, err := targetPlatform()
			if err != nil {
				return err
			}
			filter.Platform = p.String()
		}

		events, err := store.List(filter)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			ui.Info("No history recorded")
			return nil
		}

		table := tui.NewTable("When", "Action", "Component", "Version", "Platform", "Provider", "Took", "Result")
		table.SetTitle("History")
		table.AlignRight(6)
		for _, ev := range events {
			result := tui.GetCheckMark()
			if !ev.Success {
				result = tui.GetCrossMark() + " " + ev.Error
			}
			table.AddRow(
				humanize.Time(ev.Timestamp),
				string(ev.Action),
				ev.Component,
				ev.Version,
				ev.Platform,
				ev.Provider,
				ev.Duration.Round(time.Millisecond).String(),
				result,
			)
		}
		fmt.Println(table.Render())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimitFlag, "limit", 20, "Maximum number of events to show (0 for all)")
	historyCmd.Flags().BoolVar(&historyAllPlatforms, "all-platforms", false, "Include events of every platform")
	historyCmd.Flags().DurationVar(&historyPruneFlag, "prune", 0, "Delete events older than this and exit")
}
