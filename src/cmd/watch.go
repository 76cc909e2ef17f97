package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/jvmrepo/jvmrepo/src/internal/tui"
	"github.com/jvmrepo/jvmrepo/src/internal/ui"
	"github.com/jvmrepo/jvmrepo/src/internal/watch"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print runtimes as they are installed or removed",
	Long: `Watch the repository and print a line whenever a component's manifest
is written or removed, whether by this or another jvmrepo process.
Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		w, err := watch.New(env.repo.Root())
		if err != nil {
			return err
		}
		defer func() { _ = w.Close() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		ui.Info("Watching %s", env.repo.Root())
		err = w.Run(ctx, func(ev watch.Event) {
			line := fmt.Sprintf("%s %s %s", tui.GetArrow(), tui.RenderComponent(ev.Component), tui.RenderPlatform(ev.Platform.String()))
			switch ev.Op {
			case watch.OpInstalled:
				version := ""
				if rt, err := env.repo.Find(ev.Platform, ev.Component); err == nil {
					version = " " + tui.RenderVersion(rt.Info.Version)
				}
				fmt.Printf("%s installed%s\n", line, version)
			case watch.OpRemoved:
				fmt.Printf("%s %s\n", line, tui.RenderWarning("removed"))
			}
		})
		if ctx.Err() != nil {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
