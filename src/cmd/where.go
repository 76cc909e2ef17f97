package cmd

import (
	"errors"
	"fmt"

	"github.com/jvmrepo/jvmrepo/src/internal/repository"
	"github.com/jvmrepo/jvmrepo/src/internal/tui"
	"github.com/jvmrepo/jvmrepo/src/internal/ui"
	"github.com/spf13/cobra"
)

var whereDirFlag bool

var whereCmd = &cobra.Command{
	Use:   "where <component>",
	Short: "Show the java executable of an installed component",
	Long: `Display the java executable of an installed component.

Examples:
  jvmrepo where java-runtime-gamma
  jvmrepo where java-runtime-gamma --dir    # Installation directory instead`,
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

		rt, err := env.repo.Find(p, component)
		if err != nil {
			if errors.Is(err, repository.ErrComponentNotInstalled) {
				ui.Info("Install it with: jvmrepo install %s", component)
			}
			return err
		}

		location := rt.Binary
		if whereDirFlag {
			location = env.repo.JavaDir(p, component)
		}

		if !ui.IsInteractive() {
			// Plain output for scripts: JAVA=$(jvmrepo where ...)
			fmt.Println(location)
			return nil
		}

		fmt.Println(tui.RenderTitle(component + " " + rt.Info.String()))
		fmt.Println(tui.RenderInfoBox(location))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whereCmd)
	whereCmd.Flags().BoolVar(&whereDirFlag, "dir", false, "Print the installation directory")
}
