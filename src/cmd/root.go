// Package cmd implements the CLI commands for jvmrepo
package cmd

import (
	"fmt"
	"os"

	"github.com/jvmrepo/jvmrepo/src/internal/tui"
	"github.com/jvmrepo/jvmrepo/src/internal/ui"
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	platformFlag string
)

var rootCmd = &cobra.Command{
	Use:           "jvmrepo",
	Short:         "Java Runtime Repository",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.CheckVerboseEnv()
		if verbose {
			ui.SetVerbose(true)
		}
	},
}

func Execute() {
	// Check for --version or -v flag before Cobra parses
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-v" {
			versionCmd.Run(versionCmd, []string{})
			return
		}
	}

	if err := rootCmd.Execute(); err != nil {
		ui.Error("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose output for debugging")
	rootCmd.PersistentFlags().StringVar(&platformFlag, "platform", "", "Target platform, e.g. linux-x64 (default: this machine)")

	rootCmd.SetUsageFunc(customUsage)
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		_ = customUsage(cmd)
	})
}

func customUsage(cmd *cobra.Command) error {
	const tableWidth = 95

	if cmd != rootCmd {
		fmt.Println(tui.RenderTitle(cmd.Short))
		if cmd.Long != "" {
			fmt.Println(cmd.Long)
			fmt.Println()
		}
		fmt.Printf("Usage:\n  %s\n\n", cmd.UseLine())
		if flags := cmd.LocalFlags().FlagUsages(); flags != "" {
			fmt.Printf("Flags:\n%s\n", flags)
		}
		if flags := cmd.InheritedFlags().FlagUsages(); flags != "" {
			fmt.Printf("Global Flags:\n%s", flags)
		}
		return nil
	}

	headerTable := tui.NewTable("")
	headerTable.SetTitle(cmd.Short)
	headerTable.HideHeader()
	headerTable.SetMinWidth(tableWidth)
	headerTable.AddRow("jvmrepo installs Java runtimes into a per-platform repository, records every file")
	headerTable.AddRow("in a manifest, and lets you list, verify and remove what it installed.")

	fmt.Println(headerTable.Render())
	fmt.Println()

	table := tui.NewTable("Command", "Description")
	table.SetTitle("Available Commands")
	table.SetMinWidth(tableWidth)

	for _, c := range cmd.Commands() {
		if c.Hidden || c.Name() == "completion" || c.Name() == "help" {
			continue
		}
		table.AddRow(c.Name(), c.Short)
	}

	fmt.Println(table.Render())

	return nil
}
