package cmd

import (
	"fmt"

	"github.com/jvmrepo/jvmrepo/src/internal/tui"
	"github.com/spf13/cobra"
)

// Version can be set at build time using ldflags
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the jvmrepo version",
	Long:  `Display the current version of jvmrepo.`,
	Run: func(cmd *cobra.Command, args []string) {
		content := fmt.Sprintf("jvmrepo %s", tui.RenderVersion(Version))
		fmt.Println(tui.RenderInfoBox(content))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
