package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/jvmrepo/jvmrepo/src/internal/repository"
	"github.com/jvmrepo/jvmrepo/src/internal/tui"
	"github.com/jvmrepo/jvmrepo/src/internal/ui"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
)

var (
	verifyHashesFlag bool
	verifyDiffFlag   bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify <component>",
	Short: "Check an installed component against its manifest",
	Long: `Compare an installed component with the manifest written when it was installed.

Every manifest entry is checked for presence, type, size and link target.
With --hashes, the SHA-1 of every file is recomputed as well. With --diff,
the manifest inventory and the files on disk are shown as a unified diff.

Examples:
  jvmrepo verify java-runtime-gamma
  jvmrepo verify java-runtime-gamma --hashes --diff`,
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

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		spinner := ui.NewSpinner(fmt.Sprintf("Verifying %s...", component))
		spinner.Start()

		report, err := env.repo.Verify(ctx, p, component, repository.VerifyOptions{Hashes: verifyHashesFlag})
		if err != nil {
			spinner.Error(fmt.Sprintf("Could not verify %s", component))
			return err
		}
		spinner.Stop()

		if verifyDiffFlag {
			actual, err := repository.Inventory(env.repo.JavaDir(p, component))
			if err != nil {
				ui.Debug("Inventory incomplete: %v", err)
			}
			diff, err := inventoryDiff(report.Manifest.Files.Keys(), actual)
			if err != nil {
				return err
			}
			if diff != "" {
				fmt.Print(diff)
				fmt.Println()
			}
		}

		if len(report.Problems) > 0 {
			table := tui.NewTable("Path", "Problem", "Expected", "Actual")
			table.SetTitle(fmt.Sprintf("%s (%s)", component, p))
			for _, problem := range report.Problems {
				table.AddRow(problem.Path, string(problem.Kind), problem.Expected, problem.Actual)
			}
			fmt.Println(table.Render())
		}

		for _, extra := range report.Extra {
			ui.Warning("Not in manifest: %s", extra)
		}

		summary := fmt.Sprintf("%d entries checked, %s recorded", report.Checked,
			humanize.IBytes(uint64(report.Manifest.TotalSize())))
		if !report.OK() {
			fmt.Println(tui.RenderErrorBox(fmt.Sprintf("%s %s: %d problems\n%s",
				tui.GetCrossMark(), component, len(report.Problems), summary)))
			return fmt.Errorf("%s does not match its manifest", component)
		}

		fmt.Println(tui.RenderSuccessBox(fmt.Sprintf("%s %s matches its manifest\n%s",
			tui.GetCheckMark(), component, summary)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().BoolVar(&verifyHashesFlag, "hashes", false, "Recompute the SHA-1 of every file")
	verifyCmd.Flags().BoolVar(&verifyDiffFlag, "diff", false, "Show a diff of manifest entries and files on disk")
}

// inventoryDiff renders the difference between the paths a manifest lists
// and the paths found on disk. It returns "" when they are the same.
func inventoryDiff(expected, actual []string) (string, error) {
	a := append([]string(nil), expected...)
	b := append([]string(nil), actual...)
	sort.Strings(a)
	sort.Strings(b)

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        lines(a),
		B:        lines(b),
		FromFile: "manifest",
		ToFile:   "disk",
		Context:  1,
	})
}

func lines(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = p + "\n"
	}
	return out
}
