package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"pdftok/internal/adapters/styles"
	"pdftok/internal/application/commands"
	"pdftok/internal/domain"
)

var scanCmd = &cobra.Command{
	Use:   "scan [root]",
	Short: "Write the report of every indexed file under a tree",
	Long: `Walk the document tree and write one line per indexed file to the
configured report, as "<folder>\t<filename>\t<index>" with "[root]" for
files directly under the root. Directories listed in exclude_dirs are skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := commands.NewScanCommand(newScanner(), newReportWriter(), rootArg(args)).Execute(context.Background())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		printFailures(out, summary.Failures)
		fmt.Fprintln(out, styles.Success.Render(summary.Message()))
		return nil
	},
}

func printFailures(out io.Writer, failures []domain.ScanFailure) {
	for _, f := range failures {
		fmt.Fprintln(out, styles.WarningText.Render("skipped: "+f.String()))
	}
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
