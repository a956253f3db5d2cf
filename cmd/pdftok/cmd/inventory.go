package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"pdftok/internal/adapters/styles"
	"pdftok/internal/application/commands"
)

var inventoryAll bool

var inventoryCmd = &cobra.Command{
	Use:   "inventory [root]",
	Short: "Snapshot files by size and compare with the previous run",
	Long: `Group every matching file under the tree by byte size and store the
result as a snapshot. When an earlier snapshot of the same root exists,
the differences are printed.

By default only sizes shared by more than one file are kept; pass --all
to record every file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshots, err := openSnapshots()
		if err != nil {
			return err
		}
		defer snapshots.Close()

		result, err := commands.NewInventoryCommand(newScanner(), snapshots, rootArg(args), !inventoryAll).Execute(context.Background())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printFailures(out, result.Failures)

		if result.ComparedDuplicatesOnly {
			fmt.Fprintln(out, styles.WarningText.Render("Previous snapshot used the other mode; comparing shared sizes only"))
		}
		switch {
		case result.Previous == nil:
			fmt.Fprintln(out, styles.Subtitle.Render("First snapshot for "+result.Snapshot.Root))
		case len(result.Differences) == 0:
			fmt.Fprintln(out, styles.Subtitle.Render("No changes since "+humanize.Time(result.Previous.TakenAt)))
		default:
			fmt.Fprintln(out, styles.Title.Render(fmt.Sprintf("Changes since %s", humanize.Time(result.Previous.TakenAt))))
			for _, d := range result.Differences {
				fmt.Fprintln(out, "  "+d.String())
			}
		}

		s := result.Stats
		fmt.Fprintln(out, styles.Success.Render(fmt.Sprintf("%s files in %s size groups, %s with duplicates (%s)",
			humanize.Comma(int64(s.FilesScanned)),
			humanize.Comma(int64(s.SizeGroups)),
			humanize.Comma(int64(s.Duplicates)),
			s.Duration.Round(time.Millisecond))))
		return nil
	},
}

var duplicatesCmd = &cobra.Command{
	Use:   "duplicates [root]",
	Short: "List copies of protected files that live elsewhere",
	Long: `Read the latest inventory snapshot of the tree and list, per folder, the
files that also exist in one of the protected folders. Ignored folders
are left out. Run "pdftok inventory" first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshots, err := openSnapshots()
		if err != nil {
			return err
		}
		defer snapshots.Close()

		result, err := commands.NewDuplicatesCommand(snapshots, rootArg(args), cfg.ProtectedFolders, cfg.IgnoredFolders).Execute(context.Background())
		if err != nil {
			return err
		}
		printDuplicates(cmd.OutOrStdout(), result)
		return nil
	},
}

func printDuplicates(out io.Writer, result *commands.DuplicatesResult) {
	report := result.Report
	if report.TotalDeletable == 0 {
		fmt.Fprintln(out, styles.Subtitle.Render("No duplicates outside protected folders."))
		return
	}

	for _, fc := range report.SortedFolders() {
		fmt.Fprintf(out, "%s %s\n", styles.Folder.Render(fc.Folder), styles.Subtitle.Render(fmt.Sprintf("(%d)", len(fc.Files))))
		for _, d := range fc.Files {
			fmt.Fprintf(out, "  %s  %s  also in %s\n",
				d.Filename,
				styles.Subtitle.Render(humanize.IBytes(uint64(d.Size))),
				strings.Join(d.ProtectedLocations, ", "))
		}
	}
	fmt.Fprintln(out, styles.Success.Render(fmt.Sprintf("%d protected files have %d deletable copies (snapshot %s)",
		report.TotalInProtected, report.TotalDeletable, humanize.Time(result.Snapshot.TakenAt))))
}

func init() {
	inventoryCmd.Flags().BoolVar(&inventoryAll, "all", false, "keep every file, not only shared sizes")

	rootCmd.AddCommand(inventoryCmd)
	rootCmd.AddCommand(duplicatesCmd)
}
