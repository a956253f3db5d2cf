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

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List and rename managed files",
	Long: `List the managed files of a directory and rename them.

Examples:
  pdftok files list ~/Dropbox/inbox --bare
  pdftok files rename ~/Dropbox/inbox myfile.pdf --index A1 --name important-document.pdf
  pdftok files tag ~/Dropbox/inbox scan.pdf X2Y`,
}

var filesBareOnly bool

var filesListCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List files with their index and name",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}
		result, err := commands.NewListFilesCommand(newSynchronizer(), dir, filesBareOnly).Execute(context.Background())
		if err != nil {
			return err
		}
		printRecords(cmd.OutOrStdout(), result.Files)
		return nil
	},
}

var (
	renameIndex string
	renameName  string
)

var filesRenameCmd = &cobra.Command{
	Use:   "rename <dir> <filename>",
	Short: "Give a file a new index and name",
	Long: `Rename a file to "<spaced index> <name>". Without --index the file
becomes bare; without --name the current name is kept.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sync := newSynchronizer()
		name := renameName
		if name == "" {
			rec, err := sync.Record(args[0], args[1])
			if err != nil {
				return err
			}
			name = rec.Name
		}
		result, err := commands.NewRenameFileCommand(sync, args[0], args[1], renameIndex, name).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), styles.Success.Render(result.Message))
		return nil
	},
}

var filesTagCmd = &cobra.Command{
	Use:   "tag <dir> <filename> <code>",
	Short: "Apply a registered code to a file",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openRegistry()
		if err != nil {
			return err
		}
		result, err := commands.NewTagFileCommand(newSynchronizer(), store, args[0], args[1], args[2]).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), styles.Success.Render(result.Message))
		return nil
	},
}

func printRecords(out io.Writer, records []domain.FileRecord) {
	if len(records) == 0 {
		fmt.Fprintln(out, styles.Subtitle.Render("No files."))
		return
	}

	indexes := make([]string, len(records))
	for i, r := range records {
		indexes[i] = r.Index
		if r.IsBare() {
			indexes[i] = "-"
		}
	}
	width := styles.MaxWidth(indexes)

	for i, r := range records {
		style := styles.Code
		if r.IsBare() {
			style = styles.Bare
		}
		fmt.Fprintf(out, "%s  %s  %s\n",
			styles.Column(style, indexes[i], width),
			styles.Subtitle.Render(r.ModTime.Format("2006-01-02 15:04")),
			r.Name)
	}
}

func init() {
	filesListCmd.Flags().BoolVar(&filesBareOnly, "bare", false, "only files without an index, most recent first")
	filesRenameCmd.Flags().StringVar(&renameIndex, "index", "", "new index code (empty for a bare file)")
	filesRenameCmd.Flags().StringVar(&renameName, "name", "", "new name after the index (default: keep current)")

	rootCmd.AddCommand(filesCmd)
	filesCmd.AddCommand(filesListCmd)
	filesCmd.AddCommand(filesRenameCmd)
	filesCmd.AddCommand(filesTagCmd)
}
