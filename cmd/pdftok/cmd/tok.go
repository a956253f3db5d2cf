package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"pdftok/internal/adapters/styles"
	"pdftok/internal/application"
	"pdftok/internal/application/commands"
	"pdftok/internal/domain"
)

// copyToClipboard is replaced in tests
var copyToClipboard = clipboard.WriteAll

var tokCmd = &cobra.Command{
	Use:   "tok",
	Short: "Manage the ToK registry",
	Long: `List and edit the ToK registry. Every edit is validated first, then the
previous document is backed up and the new one written atomically.

Examples:
  pdftok tok list
  pdftok tok add X2Y "Cross-cutting notes"
  pdftok tok edit-code X2Y X3Y
  pdftok tok edit-label X3Y "Notes, revised"
  pdftok tok delete X3Y
  pdftok tok format X3Y --copy`,
}

var tokListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every code and label",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openRegistry()
		if err != nil {
			return err
		}
		printRegistry(cmd.OutOrStdout(), store.Registry())
		return nil
	},
}

var tokAddCmd = &cobra.Command{
	Use:   "add <code> [label...]",
	Short: "Add a code",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openRegistry()
		if err != nil {
			return err
		}
		result, err := commands.NewAddEntryCommand(store, args[0], strings.Join(args[1:], " ")).Execute(context.Background())
		return printRegistryResult(cmd.OutOrStdout(), result, err)
	},
}

var tokEditCodeCmd = &cobra.Command{
	Use:   "edit-code <old-code> <new-code>",
	Short: "Change a code, keeping its label",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openRegistry()
		if err != nil {
			return err
		}
		result, err := commands.NewEditCodeCommand(store, args[0], args[1]).Execute(context.Background())
		return printRegistryResult(cmd.OutOrStdout(), result, err)
	},
}

var tokEditLabelCmd = &cobra.Command{
	Use:   "edit-label <code> <label...>",
	Short: "Replace the label of a code",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openRegistry()
		if err != nil {
			return err
		}
		result, err := commands.NewEditLabelCommand(store, args[0], strings.Join(args[1:], " ")).Execute(context.Background())
		return printRegistryResult(cmd.OutOrStdout(), result, err)
	},
}

var tokDeleteCmd = &cobra.Command{
	Use:   "delete <code>",
	Short: "Remove a code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openRegistry()
		if err != nil {
			return err
		}
		result, err := commands.NewDeleteEntryCommand(store, args[0]).Execute(context.Background())
		return printRegistryResult(cmd.OutOrStdout(), result, err)
	},
}

var tokBackupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List registry backups, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openRegistry()
		if err != nil {
			return err
		}
		backups, err := store.Backups()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(backups) == 0 {
			fmt.Fprintln(out, styles.Subtitle.Render("No backups."))
			return nil
		}
		for _, b := range backups {
			fmt.Fprintln(out, b)
		}
		return nil
	},
}

var tokFormatCopy bool

var tokFormatCmd = &cobra.Command{
	Use:   "format <code>",
	Short: "Print the filename prefix for a code",
	Long: `Print the filename prefix for a code: its characters separated by single
spaces and followed by one space, ready to put in front of a filename.`,
	Args: cobra.ExactArgs(1),
	Annotations: map[string]string{
		skipConfigAnnotation: "true",
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.ValidateCode(args[0]); err != nil {
			return err
		}
		prefix := application.FormatIndex(args[0]) + " "
		if tokFormatCopy {
			if err := copyToClipboard(prefix); err != nil {
				return fmt.Errorf("copying to clipboard: %w", err)
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%q\n", prefix)
		return nil
	},
}

func printRegistry(out io.Writer, reg *domain.Registry) {
	if reg.Len() == 0 {
		fmt.Fprintln(out, styles.Subtitle.Render("Registry is empty."))
		return
	}
	width := styles.MaxWidth(reg.Codes())
	for _, e := range reg.Entries {
		fmt.Fprintf(out, "%s  %s\n", styles.Column(styles.Code, e.Code, width), styles.Label.Render(e.Label))
	}
}

func printRegistryResult(out io.Writer, result *commands.RegistryResult, err error) error {
	if err != nil {
		return err
	}
	fmt.Fprintln(out, styles.Success.Render(result.Message))
	return nil
}

func init() {
	tokFormatCmd.Flags().BoolVar(&tokFormatCopy, "copy", false, "also copy the prefix to the clipboard")

	rootCmd.AddCommand(tokCmd)
	tokCmd.AddCommand(tokListCmd)
	tokCmd.AddCommand(tokAddCmd)
	tokCmd.AddCommand(tokEditCodeCmd)
	tokCmd.AddCommand(tokEditLabelCmd)
	tokCmd.AddCommand(tokDeleteCmd)
	tokCmd.AddCommand(tokBackupsCmd)
	tokCmd.AddCommand(tokFormatCmd)
}
