package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pdftok/internal/adapters/styles"
	"pdftok/internal/config"
	"pdftok/internal/log"
)

// skipConfigAnnotation marks commands that run without loading configuration
const skipConfigAnnotation = "pdftok/skip-config"

var (
	cfgFile    string
	cfg        config.Config
	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "pdftok",
	Short: "Keep PDF filenames and the ToK index in sync",
	Long: `pdftok manages a registry of short ToK codes and the PDF files named
after them. A file "A 1 report.pdf" carries code A1; renaming the file
changes its code, and every registry edit is written immediately with a
timestamped backup.

Configuration is read from --config, ./.pdftok/config.yaml or
~/.config/pdftok/config.yaml, with PDFTOK_* environment overrides.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Annotations[skipConfigAnnotation] != "" {
			return nil
		}
		return initConfig(cmd)
	},
}

// Execute runs the root command
func Execute() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorLine(err))
		os.Exit(1)
	}
}

// execute runs the root command and always closes the debug log,
// including when the command fails
func execute() error {
	defer closeLog()
	return rootCmd.Execute()
}

func errorLine(err error) string {
	return styles.ErrorText.Render("Error: " + err.Error())
}

// closeLog flushes and closes the debug log opened by initConfig
func closeLog() {
	if logCleanup != nil {
		logCleanup()
		logCleanup = nil
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ./.pdftok/config.yaml or ~/.config/pdftok/config.yaml)")
	rootCmd.PersistentFlags().String("root", "", "document tree to scan (default ~/Dropbox)")
	rootCmd.PersistentFlags().String("registry", "", "ToK registry JSON document")
}

func initConfig(cmd *cobra.Command) error {
	v := viper.New()
	if err := v.BindPFlag("root", cmd.Flags().Lookup("root")); err != nil {
		return err
	}
	if err := v.BindPFlag("registry", cmd.Flags().Lookup("registry")); err != nil {
		return err
	}

	loaded, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	cfg = loaded

	if cfg.DebugLog != "" {
		cleanup, err := log.Init(cfg.DebugLog)
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		logCleanup = cleanup
		log.SetMinLevel(log.ParseLevel(cfg.LogLevel))
		log.Debug(log.CatConfig, "config ready", "root", cfg.Root, "registry", cfg.Registry)
	}
	return nil
}
