package cmd

import (
	"pdftok/internal/adapters/filesystem"
	"pdftok/internal/adapters/jsonstore"
	"pdftok/internal/adapters/scanner"
	"pdftok/internal/adapters/sqlite"
	"pdftok/internal/domain"
)

func convention() domain.Convention {
	return domain.NewConvention(cfg.MinIndexTokens)
}

func extensionFilter() domain.ExtensionFilter {
	return domain.NewExtensionFilter(cfg.Extensions)
}

// openRegistry opens and loads the configured registry document
func openRegistry() (*jsonstore.Store, error) {
	store, err := jsonstore.Open(cfg.Registry, jsonstore.WithBackupDir(cfg.BackupDirectory()))
	if err != nil {
		return nil, err
	}
	if _, err := store.Load(); err != nil {
		return nil, err
	}
	return store, nil
}

func newSynchronizer() *filesystem.Synchronizer {
	return filesystem.NewSynchronizer(convention(), extensionFilter())
}

func newScanner() *scanner.Scanner {
	return scanner.New(convention(), extensionFilter(), cfg.ExcludeDirs)
}

func newReportWriter() *filesystem.ReportWriter {
	return filesystem.NewReportWriter(cfg.Report)
}

func openSnapshots() (*sqlite.SnapshotStore, error) {
	return sqlite.Open(cfg.InventoryDB)
}

// rootArg returns the first argument, or the configured root
func rootArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Root
}
