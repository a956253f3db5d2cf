package main

import (
	"context"
	"flag"
	"fmt"
	stdlog "log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/viper"

	"pdftok/internal/adapters/filesystem"
	"pdftok/internal/adapters/jsonstore"
	mcpadapter "pdftok/internal/adapters/mcp"
	"pdftok/internal/adapters/scanner"
	"pdftok/internal/config"
	"pdftok/internal/domain"
	"pdftok/internal/log"
)

func main() {
	cfgFlag := flag.String("config", "", "config file (default: ./.pdftok/config.yaml or ~/.config/pdftok/config.yaml)")
	flag.Parse()

	if err := run(*cfgFlag); err != nil {
		stdlog.Fatalf("pdftok-mcp: %v", err)
	}
}

// run serves until stdin closes. The debug log is closed before returning.
func run(cfgFile string) error {
	cfg, err := config.Load(viper.New(), cfgFile)
	if err != nil {
		return err
	}
	if cfg.DebugLog != "" {
		cleanup, err := log.Init(cfg.DebugLog)
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer cleanup()
		log.SetMinLevel(log.ParseLevel(cfg.LogLevel))
	}

	store, err := jsonstore.Open(cfg.Registry, jsonstore.WithBackupDir(cfg.BackupDirectory()))
	if err != nil {
		return err
	}
	if _, err := store.Load(); err != nil {
		return err
	}

	conv := domain.NewConvention(cfg.MinIndexTokens)
	filter := domain.NewExtensionFilter(cfg.Extensions)
	deps := mcpadapter.Deps{
		Store:   store,
		Files:   filesystem.NewSynchronizer(conv, filter),
		Scanner: scanner.New(conv, filter, cfg.ExcludeDirs),
		Report:  filesystem.NewReportWriter(cfg.Report),
		Root:    cfg.Root,
	}

	mcpServer := server.NewMCPServer(
		"pdftok-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, deps)
	mcpadapter.RegisterWriteTools(mcpServer, deps)

	log.Info(log.CatMCP, "serving", "registry", cfg.Registry, "root", cfg.Root)
	if err := server.ServeStdio(mcpServer); err != nil {
		log.ErrorErr(log.CatMCP, "server stopped", err)
		return err
	}
	return nil
}
