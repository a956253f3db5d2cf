// Package mcp exposes registry and file operations as MCP tools.
package mcp

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"pdftok/internal/domain"
	"pdftok/internal/ports"
)

// Deps holds the adapters the tools operate on
type Deps struct {
	Store   ports.RegistryStore
	Files   ports.FileIndex
	Scanner ports.TreeScanner
	Report  ports.ReportWriter
	Root    string // Default scan root
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatEntry(e domain.Entry) string {
	return fmt.Sprintf("%s  %s", e.Code, e.Label)
}

func formatRecord(r domain.FileRecord) string {
	index := r.Index
	if index == "" {
		index = "-"
	}
	return fmt.Sprintf("%s  %s  %s", index, r.Name, r.ModTime.Format("2006-01-02 15:04"))
}

// registryResult renders a mutation message followed by the full registry
func registryResult(msg string, reg *domain.Registry) (*mcp.CallToolResult, error) {
	var sb strings.Builder
	sb.WriteString(msg)
	sb.WriteString("\n\n")
	for _, e := range reg.Entries {
		sb.WriteString(formatEntry(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}
