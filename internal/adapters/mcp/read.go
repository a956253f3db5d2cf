package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"pdftok/internal/application/commands"
	"pdftok/internal/log"
)

// RegisterReadTools adds all read-only tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, deps Deps) {
	s.AddTool(tokListTool(), tokListHandler(deps))
	s.AddTool(tokReloadTool(), tokReloadHandler(deps))
	s.AddTool(filesListTool(), filesListHandler(deps))
}

// --- tok_list ---

func tokListTool() mcp.Tool {
	return mcp.NewTool("tok_list",
		mcp.WithDescription("List every ToK code and its label in registry order, as currently on disk."),
	)
}

func tokListHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		log.Debug(log.CatMCP, "tool call", "tool", "tok_list")

		result, err := commands.NewReloadRegistryCommand(deps.Store).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(result.Registry.Entries, formatEntry)
	}
}

// --- tok_reload ---

func tokReloadTool() mcp.Tool {
	return mcp.NewTool("tok_reload",
		mcp.WithDescription("Re-read the registry document from disk. Use after an edit fails because the document changed since it was loaded."),
	)
}

func tokReloadHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		log.Debug(log.CatMCP, "tool call", "tool", "tok_reload")

		result, err := commands.NewReloadRegistryCommand(deps.Store).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return registryResult(result.Message, result.Registry)
	}
}

// --- files_list ---

func filesListTool() mcp.Tool {
	return mcp.NewTool("files_list",
		mcp.WithDescription("List managed files in a directory with their index, name and modification time. Bare files show '-' as index."),
		mcp.WithString("dir",
			mcp.Description("Directory to list"),
			mcp.Required(),
		),
		mcp.WithBoolean("bare_only",
			mcp.Description("Only list files without an index, most recent first"),
		),
	)
}

func filesListHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dir := req.GetString("dir", "")
		bareOnly := req.GetBool("bare_only", false)
		log.Debug(log.CatMCP, "tool call", "tool", "files_list", "dir", dir, "bare_only", bareOnly)

		result, err := commands.NewListFilesCommand(deps.Files, dir, bareOnly).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(result.Files, formatRecord)
	}
}
