package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"pdftok/internal/application/commands"
	"pdftok/internal/log"
)

// RegisterWriteTools adds all mutating tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, deps Deps) {
	s.AddTool(tokAddTool(), tokAddHandler(deps))
	s.AddTool(tokEditCodeTool(), tokEditCodeHandler(deps))
	s.AddTool(tokEditLabelTool(), tokEditLabelHandler(deps))
	s.AddTool(tokDeleteTool(), tokDeleteHandler(deps))
	s.AddTool(filesRenameTool(), filesRenameHandler(deps))
	s.AddTool(filesTagTool(), filesTagHandler(deps))
	s.AddTool(scanTool(), scanHandler(deps))
}

// --- tok_add ---

func tokAddTool() mcp.Tool {
	return mcp.NewTool("tok_add",
		mcp.WithDescription("Add a ToK code to the registry. Codes are letters and digits only and must be unique. A backup is written before the change."),
		mcp.WithString("code",
			mcp.Description("New code (e.g. A1, X2Y)"),
			mcp.Required(),
		),
		mcp.WithString("label",
			mcp.Description("Label describing the code"),
		),
	)
}

func tokAddHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		code := req.GetString("code", "")
		label := req.GetString("label", "")
		log.Debug(log.CatMCP, "tool call", "tool", "tok_add", "code", code)

		result, err := commands.NewAddEntryCommand(deps.Store, code, label).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return registryResult(result.Message, result.Registry)
	}
}

// --- tok_edit_code ---

func tokEditCodeTool() mcp.Tool {
	return mcp.NewTool("tok_edit_code",
		mcp.WithDescription("Change an existing code, keeping its label. Files already named with the old code are not renamed."),
		mcp.WithString("old_code",
			mcp.Description("Code to change"),
			mcp.Required(),
		),
		mcp.WithString("new_code",
			mcp.Description("Replacement code"),
			mcp.Required(),
		),
	)
}

func tokEditCodeHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		oldCode := req.GetString("old_code", "")
		newCode := req.GetString("new_code", "")
		log.Debug(log.CatMCP, "tool call", "tool", "tok_edit_code", "old", oldCode, "new", newCode)

		result, err := commands.NewEditCodeCommand(deps.Store, oldCode, newCode).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return registryResult(result.Message, result.Registry)
	}
}

// --- tok_edit_label ---

func tokEditLabelTool() mcp.Tool {
	return mcp.NewTool("tok_edit_label",
		mcp.WithDescription("Replace the label of an existing code."),
		mcp.WithString("code",
			mcp.Description("Code to relabel"),
			mcp.Required(),
		),
		mcp.WithString("label",
			mcp.Description("New label"),
			mcp.Required(),
		),
	)
}

func tokEditLabelHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		code := req.GetString("code", "")
		label := req.GetString("label", "")
		log.Debug(log.CatMCP, "tool call", "tool", "tok_edit_label", "code", code)

		result, err := commands.NewEditLabelCommand(deps.Store, code, label).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return registryResult(result.Message, result.Registry)
	}
}

// --- tok_delete ---

func tokDeleteTool() mcp.Tool {
	return mcp.NewTool("tok_delete",
		mcp.WithDescription("Remove a code from the registry. A backup is written before the change."),
		mcp.WithString("code",
			mcp.Description("Code to remove"),
			mcp.Required(),
		),
	)
}

func tokDeleteHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		code := req.GetString("code", "")
		log.Debug(log.CatMCP, "tool call", "tool", "tok_delete", "code", code)

		result, err := commands.NewDeleteEntryCommand(deps.Store, code).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return registryResult(result.Message, result.Registry)
	}
}

// --- files_rename ---

func filesRenameTool() mcp.Tool {
	return mcp.NewTool("files_rename",
		mcp.WithDescription("Rename a file to '<spaced index> <name>'. An empty index makes the file bare."),
		mcp.WithString("dir",
			mcp.Description("Directory containing the file"),
			mcp.Required(),
		),
		mcp.WithString("filename",
			mcp.Description("Current filename"),
			mcp.Required(),
		),
		mcp.WithString("index",
			mcp.Description("New index code (letters and digits), empty for none"),
		),
		mcp.WithString("name",
			mcp.Description("New name after the index, including the extension"),
			mcp.Required(),
		),
	)
}

func filesRenameHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dir := req.GetString("dir", "")
		filename := req.GetString("filename", "")
		index := req.GetString("index", "")
		name := req.GetString("name", "")
		log.Debug(log.CatMCP, "tool call", "tool", "files_rename", "dir", dir, "filename", filename)

		result, err := commands.NewRenameFileCommand(deps.Files, dir, filename, index, name).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- files_tag ---

func filesTagTool() mcp.Tool {
	return mcp.NewTool("files_tag",
		mcp.WithDescription("Give a file a registered ToK code, keeping the rest of its name."),
		mcp.WithString("dir",
			mcp.Description("Directory containing the file"),
			mcp.Required(),
		),
		mcp.WithString("filename",
			mcp.Description("Current filename"),
			mcp.Required(),
		),
		mcp.WithString("code",
			mcp.Description("Registered code to apply"),
			mcp.Required(),
		),
	)
}

func filesTagHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dir := req.GetString("dir", "")
		filename := req.GetString("filename", "")
		code := req.GetString("code", "")
		log.Debug(log.CatMCP, "tool call", "tool", "files_tag", "dir", dir, "filename", filename, "code", code)

		result, err := commands.NewTagFileCommand(deps.Files, deps.Store, dir, filename, code).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- scan ---

func scanTool() mcp.Tool {
	return mcp.NewTool("scan",
		mcp.WithDescription("Scan the document tree for indexed files and rewrite the report."),
		mcp.WithString("root",
			mcp.Description("Root to scan. Omit to use the configured root."),
		),
	)
}

func scanHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		root := req.GetString("root", deps.Root)
		log.Debug(log.CatMCP, "tool call", "tool", "scan", "root", root)

		summary, err := commands.NewScanCommand(deps.Scanner, deps.Report, root).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(summary.Message()), nil
	}
}
