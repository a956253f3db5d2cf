package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	"pdftok/internal/adapters/filesystem"
	"pdftok/internal/adapters/jsonstore"
	"pdftok/internal/adapters/scanner"
	"pdftok/internal/domain"
)

func setupDeps(t *testing.T) (Deps, string) {
	t.Helper()
	dir := t.TempDir()

	regPath := filepath.Join(dir, "tok.json")
	require.NoError(t, os.WriteFile(regPath, []byte(`{"ToK":[{"prefix":"A1","string":"Alpha"}]}`), 0o644))
	store, err := jsonstore.Open(regPath)
	require.NoError(t, err)
	_, err = store.Load()
	require.NoError(t, err)

	docs := filepath.Join(dir, "docs")
	require.NoError(t, os.MkdirAll(docs, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "scan.pdf"), []byte("x"), 0o644))

	conv := domain.DefaultConvention
	filter := domain.NewExtensionFilter([]string{".pdf"})
	return Deps{
		Store:   store,
		Files:   filesystem.NewSynchronizer(conv, filter),
		Scanner: scanner.New(conv, filter, nil),
		Report:  filesystem.NewReportWriter(filepath.Join(dir, "report.txt")),
		Root:    docs,
	}, docs
}

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args

	result, err := handler(context.Background(), req)
	require.NoError(t, err, "handlers report failures in the result")
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text, result.IsError
}

func TestTokTools(t *testing.T) {
	deps, _ := setupDeps(t)

	out, isErr := call(t, tokAddHandler(deps), map[string]any{"code": "B2", "label": "Beta"})
	require.False(t, isErr, out)
	require.Contains(t, out, "Added B2 (Beta)")
	require.Contains(t, out, "A1  Alpha")

	out, isErr = call(t, tokAddHandler(deps), map[string]any{"code": "B2"})
	require.True(t, isErr)
	require.Contains(t, out, "already exists")

	out, isErr = call(t, tokEditLabelHandler(deps), map[string]any{"code": "B2", "label": "Bravo"})
	require.False(t, isErr, out)

	out, isErr = call(t, tokEditCodeHandler(deps), map[string]any{"old_code": "B2", "new_code": "C3"})
	require.False(t, isErr, out)
	require.Contains(t, out, "C3  Bravo")

	out, isErr = call(t, tokDeleteHandler(deps), map[string]any{"code": "A1"})
	require.False(t, isErr, out)

	out, _ = call(t, tokListHandler(deps), nil)
	require.Equal(t, "C3  Bravo\n", out)
}

func TestFileTools(t *testing.T) {
	deps, docs := setupDeps(t)

	out, isErr := call(t, filesListHandler(deps), map[string]any{"dir": docs, "bare_only": true})
	require.False(t, isErr, out)
	require.True(t, strings.HasPrefix(out, "-  scan.pdf"), out)

	out, isErr = call(t, filesTagHandler(deps), map[string]any{"dir": docs, "filename": "scan.pdf", "code": "A1"})
	require.False(t, isErr, out)
	require.Equal(t, "Renamed scan.pdf to A 1 scan.pdf", out)

	out, isErr = call(t, filesRenameHandler(deps), map[string]any{"dir": docs, "filename": "A 1 scan.pdf", "index": "A1", "name": "invoice.pdf"})
	require.False(t, isErr, out)
	require.Equal(t, "Renamed A 1 scan.pdf to A 1 invoice.pdf", out)

	out, isErr = call(t, filesTagHandler(deps), map[string]any{"dir": docs, "filename": "A 1 invoice.pdf", "code": "Q9"})
	require.True(t, isErr)
	require.Contains(t, out, "code not found")

	out, isErr = call(t, scanHandler(deps), nil)
	require.False(t, isErr, out)
	require.Contains(t, out, "Found 1 indexed of 1 files")
}

func TestTokTools_ReloadAfterExternalEdit(t *testing.T) {
	deps, docs := setupDeps(t)
	regPath := filepath.Join(filepath.Dir(docs), "tok.json")
	require.NoError(t, os.WriteFile(regPath, []byte(`{"ToK":[{"prefix":"A1","string":"Alpha"},{"prefix":"Z9","string":"Zulu"}]}`), 0o644))

	out, isErr := call(t, tokAddHandler(deps), map[string]any{"code": "B2", "label": "Beta"})
	require.True(t, isErr)
	require.Contains(t, out, "modified since last load")

	out, isErr = call(t, tokReloadHandler(deps), nil)
	require.False(t, isErr, out)
	require.Contains(t, out, "Reloaded 2 entries")
	require.Contains(t, out, "Z9  Zulu")

	out, isErr = call(t, tokAddHandler(deps), map[string]any{"code": "B2", "label": "Beta"})
	require.False(t, isErr, out)
	require.Contains(t, out, "Added B2 (Beta)")
}

func TestTokList_ReadsCurrentDocument(t *testing.T) {
	deps, docs := setupDeps(t)
	regPath := filepath.Join(filepath.Dir(docs), "tok.json")
	require.NoError(t, os.WriteFile(regPath, []byte(`{"ToK":[{"prefix":"Z9","string":"Zulu"}]}`), 0o644))

	out, isErr := call(t, tokListHandler(deps), nil)
	require.False(t, isErr, out)
	require.Equal(t, "Z9  Zulu\n", out)

	out, isErr = call(t, tokAddHandler(deps), map[string]any{"code": "B2", "label": "Beta"})
	require.False(t, isErr, out)
}
