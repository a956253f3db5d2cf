package domain

import (
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// FileRecord is a cached view of one file in a managed directory.
// It mirrors filesystem truth at load time and is never authoritative.
type FileRecord struct {
	Index   string    // ToK code recovered from the filename (empty for bare files)
	Name    string    // Remainder after the formatted index and its space
	Path    string    // Absolute path at load time
	ModTime time.Time // Modification time at load time
}

// Filename returns the base name of the record's path
func (f FileRecord) Filename() string {
	return filepath.Base(f.Path)
}

// Dir returns the directory containing the record
func (f FileRecord) Dir() string {
	return filepath.Dir(f.Path)
}

// IsBare reports whether the file carries no index
func (f FileRecord) IsBare() bool {
	return f.Index == ""
}

// NewFileRecord derives a record from a path using the given convention
func NewFileRecord(conv Convention, path string, modTime time.Time) FileRecord {
	index, name := conv.Parse(filepath.Base(path))
	return FileRecord{Index: index, Name: name, Path: path, ModTime: modTime}
}

// ExtensionFilter matches filenames by lowercase extension.
// An empty filter matches everything.
type ExtensionFilter map[string]struct{}

// NewExtensionFilter normalizes extensions to lowercase with a leading dot
func NewExtensionFilter(exts []string) ExtensionFilter {
	f := make(ExtensionFilter, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		f[e] = struct{}{}
	}
	return f
}

// Match reports whether filename passes the filter
func (f ExtensionFilter) Match(filename string) bool {
	if len(f) == 0 {
		return true
	}
	_, ok := f[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// SortByRecent orders records most recently modified first, then by filename
func SortByRecent(records []FileRecord) {
	slices.SortStableFunc(records, func(a, b FileRecord) int {
		if c := b.ModTime.Compare(a.ModTime); c != 0 {
			return c
		}
		return strings.Compare(a.Filename(), b.Filename())
	})
}
