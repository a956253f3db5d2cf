package domain

import (
	"bytes"
	"fmt"
)

// RootFolder is how the scan root itself is shown in reports
const RootFolder = "[root]"

// ScanEntry is one indexed file found during a scan
type ScanEntry struct {
	Dir      string // Absolute containing directory
	Folder   string // Dir relative to the scan root ("[root]" for the root)
	Filename string
	Index    string
	Name     string
}

// ScanFailure records a subdirectory that could not be read
type ScanFailure struct {
	Path string
	Err  error
}

func (f ScanFailure) String() string {
	return fmt.Sprintf("%s: %v", f.Path, f.Err)
}

// ScanResult is the ordered outcome of a directory scan
type ScanResult struct {
	Root     string
	Entries  []ScanEntry
	Failures []ScanFailure
	Scanned  int // Files visited, indexed or not
}

// Len returns the number of indexed files found
func (r *ScanResult) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Entries)
}

// FormatReport serializes a scan result, one tab-separated line per entry:
// <folder>\t<filename>\t<index>
func FormatReport(r *ScanResult) []byte {
	var buf bytes.Buffer
	if r == nil {
		return buf.Bytes()
	}
	for _, e := range r.Entries {
		buf.WriteString(e.Folder)
		buf.WriteByte('\t')
		buf.WriteString(e.Filename)
		buf.WriteByte('\t')
		buf.WriteString(e.Index)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
