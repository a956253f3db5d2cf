package application

import "pdftok/internal/domain"

// Re-export domain types for use by adapters
type (
	Entry           = domain.Entry
	Registry        = domain.Registry
	FileRecord      = domain.FileRecord
	ScanResult      = domain.ScanResult
	ScanEntry       = domain.ScanEntry
	ScanFailure     = domain.ScanFailure
	Snapshot        = domain.Snapshot
	Difference      = domain.Difference
	DuplicateReport = domain.DuplicateReport
)

// FormatIndex spaces a code the way it appears in filenames
func FormatIndex(code string) string {
	return domain.FormatIndex(code)
}

// JoinName builds the managed filename for an index and a name
func JoinName(index, name string) string {
	return domain.JoinName(index, name)
}
