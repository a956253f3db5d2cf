package filesystem

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"pdftok/internal/domain"
	"pdftok/internal/log"
	"pdftok/internal/ports"
)

var _ ports.ReportWriter = (*ReportWriter)(nil)

// ReportWriter writes scan results to a fixed report path
type ReportWriter struct {
	path string
}

// NewReportWriter creates a writer for the report at path
func NewReportWriter(path string) *ReportWriter {
	return &ReportWriter{path: path}
}

// Path returns the report location
func (w *ReportWriter) Path() string {
	return w.path
}

// Write replaces the report with the serialized result.
// The parent directory is created when missing.
func (w *ReportWriter) Write(result *domain.ScanResult) error {
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &domain.IOError{Op: "create report directory", Path: dir, Err: err}
	}

	if err := atomic.WriteFile(w.path, bytes.NewReader(domain.FormatReport(result))); err != nil {
		return &domain.IOError{Op: "write report", Path: w.path, Err: err}
	}
	if err := os.Chmod(w.path, 0o644); err != nil {
		return &domain.IOError{Op: "chmod", Path: w.path, Err: err}
	}

	log.Info(log.CatScan, "wrote report", "path", w.path, "entries", result.Len())
	return nil
}
