package commands

import (
	"context"
	"fmt"
	"time"

	"pdftok/internal/application"
	"pdftok/internal/domain"
	"pdftok/internal/ports"
)

// ScanSummary describes a completed scan and report write
type ScanSummary struct {
	Root       string
	Indexed    int
	Scanned    int
	Failures   []domain.ScanFailure
	ReportPath string
	Duration   time.Duration
	Result     *domain.ScanResult
}

// Message returns a one-line description of the scan
func (s *ScanSummary) Message() string {
	msg := fmt.Sprintf("Found %d indexed of %d files under %s; report written to %s",
		s.Indexed, s.Scanned, s.Root, s.ReportPath)
	if n := len(s.Failures); n > 0 {
		msg += fmt.Sprintf(" (%d directories skipped)", n)
	}
	return msg
}

// ScanCommand scans a tree and writes the flat report
type ScanCommand struct {
	scanner ports.TreeScanner
	report  ports.ReportWriter
	Root    string
}

// NewScanCommand creates a new ScanCommand
func NewScanCommand(scanner ports.TreeScanner, report ports.ReportWriter, root string) *ScanCommand {
	return &ScanCommand{scanner: scanner, report: report, Root: root}
}

// Validate checks the root is given
func (c *ScanCommand) Validate() error {
	return application.ValidateRequired("root", c.Root)
}

// Execute runs the scan command
func (c *ScanCommand) Execute(ctx context.Context) (*ScanSummary, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := c.scanner.Scan(c.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", c.Root, err)
	}
	if err := c.report.Write(result); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}

	return &ScanSummary{
		Root:       result.Root,
		Indexed:    result.Len(),
		Scanned:    result.Scanned,
		Failures:   result.Failures,
		ReportPath: c.report.Path(),
		Duration:   time.Since(start),
		Result:     result,
	}, nil
}
