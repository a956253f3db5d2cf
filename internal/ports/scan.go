package ports

import "pdftok/internal/domain"

// TreeScanner walks a directory tree applying the naming convention
type TreeScanner interface {
	Scan(root string) (*domain.ScanResult, error)
	Inventory(root string) ([]domain.InventoryFile, []domain.ScanFailure, error)
}

// ReportWriter persists a scan result as a flat report
type ReportWriter interface {
	Write(result *domain.ScanResult) error
	Path() string
}
