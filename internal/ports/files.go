package ports

import "pdftok/internal/domain"

// FileIndex loads managed directories and renames files within them
type FileIndex interface {
	Load(dir string) ([]domain.FileRecord, error)
	ListBare(dir string) ([]domain.FileRecord, error)
	Record(dir, filename string) (domain.FileRecord, error)
	Rename(record domain.FileRecord, newIndex, newName string) (domain.FileRecord, error)
}
