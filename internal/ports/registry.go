package ports

import "pdftok/internal/domain"

// RegistryStore defines the interface for durable ToK registry storage.
// Every mutation validates first, then backs up and atomically rewrites the document.
type RegistryStore interface {
	// Load reads the document from disk, replacing the in-memory copy
	Load() (*domain.Registry, error)
	// Registry returns a copy of the in-memory registry
	Registry() *domain.Registry

	// Mutations
	Add(code, label string) (*domain.Registry, error)
	EditCode(oldCode, newCode string) (*domain.Registry, error)
	EditLabel(code, label string) (*domain.Registry, error)
	Delete(code string) (*domain.Registry, error)

	// Backups lists backup paths, newest first
	Backups() ([]string, error)
}
