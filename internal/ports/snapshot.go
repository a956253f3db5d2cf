package ports

import "pdftok/internal/domain"

// SnapshotStore persists inventories so successive runs can be compared
type SnapshotStore interface {
	Save(snapshot *domain.Snapshot) error
	// Latest returns the most recent snapshot for root, or nil when none exists
	Latest(root string) (*domain.Snapshot, error)
	Close() error
}
