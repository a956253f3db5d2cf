package sqlite

import (
	"database/sql"
	"fmt"

	"pdftok/internal/domain"
)

// snapshotTx batches the rows of one snapshot
type snapshotTx struct {
	tx *sql.Tx
}

func (s *SnapshotStore) beginTx() (*snapshotTx, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &snapshotTx{tx: tx}, nil
}

// insertSnapshot adds the snapshot header row
func (t *snapshotTx) insertSnapshot(snap *domain.Snapshot) error {
	onlyDup := 0
	if snap.OnlyDuplicates {
		onlyDup = 1
	}
	_, err := t.tx.Exec(`
		INSERT INTO snapshots (id, root, taken_at, only_duplicates)
		VALUES (?, ?, ?, ?)
	`, snap.ID, snap.Root, snap.TakenAt.UnixNano(), onlyDup)
	return err
}

// insertFile adds a grouped file and its locations
func (t *snapshotTx) insertFile(snapshotID string, size int64, pos int, file domain.GroupedFile) error {
	_, err := t.tx.Exec(`
		INSERT INTO files (snapshot_id, size, position, filename, indexes)
		VALUES (?, ?, ?, ?, ?)
	`, snapshotID, size, pos, file.Filename, file.Indexes)
	if err != nil {
		return err
	}

	for i, loc := range file.Locations {
		_, err := t.tx.Exec(`
			INSERT INTO locations (snapshot_id, size, file_position, position, folder, modified)
			VALUES (?, ?, ?, ?, ?, ?)
		`, snapshotID, size, pos, i, loc.Folder, loc.Modified.Unix())
		if err != nil {
			return err
		}
	}
	return nil
}

// Commit commits the transaction
func (t *snapshotTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *snapshotTx) Rollback() error {
	return t.tx.Rollback()
}
