package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"pdftok/internal/domain"
	"pdftok/internal/log"
	"pdftok/internal/ports"

	_ "github.com/mattn/go-sqlite3"
)

const schemaVersion = "1"

// SnapshotStore implements ports.SnapshotStore using SQLite
type SnapshotStore struct {
	db     *sql.DB
	dbPath string
	now    func() time.Time
}

// Ensure SnapshotStore implements ports.SnapshotStore
var _ ports.SnapshotStore = (*SnapshotStore)(nil)

// Open opens (creating when missing) the snapshot database at dbPath
func Open(dbPath string) (*SnapshotStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Pragmas + schema in a single batch
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS snapshots (
			id TEXT PRIMARY KEY,
			root TEXT NOT NULL,
			taken_at INTEGER NOT NULL,
			only_duplicates INTEGER NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS files (
			snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
			size INTEGER NOT NULL,
			position INTEGER NOT NULL,
			filename TEXT NOT NULL,
			indexes TEXT NOT NULL,
			PRIMARY KEY (snapshot_id, size, position)
		);
		CREATE TABLE IF NOT EXISTS locations (
			snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
			size INTEGER NOT NULL,
			file_position INTEGER NOT NULL,
			position INTEGER NOT NULL,
			folder TEXT NOT NULL,
			modified INTEGER NOT NULL,
			PRIMARY KEY (snapshot_id, size, file_position, position)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_snapshots_root ON snapshots(root, taken_at);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	log.Debug(log.CatDB, "opened snapshot database", "path", dbPath)
	return &SnapshotStore{db: db, dbPath: dbPath, now: time.Now}, nil
}

// Close closes the database connection
func (s *SnapshotStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save writes snapshot in one transaction.
// A missing ID is generated and a zero TakenAt is set to now.
func (s *SnapshotStore) Save(snapshot *domain.Snapshot) error {
	if snapshot == nil {
		return errors.New("snapshot is nil")
	}
	if snapshot.ID == "" {
		snapshot.ID = uuid.NewString()
	}
	if snapshot.TakenAt.IsZero() {
		snapshot.TakenAt = s.now()
	}

	tx, err := s.beginTx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.insertSnapshot(snapshot); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	for _, group := range snapshot.Groups {
		for pos, file := range group.Files {
			if err := tx.insertFile(snapshot.ID, group.Size, pos, file); err != nil {
				return fmt.Errorf("failed to save snapshot file %s: %w", file.Filename, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	log.Info(log.CatDB, "saved snapshot", "id", snapshot.ID, "root", snapshot.Root, "groups", len(snapshot.Groups))
	return nil
}

// Latest returns the newest snapshot taken of root, or nil when there is none
func (s *SnapshotStore) Latest(root string) (*domain.Snapshot, error) {
	var snap domain.Snapshot
	var takenAt int64
	var onlyDup int

	err := s.db.QueryRow(`
		SELECT id, root, taken_at, only_duplicates
		FROM snapshots WHERE root = ?
		ORDER BY taken_at DESC, rowid DESC
		LIMIT 1
	`, root).Scan(&snap.ID, &snap.Root, &takenAt, &onlyDup)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}
	snap.TakenAt = time.Unix(0, takenAt)
	snap.OnlyDuplicates = onlyDup != 0

	groups, err := s.loadGroups(snap.ID)
	if err != nil {
		return nil, err
	}
	snap.Groups = groups
	return &snap, nil
}

func (s *SnapshotStore) loadGroups(snapshotID string) ([]domain.SizeGroup, error) {
	files, err := s.db.Query(`
		SELECT size, filename, indexes
		FROM files WHERE snapshot_id = ?
		ORDER BY size, position
	`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot files: %w", err)
	}
	defer files.Close()

	var groups []domain.SizeGroup
	for files.Next() {
		var size int64
		var gf domain.GroupedFile
		if err := files.Scan(&size, &gf.Filename, &gf.Indexes); err != nil {
			return nil, err
		}
		if n := len(groups); n == 0 || groups[n-1].Size != size {
			groups = append(groups, domain.SizeGroup{Size: size})
		}
		g := &groups[len(groups)-1]
		g.Files = append(g.Files, gf)
	}
	if err := files.Err(); err != nil {
		return nil, err
	}

	locs, err := s.db.Query(`
		SELECT size, file_position, folder, modified
		FROM locations WHERE snapshot_id = ?
		ORDER BY size, file_position, position
	`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot locations: %w", err)
	}
	defer locs.Close()

	bySize := make(map[int64]int, len(groups))
	for i, g := range groups {
		bySize[g.Size] = i
	}
	for locs.Next() {
		var size, modified int64
		var filePos int
		var loc domain.Location
		if err := locs.Scan(&size, &filePos, &loc.Folder, &modified); err != nil {
			return nil, err
		}
		gi, ok := bySize[size]
		if !ok || filePos >= len(groups[gi].Files) {
			return nil, fmt.Errorf("snapshot %s: orphan location in %s", snapshotID, loc.Folder)
		}
		loc.Modified = time.Unix(modified, 0)
		f := &groups[gi].Files[filePos]
		f.Locations = append(f.Locations, loc)
	}
	return groups, locs.Err()
}
