package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"pdftok/internal/adapters/filesystem"
	"pdftok/internal/adapters/jsonstore"
	"pdftok/internal/domain"
)

func setupRegistry(t *testing.T, doc string) *jsonstore.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tok.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("failed to write registry: %v", err)
	}
	store, err := jsonstore.Open(path)
	if err != nil {
		t.Fatalf("failed to open registry: %v", err)
	}
	if _, err := store.Load(); err != nil {
		t.Fatalf("failed to load registry: %v", err)
	}
	return store
}

func setupFiles(t *testing.T, names ...string) (string, *filesystem.Synchronizer) {
	t.Helper()

	dir := t.TempDir()
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(name), 0o644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}
	return dir, filesystem.NewSynchronizer(domain.DefaultConvention, domain.NewExtensionFilter([]string{".pdf"}))
}

// memorySnapshots is an in-memory ports.SnapshotStore
type memorySnapshots struct {
	saved []*domain.Snapshot
}

func (m *memorySnapshots) Save(s *domain.Snapshot) error {
	if s.ID == "" {
		s.ID = fmt.Sprintf("snap-%d", len(m.saved)+1)
	}
	m.saved = append(m.saved, s)
	return nil
}

func (m *memorySnapshots) Latest(root string) (*domain.Snapshot, error) {
	for i := len(m.saved) - 1; i >= 0; i-- {
		if m.saved[i].Root == root {
			return m.saved[i], nil
		}
	}
	return nil, nil
}

func (m *memorySnapshots) Close() error { return nil }
