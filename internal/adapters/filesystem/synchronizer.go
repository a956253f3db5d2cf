package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"pdftok/internal/domain"
	"pdftok/internal/log"
	"pdftok/internal/ports"
)

var _ ports.FileIndex = (*Synchronizer)(nil)

// Synchronizer implements ports.FileIndex on a single managed directory at a time.
// Records it returns are snapshots; Rename re-checks the disk before acting.
type Synchronizer struct {
	conv   domain.Convention
	filter domain.ExtensionFilter
}

// NewSynchronizer creates a synchronizer using conv to parse filenames
// and filter to select which files are managed
func NewSynchronizer(conv domain.Convention, filter domain.ExtensionFilter) *Synchronizer {
	return &Synchronizer{conv: conv, filter: filter}
}

// Load returns a record for every matching regular file directly under dir,
// in lexicographic filename order
func (s *Synchronizer) Load(dir string) ([]domain.FileRecord, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, &domain.IOError{Op: "resolve", Path: dir, Err: err}
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, &domain.IOError{Op: "read directory", Path: abs, Err: err}
	}

	records := make([]domain.FileRecord, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !s.filter.Match(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Removed between ReadDir and Info
			continue
		}
		records = append(records, domain.NewFileRecord(s.conv, filepath.Join(abs, entry.Name()), info.ModTime()))
	}

	log.Debug(log.CatFiles, "loaded directory", "dir", abs, "files", len(records))
	return records, nil
}

// ListBare returns the files in dir that carry no index, most recently modified first
func (s *Synchronizer) ListBare(dir string) ([]domain.FileRecord, error) {
	records, err := s.Load(dir)
	if err != nil {
		return nil, err
	}

	bare := records[:0]
	for _, r := range records {
		if r.IsBare() {
			bare = append(bare, r)
		}
	}
	domain.SortByRecent(bare)
	return bare, nil
}

// Record returns the current record for filename in dir
func (s *Synchronizer) Record(dir, filename string) (domain.FileRecord, error) {
	if err := validateName(filename); err != nil {
		return domain.FileRecord{}, err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return domain.FileRecord{}, &domain.IOError{Op: "resolve", Path: dir, Err: err}
	}

	path := filepath.Join(abs, filename)
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.FileRecord{}, &domain.NotFoundError{Kind: "file", Key: path}
		}
		return domain.FileRecord{}, &domain.IOError{Op: "stat", Path: path, Err: err}
	}
	if !info.Mode().IsRegular() {
		return domain.FileRecord{}, &domain.ValidationError{Field: "file", Message: filename + " is not a regular file"}
	}
	return domain.NewFileRecord(s.conv, path, info.ModTime()), nil
}

// Rename gives record a new index and name within its directory.
// An empty newIndex produces a bare filename.
func (s *Synchronizer) Rename(record domain.FileRecord, newIndex, newName string) (domain.FileRecord, error) {
	if !domain.ValidIndex(newIndex) {
		return domain.FileRecord{}, &domain.InvalidIndexError{Index: newIndex}
	}
	if err := validateName(newName); err != nil {
		return domain.FileRecord{}, err
	}

	current, err := os.Lstat(record.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.FileRecord{}, &domain.StaleRecordError{Path: record.Path, Reason: "file no longer exists"}
		}
		return domain.FileRecord{}, &domain.IOError{Op: "stat", Path: record.Path, Err: err}
	}

	target := filepath.Join(record.Dir(), domain.JoinName(newIndex, newName))
	if target == record.Path {
		return domain.NewFileRecord(s.conv, target, current.ModTime()), nil
	}

	existing, err := os.Lstat(target)
	switch {
	case err == nil:
		// Case-only renames on case-insensitive filesystems resolve to the same file
		if !os.SameFile(current, existing) {
			return domain.FileRecord{}, &domain.NameCollisionError{Path: target}
		}
	case !errors.Is(err, fs.ErrNotExist):
		return domain.FileRecord{}, &domain.IOError{Op: "stat", Path: target, Err: err}
	}

	if err := os.Rename(record.Path, target); err != nil {
		log.ErrorErr(log.CatFiles, "rename failed", err, "from", record.Path, "to", target)
		return domain.FileRecord{}, &domain.IOError{Op: "rename", Path: record.Path, Err: err}
	}

	log.Info(log.CatFiles, "renamed file", "from", record.Filename(), "to", filepath.Base(target), "dir", record.Dir())
	return domain.NewFileRecord(s.conv, target, current.ModTime()), nil
}

func validateName(name string) error {
	switch {
	case name == "":
		return &domain.ValidationError{Field: "name", Message: "name is required"}
	case name == "." || name == "..":
		return &domain.ValidationError{Field: "name", Message: "name must be a filename"}
	case strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator):
		return &domain.ValidationError{Field: "name", Message: "name must not contain a path separator"}
	}
	return nil
}
