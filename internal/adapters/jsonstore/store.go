// Package jsonstore persists the ToK registry as a JSON document.
//
// The document is an object whose "ToK" key holds an ordered array of
// {"prefix": code, "string": label} pairs. Other top-level keys are kept
// as-is on rewrite. Every mutation backs up the previous bytes and replaces
// the document atomically.
package jsonstore

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"pdftok/internal/domain"
	"pdftok/internal/log"
	"pdftok/internal/ports"
)

const (
	tokKey       = "ToK"
	backupLayout = "2006-01-02_15-04-05"
	indent       = "    "
)

var _ ports.RegistryStore = (*Store)(nil)

type docEntry struct {
	Prefix string `json:"prefix"`
	String string `json:"string"`
}

// Store reads and writes a single registry document.
// It is not safe for concurrent use.
type Store struct {
	path      string
	backupDir string
	now       func() time.Time

	reg    *domain.Registry
	extra  map[string]json.RawMessage
	digest [sha256.Size]byte
	mode   fs.FileMode
	loaded bool
}

// Option configures a Store
type Option func(*Store)

// WithBackupDir sets where backups are written (default: the document's directory)
func WithBackupDir(dir string) Option {
	return func(s *Store) {
		if dir != "" {
			s.backupDir = dir
		}
	}
}

// WithClock overrides the time source used for backup names
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open creates a store for the document at path. Call Load before mutating.
func Open(path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &domain.ValidationError{Field: "registry", Message: "path is required"}
	}
	s := &Store{
		path:      path,
		backupDir: filepath.Dir(path),
		now:       time.Now,
		reg:       &domain.Registry{},
		mode:      0o644,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the document path
func (s *Store) Path() string {
	return s.path
}

// Load reads and validates the document, replacing the in-memory registry
func (s *Store) Load() (*domain.Registry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.NotFoundError{Kind: "registry", Key: s.path}
		}
		return nil, &domain.IOError{Op: "read", Path: s.path, Err: err}
	}

	reg, extra, err := s.decode(data)
	if err != nil {
		log.ErrorErr(log.CatRegistry, "registry load failed", err, "path", s.path)
		return nil, err
	}
	if info, err := os.Stat(s.path); err == nil {
		s.mode = info.Mode().Perm()
	}

	s.reg = reg
	s.extra = extra
	s.digest = sha256.Sum256(data)
	s.loaded = true

	log.Info(log.CatRegistry, "loaded registry", "path", s.path, "entries", reg.Len())
	return reg.Clone(), nil
}

// Registry returns a copy of the in-memory registry
func (s *Store) Registry() *domain.Registry {
	return s.reg.Clone()
}

// Add appends a new entry
func (s *Store) Add(code, label string) (*domain.Registry, error) {
	return s.mutate("add", code, func(r *domain.Registry) (*domain.Registry, error) {
		return r.WithAdded(code, label)
	})
}

// EditCode replaces oldCode with newCode, keeping the label and position
func (s *Store) EditCode(oldCode, newCode string) (*domain.Registry, error) {
	return s.mutate("edit code", oldCode, func(r *domain.Registry) (*domain.Registry, error) {
		return r.WithCode(oldCode, newCode)
	})
}

// EditLabel replaces the label of code
func (s *Store) EditLabel(code, label string) (*domain.Registry, error) {
	return s.mutate("edit label", code, func(r *domain.Registry) (*domain.Registry, error) {
		return r.WithLabel(code, label)
	})
}

// Delete removes code
func (s *Store) Delete(code string) (*domain.Registry, error) {
	return s.mutate("delete", code, func(r *domain.Registry) (*domain.Registry, error) {
		return r.Without(code)
	})
}

// Backups lists backup files for this document, newest first
func (s *Store) Backups() ([]string, error) {
	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &domain.IOError{Op: "list backups", Path: s.backupDir, Err: err}
	}

	stem, ext := s.stemExt()
	type backup struct {
		path  string
		taken time.Time
	}
	var found []backup
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, stem+"_") || !strings.HasSuffix(name, ext) {
			continue
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, stem+"_"), ext)
		taken, err := time.ParseInLocation(backupLayout, stamp, time.Local)
		if err != nil {
			continue
		}
		found = append(found, backup{path: filepath.Join(s.backupDir, name), taken: taken})
	}

	slices.SortFunc(found, func(a, b backup) int {
		return b.taken.Compare(a.taken)
	})
	paths := make([]string, len(found))
	for i, b := range found {
		paths[i] = b.path
	}
	return paths, nil
}

// BackupPath returns the backup name used for a write at t
func (s *Store) BackupPath(t time.Time) string {
	stem, ext := s.stemExt()
	return filepath.Join(s.backupDir, stem+"_"+t.Format(backupLayout)+ext)
}

// mutate applies fn under the validate, stale check, backup, write protocol.
// Memory is only updated once the new document is on disk.
func (s *Store) mutate(op, code string, fn func(*domain.Registry) (*domain.Registry, error)) (*domain.Registry, error) {
	next, err := fn(s.reg)
	if err != nil {
		log.Debug(log.CatRegistry, "rejected edit", "op", op, "code", code, "error", err)
		return nil, err
	}

	live, err := s.checkFresh()
	if err != nil {
		log.Warn(log.CatRegistry, "registry changed on disk", "op", op, "error", err)
		return nil, err
	}

	data, err := s.encode(next)
	if err != nil {
		return nil, err
	}

	backup := s.BackupPath(s.now())
	if err := s.writeBackup(backup, live); err != nil {
		return nil, err
	}
	if err := writeAtomic(s.path, data, s.mode); err != nil {
		return nil, err
	}

	s.reg = next
	s.digest = sha256.Sum256(data)
	log.Info(log.CatRegistry, "registry updated", "op", op, "code", code, "backup", backup)
	return next.Clone(), nil
}

// checkFresh re-reads the live document and compares it with the last known digest
func (s *Store) checkFresh() ([]byte, error) {
	if !s.loaded {
		return nil, &domain.StaleRecordError{Path: s.path, Reason: "registry not loaded"}
	}
	live, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.StaleRecordError{Path: s.path, Reason: "document no longer exists"}
		}
		return nil, &domain.IOError{Op: "read", Path: s.path, Err: err}
	}
	if sha256.Sum256(live) != s.digest {
		return nil, &domain.StaleRecordError{Path: s.path, Reason: "document modified since last load"}
	}
	return live, nil
}

func (s *Store) writeBackup(path string, data []byte) error {
	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return &domain.IOError{Op: "create backup directory", Path: s.backupDir, Err: err}
	}
	return writeAtomic(path, data, s.mode)
}

func (s *Store) stemExt() (string, string) {
	base := filepath.Base(s.path)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext), ext
}

func (s *Store) decode(data []byte) (*domain.Registry, map[string]json.RawMessage, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, &domain.CorruptDataError{Path: s.path, Reason: "not a JSON object", Err: err}
	}
	raw, ok := doc[tokKey]
	if !ok {
		return nil, nil, &domain.CorruptDataError{Path: s.path, Reason: fmt.Sprintf("missing %q key", tokKey)}
	}

	var items []docEntry
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, nil, &domain.CorruptDataError{Path: s.path, Reason: "malformed entries", Err: err}
	}

	reg := &domain.Registry{Entries: make([]domain.Entry, 0, len(items))}
	for _, it := range items {
		reg.Entries = append(reg.Entries, domain.Entry{Code: it.Prefix, Label: it.String})
	}
	if err := reg.Check(); err != nil {
		return nil, nil, &domain.CorruptDataError{Path: s.path, Reason: "invalid entries", Err: err}
	}

	delete(doc, tokKey)
	return reg, doc, nil
}

func (s *Store) encode(reg *domain.Registry) ([]byte, error) {
	items := make([]docEntry, 0, reg.Len())
	for _, e := range reg.Entries {
		items = append(items, docEntry{Prefix: e.Code, String: e.Label})
	}
	raw, err := marshal(items, "")
	if err != nil {
		return nil, fmt.Errorf("encoding registry: %w", err)
	}

	doc := make(map[string]json.RawMessage, len(s.extra)+1)
	for k, v := range s.extra {
		doc[k] = v
	}
	doc[tokKey] = raw

	data, err := marshal(doc, indent)
	if err != nil {
		return nil, fmt.Errorf("encoding registry: %w", err)
	}
	return data, nil
}

// marshal encodes v without HTML escaping, ending in a newline
func marshal(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeAtomic(path string, data []byte, mode fs.FileMode) error {
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return &domain.IOError{Op: "write", Path: path, Err: err}
	}
	// New files from atomic.WriteFile start out 0600
	if err := os.Chmod(path, mode); err != nil {
		return &domain.IOError{Op: "chmod", Path: path, Err: err}
	}
	return nil
}
