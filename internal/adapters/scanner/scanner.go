// Package scanner walks a directory tree and collects files that follow the
// index-prefixed naming convention.
package scanner

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pdftok/internal/domain"
	"pdftok/internal/log"
	"pdftok/internal/ports"
)

var _ ports.TreeScanner = (*Scanner)(nil)

// Scanner implements ports.TreeScanner.
// The walk is depth-first: a directory's files come before its subdirectories,
// and both are visited in lexicographic order.
type Scanner struct {
	conv    domain.Convention
	filter  domain.ExtensionFilter
	exclude map[string]bool
}

// New creates a scanner. Directories named in excludeDirs are never entered.
func New(conv domain.Convention, filter domain.ExtensionFilter, excludeDirs []string) *Scanner {
	exclude := make(map[string]bool, len(excludeDirs))
	for _, d := range excludeDirs {
		if d = strings.TrimSpace(d); d != "" {
			exclude[d] = true
		}
	}
	return &Scanner{conv: conv, filter: filter, exclude: exclude}
}

// Scan collects every indexed file under root
func (s *Scanner) Scan(root string) (*domain.ScanResult, error) {
	start := time.Now()
	abs, err := checkRoot(root)
	if err != nil {
		return nil, err
	}

	result := &domain.ScanResult{Root: abs}
	failures, err := s.walk(abs, func(dir string, entry fs.DirEntry) {
		result.Scanned++
		index, name := s.conv.Parse(entry.Name())
		if index == "" {
			return
		}
		result.Entries = append(result.Entries, domain.ScanEntry{
			Dir:      dir,
			Folder:   folderOf(abs, dir),
			Filename: entry.Name(),
			Index:    index,
			Name:     name,
		})
	})
	if err != nil {
		return nil, err
	}
	result.Failures = failures

	log.Info(log.CatScan, "scan complete",
		"root", abs,
		"scanned", result.Scanned,
		"indexed", result.Len(),
		"failures", len(result.Failures),
		"duration", time.Since(start))
	return result, nil
}

// Inventory collects every matching file under root, indexed or bare, with its size
func (s *Scanner) Inventory(root string) ([]domain.InventoryFile, []domain.ScanFailure, error) {
	start := time.Now()
	abs, err := checkRoot(root)
	if err != nil {
		return nil, nil, err
	}

	var files []domain.InventoryFile
	var statFailures []domain.ScanFailure
	failures, err := s.walk(abs, func(dir string, entry fs.DirEntry) {
		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			statFailures = append(statFailures, domain.ScanFailure{Path: path, Err: err})
			return
		}
		index, name := s.conv.Parse(entry.Name())
		files = append(files, domain.InventoryFile{
			Filename: name,
			Index:    index,
			Folder:   dir,
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	})
	if err != nil {
		return nil, nil, err
	}
	failures = append(failures, statFailures...)

	log.Info(log.CatInventory, "inventory complete",
		"root", abs,
		"files", len(files),
		"failures", len(failures),
		"duration", time.Since(start))
	return files, failures, nil
}

// walk visits every matching non-directory entry below root.
// Subdirectories that cannot be read are returned as failures; an unreadable
// root is an error.
func (s *Scanner) walk(root string, visit func(dir string, entry fs.DirEntry)) ([]domain.ScanFailure, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, &domain.IOError{Op: "read directory", Path: root, Err: err}
	}

	var failures []domain.ScanFailure
	var walkDir func(dir string, entries []fs.DirEntry)
	walkDir = func(dir string, entries []fs.DirEntry) {
		var subdirs []string
		for _, entry := range entries {
			if entry.IsDir() {
				if s.skipDir(entry.Name()) {
					continue
				}
				subdirs = append(subdirs, filepath.Join(dir, entry.Name()))
				continue
			}
			if s.filter.Match(entry.Name()) {
				visit(dir, entry)
			}
		}

		for _, sub := range subdirs {
			children, err := os.ReadDir(sub)
			if err != nil {
				log.Warn(log.CatScan, "skipping unreadable directory", "path", sub, "error", err)
				failures = append(failures, domain.ScanFailure{Path: sub, Err: err})
				continue
			}
			walkDir(sub, children)
		}
	}
	walkDir(root, entries)
	return failures, nil
}

func (s *Scanner) skipDir(name string) bool {
	return s.exclude[name]
}

func checkRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", &domain.IOError{Op: "resolve", Path: root, Err: err}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", &domain.IOError{Op: "scan", Path: abs, Err: err}
	}
	if !info.IsDir() {
		return "", &domain.IOError{Op: "scan", Path: abs, Err: errNotDir}
	}
	return abs, nil
}

var errNotDir = errors.New("not a directory")

func folderOf(root, dir string) string {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." {
		return domain.RootFolder
	}
	return rel
}
