package domain

import (
	"fmt"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// InventoryFile is one matching file seen during an inventory walk
type InventoryFile struct {
	Filename string // Name without the ToK prefix
	Index    string // ToK code, empty for bare files
	Folder   string // Absolute containing directory
	Size     int64
	Modified time.Time
}

// Location is one place a grouped file lives
type Location struct {
	Folder   string
	Modified time.Time
}

// GroupedFile is every copy of one filename within a size group
type GroupedFile struct {
	Filename  string
	Indexes   string // Sorted set of ToK codes joined with ";"
	Locations []Location
}

// SizeGroup holds all files sharing a byte size
type SizeGroup struct {
	Size  int64
	Files []GroupedFile
}

// Snapshot is a persisted inventory of one root
type Snapshot struct {
	ID             string
	Root           string
	TakenAt        time.Time
	OnlyDuplicates bool
	Groups         []SizeGroup
}

// InventoryStats summarizes an inventory run
type InventoryStats struct {
	FilesScanned int
	SizeGroups   int
	Duplicates   int // Size groups holding more than one file
	Duration     time.Duration
}

// BuildGroups groups files by size (ascending), then by filename in first-seen order.
// With onlyDuplicates, sizes seen once are dropped.
func BuildGroups(files []InventoryFile, onlyDuplicates bool) []SizeGroup {
	bySize := make(map[int64][]InventoryFile)
	for _, f := range files {
		bySize[f.Size] = append(bySize[f.Size], f)
	}

	sizes := make([]int64, 0, len(bySize))
	for size, list := range bySize {
		if onlyDuplicates && len(list) < 2 {
			continue
		}
		sizes = append(sizes, size)
	}
	slices.Sort(sizes)

	groups := make([]SizeGroup, 0, len(sizes))
	for _, size := range sizes {
		var order []string
		byName := make(map[string]*GroupedFile)
		indexes := make(map[string]map[string]bool)
		for _, f := range bySize[size] {
			gf, ok := byName[f.Filename]
			if !ok {
				gf = &GroupedFile{Filename: f.Filename}
				byName[f.Filename] = gf
				indexes[f.Filename] = make(map[string]bool)
				order = append(order, f.Filename)
			}
			if f.Index != "" {
				indexes[f.Filename][f.Index] = true
			}
			gf.Locations = append(gf.Locations, Location{Folder: f.Folder, Modified: f.Modified})
		}

		group := SizeGroup{Size: size, Files: make([]GroupedFile, 0, len(order))}
		for _, name := range order {
			gf := byName[name]
			gf.Indexes = joinSet(indexes[name])
			group.Files = append(group.Files, *gf)
		}
		groups = append(groups, group)
	}
	return groups
}

// CountDuplicates returns the number of size groups with more than one file
func CountDuplicates(groups []SizeGroup) int {
	n := 0
	for _, g := range groups {
		if g.copies() > 1 {
			n++
		}
	}
	return n
}

// DuplicateGroups keeps the size groups holding more than one file, the same
// set BuildGroups returns with onlyDuplicates
func DuplicateGroups(groups []SizeGroup) []SizeGroup {
	out := make([]SizeGroup, 0, len(groups))
	for _, g := range groups {
		if g.copies() > 1 {
			out = append(out, g)
		}
	}
	return out
}

func (g SizeGroup) copies() int {
	n := 0
	for _, f := range g.Files {
		n += len(f.Locations)
	}
	return n
}

// DiffKind classifies a change between two inventories
type DiffKind string

const (
	DiffNew        DiffKind = "NEW"
	DiffRemoved    DiffKind = "REMOVED"
	DiffTokChanged DiffKind = "TOK CHANGED"
	DiffCopied     DiffKind = "MOVED/COPIED"
	DiffDeleted    DiffKind = "MOVED/DELETED"
	DiffModified   DiffKind = "MODIFIED"
)

// Difference is one change between two inventories
type Difference struct {
	Kind      DiffKind
	Filename  string
	Size      int64
	Folder    string
	Locations int
	OldIndex  string
	NewIndex  string
}

func (d Difference) String() string {
	switch d.Kind {
	case DiffNew:
		return fmt.Sprintf("NEW: %s%s (size: %s bytes, %d location(s))",
			d.Filename, tokDisplay(d.NewIndex), humanize.Comma(d.Size), d.Locations)
	case DiffRemoved:
		return fmt.Sprintf("REMOVED: %s%s (size: %s bytes, was in %d location(s))",
			d.Filename, tokDisplay(d.OldIndex), humanize.Comma(d.Size), d.Locations)
	case DiffTokChanged:
		return fmt.Sprintf("TOK CHANGED: %s - '%s' -> '%s'", d.Filename, d.OldIndex, d.NewIndex)
	case DiffCopied:
		return fmt.Sprintf("MOVED/COPIED: %s now in: %s", d.Filename, d.Folder)
	case DiffDeleted:
		return fmt.Sprintf("MOVED/DELETED: %s no longer in: %s", d.Filename, d.Folder)
	case DiffModified:
		return fmt.Sprintf("MODIFIED: %s in %s - dates changed", d.Filename, d.Folder)
	default:
		return fmt.Sprintf("%s: %s", d.Kind, d.Filename)
	}
}

func tokDisplay(tok string) string {
	if tok == "" {
		return ""
	}
	return fmt.Sprintf(" [ToK: %s]", tok)
}

// CompareGroups lists the changes from prev to curr in size, filename, folder order
func CompareGroups(prev, curr []SizeGroup) []Difference {
	oldIdx := indexGroups(prev)
	newIdx := indexGroups(curr)

	var diffs []Difference
	for _, size := range unionKeys(oldIdx, newIdx) {
		oldFiles, newFiles := oldIdx[size], newIdx[size]
		for _, name := range unionKeys(oldFiles, newFiles) {
			of, inOld := oldFiles[name]
			nf, inNew := newFiles[name]
			switch {
			case inNew && !inOld:
				diffs = append(diffs, Difference{Kind: DiffNew, Filename: name, Size: size,
					Locations: len(nf.Locations), NewIndex: nf.Indexes})
			case inOld && !inNew:
				diffs = append(diffs, Difference{Kind: DiffRemoved, Filename: name, Size: size,
					Locations: len(of.Locations), OldIndex: of.Indexes})
			default:
				diffs = append(diffs, compareFile(size, of, nf)...)
			}
		}
	}
	return diffs
}

func compareFile(size int64, of, nf GroupedFile) []Difference {
	var diffs []Difference
	if of.Indexes != nf.Indexes {
		diffs = append(diffs, Difference{Kind: DiffTokChanged, Filename: nf.Filename, Size: size,
			OldIndex: of.Indexes, NewIndex: nf.Indexes})
	}

	oldLocs := locationsByFolder(of.Locations)
	newLocs := locationsByFolder(nf.Locations)
	for _, folder := range unionKeys(oldLocs, newLocs) {
		ol, inOld := oldLocs[folder]
		nl, inNew := newLocs[folder]
		switch {
		case inNew && !inOld:
			diffs = append(diffs, Difference{Kind: DiffCopied, Filename: nf.Filename, Size: size, Folder: folder})
		case inOld && !inNew:
			diffs = append(diffs, Difference{Kind: DiffDeleted, Filename: nf.Filename, Size: size, Folder: folder})
		case ol.Modified.Unix() != nl.Modified.Unix():
			diffs = append(diffs, Difference{Kind: DiffModified, Filename: nf.Filename, Size: size, Folder: folder})
		}
	}
	return diffs
}

func indexGroups(groups []SizeGroup) map[int64]map[string]GroupedFile {
	idx := make(map[int64]map[string]GroupedFile, len(groups))
	for _, g := range groups {
		files := make(map[string]GroupedFile, len(g.Files))
		for _, f := range g.Files {
			files[f.Filename] = f
		}
		idx[g.Size] = files
	}
	return idx
}

func locationsByFolder(locs []Location) map[string]Location {
	m := make(map[string]Location, len(locs))
	for _, l := range locs {
		if _, ok := m[l.Folder]; !ok {
			m[l.Folder] = l
		}
	}
	return m
}

func unionKeys[K int64 | string, V any](a, b map[K]V) []K {
	keys := make([]K, 0, len(a)+len(b))
	for k := range a {
		keys = append(keys, k)
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

func joinSet(set map[string]bool) string {
	items := make([]string, 0, len(set))
	for k := range set {
		items = append(items, k)
	}
	sort.Strings(items)
	return strings.Join(items, ";")
}

// Deletable is a duplicate copy outside the protected folders
type Deletable struct {
	Filename           string
	Size               int64
	ProtectedLocations []string
}

// DuplicateReport lists deletable duplicates per non-protected folder
type DuplicateReport struct {
	ByFolder         map[string][]Deletable
	TotalInProtected int
	TotalDeletable   int
}

// FolderCount is one row of the sorted duplicate report
type FolderCount struct {
	Folder string
	Files  []Deletable
}

// SortedFolders orders folders by deletable count (descending), then name
func (r DuplicateReport) SortedFolders() []FolderCount {
	out := make([]FolderCount, 0, len(r.ByFolder))
	for folder, files := range r.ByFolder {
		out = append(out, FolderCount{Folder: folder, Files: files})
	}
	slices.SortFunc(out, func(a, b FolderCount) int {
		if len(a.Files) != len(b.Files) {
			return len(b.Files) - len(a.Files)
		}
		return strings.Compare(a.Folder, b.Folder)
	})
	return out
}

// AnalyzeDuplicates finds files that exist in a protected folder and also elsewhere.
// Locations under an ignored folder are left out entirely.
func AnalyzeDuplicates(groups []SizeGroup, protected, ignored []string) DuplicateReport {
	report := DuplicateReport{ByFolder: make(map[string][]Deletable)}
	for _, g := range groups {
		for _, f := range g.Files {
			var prot, other []string
			for _, loc := range f.Locations {
				switch {
				case InFolder(loc.Folder, ignored):
				case InFolder(loc.Folder, protected):
					prot = append(prot, loc.Folder)
				default:
					other = append(other, loc.Folder)
				}
			}
			if len(prot) == 0 || len(other) == 0 {
				continue
			}
			report.TotalInProtected++
			report.TotalDeletable += len(other)
			for _, folder := range other {
				report.ByFolder[folder] = append(report.ByFolder[folder], Deletable{
					Filename:           f.Filename,
					Size:               g.Size,
					ProtectedLocations: prot,
				})
			}
		}
	}
	return report
}

// InFolder reports whether any path component of folder equals one of names
func InFolder(folder string, names []string) bool {
	if len(names) == 0 {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(folder), "/") {
		if part != "" && slices.Contains(names, part) {
			return true
		}
	}
	return false
}
