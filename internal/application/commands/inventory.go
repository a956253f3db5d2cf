package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"pdftok/internal/application"
	"pdftok/internal/domain"
	"pdftok/internal/ports"
)

// InventoryResult contains a fresh snapshot and how it differs from the previous one
type InventoryResult struct {
	Snapshot    *domain.Snapshot
	Previous    *domain.Snapshot // nil on the first run for a root
	Differences []domain.Difference
	Failures    []domain.ScanFailure
	Stats       domain.InventoryStats

	// ComparedDuplicatesOnly is set when the previous snapshot was taken in the
	// other mode, so only shared sizes were compared
	ComparedDuplicatesOnly bool
}

// InventoryCommand groups every matching file by size, compares with the
// last snapshot of the same root and saves the new one
type InventoryCommand struct {
	scanner        ports.TreeScanner
	snapshots      ports.SnapshotStore
	Root           string
	OnlyDuplicates bool
}

// NewInventoryCommand creates a new InventoryCommand
func NewInventoryCommand(scanner ports.TreeScanner, snapshots ports.SnapshotStore, root string, onlyDuplicates bool) *InventoryCommand {
	return &InventoryCommand{
		scanner:        scanner,
		snapshots:      snapshots,
		Root:           root,
		OnlyDuplicates: onlyDuplicates,
	}
}

// Validate checks the root is given
func (c *InventoryCommand) Validate() error {
	return application.ValidateRequired("root", c.Root)
}

// Execute runs the inventory command
func (c *InventoryCommand) Execute(ctx context.Context) (*InventoryResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	root, err := filepath.Abs(c.Root)
	if err != nil {
		return nil, &application.IOError{Op: "resolve", Path: c.Root, Err: err}
	}

	start := time.Now()
	files, failures, err := c.scanner.Inventory(root)
	if err != nil {
		return nil, fmt.Errorf("failed to inventory %s: %w", root, err)
	}
	groups := domain.BuildGroups(files, c.OnlyDuplicates)

	previous, err := c.snapshots.Latest(root)
	if err != nil {
		return nil, fmt.Errorf("failed to load previous snapshot: %w", err)
	}

	var diffs []domain.Difference
	var duplicatesOnly bool
	if previous != nil {
		prev, curr := previous.Groups, groups
		// A full inventory and a duplicates-only one are compared on their common part
		if previous.OnlyDuplicates != c.OnlyDuplicates {
			prev, curr = domain.DuplicateGroups(prev), domain.DuplicateGroups(curr)
			duplicatesOnly = true
		}
		diffs = domain.CompareGroups(prev, curr)
	}

	snap := &domain.Snapshot{Root: root, OnlyDuplicates: c.OnlyDuplicates, Groups: groups}
	if err := c.snapshots.Save(snap); err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}

	return &InventoryResult{
		Snapshot:    snap,
		Previous:    previous,
		Differences: diffs,
		Failures:    failures,
		Stats: domain.InventoryStats{
			FilesScanned: len(files),
			SizeGroups:   len(groups),
			Duplicates:   domain.CountDuplicates(groups),
			Duration:     time.Since(start),
		},
		ComparedDuplicatesOnly: duplicatesOnly,
	}, nil
}

// DuplicatesResult contains the deletable copies found in the latest snapshot
type DuplicatesResult struct {
	Snapshot *domain.Snapshot
	Report   domain.DuplicateReport
}

// DuplicatesCommand analyzes the latest snapshot of a root for copies that
// also exist in a protected folder
type DuplicatesCommand struct {
	snapshots ports.SnapshotStore
	Root      string
	Protected []string
	Ignored   []string
}

// NewDuplicatesCommand creates a new DuplicatesCommand
func NewDuplicatesCommand(snapshots ports.SnapshotStore, root string, protected, ignored []string) *DuplicatesCommand {
	return &DuplicatesCommand{
		snapshots: snapshots,
		Root:      root,
		Protected: protected,
		Ignored:   ignored,
	}
}

// Validate checks the root and protected folders are given
func (c *DuplicatesCommand) Validate() error {
	if err := application.ValidateRequired("root", c.Root); err != nil {
		return err
	}
	if len(c.Protected) == 0 {
		return &application.ValidationError{Field: "protected", Message: "at least one protected folder is required"}
	}
	return nil
}

// Execute runs the duplicates command
func (c *DuplicatesCommand) Execute(ctx context.Context) (*DuplicatesResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	root, err := filepath.Abs(c.Root)
	if err != nil {
		return nil, &application.IOError{Op: "resolve", Path: c.Root, Err: err}
	}

	snap, err := c.snapshots.Latest(root)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	if snap == nil {
		return nil, &application.NotFoundError{Kind: "snapshot", Key: root}
	}

	return &DuplicatesResult{
		Snapshot: snap,
		Report:   domain.AnalyzeDuplicates(snap.Groups, c.Protected, c.Ignored),
	}, nil
}
