package commands

import (
	"context"
	"fmt"

	"pdftok/internal/application"
	"pdftok/internal/domain"
	"pdftok/internal/ports"
)

// ListFilesResult contains the managed files of one directory
type ListFilesResult struct {
	Dir   string
	Files []domain.FileRecord
}

// ListFilesCommand loads a directory, optionally keeping only bare files
type ListFilesCommand struct {
	files    ports.FileIndex
	Dir      string
	BareOnly bool
}

// NewListFilesCommand creates a new ListFilesCommand
func NewListFilesCommand(files ports.FileIndex, dir string, bareOnly bool) *ListFilesCommand {
	return &ListFilesCommand{files: files, Dir: dir, BareOnly: bareOnly}
}

// Validate checks the directory is given
func (c *ListFilesCommand) Validate() error {
	return application.ValidateRequired("dir", c.Dir)
}

// Execute runs the list command
func (c *ListFilesCommand) Execute(ctx context.Context) (*ListFilesResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var records []domain.FileRecord
	var err error
	if c.BareOnly {
		records, err = c.files.ListBare(c.Dir)
	} else {
		records, err = c.files.Load(c.Dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", c.Dir, err)
	}

	return &ListFilesResult{Dir: c.Dir, Files: records}, nil
}

// RenameFileResult contains the record before and after a rename
type RenameFileResult struct {
	Original domain.FileRecord
	Record   domain.FileRecord
	Message  string
}

// RenameFileCommand gives a file a new index and name
type RenameFileCommand struct {
	files    ports.FileIndex
	Dir      string
	Filename string
	NewIndex string
	NewName  string
}

// NewRenameFileCommand creates a new RenameFileCommand
func NewRenameFileCommand(files ports.FileIndex, dir, filename, newIndex, newName string) *RenameFileCommand {
	return &RenameFileCommand{
		files:    files,
		Dir:      dir,
		Filename: filename,
		NewIndex: newIndex,
		NewName:  newName,
	}
}

// Validate checks the inputs without touching the filesystem
func (c *RenameFileCommand) Validate() error {
	if err := application.ValidateRequired("dir", c.Dir); err != nil {
		return err
	}
	if err := application.ValidateFilename("filename", c.Filename); err != nil {
		return err
	}
	if err := application.ValidateIndex(c.NewIndex); err != nil {
		return err
	}
	return application.ValidateFilename("name", c.NewName)
}

// Execute runs the rename command
func (c *RenameFileCommand) Execute(ctx context.Context) (*RenameFileResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	original, err := c.files.Record(c.Dir, c.Filename)
	if err != nil {
		return nil, err
	}
	return renameRecord(c.files, original, c.NewIndex, c.NewName)
}

// TagFileCommand sets a file's index to a registered code, keeping its name
type TagFileCommand struct {
	files    ports.FileIndex
	store    ports.RegistryStore
	Dir      string
	Filename string
	Code     string
}

// NewTagFileCommand creates a new TagFileCommand
func NewTagFileCommand(files ports.FileIndex, store ports.RegistryStore, dir, filename, code string) *TagFileCommand {
	return &TagFileCommand{
		files:    files,
		store:    store,
		Dir:      dir,
		Filename: filename,
		Code:     code,
	}
}

// Validate checks the inputs without touching the filesystem
func (c *TagFileCommand) Validate() error {
	if err := application.ValidateRequired("dir", c.Dir); err != nil {
		return err
	}
	if err := application.ValidateFilename("filename", c.Filename); err != nil {
		return err
	}
	return application.ValidateCode(c.Code)
}

// Execute runs the tag command
func (c *TagFileCommand) Execute(ctx context.Context) (*RenameFileResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if !c.store.Registry().Has(c.Code) {
		return nil, &application.NotFoundError{Kind: "code", Key: c.Code}
	}

	original, err := c.files.Record(c.Dir, c.Filename)
	if err != nil {
		return nil, err
	}
	return renameRecord(c.files, original, c.Code, original.Name)
}

func renameRecord(files ports.FileIndex, original domain.FileRecord, index, name string) (*RenameFileResult, error) {
	renamed, err := files.Rename(original, index, name)
	if err != nil {
		return nil, fmt.Errorf("failed to rename %s: %w", original.Filename(), err)
	}

	msg := fmt.Sprintf("Renamed %s to %s", original.Filename(), renamed.Filename())
	if renamed.Path == original.Path {
		msg = fmt.Sprintf("%s unchanged", original.Filename())
	}
	return &RenameFileResult{Original: original, Record: renamed, Message: msg}, nil
}
