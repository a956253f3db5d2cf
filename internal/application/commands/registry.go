package commands

import (
	"context"
	"fmt"

	"pdftok/internal/application"
	"pdftok/internal/domain"
	"pdftok/internal/ports"
)

// RegistryResult contains the registry after an edit
type RegistryResult struct {
	Registry *domain.Registry
	Message  string
}

// AddEntryCommand appends a new code to the registry
type AddEntryCommand struct {
	store ports.RegistryStore
	Code  string
	Label string
}

// NewAddEntryCommand creates a new AddEntryCommand
func NewAddEntryCommand(store ports.RegistryStore, code, label string) *AddEntryCommand {
	return &AddEntryCommand{store: store, Code: code, Label: label}
}

// Validate checks the code format
func (c *AddEntryCommand) Validate() error {
	return application.ValidateCode(c.Code)
}

// Execute runs the add command
func (c *AddEntryCommand) Execute(ctx context.Context) (*RegistryResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	reg, err := c.store.Add(c.Code, c.Label)
	if err != nil {
		return nil, fmt.Errorf("failed to add %s: %w", c.Code, err)
	}

	return &RegistryResult{
		Registry: reg,
		Message:  fmt.Sprintf("Added %s (%s)", c.Code, c.Label),
	}, nil
}

// EditCodeCommand renames a code, keeping its label and position
type EditCodeCommand struct {
	store   ports.RegistryStore
	OldCode string
	NewCode string
}

// NewEditCodeCommand creates a new EditCodeCommand
func NewEditCodeCommand(store ports.RegistryStore, oldCode, newCode string) *EditCodeCommand {
	return &EditCodeCommand{store: store, OldCode: oldCode, NewCode: newCode}
}

// Validate checks both codes
func (c *EditCodeCommand) Validate() error {
	if err := application.ValidateRequired("oldCode", c.OldCode); err != nil {
		return err
	}
	return application.ValidateCode(c.NewCode)
}

// Execute runs the edit command
func (c *EditCodeCommand) Execute(ctx context.Context) (*RegistryResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	reg, err := c.store.EditCode(c.OldCode, c.NewCode)
	if err != nil {
		return nil, fmt.Errorf("failed to change %s: %w", c.OldCode, err)
	}

	msg := fmt.Sprintf("Changed %s to %s", c.OldCode, c.NewCode)
	if c.OldCode == c.NewCode {
		msg = fmt.Sprintf("%s unchanged", c.OldCode)
	}
	return &RegistryResult{Registry: reg, Message: msg}, nil
}

// EditLabelCommand replaces the label of a code
type EditLabelCommand struct {
	store ports.RegistryStore
	Code  string
	Label string
}

// NewEditLabelCommand creates a new EditLabelCommand
func NewEditLabelCommand(store ports.RegistryStore, code, label string) *EditLabelCommand {
	return &EditLabelCommand{store: store, Code: code, Label: label}
}

// Validate checks the code format
func (c *EditLabelCommand) Validate() error {
	return application.ValidateCode(c.Code)
}

// Execute runs the edit command
func (c *EditLabelCommand) Execute(ctx context.Context) (*RegistryResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	reg, err := c.store.EditLabel(c.Code, c.Label)
	if err != nil {
		return nil, fmt.Errorf("failed to relabel %s: %w", c.Code, err)
	}

	return &RegistryResult{
		Registry: reg,
		Message:  fmt.Sprintf("Relabeled %s as %s", c.Code, c.Label),
	}, nil
}

// DeleteEntryCommand removes a code from the registry
type DeleteEntryCommand struct {
	store ports.RegistryStore
	Code  string
}

// NewDeleteEntryCommand creates a new DeleteEntryCommand
func NewDeleteEntryCommand(store ports.RegistryStore, code string) *DeleteEntryCommand {
	return &DeleteEntryCommand{store: store, Code: code}
}

// Validate checks the code format
func (c *DeleteEntryCommand) Validate() error {
	return application.ValidateCode(c.Code)
}

// Execute runs the delete command
func (c *DeleteEntryCommand) Execute(ctx context.Context) (*RegistryResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	reg, err := c.store.Delete(c.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", c.Code, err)
	}

	return &RegistryResult{
		Registry: reg,
		Message:  fmt.Sprintf("Deleted %s", c.Code),
	}, nil
}

// ReloadRegistryCommand re-reads the registry document, replacing the
// in-memory state. Edits made on disk by other programs become visible and
// mutations that failed as stale can be retried.
type ReloadRegistryCommand struct {
	store ports.RegistryStore
}

// NewReloadRegistryCommand creates a new ReloadRegistryCommand
func NewReloadRegistryCommand(store ports.RegistryStore) *ReloadRegistryCommand {
	return &ReloadRegistryCommand{store: store}
}

// Execute runs the reload command
func (c *ReloadRegistryCommand) Execute(ctx context.Context) (*RegistryResult, error) {
	reg, err := c.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to reload registry: %w", err)
	}

	return &RegistryResult{
		Registry: reg,
		Message:  fmt.Sprintf("Reloaded %d entries", reg.Len()),
	}, nil
}
