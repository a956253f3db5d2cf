package commands

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"pdftok/internal/domain"
)

const twoEntries = `{"ToK":[{"prefix":"A1","string":"Alpha"},{"prefix":"B2","string":"Beta"}]}`

func TestAddEntryCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{name: "valid code", code: "C3", wantErr: false},
		{name: "single character", code: "Z", wantErr: false},
		{name: "empty code", code: "", wantErr: true},
		{name: "punctuation", code: "C.3", wantErr: true},
		{name: "inner space", code: "C 3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &AddEntryCommand{Code: tt.code, Label: "label"}
			err := cmd.Validate()

			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidCode) {
					t.Errorf("expected invalid code error, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAddEntryCommand_Execute(t *testing.T) {
	store := setupRegistry(t, twoEntries)

	result, err := NewAddEntryCommand(store, "C3", "Gamma").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got := strings.Join(result.Registry.Codes(), ","); got != "A1,B2,C3" {
		t.Errorf("codes = %s, want A1,B2,C3", got)
	}
	if result.Message != "Added C3 (Gamma)" {
		t.Errorf("unexpected message: %s", result.Message)
	}

	_, err = NewAddEntryCommand(store, "A1", "again").Execute(context.Background())
	if !errors.Is(err, domain.ErrDuplicateCode) {
		t.Errorf("expected duplicate code error, got %v", err)
	}
}

func TestEditCodeCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("renames code", func(t *testing.T) {
		store := setupRegistry(t, twoEntries)
		result, err := NewEditCodeCommand(store, "A1", "A9").Execute(ctx)
		if err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
		if e, ok := result.Registry.Lookup("A9"); !ok || e.Label != "Alpha" {
			t.Errorf("expected A9 to carry Alpha, got %+v", result.Registry.Entries)
		}
	})

	t.Run("same code", func(t *testing.T) {
		store := setupRegistry(t, twoEntries)
		result, err := NewEditCodeCommand(store, "B2", "B2").Execute(ctx)
		if err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
		if result.Message != "B2 unchanged" {
			t.Errorf("unexpected message: %s", result.Message)
		}
	})

	t.Run("collision", func(t *testing.T) {
		store := setupRegistry(t, twoEntries)
		_, err := NewEditCodeCommand(store, "A1", "B2").Execute(ctx)
		if !errors.Is(err, domain.ErrDuplicateCode) {
			t.Errorf("expected duplicate code error, got %v", err)
		}
	})

	t.Run("missing old code", func(t *testing.T) {
		cmd := &EditCodeCommand{OldCode: " ", NewCode: "B2"}
		var valErr *domain.ValidationError
		if err := cmd.Validate(); !errors.As(err, &valErr) || valErr.Message != "old code is required" {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}

func TestEditLabelCommand(t *testing.T) {
	store := setupRegistry(t, twoEntries)

	result, err := NewEditLabelCommand(store, "B2", "Beta, revised").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if e, _ := result.Registry.Lookup("B2"); e.Label != "Beta, revised" {
		t.Errorf("label = %q", e.Label)
	}

	_, err = NewEditLabelCommand(store, "Q1", "x").Execute(context.Background())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}

	_, err = NewEditLabelCommand(store, "A-1", "x").Execute(context.Background())
	if !errors.Is(err, domain.ErrInvalidCode) {
		t.Errorf("expected invalid code, got %v", err)
	}
}

func TestDeleteEntryCommand(t *testing.T) {
	store := setupRegistry(t, twoEntries)

	result, err := NewDeleteEntryCommand(store, "A1").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Registry.Has("A1") || result.Registry.Len() != 1 {
		t.Errorf("A1 should be gone: %+v", result.Registry.Entries)
	}

	if err := (&DeleteEntryCommand{}).Validate(); err == nil {
		t.Error("expected validation error for empty code")
	}
	if err := (&DeleteEntryCommand{Code: "A-1"}).Validate(); !errors.Is(err, domain.ErrInvalidCode) {
		t.Errorf("expected invalid code, got %v", err)
	}
}

func TestReloadRegistryCommand_RecoversFromExternalEdit(t *testing.T) {
	store := setupRegistry(t, twoEntries)
	external := `{"ToK":[{"prefix":"Z9","string":"Zulu"}]}`
	if err := os.WriteFile(store.Path(), []byte(external), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewAddEntryCommand(store, "C3", "Gamma").Execute(context.Background())
	if !errors.Is(err, domain.ErrStaleRecord) {
		t.Fatalf("expected stale record error, got %v", err)
	}

	result, err := NewReloadRegistryCommand(store).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Message != "Reloaded 1 entries" {
		t.Errorf("unexpected message: %s", result.Message)
	}

	added, err := NewAddEntryCommand(store, "C3", "Gamma").Execute(context.Background())
	if err != nil {
		t.Fatalf("add after reload failed: %v", err)
	}
	if got := strings.Join(added.Registry.Codes(), ","); got != "Z9,C3" {
		t.Errorf("codes = %s, want Z9,C3", got)
	}
}
