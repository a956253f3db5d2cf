package domain

import (
	"errors"
	"testing"
)

func sampleRegistry() *Registry {
	return &Registry{Entries: []Entry{
		{Code: "A1", Label: "Alpha"},
		{Code: "B2", Label: "Beta"},
	}}
}

func TestRegistry_WithAdded(t *testing.T) {
	reg := &Registry{Entries: []Entry{{Code: "A1", Label: "Alpha"}}}

	got, err := reg.WithAdded("B2", "Beta")
	if err != nil {
		t.Fatalf("WithAdded failed: %v", err)
	}
	if got.Len() != 2 || got.Entries[1] != (Entry{Code: "B2", Label: "Beta"}) {
		t.Errorf("unexpected entries: %+v", got.Entries)
	}
	if reg.Len() != 1 {
		t.Errorf("original registry mutated: %+v", reg.Entries)
	}
}

func TestRegistry_WithAdded_Errors(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr error
	}{
		{"empty code", "", ErrInvalidCode},
		{"space in code", "A 1", ErrInvalidCode},
		{"symbol in code", "A#", ErrInvalidCode},
		{"duplicate", "A1", ErrDuplicateCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := sampleRegistry()
			_, err := reg.WithAdded(tt.code, "label")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if reg.Len() != 2 {
				t.Errorf("registry mutated on error")
			}
		})
	}
}

func TestRegistry_WithAdded_CaseSensitive(t *testing.T) {
	got, err := sampleRegistry().WithAdded("a1", "lower alpha")
	if err != nil {
		t.Fatalf("codes differing by case must be distinct: %v", err)
	}
	if !got.Has("a1") || !got.Has("A1") {
		t.Errorf("expected both a1 and A1, got %v", got.Codes())
	}
}

func TestRegistry_WithCode(t *testing.T) {
	tests := []struct {
		name    string
		oldCode string
		newCode string
		wantErr error
	}{
		{"rename", "A1", "C3", nil},
		{"same code is allowed", "A1", "A1", nil},
		{"missing old code", "Z9", "C3", ErrNotFound},
		{"collision with other entry", "A1", "B2", ErrDuplicateCode},
		{"invalid new code", "A1", "C-3", ErrInvalidCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sampleRegistry().WithCode(tt.oldCode, tt.newCode)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			entry, ok := got.Lookup(tt.newCode)
			if !ok || entry.Label != "Alpha" {
				t.Errorf("expected %s to carry label Alpha, got %+v", tt.newCode, got.Entries)
			}
			if got.IndexOf(tt.newCode) != 0 {
				t.Errorf("edit should keep position, got %v", got.Codes())
			}
		})
	}
}

func TestRegistry_WithLabel(t *testing.T) {
	got, err := sampleRegistry().WithLabel("B2", "Bravo")
	if err != nil {
		t.Fatalf("WithLabel failed: %v", err)
	}
	if e, _ := got.Lookup("B2"); e.Label != "Bravo" {
		t.Errorf("expected Bravo, got %q", e.Label)
	}

	if _, err := sampleRegistry().WithLabel("nope", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := sampleRegistry().WithLabel("A-1", "x"); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("expected ErrInvalidCode for malformed code, got %v", err)
	}
}

func TestRegistry_Without(t *testing.T) {
	got, err := sampleRegistry().Without("A1")
	if err != nil {
		t.Fatalf("Without failed: %v", err)
	}
	if got.Len() != 1 || got.Entries[0].Code != "B2" {
		t.Errorf("unexpected entries: %+v", got.Entries)
	}

	var nf *NotFoundError
	if _, err := got.Without("A1"); !errors.As(err, &nf) || nf.Key != "A1" {
		t.Errorf("expected NotFoundError for A1, got %v", err)
	}
	if _, err := got.Without("B 2"); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("expected ErrInvalidCode for malformed code, got %v", err)
	}
}

func TestRegistry_Check(t *testing.T) {
	if err := sampleRegistry().Check(); err != nil {
		t.Errorf("valid registry failed check: %v", err)
	}

	dup := &Registry{Entries: []Entry{{Code: "A1"}, {Code: "A1"}}}
	if err := dup.Check(); !errors.Is(err, ErrDuplicateCode) {
		t.Errorf("expected ErrDuplicateCode, got %v", err)
	}

	bad := &Registry{Entries: []Entry{{Code: "A 1"}}}
	if err := bad.Check(); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("expected ErrInvalidCode, got %v", err)
	}
}
