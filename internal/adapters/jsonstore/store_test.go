package jsonstore

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdftok/internal/domain"
)

const alphaDoc = `{"ToK":[{"prefix":"A1","string":"Alpha"}]}`

// tickingClock returns a clock that advances one second per call
func tickingClock(start time.Time) func() time.Time {
	n := 0
	return func() time.Time {
		t := start.Add(time.Duration(n) * time.Second)
		n++
		return t
	}
}

func setupStore(t *testing.T, doc string) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "tok.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	s, err := Open(path, WithClock(tickingClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local))))
	require.NoError(t, err)
	_, err = s.Load()
	require.NoError(t, err)
	return s, path
}

func TestLoad_PreservesOrder(t *testing.T) {
	s, _ := setupStore(t, `{"ToK":[{"prefix":"Z9","string":"Last"},{"prefix":"A1","string":"First"}]}`)

	reg := s.Registry()
	require.Equal(t, []string{"Z9", "A1"}, reg.Codes())
	e, ok := reg.Lookup("A1")
	require.True(t, ok)
	assert.Equal(t, "First", e.Label)
}

func TestLoad_Missing(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	_, err = s.Load()
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "registry", nf.Kind)
}

func TestLoad_Corrupt(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{"ToK": [`},
		{"not an object", `[1, 2]`},
		{"missing key", `{"other": []}`},
		{"entries not array", `{"ToK": {"prefix": "A"}}`},
		{"invalid code", `{"ToK":[{"prefix":"A-1","string":"x"}]}`},
		{"empty code", `{"ToK":[{"string":"x"}]}`},
		{"duplicate code", `{"ToK":[{"prefix":"A","string":"x"},{"prefix":"A","string":"y"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tok.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.doc), 0o644))
			s, err := Open(path)
			require.NoError(t, err)

			_, err = s.Load()
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrCorruptData), "expected corrupt data, got %v", err)
		})
	}
}

func TestAdd_WritesOneBackupOfPreviousState(t *testing.T) {
	s, path := setupStore(t, alphaDoc)

	reg, err := s.Add("B2", "Beta")
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "B2"}, reg.Codes())

	backups, err := s.Backups()
	require.NoError(t, err)
	require.Len(t, backups, 1)

	data, err := os.ReadFile(backups[0])
	require.NoError(t, err)
	assert.Equal(t, alphaDoc, string(data), "backup must hold the bytes before the edit")

	reloaded, err := Open(path)
	require.NoError(t, err)
	got, err := reloaded.Load()
	require.NoError(t, err)
	assert.Equal(t, reg, got, "reload must equal in-memory state")
}

func TestAdd_RejectedEditsDoNotWrite(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr error
	}{
		{"duplicate", "A1", domain.ErrDuplicateCode},
		{"empty", "", domain.ErrInvalidCode},
		{"punctuation", "A-2", domain.ErrInvalidCode},
		{"space", "A 2", domain.ErrInvalidCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, path := setupStore(t, alphaDoc)

			_, err := s.Add(tt.code, "label")
			require.ErrorIs(t, err, tt.wantErr)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, alphaDoc, string(data))

			backups, err := s.Backups()
			require.NoError(t, err)
			assert.Empty(t, backups)
			assert.Equal(t, []string{"A1"}, s.Registry().Codes())
		})
	}
}

func TestEditCode(t *testing.T) {
	doc := `{"ToK":[{"prefix":"A1","string":"Alpha"},{"prefix":"B2","string":"Beta"}]}`

	t.Run("renames in place", func(t *testing.T) {
		s, _ := setupStore(t, doc)
		reg, err := s.EditCode("A1", "C3")
		require.NoError(t, err)
		assert.Equal(t, []string{"C3", "B2"}, reg.Codes())
		e, _ := reg.Lookup("C3")
		assert.Equal(t, "Alpha", e.Label)
	})

	t.Run("same code is a valid edit", func(t *testing.T) {
		s, _ := setupStore(t, doc)
		reg, err := s.EditCode("A1", "A1")
		require.NoError(t, err)
		assert.Equal(t, []string{"A1", "B2"}, reg.Codes())
	})

	t.Run("collides with other entry", func(t *testing.T) {
		s, _ := setupStore(t, doc)
		_, err := s.EditCode("A1", "B2")
		var dup *domain.DuplicateCodeError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "B2", dup.Code)
	})

	t.Run("unknown old code", func(t *testing.T) {
		s, _ := setupStore(t, doc)
		_, err := s.EditCode("Q7", "Q8")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("invalid new code", func(t *testing.T) {
		s, _ := setupStore(t, doc)
		_, err := s.EditCode("A1", "a b")
		require.ErrorIs(t, err, domain.ErrInvalidCode)
	})
}

func TestEditLabelAndDelete(t *testing.T) {
	s, path := setupStore(t, `{"ToK":[{"prefix":"A1","string":"Alpha"},{"prefix":"B2","string":"Beta"}]}`)

	_, err := s.EditLabel("B2", "Research & Development")
	require.NoError(t, err)
	_, err = s.EditLabel("ZZ", "nope")
	require.ErrorIs(t, err, domain.ErrNotFound)

	reg, err := s.Delete("A1")
	require.NoError(t, err)
	assert.Equal(t, []string{"B2"}, reg.Codes())
	_, err = s.Delete("A1")
	require.ErrorIs(t, err, domain.ErrNotFound)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "{\n    \"ToK\": [\n        {\n            \"prefix\": \"B2\",\n            \"string\": \"Research & Development\"\n        }\n    ]\n}\n"
	assert.Equal(t, want, string(data))

	backups, err := s.Backups()
	require.NoError(t, err)
	assert.Len(t, backups, 2)
}

func TestMutation_PreservesOtherKeys(t *testing.T) {
	s, path := setupStore(t, `{"version": 3, "ToK": [], "settings": {"theme": "dark"}}`)

	_, err := s.Add("A", "Alpha")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"version": 3`)
	assert.Contains(t, out, `"theme": "dark"`)
	assert.Contains(t, out, `"prefix": "A"`)
}

func TestMutation_StaleDocument(t *testing.T) {
	t.Run("modified externally", func(t *testing.T) {
		s, path := setupStore(t, alphaDoc)
		external := `{"ToK":[{"prefix":"X","string":"changed elsewhere"}]}`
		require.NoError(t, os.WriteFile(path, []byte(external), 0o644))

		_, err := s.Add("B2", "Beta")
		require.ErrorIs(t, err, domain.ErrStaleRecord)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, external, string(data), "external changes must not be overwritten")
	})

	t.Run("removed externally", func(t *testing.T) {
		s, path := setupStore(t, alphaDoc)
		require.NoError(t, os.Remove(path))

		_, err := s.Delete("A1")
		require.ErrorIs(t, err, domain.ErrStaleRecord)
		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("reload recovers", func(t *testing.T) {
		s, path := setupStore(t, alphaDoc)
		require.NoError(t, os.WriteFile(path, []byte(`{"ToK":[]}`), 0o644))

		_, err := s.Add("B2", "Beta")
		require.Error(t, err)
		_, err = s.Load()
		require.NoError(t, err)
		reg, err := s.Add("B2", "Beta")
		require.NoError(t, err)
		assert.Equal(t, []string{"B2"}, reg.Codes())
	})

	t.Run("not loaded", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tok.json")
		require.NoError(t, os.WriteFile(path, []byte(alphaDoc), 0o644))
		s, err := Open(path)
		require.NoError(t, err)

		_, err = s.Add("B2", "Beta")
		require.ErrorIs(t, err, domain.ErrStaleRecord)
	})
}

func TestBackups_NewestFirstInBackupDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tok.json")
	backupDir := filepath.Join(dir, "backups")
	require.NoError(t, os.WriteFile(path, []byte(alphaDoc), 0o644))

	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	s, err := Open(path, WithBackupDir(backupDir), WithClock(tickingClock(start)))
	require.NoError(t, err)
	_, err = s.Load()
	require.NoError(t, err)

	for _, code := range []string{"B", "C", "D"} {
		_, err := s.Add(code, code)
		require.NoError(t, err)
	}
	// Unrelated files are ignored
	require.NoError(t, os.WriteFile(filepath.Join(backupDir, "tok_notes.json"), nil, 0o644))

	backups, err := s.Backups()
	require.NoError(t, err)
	require.Len(t, backups, 3)
	assert.Equal(t, s.BackupPath(start.Add(2*time.Second)), backups[0])
	assert.Equal(t, s.BackupPath(start), backups[2])
	assert.True(t, strings.HasSuffix(backups[2], "tok_2025-06-01_12-00-00.json"))

	_, err = os.Stat(filepath.Join(dir, "tok_2025-06-01_12-00-00.json"))
	assert.True(t, os.IsNotExist(err), "backups belong in the configured directory")
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("  ")
	require.ErrorIs(t, err, domain.ErrValidation)
}
