package application

import (
	"fmt"
	"path/filepath"
	"strings"

	"pdftok/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "oldCode" -> "old code")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"code":     "code",
		"oldCode":  "old code",
		"newCode":  "new code",
		"dir":      "directory",
		"filename": "filename",
		"root":     "root",
		"name":     "name",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateCode checks that code is a usable registry code
func ValidateCode(code string) error {
	if !domain.ValidCode(code) {
		return &InvalidCodeError{Code: code}
	}
	return nil
}

// ValidateIndex checks that index is empty or a usable code
func ValidateIndex(index string) error {
	if !domain.ValidIndex(index) {
		return &InvalidIndexError{Index: index}
	}
	return nil
}

// ValidateFilename checks that name is a single path element
func ValidateFilename(fieldName, name string) error {
	if name == "" {
		return ValidateRequired(fieldName, name)
	}
	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) || name == "." || name == ".." {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must be a plain filename, got: %s", formatFieldName(fieldName), name),
		}
	}
	return nil
}
