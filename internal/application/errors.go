package application

import "pdftok/internal/domain"

// Sentinel errors for common conditions, matched with errors.Is
var (
	ErrInvalidCode   = domain.ErrInvalidCode
	ErrInvalidIndex  = domain.ErrInvalidIndex
	ErrDuplicateCode = domain.ErrDuplicateCode
	ErrNotFound      = domain.ErrNotFound
	ErrNameCollision = domain.ErrNameCollision
	ErrStaleRecord   = domain.ErrStaleRecord
	ErrCorruptData   = domain.ErrCorruptData
	ErrIO            = domain.ErrIO
	ErrValidation    = domain.ErrValidation
)

// Re-export error types for use by adapters
type (
	ValidationError    = domain.ValidationError
	InvalidCodeError   = domain.InvalidCodeError
	InvalidIndexError  = domain.InvalidIndexError
	DuplicateCodeError = domain.DuplicateCodeError
	NotFoundError      = domain.NotFoundError
	NameCollisionError = domain.NameCollisionError
	StaleRecordError   = domain.StaleRecordError
	CorruptDataError   = domain.CorruptDataError
	IOError            = domain.IOError
)
