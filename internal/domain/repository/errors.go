package repository

import "errors"

// Sentinel errors surfaced by the storage and service layers. Callers match
// them with errors.Is and must not depend on the underlying driver error.
var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicateRecord = errors.New("record already exists")
	ErrNotPending      = errors.New("order is not pending")
)
