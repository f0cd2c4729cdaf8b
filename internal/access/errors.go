package access

import "errors"

var (
	ErrNotFound     = errors.New("access: role not found")
	ErrInvalidInput = errors.New("access: invalid input")
	ErrConflict     = errors.New("access: resource conflict")
	ErrReadOnly     = errors.New("access: role is read-only")
)
