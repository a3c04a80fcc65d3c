package console

import "errors"

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("order not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidStatus    = errors.New("order is not awaiting a driver")
)
