package model

import "errors"

// Error conditions shared by the loading and correlation stages. Callers match
// them with errors.Is; the wrapping error carries the offending value.
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrFormat           = errors.New("format error")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrNotFound         = errors.New("not found")
)
