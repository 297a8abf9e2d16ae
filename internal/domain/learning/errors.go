package learning

import "errors"

// Sentinel kinds for learning content errors.
var (
	ErrNotFound       = errors.New("learning entry not found")
	ErrInvalidLibrary = errors.New("invalid learning content")
	ErrLoadLibrary    = errors.New("load learning content failed")
)
