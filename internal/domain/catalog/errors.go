package catalog

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrNotFound       = errors.New("catalog entry not found")
	ErrInvalidCatalog = errors.New("invalid catalog")
	ErrLoadCatalog    = errors.New("load catalog failed")
)
