package catalog

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
)

// Source yields the catalog snapshot a request should use.
type Source interface {
	Current() *Catalog
}

// Store holds the active catalog snapshot. Readers take the current pointer
// once per request; replacements are published atomically, so a request
// sees either the old or the new catalog, never a mix.
type Store struct {
	current atomic.Pointer[Catalog]
}

// NewStore returns a store serving c.
func NewStore(c *Catalog) *Store {
	s := &Store{}
	s.current.Store(c)
	return s
}

// Current returns the active snapshot.
func (s *Store) Current() *Catalog {
	return s.current.Load()
}

// Replace installs c as the active snapshot. A nil catalog is rejected.
func (s *Store) Replace(c *Catalog) error {
	if c == nil {
		return fmt.Errorf("%w: nil catalog", ErrInvalidCatalog)
	}
	s.current.Store(c)
	return nil
}

// Reload parses the YAML catalog at path and installs it. With an empty
// path the embedded default catalog is installed. On error the previous
// snapshot stays active.
func (s *Store) Reload(ctx context.Context, path string) (*Catalog, error) {
	var (
		c   *Catalog
		err error
	)
	if path == "" {
		c, err = Default(ctx)
	} else {
		c, err = LoadFile(ctx, path)
	}
	if err != nil {
		return nil, err
	}
	s.current.Store(c)
	return c, nil
}

// LoadFile reads and validates a YAML catalog file.
func LoadFile(_ context.Context, path string) (*Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // operator-supplied catalog path
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadCatalog, err)
	}
	return Parse(data)
}
