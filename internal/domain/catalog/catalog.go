// Package catalog provides the architecture knowledge base: an immutable,
// process-wide snapshot of architecture profiles and design patterns.
package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/okian/archrec/internal/domain/model"
	"github.com/okian/archrec/internal/domain/patterns"
	"gopkg.in/yaml.v3"
)

var (
	//go:embed data/catalog.yaml
	defaultData []byte

	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Catalog is an immutable view of the knowledge base. All accessors return
// copies, so nothing a caller does can modify catalog entries.
type Catalog struct {
	architectures []model.ArchitectureProfile
	patterns      []model.DesignPattern

	archIndex    map[model.ArchitectureID]int
	patternIndex map[model.PatternID]int
	byArch       *patterns.Index
}

// document mirrors the YAML layout of a catalog file.
type document struct {
	Architectures []model.ArchitectureProfile `yaml:"architectures"`
	Patterns      []model.DesignPattern       `yaml:"patterns"`
}

// Default returns the catalog embedded in the binary. The embedded data is
// parsed once and shared for the lifetime of the process.
func Default(_ context.Context) (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Parse(defaultData)
	})
	return defaultCat, defaultErr
}

// MustDefault is Default for callers that cannot proceed without a catalog.
func MustDefault() *Catalog {
	c, err := Default(context.Background())
	if err != nil {
		panic(err)
	}
	return c
}

// Parse decodes and validates YAML catalog data.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadCatalog, err)
	}
	return New(doc.Architectures, doc.Patterns)
}

// New builds a validated catalog from the given entries. Input slices are
// copied; order is preserved and becomes the catalog order.
func New(architectures []model.ArchitectureProfile, pats []model.DesignPattern) (*Catalog, error) {
	if len(architectures) == 0 {
		return nil, fmt.Errorf("%w: no architectures", ErrInvalidCatalog)
	}

	c := &Catalog{
		architectures: make([]model.ArchitectureProfile, 0, len(architectures)),
		patterns:      make([]model.DesignPattern, 0, len(pats)),
		archIndex:     make(map[model.ArchitectureID]int, len(architectures)),
		patternIndex:  make(map[model.PatternID]int, len(pats)),
	}

	for _, a := range architectures {
		if err := validateArchitecture(a); err != nil {
			return nil, err
		}
		if _, dup := c.archIndex[a.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate architecture id %q", ErrInvalidCatalog, a.ID)
		}
		c.archIndex[a.ID] = len(c.architectures)
		c.architectures = append(c.architectures, a.Clone())
	}

	for _, p := range pats {
		if p.ID == "" {
			return nil, fmt.Errorf("%w: pattern without id", ErrInvalidCatalog)
		}
		if _, dup := c.patternIndex[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate pattern id %q", ErrInvalidCatalog, p.ID)
		}
		for _, a := range p.ApplicableArchitectures {
			if _, ok := c.archIndex[a]; !ok {
				return nil, fmt.Errorf("%w: pattern %q refers to unknown architecture %q", ErrInvalidCatalog, p.ID, a)
			}
		}
		c.patternIndex[p.ID] = len(c.patterns)
		c.patterns = append(c.patterns, p.Clone())
	}
	c.byArch = patterns.NewIndex(c.patterns)

	return c, nil
}

func validateArchitecture(a model.ArchitectureProfile) error {
	if a.ID == "" {
		return fmt.Errorf("%w: architecture without id", ErrInvalidCatalog)
	}
	cr := a.Criteria
	switch {
	case !cr.UserTraffic.Valid():
		return fmt.Errorf("%w: architecture %q: invalid userTraffic %q", ErrInvalidCatalog, a.ID, cr.UserTraffic)
	case !cr.Complexity.Valid():
		return fmt.Errorf("%w: architecture %q: invalid complexity %q", ErrInvalidCatalog, a.ID, cr.Complexity)
	case !cr.TeamSize.Valid():
		return fmt.Errorf("%w: architecture %q: invalid teamSize %q", ErrInvalidCatalog, a.ID, cr.TeamSize)
	case !cr.Scalability.Valid():
		return fmt.Errorf("%w: architecture %q: invalid scalability %q", ErrInvalidCatalog, a.ID, cr.Scalability)
	case !cr.Budget.Valid():
		return fmt.Errorf("%w: architecture %q: invalid budget %q", ErrInvalidCatalog, a.ID, cr.Budget)
	}
	return nil
}

// Len returns the number of architectures.
func (c *Catalog) Len() int { return len(c.architectures) }

// PatternCount returns the number of design patterns.
func (c *Catalog) PatternCount() int { return len(c.patterns) }

// Architectures returns all profiles in catalog order.
func (c *Catalog) Architectures() []model.ArchitectureProfile {
	out := make([]model.ArchitectureProfile, len(c.architectures))
	for i, a := range c.architectures {
		out[i] = a.Clone()
	}
	return out
}

// Architecture returns the profile with the given id.
func (c *Catalog) Architecture(id model.ArchitectureID) (model.ArchitectureProfile, error) {
	i, ok := c.archIndex[id]
	if !ok {
		return model.ArchitectureProfile{}, fmt.Errorf("architecture %q: %w", id, ErrNotFound)
	}
	return c.architectures[i].Clone(), nil
}

// Position returns the catalog position of id, or -1 if unknown.
func (c *Catalog) Position(id model.ArchitectureID) int {
	i, ok := c.archIndex[id]
	if !ok {
		return -1
	}
	return i
}

// IDs returns the architecture ids in catalog order.
func (c *Catalog) IDs() []model.ArchitectureID {
	out := make([]model.ArchitectureID, len(c.architectures))
	for i, a := range c.architectures {
		out[i] = a.ID
	}
	return out
}

// Patterns returns all design patterns in catalog order.
func (c *Catalog) Patterns() []model.DesignPattern {
	out := make([]model.DesignPattern, len(c.patterns))
	for i, p := range c.patterns {
		out[i] = p.Clone()
	}
	return out
}

// Pattern returns the design pattern with the given id.
func (c *Catalog) Pattern(id model.PatternID) (model.DesignPattern, error) {
	i, ok := c.patternIndex[id]
	if !ok {
		return model.DesignPattern{}, fmt.Errorf("pattern %q: %w", id, ErrNotFound)
	}
	return c.patterns[i].Clone(), nil
}

// PatternsFor returns the patterns applicable to the architecture id, in
// catalog order. An unknown id yields an empty result.
func (c *Catalog) PatternsFor(id model.ArchitectureID) []model.DesignPattern {
	return c.byArch.For(id)
}
