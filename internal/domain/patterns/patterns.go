// Package patterns matches design patterns to architecture styles.
package patterns

import "github.com/okian/archrec/internal/domain/model"

// Match returns every pattern in all that applies to id, preserving the
// order of all. An empty result is valid.
func Match(all []model.DesignPattern, id model.ArchitectureID) []model.DesignPattern {
	out := make([]model.DesignPattern, 0, len(all))
	for _, p := range all {
		if p.AppliesTo(id) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Index groups patterns by architecture for repeated lookups.
// It is immutable once built.
type Index struct {
	byArch map[model.ArchitectureID][]model.DesignPattern
}

// NewIndex builds an index over all. Patterns keep their relative order
// within each architecture.
func NewIndex(all []model.DesignPattern) *Index {
	idx := &Index{byArch: make(map[model.ArchitectureID][]model.DesignPattern)}
	for _, p := range all {
		seen := make(map[model.ArchitectureID]bool, len(p.ApplicableArchitectures))
		for _, a := range p.ApplicableArchitectures {
			if seen[a] {
				continue
			}
			seen[a] = true
			idx.byArch[a] = append(idx.byArch[a], p.Clone())
		}
	}
	return idx
}

// For returns copies of the patterns applicable to id.
func (i *Index) For(id model.ArchitectureID) []model.DesignPattern {
	src := i.byArch[id]
	out := make([]model.DesignPattern, len(src))
	for j, p := range src {
		out[j] = p.Clone()
	}
	return out
}
