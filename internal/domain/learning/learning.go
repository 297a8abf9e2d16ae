// Package learning holds the educational content served next to the
// recommendations: the hub overview, case studies, best practices and the
// architecture comparison table.
package learning

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/okian/archrec/internal/domain/model"
	"gopkg.in/yaml.v3"
)

var (
	//go:embed data/learning.yaml
	defaultData []byte

	defaultOnce sync.Once
	defaultLib  *Library
	defaultErr  error
)

// Hub is the learning hub landing content.
type Hub struct {
	Overview   Overview   `json:"overview" yaml:"overview"`
	QuickStart QuickStart `json:"quickStart" yaml:"quickStart"`
	Resources  Resources  `json:"resources" yaml:"resources"`
}

// Overview introduces the hub.
type Overview struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Sections    []string `json:"sections" yaml:"sections"`
}

// QuickStart lists the first steps for choosing an architecture.
type QuickStart struct {
	Title string   `json:"title" yaml:"title"`
	Steps []string `json:"steps" yaml:"steps"`
}

// Resources points to further reading.
type Resources struct {
	Books    []string `json:"books" yaml:"books"`
	Websites []string `json:"websites" yaml:"websites"`
}

func (h Hub) clone() Hub {
	h.Overview.Sections = slices.Clone(h.Overview.Sections)
	h.QuickStart.Steps = slices.Clone(h.QuickStart.Steps)
	h.Resources.Books = slices.Clone(h.Resources.Books)
	h.Resources.Websites = slices.Clone(h.Resources.Websites)
	return h
}

// CaseStudy describes a real-world architecture migration.
type CaseStudy struct {
	ID           string   `json:"id" yaml:"id"`
	Company      string   `json:"company" yaml:"company"`
	Architecture string   `json:"architecture" yaml:"architecture"`
	Title        string   `json:"title" yaml:"title"`
	Description  string   `json:"description" yaml:"description"`
	Challenges   []string `json:"challenges" yaml:"challenges"`
	Solutions    []string `json:"solutions" yaml:"solutions"`
	Results      []string `json:"results" yaml:"results"`
	Lessons      []string `json:"lessons" yaml:"lessons"`
	Year         int      `json:"year" yaml:"year"`
	Category     string   `json:"category" yaml:"category"`
}

func (c CaseStudy) clone() CaseStudy {
	c.Challenges = slices.Clone(c.Challenges)
	c.Solutions = slices.Clone(c.Solutions)
	c.Results = slices.Clone(c.Results)
	c.Lessons = slices.Clone(c.Lessons)
	return c
}

// BestPractice groups practices under one category.
type BestPractice struct {
	Category  string   `json:"category" yaml:"category"`
	Practices []string `json:"practices" yaml:"practices"`
}

// Comparison rates every architecture on a set of aspects.
type Comparison struct {
	Title       string          `json:"title" yaml:"title"`
	Description string          `json:"description" yaml:"description"`
	Rows        []ComparisonRow `json:"comparison" yaml:"rows"`
}

// ComparisonRow rates each architecture on one aspect.
type ComparisonRow struct {
	Aspect  string                          `yaml:"aspect"`
	Ratings map[model.ArchitectureID]string `yaml:"ratings"`
}

// MarshalJSON flattens the ratings next to the aspect, one key per
// architecture id.
func (r ComparisonRow) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(r.Ratings)+1)
	for id, v := range r.Ratings {
		out[string(id)] = v
	}
	out["aspect"] = r.Aspect
	return json.Marshal(out)
}

// CaseStudyFilter narrows the case study listing. Empty fields match all.
type CaseStudyFilter struct {
	// Category matches exactly.
	Category string
	// Company matches as a case-insensitive substring.
	Company string
}

func (f CaseStudyFilter) matches(c CaseStudy) bool {
	if f.Category != "" && c.Category != f.Category {
		return false
	}
	if f.Company != "" && !strings.Contains(strings.ToLower(c.Company), strings.ToLower(f.Company)) {
		return false
	}
	return true
}

// Library is an immutable set of learning content.
type Library struct {
	hub           Hub
	caseStudies   []CaseStudy
	bestPractices []BestPractice
	comparison    Comparison

	caseIndex map[string]int
}

// document mirrors the YAML layout of a learning content file.
type document struct {
	Hub           Hub            `yaml:"hub"`
	CaseStudies   []CaseStudy    `yaml:"caseStudies"`
	BestPractices []BestPractice `yaml:"bestPractices"`
	Comparison    Comparison     `yaml:"comparison"`
}

// Default returns the content embedded in the binary, parsed once.
func Default() (*Library, error) {
	defaultOnce.Do(func() {
		defaultLib, defaultErr = Parse(defaultData)
	})
	return defaultLib, defaultErr
}

// MustDefault is Default for callers that cannot proceed without content.
func MustDefault() *Library {
	l, err := Default()
	if err != nil {
		panic(err)
	}
	return l
}

// Parse decodes and validates YAML learning content.
func Parse(data []byte) (*Library, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadLibrary, err)
	}

	l := &Library{
		hub:           doc.Hub,
		caseStudies:   doc.CaseStudies,
		bestPractices: doc.BestPractices,
		comparison:    doc.Comparison,
		caseIndex:     make(map[string]int, len(doc.CaseStudies)),
	}
	for i, c := range doc.CaseStudies {
		if c.ID == "" {
			return nil, fmt.Errorf("%w: case study without id", ErrInvalidLibrary)
		}
		if _, dup := l.caseIndex[c.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate case study id %q", ErrInvalidLibrary, c.ID)
		}
		l.caseIndex[c.ID] = i
	}
	seen := make(map[string]bool, len(doc.BestPractices))
	for _, b := range doc.BestPractices {
		if b.Category == "" || seen[b.Category] {
			return nil, fmt.Errorf("%w: best practice category %q is empty or repeated", ErrInvalidLibrary, b.Category)
		}
		seen[b.Category] = true
	}
	for _, r := range doc.Comparison.Rows {
		if r.Aspect == "" {
			return nil, fmt.Errorf("%w: comparison row without aspect", ErrInvalidLibrary)
		}
	}
	return l, nil
}

// Hub returns the hub landing content.
func (l *Library) Hub() Hub { return l.hub.clone() }

// CaseStudies returns the case studies matching f, in file order.
func (l *Library) CaseStudies(f CaseStudyFilter) []CaseStudy {
	out := make([]CaseStudy, 0, len(l.caseStudies))
	for _, c := range l.caseStudies {
		if f.matches(c) {
			out = append(out, c.clone())
		}
	}
	return out
}

// CaseStudy returns the case study with the given id.
func (l *Library) CaseStudy(id string) (CaseStudy, error) {
	i, ok := l.caseIndex[id]
	if !ok {
		return CaseStudy{}, fmt.Errorf("case study %q: %w", id, ErrNotFound)
	}
	return l.caseStudies[i].clone(), nil
}

// CaseStudyCategories returns the distinct case study categories in first
// appearance order.
func (l *Library) CaseStudyCategories() []string {
	out := make([]string, 0, len(l.caseStudies))
	for _, c := range l.caseStudies {
		if !slices.Contains(out, c.Category) {
			out = append(out, c.Category)
		}
	}
	return out
}

// BestPractices returns the practice groups, limited to category when it
// is not empty.
func (l *Library) BestPractices(category string) []BestPractice {
	out := make([]BestPractice, 0, len(l.bestPractices))
	for _, b := range l.bestPractices {
		if category != "" && b.Category != category {
			continue
		}
		b.Practices = slices.Clone(b.Practices)
		out = append(out, b)
	}
	return out
}

// BestPracticeCategories returns every practice category in file order.
func (l *Library) BestPracticeCategories() []string {
	out := make([]string, len(l.bestPractices))
	for i, b := range l.bestPractices {
		out[i] = b.Category
	}
	return out
}

// Comparison returns the architecture comparison table.
func (l *Library) Comparison() Comparison {
	c := l.comparison
	c.Rows = make([]ComparisonRow, len(l.comparison.Rows))
	for i, r := range l.comparison.Rows {
		ratings := make(map[model.ArchitectureID]string, len(r.Ratings))
		for id, v := range r.Ratings {
			ratings[id] = v
		}
		c.Rows[i] = ComparisonRow{Aspect: r.Aspect, Ratings: ratings}
	}
	return c
}

// Unrated returns the ids in ids that some comparison row does not rate.
func (l *Library) Unrated(ids []model.ArchitectureID) []model.ArchitectureID {
	var out []model.ArchitectureID
	for _, id := range ids {
		for _, r := range l.comparison.Rows {
			if _, ok := r.Ratings[id]; !ok {
				out = append(out, id)
				break
			}
		}
	}
	return out
}
