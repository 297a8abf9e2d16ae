// Package reasoning explains why an architecture was recommended.
package reasoning

import "github.com/okian/archrec/internal/domain/model"

// Justification sentences. They are part of the user-facing contract.
const (
	HighTraffic     = "High user traffic requirement aligns with this architecture's scalability capabilities."
	HighComplexity  = "Complex project requirements match this architecture's design principles."
	HighScalability = "Scalability requirements are well-suited for this architecture type."
	LowBudget       = "Budget constraints align with this architecture's cost-effectiveness."
	Balanced        = "This architecture provides a balanced approach for your project requirements."
)

// Rule appends Sentence when When holds.
type Rule struct {
	When     func(req model.RequirementVector, cr model.CriteriaVector) bool
	Sentence string
}

// DefaultRules only look at high/high and low/low pairs on four
// dimensions. The coverage is intentionally partial.
var DefaultRules = []Rule{ //nolint:gochecknoglobals // fixed reference data
	{
		When: func(req model.RequirementVector, cr model.CriteriaVector) bool {
			return req.UserTraffic == model.TrafficHigh && cr.UserTraffic == model.TrafficHigh
		},
		Sentence: HighTraffic,
	},
	{
		When: func(req model.RequirementVector, cr model.CriteriaVector) bool {
			return req.Complexity == model.LevelHigh && cr.Complexity == model.LevelHigh
		},
		Sentence: HighComplexity,
	},
	{
		When: func(req model.RequirementVector, cr model.CriteriaVector) bool {
			return req.Scalability == model.LevelHigh && cr.Scalability == model.LevelHigh
		},
		Sentence: HighScalability,
	},
	{
		When: func(req model.RequirementVector, cr model.CriteriaVector) bool {
			return req.Budget == model.LevelLow && cr.Budget == model.LevelLow
		},
		Sentence: LowBudget,
	},
}

// Reasoner produces ordered justification sentences.
type Reasoner interface {
	Explain(req model.RequirementVector, arch model.ArchitectureProfile, score int) []string
}

// Generator implements Reasoner with a fixed rule list and a fallback.
type Generator struct {
	rules    []Rule
	fallback string
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithRules replaces the rule list.
func WithRules(rules []Rule) Option {
	return func(g *Generator) {
		if rules != nil {
			g.rules = append([]Rule(nil), rules...)
		}
	}
}

// WithFallback replaces the sentence used when no rule fires.
func WithFallback(sentence string) Option {
	return func(g *Generator) {
		if sentence != "" {
			g.fallback = sentence
		}
	}
}

// NewGenerator creates a generator with the reference rules.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		rules:    DefaultRules,
		fallback: Balanced,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Explain checks every rule in order and returns the sentences that apply,
// or exactly the fallback sentence when none do. The score does not
// influence the text.
func (g *Generator) Explain(req model.RequirementVector, arch model.ArchitectureProfile, _ int) []string {
	reasons := make([]string, 0, len(g.rules))
	for _, r := range g.rules {
		if r.When(req, arch.Criteria) {
			reasons = append(reasons, r.Sentence)
		}
	}
	if len(reasons) == 0 {
		reasons = append(reasons, g.fallback)
	}
	return reasons
}
