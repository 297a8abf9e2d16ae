// Package scoring computes the affinity between a project's requirements and
// an architecture profile using a declarative weight table.
package scoring

import (
	"github.com/okian/archrec/internal/domain/model"
)

// Dimension names one of the five criteria dimensions.
type Dimension string

// Criteria dimensions, in evaluation order.
const (
	UserTraffic Dimension = "userTraffic"
	Complexity  Dimension = "complexity"
	TeamSize    Dimension = "teamSize"
	Scalability Dimension = "scalability"
	Budget      Dimension = "budget"
)

// values returns the requirement and criteria values for d as strings.
func (d Dimension) values(req model.RequirementVector, cr model.CriteriaVector) (string, string) {
	switch d {
	case UserTraffic:
		return string(req.UserTraffic), string(cr.UserTraffic)
	case Complexity:
		return string(req.Complexity), string(cr.Complexity)
	case TeamSize:
		return string(req.TeamSize), string(cr.TeamSize)
	case Scalability:
		return string(req.Scalability), string(cr.Scalability)
	case Budget:
		return string(req.Budget), string(cr.Budget)
	}
	return "", ""
}

// Match selects how a rule compares the requirement and criteria values.
type Match int

const (
	// Exact fires when both values are present and equal.
	Exact Match = iota
	// Pair fires when the requirement equals Rule.Requirement and the
	// criteria equals Rule.Criteria.
	Pair
)

// Rule is one row of the weight table.
type Rule struct {
	Dimension   Dimension
	Match       Match
	Requirement string
	Criteria    string
	Weight      int
}

func (r Rule) applies(req model.RequirementVector, cr model.CriteriaVector) bool {
	rv, cv := r.Dimension.values(req, cr)
	if rv == "" || cv == "" {
		return false
	}
	switch r.Match {
	case Exact:
		return rv == cv
	case Pair:
		return rv == r.Requirement && cv == r.Criteria
	}
	return false
}

// Bonus is a fixed cross-dimension heuristic tied to one architecture id.
type Bonus struct {
	Name         string
	Architecture model.ArchitectureID
	Applies      func(req model.RequirementVector) bool
	Weight       int
}

// DefaultRules is the reference weight table. Within a dimension the
// conditions are mutually exclusive, so at most one row per dimension fires.
var DefaultRules = []Rule{ //nolint:gochecknoglobals // fixed reference data
	{Dimension: UserTraffic, Match: Exact, Weight: 25},
	{Dimension: UserTraffic, Match: Pair, Requirement: "medium", Criteria: "high", Weight: 15},
	{Dimension: UserTraffic, Match: Pair, Requirement: "high", Criteria: "low", Weight: -10},

	{Dimension: Complexity, Match: Exact, Weight: 20},
	{Dimension: Complexity, Match: Pair, Requirement: "medium", Criteria: "high", Weight: 10},

	{Dimension: TeamSize, Match: Exact, Weight: 20},

	{Dimension: Scalability, Match: Exact, Weight: 25},
	{Dimension: Scalability, Match: Pair, Requirement: "high", Criteria: "low", Weight: -15},

	{Dimension: Budget, Match: Exact, Weight: 10},
	{Dimension: Budget, Match: Pair, Requirement: "low", Criteria: "high", Weight: -20},
}

// SecurityIsolationBonus rewards microservices when security matters most.
var SecurityIsolationBonus = Bonus{ //nolint:gochecknoglobals // fixed reference data
	Name:         "security_isolation",
	Architecture: model.Microservices,
	Applies:      func(req model.RequirementVector) bool { return req.SecurityLevel() == model.LevelHigh },
	Weight:       10,
}

// MaintenanceSimplicityBonus rewards monoliths for low-maintenance projects.
var MaintenanceSimplicityBonus = Bonus{ //nolint:gochecknoglobals // fixed reference data
	Name:         "maintenance_simplicity",
	Architecture: model.Monolithic,
	Applies:      func(req model.RequirementVector) bool { return req.MaintenanceLevel() == model.LevelLow },
	Weight:       5,
}

// DefaultBonuses lists the named heuristics applied after the weight table.
var DefaultBonuses = []Bonus{SecurityIsolationBonus, MaintenanceSimplicityBonus} //nolint:gochecknoglobals // fixed reference data

// Contribution records one rule or bonus that fired.
type Contribution struct {
	Source string
	Weight int
}

// Scorer computes a non-negative score for a requirement/architecture pair.
type Scorer interface {
	Score(req model.RequirementVector, arch model.ArchitectureProfile) int
}

// RuleScorer implements Scorer over a rule table and a bonus list.
// It holds no mutable state and is safe for concurrent use.
type RuleScorer struct {
	rules   []Rule
	bonuses []Bonus
}

// NewRuleScorer creates a scorer using the reference tables unless
// overridden by options.
func NewRuleScorer(opts ...Option) *RuleScorer {
	s := &RuleScorer{
		rules:   DefaultRules,
		bonuses: DefaultBonuses,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Breakdown evaluates every rule and bonus and returns those that fired,
// in table order.
func (s *RuleScorer) Breakdown(req model.RequirementVector, arch model.ArchitectureProfile) []Contribution {
	var out []Contribution
	for _, r := range s.rules {
		if r.applies(req, arch.Criteria) {
			out = append(out, Contribution{Source: string(r.Dimension), Weight: r.Weight})
		}
	}
	for _, b := range s.bonuses {
		if b.Architecture == arch.ID && b.Applies != nil && b.Applies(req) {
			out = append(out, Contribution{Source: b.Name, Weight: b.Weight})
		}
	}
	return out
}

// Score sums all contributions and floors the total at zero.
func (s *RuleScorer) Score(req model.RequirementVector, arch model.ArchitectureProfile) int {
	total := 0
	for _, c := range s.Breakdown(req, arch) {
		total += c.Weight
	}
	return max(0, total)
}
