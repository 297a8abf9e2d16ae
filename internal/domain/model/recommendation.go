package model

// ArchitectureSnapshot is the per-recommendation copy of a catalog profile
// together with the request-scoped score.
type ArchitectureSnapshot struct {
	Type          ArchitectureID `json:"type"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Advantages    []string       `json:"advantages"`
	Disadvantages []string       `json:"disadvantages"`
	BestFor       []string       `json:"bestFor"`
	// Score is the raw, unbounded affinity score (never negative).
	Score int `json:"score"`
	// Confidence is Score clamped into [0,100].
	Confidence int `json:"confidence"`
}

// Recommendation is one ranked architecture with its patterns and reasoning.
type Recommendation struct {
	// Rank is 1-based; equal scores share a rank.
	Rank           int                  `json:"rank"`
	Architecture   ArchitectureSnapshot `json:"architecture"`
	DesignPatterns []DesignPattern      `json:"designPatterns"`
	Reasoning      []string             `json:"reasoning"`
}

// Analysis summarises the scores of every evaluated architecture.
type Analysis struct {
	TotalEvaluated int     `json:"totalEvaluated"`
	TopScore       int     `json:"topScore"`
	AverageScore   float64 `json:"averageScore"`
}

// Result is the outcome of one recommendation request. It is all or
// nothing: a failed result carries no recommendations.
type Result struct {
	Success         bool             `json:"success"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
	Analysis        *Analysis        `json:"analysis,omitempty"`
	Error           string           `json:"error,omitempty"`
	Message         string           `json:"message,omitempty"`
}

// Snapshot copies the descriptive fields of p into a recommendation entry.
func Snapshot(p ArchitectureProfile, score, confidence int) ArchitectureSnapshot {
	c := p.Clone()
	return ArchitectureSnapshot{
		Type:          c.ID,
		Name:          c.Name,
		Description:   c.Description,
		Advantages:    c.Advantages,
		Disadvantages: c.Disadvantages,
		BestFor:       c.BestFor,
		Score:         score,
		Confidence:    confidence,
	}
}
