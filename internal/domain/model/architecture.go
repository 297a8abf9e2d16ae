package model

// ArchitectureID identifies an architecture style in the catalog.
// Ids are a stable contract: callers address architectures by id.
type ArchitectureID string

// Architecture styles shipped with the default catalog. Some scoring
// heuristics refer to these ids by name.
const (
	Monolithic    ArchitectureID = "monolithic"
	Microservices ArchitectureID = "microservices"
	Serverless    ArchitectureID = "serverless"
	SOA           ArchitectureID = "soa"
)

// PatternID identifies a design pattern in the catalog.
type PatternID string

// CriteriaVector is the ideal operating point of an architecture, using the
// five mandatory requirement dimensions.
type CriteriaVector struct {
	UserTraffic Traffic  `json:"userTraffic" yaml:"userTraffic"`
	Complexity  Level    `json:"complexity" yaml:"complexity"`
	TeamSize    TeamSize `json:"teamSize" yaml:"teamSize"`
	Scalability Level    `json:"scalability" yaml:"scalability"`
	Budget      Level    `json:"budget" yaml:"budget"`
}

// ArchitectureProfile is an immutable catalog entry describing one
// architecture style. Per-request scores are never stored on it.
type ArchitectureProfile struct {
	ID            ArchitectureID `json:"id" yaml:"id"`
	Name          string         `json:"name" yaml:"name"`
	Description   string         `json:"description" yaml:"description"`
	Advantages    []string       `json:"advantages" yaml:"advantages"`
	Disadvantages []string       `json:"disadvantages" yaml:"disadvantages"`
	BestFor       []string       `json:"bestFor" yaml:"bestFor"`
	Criteria      CriteriaVector `json:"criteria" yaml:"criteria"`
}

// Clone returns a deep copy of p.
func (p ArchitectureProfile) Clone() ArchitectureProfile {
	p.Advantages = cloneStrings(p.Advantages)
	p.Disadvantages = cloneStrings(p.Disadvantages)
	p.BestFor = cloneStrings(p.BestFor)
	return p
}

// DesignPattern is a catalog entry for a design pattern and the
// architectures it applies to.
type DesignPattern struct {
	ID                      PatternID        `json:"id" yaml:"id"`
	Name                    string           `json:"name" yaml:"name"`
	Description             string           `json:"description" yaml:"description"`
	UseCase                 string           `json:"useCase" yaml:"useCase"`
	ApplicableArchitectures []ArchitectureID `json:"applicableArchitectures" yaml:"applicableArchitectures"`
}

// AppliesTo reports whether the pattern is applicable to id.
func (d DesignPattern) AppliesTo(id ArchitectureID) bool {
	for _, a := range d.ApplicableArchitectures {
		if a == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of d.
func (d DesignPattern) Clone() DesignPattern {
	if d.ApplicableArchitectures != nil {
		d.ApplicableArchitectures = append([]ArchitectureID(nil), d.ApplicableArchitectures...)
	}
	return d
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
