// Package model contains domain models passed between layers.
package model

// Traffic is the expected user traffic level of a project.
type Traffic string

// Traffic values.
const (
	TrafficLow      Traffic = "low"
	TrafficMedium   Traffic = "medium"
	TrafficHigh     Traffic = "high"
	TrafficVariable Traffic = "variable"
)

// Valid reports whether t is one of the known traffic values.
func (t Traffic) Valid() bool {
	switch t {
	case TrafficLow, TrafficMedium, TrafficHigh, TrafficVariable:
		return true
	}
	return false
}

// Level is a low/medium/high rating shared by several dimensions.
type Level string

// Level values.
const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh:
		return true
	}
	return false
}

// TeamSize is the size of the development team.
type TeamSize string

// TeamSize values.
const (
	TeamSmall  TeamSize = "small"
	TeamMedium TeamSize = "medium"
	TeamLarge  TeamSize = "large"
)

// Valid reports whether s is one of the known team sizes.
func (s TeamSize) Valid() bool {
	switch s {
	case TeamSmall, TeamMedium, TeamLarge:
		return true
	}
	return false
}

// Deployment is the preferred deployment topology.
type Deployment string

// Deployment values.
const (
	DeploymentSimple   Deployment = "simple"
	DeploymentModerate Deployment = "moderate"
	DeploymentComplex  Deployment = "complex"
)

// Valid reports whether d is one of the known deployment preferences.
func (d Deployment) Valid() bool {
	switch d {
	case DeploymentSimple, DeploymentModerate, DeploymentComplex:
		return true
	}
	return false
}

// RequirementVector holds a project's answers, one value per dimension.
// The first five fields are mandatory; Security, Maintenance and Deployment
// are optional and nil when the caller did not provide them.
type RequirementVector struct {
	UserTraffic Traffic  `json:"userTraffic" yaml:"userTraffic" validate:"required,oneof=low medium high variable"`
	Complexity  Level    `json:"complexity" yaml:"complexity" validate:"required,oneof=low medium high"`
	TeamSize    TeamSize `json:"teamSize" yaml:"teamSize" validate:"required,oneof=small medium large"`
	Scalability Level    `json:"scalability" yaml:"scalability" validate:"required,oneof=low medium high"`
	Budget      Level    `json:"budget" yaml:"budget" validate:"required,oneof=low medium high"`

	Security    *Level      `json:"security,omitempty" yaml:"security,omitempty" validate:"omitnil,oneof=low medium high"`
	Maintenance *Level      `json:"maintenance,omitempty" yaml:"maintenance,omitempty" validate:"omitnil,oneof=low medium high"`
	Deployment  *Deployment `json:"deployment,omitempty" yaml:"deployment,omitempty" validate:"omitnil,oneof=simple moderate complex"`
}

// SecurityLevel returns the security requirement or "" when absent.
func (r RequirementVector) SecurityLevel() Level {
	if r.Security == nil {
		return ""
	}
	return *r.Security
}

// MaintenanceLevel returns the maintenance requirement or "" when absent.
func (r RequirementVector) MaintenanceLevel() Level {
	if r.Maintenance == nil {
		return ""
	}
	return *r.Maintenance
}

// DeploymentPreference returns the deployment preference or "" when absent.
func (r RequirementVector) DeploymentPreference() Deployment {
	if r.Deployment == nil {
		return ""
	}
	return *r.Deployment
}

// Ptr returns a pointer to v. Handy for the optional requirement fields.
func Ptr[T any](v T) *T { return &v }
