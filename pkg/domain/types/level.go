package types

import "strings"

// RiskLevel is the name of a risk level band. Band names are organization
// configurable, so this is a free-form string with well-known defaults.
type RiskLevel string

const (
	LevelLow      RiskLevel = "Low"
	LevelMedium   RiskLevel = "Medium"
	LevelHigh     RiskLevel = "High"
	LevelCritical RiskLevel = "Critical"

	// LevelUnknown is used in outputs when no band matched and no fallback applied
	LevelUnknown RiskLevel = "unknown"
)

// String returns the string representation of RiskLevel
func (x RiskLevel) String() string {
	return string(x)
}

// Severe reports whether the level belongs to the upper severity group
// (critical/high as opposed to medium/low). Recommendation wording only
// reacts to transitions that cross this boundary.
func (x RiskLevel) Severe() bool {
	switch strings.ToLower(string(x)) {
	case "critical", "high":
		return true
	}
	return false
}

// Moderate reports whether the level belongs to the lower severity group
func (x RiskLevel) Moderate() bool {
	switch strings.ToLower(string(x)) {
	case "medium", "low":
		return true
	}
	return false
}
