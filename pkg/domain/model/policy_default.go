package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/grclab/riskscope/pkg/domain/types"
)

// DefaultScaleSize is the builtin scale bound used when no policy is
// reachable at all.
const DefaultScaleSize = 5

// DefaultMaxAcceptableScore is the builtin risk appetite threshold: scores
// above the Medium band demand attention.
const DefaultMaxAcceptableScore = 11

// DefaultRiskLevels returns the builtin band set. It doubles as the
// classification fallback when a configured policy leaves score gaps.
func DefaultRiskLevels() []RiskLevelBand {
	return []RiskLevelBand{
		{Level: "Low", MinScore: 1, MaxScore: 5, Color: "#22c55e",
			Description: "Acceptable risk - monitor periodically", ResponseTime: "90 days", Escalation: false},
		{Level: "Medium", MinScore: 6, MaxScore: 11, Color: "#eab308",
			Description: "Moderate risk - implement controls", ResponseTime: "30 days", Escalation: false},
		{Level: "High", MinScore: 12, MaxScore: 19, Color: "#f97316",
			Description: "Significant risk - prioritize treatment", ResponseTime: "7 days", Escalation: true},
		{Level: "Critical", MinScore: 20, MaxScore: 25, Color: "#dc2626",
			Description: "Unacceptable risk - immediate action required", ResponseTime: "24 hours", Escalation: true},
	}
}

// DefaultAssessmentMethods returns the builtin assessment method catalog
func DefaultAssessmentMethods() []AssessmentMethod {
	return []AssessmentMethod{
		{ID: "qualitative_5x5", Name: "Qualitative 5x5 Matrix",
			Description:     "Standard 5-point scales for likelihood and impact",
			LikelihoodScale: 5, ImpactScale: 5, IsDefault: true, IsActive: true},
		{ID: "qualitative_3x3", Name: "Simplified 3x3 Matrix",
			Description:     "Basic 3-point scales for quick assessments",
			LikelihoodScale: 3, ImpactScale: 3, IsDefault: false, IsActive: true},
		{ID: "bowtie", Name: "Bowtie Analysis",
			Description:     "Cause-consequence analysis with barriers",
			LikelihoodScale: 5, ImpactScale: 5, IsDefault: false, IsActive: false},
	}
}

// DefaultLikelihoodScale returns the builtin likelihood scale descriptions
func DefaultLikelihoodScale() []ScaleStep {
	return []ScaleStep{
		{Value: 1, Label: "Rare", Description: "Highly unlikely to occur (< 5% chance)"},
		{Value: 2, Label: "Unlikely", Description: "Not expected but possible (5-20% chance)"},
		{Value: 3, Label: "Possible", Description: "Could occur at some point (20-50% chance)"},
		{Value: 4, Label: "Likely", Description: "More likely than not (50-80% chance)"},
		{Value: 5, Label: "Almost Certain", Description: "Expected to occur (> 80% chance)"},
	}
}

// DefaultImpactScale returns the builtin impact scale descriptions
func DefaultImpactScale() []ScaleStep {
	return []ScaleStep{
		{Value: 1, Label: "Negligible", Description: "Minimal impact on operations or objectives"},
		{Value: 2, Label: "Minor", Description: "Limited impact, easily recoverable"},
		{Value: 3, Label: "Moderate", Description: "Noticeable impact requiring management attention"},
		{Value: 4, Label: "Major", Description: "Significant impact on key objectives"},
		{Value: 5, Label: "Catastrophic", Description: "Severe impact threatening organizational survival"},
	}
}

// NewDefaultPolicy builds a fresh default policy for the organization
func NewDefaultPolicy(orgID types.OrgID) *ScoringPolicy {
	now := time.Now().UTC()
	return &ScoringPolicy{
		ID:                 uuid.New().String(),
		OrgID:              orgID,
		RiskLevels:         DefaultRiskLevels(),
		AssessmentMethods:  DefaultAssessmentMethods(),
		LikelihoodScale:    DefaultLikelihoodScale(),
		ImpactScale:        DefaultImpactScale(),
		MaxAcceptableScore: DefaultMaxAcceptableScore,
		AppetiteEnabled:    true,
		Version:            1,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}
