package model

import (
	"time"

	"github.com/grclab/riskscope/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

const (
	// MinScaleSize and MaxScaleSize bound the configurable likelihood and
	// impact scale sizes of an assessment method.
	MinScaleSize = 3
	MaxScaleSize = 10
)

// RiskLevelBand maps a contiguous score range to a named risk level with
// display and escalation metadata.
type RiskLevelBand struct {
	Level        string `json:"level" firestore:"level" toml:"level"`
	MinScore     int    `json:"minScore" firestore:"min_score" toml:"min_score"`
	MaxScore     int    `json:"maxScore" firestore:"max_score" toml:"max_score"`
	Color        string `json:"color" firestore:"color" toml:"color"`
	Description  string `json:"description" firestore:"description" toml:"description"`
	ResponseTime string `json:"responseTime" firestore:"response_time" toml:"response_time"`
	Escalation   bool   `json:"escalation" firestore:"escalation" toml:"escalation"`
}

// Contains reports whether the score falls inside this band
func (b *RiskLevelBand) Contains(score int) bool {
	return b.MinScore <= score && score <= b.MaxScore
}

// AssessmentMethod describes one way to assess a risk, with its own
// likelihood and impact scale sizes.
type AssessmentMethod struct {
	ID              types.MethodID `json:"id" firestore:"id" toml:"id"`
	Name            string         `json:"name" firestore:"name" toml:"name"`
	Description     string         `json:"description" firestore:"description" toml:"description"`
	LikelihoodScale int            `json:"likelihoodScale" firestore:"likelihood_scale" toml:"likelihood_scale"`
	ImpactScale     int            `json:"impactScale" firestore:"impact_scale" toml:"impact_scale"`
	IsDefault       bool           `json:"isDefault" firestore:"is_default" toml:"is_default"`
	IsActive        bool           `json:"isActive" firestore:"is_active" toml:"is_active"`
}

// Validate checks if the AssessmentMethod is valid
func (m *AssessmentMethod) Validate() error {
	if err := m.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid assessment method ID")
	}
	if m.Name == "" {
		return goerr.New("assessment method name is required", goerr.V("id", m.ID))
	}
	if m.LikelihoodScale < MinScaleSize || m.LikelihoodScale > MaxScaleSize {
		return goerr.New("likelihood scale out of range",
			goerr.V("id", m.ID), goerr.V("scale", m.LikelihoodScale))
	}
	if m.ImpactScale < MinScaleSize || m.ImpactScale > MaxScaleSize {
		return goerr.New("impact scale out of range",
			goerr.V("id", m.ID), goerr.V("scale", m.ImpactScale))
	}
	return nil
}

// ScaleStep is one descriptive step of a likelihood or impact scale
type ScaleStep struct {
	Value       int    `json:"value" firestore:"value" toml:"value"`
	Label       string `json:"label" firestore:"label" toml:"label"`
	Description string `json:"description" firestore:"description" toml:"description"`
}

// ScoringPolicy is the organization's configurable scoring configuration.
// It is created lazily with defaults on first read and mutated only through
// explicit update or reset. Version increments on every write but is not
// checked on update: concurrent writers follow last-write-wins semantics.
type ScoringPolicy struct {
	ID                 string             `json:"id" firestore:"id"`
	OrgID              types.OrgID        `json:"organization_id,omitempty" firestore:"org_id"`
	RiskLevels         []RiskLevelBand    `json:"risk_levels" firestore:"risk_levels"`
	AssessmentMethods  []AssessmentMethod `json:"assessment_methods" firestore:"assessment_methods"`
	LikelihoodScale    []ScaleStep        `json:"likelihood_scale" firestore:"likelihood_scale"`
	ImpactScale        []ScaleStep        `json:"impact_scale" firestore:"impact_scale"`
	MaxAcceptableScore int                `json:"max_acceptable_risk_score" firestore:"max_acceptable_score"`
	AppetiteEnabled    bool               `json:"enable_risk_appetite" firestore:"appetite_enabled"`
	Version            int                `json:"version" firestore:"version"`
	CreatedAt          time.Time          `json:"created_at" firestore:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" firestore:"updated_at"`
}

// DefaultMethod returns the method flagged as default, or nil if none is
func (p *ScoringPolicy) DefaultMethod() *AssessmentMethod {
	for i := range p.AssessmentMethods {
		if p.AssessmentMethods[i].IsDefault {
			return &p.AssessmentMethods[i]
		}
	}
	return nil
}

// ActiveMethod returns the active method with the given ID, or nil
func (p *ScoringPolicy) ActiveMethod(id types.MethodID) *AssessmentMethod {
	for i := range p.AssessmentMethods {
		if p.AssessmentMethods[i].ID == id && p.AssessmentMethods[i].IsActive {
			return &p.AssessmentMethods[i]
		}
	}
	return nil
}

// MatchBand returns the first band containing the score, or nil when the
// configured bands leave a gap. Callers fall back to DefaultRiskLevels so
// that classification never fails.
func (p *ScoringPolicy) MatchBand(score int) *RiskLevelBand {
	for i := range p.RiskLevels {
		if p.RiskLevels[i].Contains(score) {
			return &p.RiskLevels[i]
		}
	}
	return nil
}

// MaxScore returns the largest score producible under the default method
func (p *ScoringPolicy) MaxScore() int {
	if m := p.DefaultMethod(); m != nil {
		return m.LikelihoodScale * m.ImpactScale
	}
	return DefaultScaleSize * DefaultScaleSize
}

// Validate checks the policy invariants: bands must be contiguous,
// non-overlapping and gapless over [1, maxScore], and exactly one
// assessment method must be the default.
func (p *ScoringPolicy) Validate() error {
	if len(p.RiskLevels) == 0 {
		return goerr.New("at least one risk level band is required")
	}
	if len(p.AssessmentMethods) == 0 {
		return goerr.New("at least one assessment method is required")
	}

	defaults := 0
	seen := map[types.MethodID]bool{}
	for i := range p.AssessmentMethods {
		m := &p.AssessmentMethods[i]
		if err := m.Validate(); err != nil {
			return goerr.Wrap(err, "invalid assessment method")
		}
		if seen[m.ID] {
			return goerr.New("duplicate assessment method ID", goerr.V("id", m.ID))
		}
		seen[m.ID] = true
		if m.IsDefault {
			defaults++
		}
	}
	if defaults != 1 {
		return goerr.New("exactly one assessment method must be the default",
			goerr.V("defaults", defaults))
	}
	if m := p.DefaultMethod(); m != nil && !m.IsActive {
		return goerr.New("default assessment method must be active", goerr.V("id", m.ID))
	}

	next := 1
	maxScore := p.MaxScore()
	for i := range p.RiskLevels {
		b := &p.RiskLevels[i]
		if b.Level == "" {
			return goerr.New("risk level band name is required", goerr.V("index", i))
		}
		if b.MinScore != next {
			return goerr.New("risk level bands must be contiguous and gapless",
				goerr.V("level", b.Level), goerr.V("min_score", b.MinScore), goerr.V("expected", next))
		}
		if b.MaxScore < b.MinScore {
			return goerr.New("risk level band max must not be below min",
				goerr.V("level", b.Level), goerr.V("min_score", b.MinScore), goerr.V("max_score", b.MaxScore))
		}
		next = b.MaxScore + 1
	}
	if next <= maxScore {
		return goerr.New("risk level bands do not cover the full score range",
			goerr.V("covered_up_to", next-1), goerr.V("max_score", maxScore))
	}

	if p.MaxAcceptableScore < 1 {
		return goerr.New("max acceptable risk score must be positive",
			goerr.V("score", p.MaxAcceptableScore))
	}

	return nil
}

// Clone returns a deep copy of the policy
func (p *ScoringPolicy) Clone() *ScoringPolicy {
	clone := *p
	clone.RiskLevels = append([]RiskLevelBand(nil), p.RiskLevels...)
	clone.AssessmentMethods = append([]AssessmentMethod(nil), p.AssessmentMethods...)
	clone.LikelihoodScale = append([]ScaleStep(nil), p.LikelihoodScale...)
	clone.ImpactScale = append([]ScaleStep(nil), p.ImpactScale...)
	return &clone
}

// PolicyPatch carries a partial policy update. Nil fields are left unchanged
// by the merge.
type PolicyPatch struct {
	RiskLevels         []RiskLevelBand    `json:"risk_levels,omitempty"`
	AssessmentMethods  []AssessmentMethod `json:"assessment_methods,omitempty"`
	LikelihoodScale    []ScaleStep        `json:"likelihood_scale,omitempty"`
	ImpactScale        []ScaleStep        `json:"impact_scale,omitempty"`
	MaxAcceptableScore *int               `json:"max_acceptable_risk_score,omitempty"`
	AppetiteEnabled    *bool              `json:"enable_risk_appetite,omitempty"`
}

// Apply merges the patch into a copy of the policy and returns it. The
// version counter is not touched here; the settings use case bumps it once
// per successful write.
func (p *PolicyPatch) Apply(policy *ScoringPolicy) *ScoringPolicy {
	merged := policy.Clone()
	if p.RiskLevels != nil {
		merged.RiskLevels = append([]RiskLevelBand(nil), p.RiskLevels...)
	}
	if p.AssessmentMethods != nil {
		merged.AssessmentMethods = append([]AssessmentMethod(nil), p.AssessmentMethods...)
	}
	if p.LikelihoodScale != nil {
		merged.LikelihoodScale = append([]ScaleStep(nil), p.LikelihoodScale...)
	}
	if p.ImpactScale != nil {
		merged.ImpactScale = append([]ScaleStep(nil), p.ImpactScale...)
	}
	if p.MaxAcceptableScore != nil {
		merged.MaxAcceptableScore = *p.MaxAcceptableScore
	}
	if p.AppetiteEnabled != nil {
		merged.AppetiteEnabled = *p.AppetiteEnabled
	}
	return merged
}
