package model

import (
	"time"

	"github.com/grclab/riskscope/pkg/domain/types"
)

// Risk is the scoring-relevant projection of a risk record. Likelihood,
// impact, score and level are tracked for the inherent/current/target triad;
// scores and levels are caches derived from likelihood x impact and are
// recomputed on every write path so that cached and derived values never
// diverge.
type Risk struct {
	ID            types.RiskID     `json:"id" firestore:"id"`
	Ref           string           `json:"risk_id" firestore:"ref"`
	Title         string           `json:"title" firestore:"title"`
	Description   string           `json:"description,omitempty" firestore:"description"`
	RiskStatement string           `json:"risk_statement,omitempty" firestore:"risk_statement"`
	Category      string           `json:"category,omitempty" firestore:"category"`
	CategoryName  string           `json:"category_name,omitempty" firestore:"category_name"`
	Status        types.RiskStatus `json:"status" firestore:"status"`
	OwnerID       string           `json:"owner_id,omitempty" firestore:"owner_id"`
	OwnerName     string           `json:"owner_name,omitempty" firestore:"owner_name"`
	AnalystName   string           `json:"analyst_name,omitempty" firestore:"analyst_name"`

	// Legacy single-assessment fields, kept for records that predate the
	// inherent/current/target triad.
	Likelihood *int `json:"likelihood,omitempty" firestore:"likelihood"`
	Impact     *int `json:"impact,omitempty" firestore:"impact"`

	InherentLikelihood *int   `json:"inherent_likelihood,omitempty" firestore:"inherent_likelihood"`
	InherentImpact     *int   `json:"inherent_impact,omitempty" firestore:"inherent_impact"`
	InherentScore      *int   `json:"inherent_risk_score,omitempty" firestore:"inherent_score"`
	InherentLevel      string `json:"inherent_risk_level,omitempty" firestore:"inherent_level"`

	CurrentLikelihood *int   `json:"current_likelihood,omitempty" firestore:"current_likelihood"`
	CurrentImpact     *int   `json:"current_impact,omitempty" firestore:"current_impact"`
	CurrentScore      *int   `json:"current_risk_score,omitempty" firestore:"current_score"`
	CurrentLevel      string `json:"current_risk_level,omitempty" firestore:"current_level"`

	TargetLikelihood *int   `json:"target_likelihood,omitempty" firestore:"target_likelihood"`
	TargetImpact     *int   `json:"target_impact,omitempty" firestore:"target_impact"`
	TargetScore      *int   `json:"target_risk_score,omitempty" firestore:"target_score"`
	TargetLevel      string `json:"target_risk_level,omitempty" firestore:"target_level"`

	ControlEffectiveness *int `json:"control_effectiveness,omitempty" firestore:"control_effectiveness"`

	ThreatSource string `json:"threat_source,omitempty" firestore:"threat_source"`
	RiskVelocity string `json:"risk_velocity,omitempty" firestore:"risk_velocity"`

	DateIdentified *time.Time `json:"date_identified,omitempty" firestore:"date_identified"`
	NextReviewDate *time.Time `json:"next_review_date,omitempty" firestore:"next_review_date"`
	LastReviewDate *time.Time `json:"last_review_date,omitempty" firestore:"last_review_date"`

	CreatedAt time.Time `json:"created_at" firestore:"created_at"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updated_at"`
}

// derive returns likelihood x impact when both are present
func derive(likelihood, impact *int) *int {
	if likelihood == nil || impact == nil {
		return nil
	}
	score := *likelihood * *impact
	return &score
}

// InherentScoreValue returns the cached inherent score, deriving it from
// likelihood x impact when no cache is present.
func (r *Risk) InherentScoreValue() *int {
	if r.InherentScore != nil {
		return r.InherentScore
	}
	return derive(r.InherentLikelihood, r.InherentImpact)
}

// CurrentScoreValue returns the cached current score, deriving it when absent
func (r *Risk) CurrentScoreValue() *int {
	if r.CurrentScore != nil {
		return r.CurrentScore
	}
	return derive(r.CurrentLikelihood, r.CurrentImpact)
}

// TargetScoreValue returns the cached target score, deriving it when absent
func (r *Risk) TargetScoreValue() *int {
	if r.TargetScore != nil {
		return r.TargetScore
	}
	return derive(r.TargetLikelihood, r.TargetImpact)
}

// EffectivenessValue returns control effectiveness, defaulting to 0
func (r *Risk) EffectivenessValue() int {
	if r.ControlEffectiveness == nil {
		return 0
	}
	return *r.ControlEffectiveness
}

// BaselineAssessment resolves the likelihood/impact pair used as the what-if
// baseline: the current triad when present, the legacy single assessment
// otherwise, and 3/3 when the record has never been assessed. Non-positive
// stored values count as absent so the baseline score is always positive.
func (r *Risk) BaselineAssessment() (likelihood, impact int) {
	pick := func(candidates ...*int) int {
		for _, c := range candidates {
			if c != nil && *c > 0 {
				return *c
			}
		}
		return 3
	}
	return pick(r.CurrentLikelihood, r.Likelihood), pick(r.CurrentImpact, r.Impact)
}

// Recalculate refreshes all cached triad scores and levels from their
// likelihood/impact inputs. classify must never return an empty level for a
// valid score; the caller supplies the fallback-aware classifier. Every
// repository write goes through this to keep caches and derived values in
// sync.
func (r *Risk) Recalculate(classify func(score int) string) {
	recalc := func(likelihood, impact *int) (*int, string) {
		score := derive(likelihood, impact)
		if score == nil {
			return nil, ""
		}
		return score, classify(*score)
	}

	r.InherentScore, r.InherentLevel = recalc(r.InherentLikelihood, r.InherentImpact)
	r.CurrentScore, r.CurrentLevel = recalc(r.CurrentLikelihood, r.CurrentImpact)
	r.TargetScore, r.TargetLevel = recalc(r.TargetLikelihood, r.TargetImpact)
}

// LinkCounts carries linked-entity counts for one risk, supplied by the
// counts collaborator. The scoring engine has no opinion on how these are
// computed.
type LinkCounts struct {
	Controls   int `json:"linked_controls_count" firestore:"controls"`
	Assets     int `json:"linked_assets_count" firestore:"assets"`
	Treatments int `json:"active_treatments_count" firestore:"treatments"`
	KRIs       int `json:"kri_count" firestore:"kris"`
}
