package model

import "github.com/grclab/riskscope/pkg/domain/types"

// ComparisonRequest selects the risks to compare. Duplicated IDs are not
// rejected and produce duplicate rows; deduplication is the caller's call.
type ComparisonRequest struct {
	RiskIDs []types.RiskID `json:"risk_ids"`
}

// ComparisonRow is the flattened per-risk projection used for side-by-side
// comparison.
type ComparisonRow struct {
	ID           types.RiskID     `json:"id"`
	Ref          string           `json:"risk_id"`
	Title        string           `json:"title"`
	CategoryName string           `json:"category_name,omitempty"`
	Status       types.RiskStatus `json:"status"`
	OwnerName    string           `json:"owner_name,omitempty"`

	InherentLikelihood *int   `json:"inherent_likelihood,omitempty"`
	InherentImpact     *int   `json:"inherent_impact,omitempty"`
	InherentScore      *int   `json:"inherent_risk_score,omitempty"`
	InherentLevel      string `json:"inherent_risk_level,omitempty"`

	CurrentLikelihood *int   `json:"current_likelihood,omitempty"`
	CurrentImpact     *int   `json:"current_impact,omitempty"`
	CurrentScore      *int   `json:"current_risk_score,omitempty"`
	CurrentLevel      string `json:"current_risk_level,omitempty"`

	TargetLikelihood *int   `json:"target_likelihood,omitempty"`
	TargetImpact     *int   `json:"target_impact,omitempty"`
	TargetScore      *int   `json:"target_risk_score,omitempty"`
	TargetLevel      string `json:"target_risk_level,omitempty"`

	ControlEffectiveness *int `json:"control_effectiveness,omitempty"`

	LinkedControls   int `json:"linked_controls_count"`
	LinkedAssets     int `json:"linked_assets_count"`
	ActiveTreatments int `json:"active_treatments_count"`
	KRICount         int `json:"kri_count"`

	// RiskReduction and GapToTarget stay nil (not zero) when an operand is
	// missing so that "unknown" never reads as "no reduction".
	RiskReduction *int `json:"risk_reduction_percentage,omitempty"`
	GapToTarget   *int `json:"gap_to_target,omitempty"`
}

// RiskRef points at one risk with its current score
type RiskRef struct {
	ID    types.RiskID `json:"id"`
	Title string       `json:"title"`
	Score int          `json:"score"`
}

// ComparisonSummary aggregates the compared set
type ComparisonSummary struct {
	TotalRisks                  int     `json:"total_risks"`
	AverageCurrentScore         float64 `json:"average_current_score"`
	HighestRisk                 RiskRef `json:"highest_risk"`
	LowestRisk                  RiskRef `json:"lowest_risk"`
	AverageControlEffectiveness int     `json:"average_control_effectiveness"`
	TotalLinkedControls         int     `json:"total_linked_controls"`
	TotalActiveTreatments       int     `json:"total_active_treatments"`
}

// MetricValue holds one metric value keyed by the risk's human reference
type MetricValue struct {
	RiskRef string `json:"risk_id"`
	Value   any    `json:"value"`
}

// MetricRow is one named row of the comparison matrix. Only the current
// score row carries a variance (max - min over defined scores).
type MetricRow struct {
	Metric   string        `json:"metric"`
	Values   []MetricValue `json:"values"`
	Variance *int          `json:"variance,omitempty"`
}

// Comparison is a full side-by-side comparison result
type Comparison struct {
	Risks   []ComparisonRow   `json:"risks"`
	Summary ComparisonSummary `json:"summary"`
	Matrix  []MetricRow       `json:"comparison_matrix"`
}
