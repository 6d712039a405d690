package model

import "github.com/grclab/riskscope/pkg/domain/types"

// Scenario describes one hypothetical change to a risk. All fields are
// optional; absent fields fall back to the risk's current values.
type Scenario struct {
	SimulatedLikelihood           *int `json:"simulated_likelihood,omitempty"`
	SimulatedImpact               *int `json:"simulated_impact,omitempty"`
	SimulatedControlEffectiveness *int `json:"simulated_control_effectiveness,omitempty"`
	AdditionalControls            int  `json:"additional_controls,omitempty"`
}

// SimulationRequest is a what-if request for a single risk
type SimulationRequest struct {
	RiskID types.RiskID `json:"risk_id"`
	Scenario
}

// BatchSimulationRequest runs several scenarios against one risk. Scenarios
// are evaluated independently and sequentially; results preserve input order.
type BatchSimulationRequest struct {
	RiskID    types.RiskID `json:"risk_id"`
	Scenarios []Scenario   `json:"scenarios"`
}

// SimulationState is one projected risk state (either the baseline or the
// simulated one).
type SimulationState struct {
	Likelihood           int    `json:"likelihood"`
	Impact               int    `json:"impact"`
	Score                int    `json:"risk_score"`
	Level                string `json:"risk_level"`
	ControlEffectiveness int    `json:"control_effectiveness"`
}

// ImpactAnalysis explains the delta between baseline and simulated state
type ImpactAnalysis struct {
	ScoreChange           int    `json:"score_change"`
	ScoreChangePercentage int    `json:"score_change_percentage"`
	LevelChanged          bool   `json:"level_changed"`
	OldLevel              string `json:"old_level"`
	NewLevel              string `json:"new_level"`
	ExceedsAppetite       bool   `json:"exceeds_appetite"`
	AppetiteThreshold     int    `json:"appetite_threshold"`
	Recommendation        string `json:"recommendation"`
}

// LevelDetails carries the display metadata of the simulated level's band
type LevelDetails struct {
	Color              string `json:"color"`
	Description        string `json:"description"`
	ResponseTime       string `json:"response_time"`
	RequiresEscalation bool   `json:"requires_escalation"`
}

// SimulationResult is the full outcome of a what-if simulation
type SimulationResult struct {
	Original       SimulationState `json:"original"`
	Simulated      SimulationState `json:"simulated"`
	ImpactAnalysis ImpactAnalysis  `json:"impact_analysis"`
	LevelDetails   *LevelDetails   `json:"risk_level_details,omitempty"`
}
