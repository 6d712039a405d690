package model

import "github.com/grclab/riskscope/pkg/domain/types"

// AssessmentInput is an ephemeral likelihood/impact pair to be validated and
// scored against the organization's policy. It is not persisted by the
// scoring engine itself.
type AssessmentInput struct {
	Likelihood int                  `json:"likelihood"`
	Impact     int                  `json:"impact"`
	MethodID   types.MethodID       `json:"assessment_method,omitempty"`
	Type       types.AssessmentType `json:"assessment_type,omitempty"`
}

// AssessmentResult is the scored outcome of an assessment
type AssessmentResult struct {
	Likelihood      int    `json:"likelihood"`
	Impact          int    `json:"impact"`
	Score           int    `json:"risk_score"`
	Level           string `json:"risk_level"`
	ExceedsAppetite bool   `json:"exceeds_risk_appetite,omitempty"`
	AppetiteWarning string `json:"appetite_warning,omitempty"`
}

// AppetiteCheck is the result of evaluating a score against the
// organization's risk appetite.
type AppetiteCheck struct {
	Score              int  `json:"score"`
	Exceeds            bool `json:"exceedsAppetite"`
	MaxAcceptable      int  `json:"maxAcceptable"`
	RequiresEscalation bool `json:"requiresEscalation"`
}
