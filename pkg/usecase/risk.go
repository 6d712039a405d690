package usecase

import (
	"context"
	"time"

	"github.com/grclab/riskscope/pkg/domain/interfaces"
	"github.com/grclab/riskscope/pkg/domain/model"
	"github.com/grclab/riskscope/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// RiskUseCase manages the scoring-relevant lifecycle of risk records. Every
// write path recalculates the cached triad scores and levels from their
// likelihood/impact inputs so that cached and derived values never diverge.
type RiskUseCase struct {
	repo     interfaces.Repository
	settings *SettingsUseCase
	scoring  *ScoringUseCase
}

func NewRiskUseCase(repo interfaces.Repository, settings *SettingsUseCase, scoring *ScoringUseCase) *RiskUseCase {
	return &RiskUseCase{
		repo:     repo,
		settings: settings,
		scoring:  scoring,
	}
}

// classifier returns a closure that maps a score to its level name under
// the organization's policy, with the builtin fallback bands behind it.
func (uc *RiskUseCase) classifier(ctx context.Context, orgID types.OrgID) func(score int) string {
	policy := uc.settings.policyOrNil(ctx, orgID)
	return func(score int) string {
		return ClassifyWithFallback(score, policy).Level
	}
}

func (uc *RiskUseCase) CreateRisk(ctx context.Context, orgID types.OrgID, risk *model.Risk) (*model.Risk, error) {
	if risk.Title == "" {
		return nil, goerr.Wrap(ErrInvalidRisk, "risk title is required")
	}
	if risk.Status == "" {
		risk.Status = types.RiskStatusIdentified
	}
	if err := risk.Status.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid risk status")
	}

	risk.Recalculate(uc.classifier(ctx, orgID))

	created, err := uc.repo.Risk().Create(ctx, risk)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create risk")
	}
	return created, nil
}

func (uc *RiskUseCase) UpdateRisk(ctx context.Context, orgID types.OrgID, risk *model.Risk) (*model.Risk, error) {
	if risk.Title == "" {
		return nil, goerr.Wrap(ErrInvalidRisk, "risk title is required")
	}
	if err := risk.Status.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid risk status")
	}

	risk.Recalculate(uc.classifier(ctx, orgID))

	updated, err := uc.repo.Risk().Update(ctx, risk)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update risk")
	}
	return updated, nil
}

func (uc *RiskUseCase) GetRisk(ctx context.Context, id types.RiskID) (*model.Risk, error) {
	risk, err := uc.repo.Risk().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get risk", goerr.V(RiskIDKey, id))
	}
	return risk, nil
}

func (uc *RiskUseCase) ListRisks(ctx context.Context) ([]*model.Risk, error) {
	risks, err := uc.repo.Risk().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list risks")
	}
	return risks, nil
}

func (uc *RiskUseCase) DeleteRisk(ctx context.Context, id types.RiskID) error {
	if err := uc.repo.Risk().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete risk", goerr.V(RiskIDKey, id))
	}
	return nil
}

// RecordAssessment validates and scores an assessment, applies it to the
// risk's chosen triad and persists the updated record. The returned result
// carries an appetite warning when the new score exceeds the organization's
// risk appetite.
func (uc *RiskUseCase) RecordAssessment(ctx context.Context, orgID types.OrgID, riskID types.RiskID, input model.AssessmentInput) (*model.AssessmentResult, error) {
	if input.Type == "" {
		input.Type = types.AssessmentCurrent
	}
	if err := input.Type.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid assessment")
	}

	if err := uc.scoring.ValidateAssessment(ctx, orgID, input); err != nil {
		return nil, err
	}

	risk, err := uc.repo.Risk().Get(ctx, riskID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get risk for assessment", goerr.V(RiskIDKey, riskID))
	}

	likelihood, impact := input.Likelihood, input.Impact
	switch input.Type {
	case types.AssessmentInherent:
		risk.InherentLikelihood, risk.InherentImpact = &likelihood, &impact
	case types.AssessmentTarget:
		risk.TargetLikelihood, risk.TargetImpact = &likelihood, &impact
	default:
		risk.CurrentLikelihood, risk.CurrentImpact = &likelihood, &impact
		now := time.Now().UTC()
		risk.LastReviewDate = &now
	}

	risk.Recalculate(uc.classifier(ctx, orgID))

	if _, err := uc.repo.Risk().Update(ctx, risk); err != nil {
		return nil, goerr.Wrap(err, "failed to store assessment result", goerr.V(RiskIDKey, riskID))
	}

	policy := uc.settings.policyOrNil(ctx, orgID)
	score := Score(likelihood, impact)
	result := &model.AssessmentResult{
		Likelihood: likelihood,
		Impact:     impact,
		Score:      score,
		Level:      ClassifyWithFallback(score, policy).Level,
	}
	if ExceedsAppetite(score, policy) {
		result.ExceedsAppetite = true
		result.AppetiteWarning = "This assessment results in a risk score that exceeds the organization's risk appetite threshold"
	}

	return result, nil
}
