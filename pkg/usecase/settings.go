package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/grclab/riskscope/pkg/domain/interfaces"
	"github.com/grclab/riskscope/pkg/domain/model"
	"github.com/grclab/riskscope/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// SettingsUseCase manages per-organization scoring policies. Policies are
// created lazily with defaults on first read. Updates follow plain
// read-modify-write: the version counter increments on every write but is
// never checked, so concurrent updates to the same organization can clobber
// each other (last write wins). This matches the documented behavior of the
// system; an optimistic-lock upgrade would be a behavioral change.
type SettingsUseCase struct {
	repo     interfaces.Repository
	template *model.ScoringPolicy
}

func NewSettingsUseCase(repo interfaces.Repository, template *model.ScoringPolicy) *SettingsUseCase {
	return &SettingsUseCase{
		repo:     repo,
		template: template,
	}
}

// newPolicy builds a fresh policy for the organization from the configured
// template, or from the builtin defaults when no template was supplied.
func (uc *SettingsUseCase) newPolicy(orgID types.OrgID) *model.ScoringPolicy {
	if uc.template == nil {
		return model.NewDefaultPolicy(orgID)
	}

	now := time.Now().UTC()
	policy := uc.template.Clone()
	policy.ID = uuid.New().String()
	policy.OrgID = orgID
	policy.Version = 1
	policy.CreatedAt = now
	policy.UpdatedAt = now
	return policy
}

// GetPolicy returns the organization's scoring policy, creating it from
// defaults on first access.
func (uc *SettingsUseCase) GetPolicy(ctx context.Context, orgID types.OrgID) (*model.ScoringPolicy, error) {
	policy, err := uc.repo.Policy().Get(ctx, orgID)
	if err == nil {
		return policy, nil
	}
	if !errors.Is(err, model.ErrPolicyNotFound) {
		return nil, goerr.Wrap(err, "failed to get scoring policy", goerr.V(OrgIDKey, orgID))
	}

	created, err := uc.repo.Policy().Put(ctx, uc.newPolicy(orgID))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create default scoring policy", goerr.V(OrgIDKey, orgID))
	}
	return created, nil
}

// UpdatePolicy merges the patch into the stored policy, validates the result
// and stores it with a bumped version.
func (uc *SettingsUseCase) UpdatePolicy(ctx context.Context, orgID types.OrgID, patch *model.PolicyPatch) (*model.ScoringPolicy, error) {
	current, err := uc.GetPolicy(ctx, orgID)
	if err != nil {
		return nil, err
	}

	merged := patch.Apply(current)
	if err := merged.Validate(); err != nil {
		return nil, goerr.Wrap(errors.Join(ErrInvalidPolicy, err), "policy update rejected",
			goerr.V(OrgIDKey, orgID))
	}

	merged.Version = current.Version + 1
	merged.UpdatedAt = time.Now().UTC()

	updated, err := uc.repo.Policy().Put(ctx, merged)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store scoring policy", goerr.V(OrgIDKey, orgID))
	}
	return updated, nil
}

// ResetPolicy discards the stored policy and recreates it from defaults
func (uc *SettingsUseCase) ResetPolicy(ctx context.Context, orgID types.OrgID) (*model.ScoringPolicy, error) {
	if err := uc.repo.Policy().Delete(ctx, orgID); err != nil && !errors.Is(err, model.ErrPolicyNotFound) {
		return nil, goerr.Wrap(err, "failed to delete scoring policy", goerr.V(OrgIDKey, orgID))
	}

	created, err := uc.repo.Policy().Put(ctx, uc.newPolicy(orgID))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to recreate scoring policy", goerr.V(OrgIDKey, orgID))
	}
	return created, nil
}

// ClassifyScore resolves the policy and returns the matching band, or nil
// when no configured band covers the score.
func (uc *SettingsUseCase) ClassifyScore(ctx context.Context, orgID types.OrgID, score int) (*model.RiskLevelBand, error) {
	policy, err := uc.GetPolicy(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return Classify(score, policy), nil
}

// CheckAppetite resolves the policy and evaluates the score against it
func (uc *SettingsUseCase) CheckAppetite(ctx context.Context, orgID types.OrgID, score int) (model.AppetiteCheck, error) {
	policy, err := uc.GetPolicy(ctx, orgID)
	if err != nil {
		return model.AppetiteCheck{}, err
	}
	return CheckAppetite(score, policy), nil
}
