package memory

import (
	"context"
	"sync"

	"github.com/grclab/riskscope/pkg/domain/model"
	"github.com/grclab/riskscope/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type policyRepository struct {
	mu       sync.RWMutex
	policies map[types.OrgID]*model.ScoringPolicy
}

func newPolicyRepository() *policyRepository {
	return &policyRepository{
		policies: make(map[types.OrgID]*model.ScoringPolicy),
	}
}

func (r *policyRepository) Get(ctx context.Context, orgID types.OrgID) (*model.ScoringPolicy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	policy, exists := r.policies[orgID]
	if !exists {
		return nil, goerr.Wrap(model.ErrPolicyNotFound, "scoring policy not found", goerr.V("org_id", orgID))
	}

	return policy.Clone(), nil
}

func (r *policyRepository) Put(ctx context.Context, policy *model.ScoringPolicy) (*model.ScoringPolicy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := policy.Clone()
	r.policies[policy.OrgID] = stored
	return stored.Clone(), nil
}

func (r *policyRepository) Delete(ctx context.Context, orgID types.OrgID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.policies[orgID]; !exists {
		return goerr.Wrap(model.ErrPolicyNotFound, "scoring policy not found", goerr.V("org_id", orgID))
	}

	delete(r.policies, orgID)
	return nil
}
