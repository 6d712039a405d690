package interfaces

import (
	"context"

	"github.com/grclab/riskscope/pkg/domain/model"
	"github.com/grclab/riskscope/pkg/domain/types"
)

type PolicyRepository interface {
	// Get retrieves the organization's scoring policy. Returns
	// model.ErrPolicyNotFound when none has been stored yet.
	Get(ctx context.Context, orgID types.OrgID) (*model.ScoringPolicy, error)

	// Put stores the policy, replacing any existing one. There is no
	// compare-and-swap: concurrent writers follow last-write-wins.
	Put(ctx context.Context, policy *model.ScoringPolicy) (*model.ScoringPolicy, error)

	// Delete removes the organization's stored policy
	Delete(ctx context.Context, orgID types.OrgID) error
}
