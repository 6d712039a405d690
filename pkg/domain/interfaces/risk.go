package interfaces

import (
	"context"

	"github.com/grclab/riskscope/pkg/domain/model"
	"github.com/grclab/riskscope/pkg/domain/types"
)

type RiskRepository interface {
	// Create creates a new risk with a generated ID and RISK-NNNN reference
	Create(ctx context.Context, risk *model.Risk) (*model.Risk, error)

	// Get retrieves a risk by ID. Returns model.ErrRiskNotFound when absent.
	Get(ctx context.Context, id types.RiskID) (*model.Risk, error)

	// GetByIDs retrieves risks in input order. Missing IDs are skipped,
	// duplicated IDs yield duplicate entries.
	GetByIDs(ctx context.Context, ids []types.RiskID) ([]*model.Risk, error)

	// List retrieves risks matching the given filters
	List(ctx context.Context, opts ...ListRiskOption) ([]*model.Risk, error)

	// Update replaces an existing risk
	Update(ctx context.Context, risk *model.Risk) (*model.Risk, error)

	// Delete deletes a risk by ID
	Delete(ctx context.Context, id types.RiskID) error
}
