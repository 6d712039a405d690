package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/grclab/riskscope/pkg/domain/interfaces"
	"github.com/grclab/riskscope/pkg/domain/model"
	"github.com/grclab/riskscope/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type riskRepository struct {
	mu      sync.RWMutex
	risks   map[types.RiskID]*model.Risk
	order   []types.RiskID
	nextRef int
}

func newRiskRepository() *riskRepository {
	return &riskRepository{
		risks:   make(map[types.RiskID]*model.Risk),
		nextRef: 1,
	}
}

func cloneRisk(r *model.Risk) *model.Risk {
	clone := *r
	return &clone
}

func (r *riskRepository) Create(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := cloneRisk(risk)
	if created.ID == "" {
		created.ID = types.NewRiskID()
	}
	if created.Ref == "" {
		created.Ref = fmt.Sprintf("RISK-%04d", r.nextRef)
		r.nextRef++
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.risks[created.ID] = created
	r.order = append(r.order, created.ID)
	return cloneRisk(created), nil
}

func (r *riskRepository) Get(ctx context.Context, id types.RiskID) (*model.Risk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	risk, exists := r.risks[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrRiskNotFound, "risk not found", goerr.V("id", id))
	}

	return cloneRisk(risk), nil
}

func (r *riskRepository) GetByIDs(ctx context.Context, ids []types.RiskID) ([]*model.Risk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	risks := make([]*model.Risk, 0, len(ids))
	for _, id := range ids {
		if risk, exists := r.risks[id]; exists {
			risks = append(risks, cloneRisk(risk))
		}
	}
	return risks, nil
}

func matches(filter []string, value string) bool {
	if len(filter) == 0 {
		return true
	}
	return slices.Contains(filter, value)
}

func (r *riskRepository) List(ctx context.Context, opts ...interfaces.ListRiskOption) ([]*model.Risk, error) {
	cfg := interfaces.BuildListRiskConfig(opts...)

	r.mu.RLock()
	defer r.mu.RUnlock()

	risks := make([]*model.Risk, 0, len(r.order))
	for _, id := range r.order {
		risk := r.risks[id]
		if !matches(cfg.Levels(), risk.CurrentLevel) {
			continue
		}
		if !matches(cfg.Categories(), risk.Category) {
			continue
		}
		if !matches(cfg.Statuses(), risk.Status.String()) {
			continue
		}
		if !matches(cfg.OwnerIDs(), risk.OwnerID) {
			continue
		}
		risks = append(risks, cloneRisk(risk))
	}

	return risks, nil
}

func (r *riskRepository) Update(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.risks[risk.ID]
	if !exists {
		return nil, goerr.Wrap(model.ErrRiskNotFound, "risk not found", goerr.V("id", risk.ID))
	}

	updated := cloneRisk(risk)
	updated.Ref = existing.Ref
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.risks[updated.ID] = updated
	return cloneRisk(updated), nil
}

func (r *riskRepository) Delete(ctx context.Context, id types.RiskID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.risks[id]; !exists {
		return goerr.Wrap(model.ErrRiskNotFound, "risk not found", goerr.V("id", id))
	}

	delete(r.risks, id)
	r.order = slices.DeleteFunc(r.order, func(x types.RiskID) bool { return x == id })
	return nil
}
