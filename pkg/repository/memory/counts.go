package memory

import (
	"context"
	"sync"

	"github.com/grclab/riskscope/pkg/domain/model"
	"github.com/grclab/riskscope/pkg/domain/types"
)

type countsRepository struct {
	mu     sync.RWMutex
	counts map[types.RiskID]model.LinkCounts
}

func newCountsRepository() *countsRepository {
	return &countsRepository{
		counts: make(map[types.RiskID]model.LinkCounts),
	}
}

func (r *countsRepository) CountsFor(ctx context.Context, ids []types.RiskID) (map[types.RiskID]model.LinkCounts, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[types.RiskID]model.LinkCounts, len(ids))
	for _, id := range ids {
		result[id] = r.counts[id]
	}
	return result, nil
}

func (r *countsRepository) Set(ctx context.Context, id types.RiskID, counts model.LinkCounts) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.counts[id] = counts
	return nil
}
