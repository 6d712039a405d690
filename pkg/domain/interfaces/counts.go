package interfaces

import (
	"context"

	"github.com/grclab/riskscope/pkg/domain/model"
	"github.com/grclab/riskscope/pkg/domain/types"
)

// CountsRepository supplies linked-entity counts (controls, assets,
// treatments, KRIs) for risks. Only the comparison engine and the report
// builder consume it, purely to enrich output.
type CountsRepository interface {
	// CountsFor returns counts per risk ID. IDs with no links are present
	// in the result with zero counts.
	CountsFor(ctx context.Context, ids []types.RiskID) (map[types.RiskID]model.LinkCounts, error)

	// Set replaces the stored counts for one risk. The surrounding
	// application maintains these from its link tables.
	Set(ctx context.Context, id types.RiskID, counts model.LinkCounts) error
}
