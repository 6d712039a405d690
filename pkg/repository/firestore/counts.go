package firestore

import (
	"context"
	"sync"

	"cloud.google.com/go/firestore"
	"github.com/grclab/riskscope/pkg/domain/model"
	"github.com/grclab/riskscope/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type countsRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newCountsRepository(client *firestore.Client) *countsRepository {
	return &countsRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *countsRepository) countsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_risk_link_counts"
	}
	return "risk_link_counts"
}

// CountsFor fetches count documents concurrently. A risk with no counts
// document is reported with zero counts rather than an error.
func (r *countsRepository) CountsFor(ctx context.Context, ids []types.RiskID) (map[types.RiskID]model.LinkCounts, error) {
	result := make(map[types.RiskID]model.LinkCounts, len(ids))
	var mu sync.Mutex

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(8)
	for _, id := range ids {
		eg.Go(func() error {
			docSnap, err := r.client.Collection(r.countsCollection()).Doc(string(id)).Get(ctx)
			if err != nil {
				if status.Code(err) == codes.NotFound {
					mu.Lock()
					result[id] = model.LinkCounts{}
					mu.Unlock()
					return nil
				}
				return goerr.Wrap(err, "failed to get link counts", goerr.V("id", id))
			}

			var counts model.LinkCounts
			if err := docSnap.DataTo(&counts); err != nil {
				return goerr.Wrap(err, "failed to decode link counts", goerr.V("id", id))
			}

			mu.Lock()
			result[id] = counts
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *countsRepository) Set(ctx context.Context, id types.RiskID, counts model.LinkCounts) error {
	docRef := r.client.Collection(r.countsCollection()).Doc(string(id))
	if _, err := docRef.Set(ctx, &counts); err != nil {
		return goerr.Wrap(err, "failed to set link counts", goerr.V("id", id))
	}
	return nil
}
