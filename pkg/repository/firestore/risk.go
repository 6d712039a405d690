package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/grclab/riskscope/pkg/domain/interfaces"
	"github.com/grclab/riskscope/pkg/domain/model"
	"github.com/grclab/riskscope/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type riskRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newRiskRepository(client *firestore.Client) *riskRepository {
	return &riskRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *riskRepository) risksCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_risks"
	}
	return "risks"
}

func (r *riskRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *riskRepository) riskCounterDoc() string {
	return "risk_ref_counter"
}

// nextRef allocates the next RISK-NNNN sequence number through a counter
// document transaction so refs stay unique across concurrent creators.
func (r *riskRepository) nextRef(ctx context.Context) (int64, error) {
	counterRef := r.client.Collection(r.counterCollection()).Doc(r.riskCounterDoc())

	var next int64
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(counterRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				next = 1
				return tx.Set(counterRef, map[string]interface{}{
					"value": next,
				})
			}
			return goerr.Wrap(err, "failed to get counter")
		}

		currentValue, err := doc.DataAt("value")
		if err != nil {
			return goerr.Wrap(err, "failed to get counter value")
		}

		val, ok := currentValue.(int64)
		if !ok {
			return goerr.New("counter value is not of type int64", goerr.V("value", currentValue))
		}
		next = val + 1
		return tx.Update(counterRef, []firestore.Update{
			{Path: "value", Value: next},
		})
	})

	if err != nil {
		return 0, goerr.Wrap(err, "failed to allocate risk ref")
	}

	return next, nil
}

func (r *riskRepository) Create(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	created := *risk
	if created.ID == "" {
		created.ID = types.NewRiskID()
	}
	if created.Ref == "" {
		seq, err := r.nextRef(ctx)
		if err != nil {
			return nil, err
		}
		created.Ref = fmt.Sprintf("RISK-%04d", seq)
	}

	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	_, err := r.client.Collection(r.risksCollection()).Doc(string(created.ID)).Set(ctx, &created)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create risk", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *riskRepository) Get(ctx context.Context, id types.RiskID) (*model.Risk, error) {
	docSnap, err := r.client.Collection(r.risksCollection()).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrRiskNotFound, "risk not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get risk", goerr.V("id", id))
	}

	var risk model.Risk
	if err := docSnap.DataTo(&risk); err != nil {
		return nil, goerr.Wrap(err, "failed to decode risk", goerr.V("id", id))
	}

	return &risk, nil
}

func (r *riskRepository) GetByIDs(ctx context.Context, ids []types.RiskID) ([]*model.Risk, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	refs := make([]*firestore.DocumentRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, r.client.Collection(r.risksCollection()).Doc(string(id)))
	}

	// GetAll returns snapshots in the same order as the refs, with
	// non-existent documents flagged rather than erroring. That matches
	// the contract: input order preserved, missing IDs skipped.
	snaps, err := r.client.GetAll(ctx, refs)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get risks", goerr.V("ids", ids))
	}

	risks := make([]*model.Risk, 0, len(snaps))
	for _, snap := range snaps {
		if !snap.Exists() {
			continue
		}
		var risk model.Risk
		if err := snap.DataTo(&risk); err != nil {
			return nil, goerr.Wrap(err, "failed to decode risk", goerr.V("doc_id", snap.Ref.ID))
		}
		risks = append(risks, &risk)
	}

	return risks, nil
}

func (r *riskRepository) List(ctx context.Context, opts ...interfaces.ListRiskOption) ([]*model.Risk, error) {
	cfg := interfaces.BuildListRiskConfig(opts...)

	query := r.client.Collection(r.risksCollection()).OrderBy("created_at", firestore.Asc)
	iter := query.Documents(ctx)
	defer iter.Stop()

	var risks []*model.Risk
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate risks")
		}

		var risk model.Risk
		if err := docSnap.DataTo(&risk); err != nil {
			return nil, goerr.Wrap(err, "failed to decode risk", goerr.V("doc_id", docSnap.Ref.ID))
		}

		// Filters combine with AND. They are applied after the read
		// instead of with "in" clauses, which are capped per query and
		// cannot be combined across fields.
		if !matchesFilter(cfg.Levels(), risk.CurrentLevel) {
			continue
		}
		if !matchesFilter(cfg.Categories(), risk.Category) {
			continue
		}
		if !matchesFilter(cfg.Statuses(), risk.Status.String()) {
			continue
		}
		if !matchesFilter(cfg.OwnerIDs(), risk.OwnerID) {
			continue
		}

		risks = append(risks, &risk)
	}

	return risks, nil
}

func matchesFilter(filter []string, value string) bool {
	if len(filter) == 0 {
		return true
	}
	for _, f := range filter {
		if f == value {
			return true
		}
	}
	return false
}

func (r *riskRepository) Update(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	docRef := r.client.Collection(r.risksCollection()).Doc(string(risk.ID))

	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrRiskNotFound, "risk not found", goerr.V("id", risk.ID))
		}
		return nil, goerr.Wrap(err, "failed to check risk existence", goerr.V("id", risk.ID))
	}

	var existing model.Risk
	if err := docSnap.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to decode risk", goerr.V("id", risk.ID))
	}

	updated := *risk
	updated.Ref = existing.Ref
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, &updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update risk", goerr.V("id", risk.ID))
	}

	return &updated, nil
}

func (r *riskRepository) Delete(ctx context.Context, id types.RiskID) error {
	docRef := r.client.Collection(r.risksCollection()).Doc(string(id))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(model.ErrRiskNotFound, "risk not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check risk existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete risk", goerr.V("id", id))
	}

	return nil
}
