package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/grclab/riskscope/pkg/domain/model"
	"github.com/grclab/riskscope/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type policyRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newPolicyRepository(client *firestore.Client) *policyRepository {
	return &policyRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *policyRepository) policiesCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_scoring_policies"
	}
	return "scoring_policies"
}

// policyDocID maps an org ID to a document ID. Firestore rejects empty
// document IDs, so the default org gets a fixed one.
func policyDocID(orgID types.OrgID) string {
	if orgID == "" {
		return "default"
	}
	return string(orgID)
}

func (r *policyRepository) Get(ctx context.Context, orgID types.OrgID) (*model.ScoringPolicy, error) {
	docSnap, err := r.client.Collection(r.policiesCollection()).Doc(policyDocID(orgID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrPolicyNotFound, "scoring policy not found", goerr.V("org_id", orgID))
		}
		return nil, goerr.Wrap(err, "failed to get scoring policy", goerr.V("org_id", orgID))
	}

	var policy model.ScoringPolicy
	if err := docSnap.DataTo(&policy); err != nil {
		return nil, goerr.Wrap(err, "failed to decode scoring policy", goerr.V("org_id", orgID))
	}

	return &policy, nil
}

func (r *policyRepository) Put(ctx context.Context, policy *model.ScoringPolicy) (*model.ScoringPolicy, error) {
	docRef := r.client.Collection(r.policiesCollection()).Doc(policyDocID(policy.OrgID))

	stored := policy.Clone()
	if _, err := docRef.Set(ctx, stored); err != nil {
		return nil, goerr.Wrap(err, "failed to put scoring policy", goerr.V("org_id", policy.OrgID))
	}

	return stored, nil
}

func (r *policyRepository) Delete(ctx context.Context, orgID types.OrgID) error {
	docRef := r.client.Collection(r.policiesCollection()).Doc(policyDocID(orgID))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(model.ErrPolicyNotFound, "scoring policy not found", goerr.V("org_id", orgID))
		}
		return goerr.Wrap(err, "failed to check scoring policy existence", goerr.V("org_id", orgID))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete scoring policy", goerr.V("org_id", orgID))
	}

	return nil
}
