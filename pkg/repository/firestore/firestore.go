package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/grclab/riskscope/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

type Firestore struct {
	client *firestore.Client
	risk   *riskRepository
	policy *policyRepository
	counts *countsRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces all collections, which keeps multiple
// deployments apart within one database.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.risk.collectionPrefix = prefix
		f.policy.collectionPrefix = prefix
		f.counts.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client: client,
		risk:   newRiskRepository(client),
		policy: newPolicyRepository(client),
		counts: newCountsRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Risk() interfaces.RiskRepository {
	return f.risk
}

func (f *Firestore) Policy() interfaces.PolicyRepository {
	return f.policy
}

func (f *Firestore) Counts() interfaces.CountsRepository {
	return f.counts
}

func (f *Firestore) Close() error {
	return f.client.Close()
}
