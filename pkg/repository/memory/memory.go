package memory

import (
	"github.com/grclab/riskscope/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	risk   *riskRepository
	policy *policyRepository
	counts *countsRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		risk:   newRiskRepository(),
		policy: newPolicyRepository(),
		counts: newCountsRepository(),
	}
}

func (m *Memory) Risk() interfaces.RiskRepository {
	return m.risk
}

func (m *Memory) Policy() interfaces.PolicyRepository {
	return m.policy
}

func (m *Memory) Counts() interfaces.CountsRepository {
	return m.counts
}

func (m *Memory) Close() error {
	return nil
}
