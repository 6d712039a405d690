package usecase

import (
	"github.com/grclab/riskscope/pkg/domain/interfaces"
	"github.com/grclab/riskscope/pkg/domain/model"
)

// AnalysisUseCase hosts the composite analysis operations: what-if
// simulation, side-by-side comparison and ad hoc reporting.
type AnalysisUseCase struct {
	repo     interfaces.Repository
	settings *SettingsUseCase
}

func NewAnalysisUseCase(repo interfaces.Repository, settings *SettingsUseCase) *AnalysisUseCase {
	return &AnalysisUseCase{
		repo:     repo,
		settings: settings,
	}
}

type UseCases struct {
	repo           interfaces.Repository
	policyTemplate *model.ScoringPolicy

	Settings *SettingsUseCase
	Scoring  *ScoringUseCase
	Risk     *RiskUseCase
	Analysis *AnalysisUseCase
}

type Option func(*UseCases)

// WithPolicyDefaults overrides the builtin default policy used when an
// organization's policy is created lazily.
func WithPolicyDefaults(template *model.ScoringPolicy) Option {
	return func(uc *UseCases) {
		uc.policyTemplate = template
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Settings = NewSettingsUseCase(repo, uc.policyTemplate)
	uc.Scoring = NewScoringUseCase(uc.Settings)
	uc.Risk = NewRiskUseCase(repo, uc.Settings, uc.Scoring)
	uc.Analysis = NewAnalysisUseCase(repo, uc.Settings)

	return uc
}
