package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/grclab/riskscope/pkg/domain/model"
	"github.com/grclab/riskscope/pkg/domain/types"
	"github.com/grclab/riskscope/pkg/repository/memory"
	"github.com/grclab/riskscope/pkg/usecase"
)

func intPtr(v int) *int { return &v }

func seedRisk(t *testing.T, uc *usecase.UseCases, risk *model.Risk) *model.Risk {
	t.Helper()
	created, err := uc.Risk.CreateRisk(context.Background(), "", risk)
	gt.NoError(t, err).Required()
	return created
}

func TestSimulateWhatIf(t *testing.T) {
	ctx := context.Background()

	t.Run("effectiveness override reduces the score", func(t *testing.T) {
		uc := usecase.New(memory.New())
		risk := seedRisk(t, uc, &model.Risk{
			Title:             "Data center outage",
			CurrentLikelihood: intPtr(4),
			CurrentImpact:     intPtr(5),
		})

		result, err := uc.Analysis.SimulateWhatIf(ctx, "", &model.SimulationRequest{
			RiskID: risk.ID,
			Scenario: model.Scenario{
				SimulatedControlEffectiveness: intPtr(80),
			},
		})
		gt.NoError(t, err).Required()

		gt.Value(t, result.Original.Score).Equal(20)
		gt.Value(t, result.Original.Level).Equal("Critical")
		gt.Value(t, result.Simulated.Score).Equal(12) // 20 * (1 - 0.8*0.5)
		gt.Value(t, result.Simulated.Level).Equal("High")
		gt.Value(t, result.Simulated.ControlEffectiveness).Equal(80)

		gt.Value(t, result.ImpactAnalysis.ScoreChange).Equal(-8)
		gt.Value(t, result.ImpactAnalysis.ScoreChangePercentage).Equal(-40)
		gt.Value(t, result.ImpactAnalysis.LevelChanged).Equal(true)
		gt.Value(t, result.ImpactAnalysis.OldLevel).Equal("Critical")
		gt.Value(t, result.ImpactAnalysis.NewLevel).Equal("High")
		gt.Value(t, result.ImpactAnalysis.ExceedsAppetite).Equal(true)
		gt.Value(t, result.ImpactAnalysis.AppetiteThreshold).Equal(model.DefaultMaxAcceptableScore)

		gt.String(t, result.ImpactAnalysis.Recommendation).Contains("reduce risk by 40%")
		gt.String(t, result.ImpactAnalysis.Recommendation).Contains("still exceeds organizational risk appetite")
		gt.String(t, result.ImpactAnalysis.Recommendation).Contains("Focus on improving control effectiveness")

		gt.Value(t, result.LevelDetails).NotNil()
		gt.Value(t, result.LevelDetails.Color).Equal("#f97316")
		gt.Value(t, result.LevelDetails.RequiresEscalation).Equal(true)
	})

	t.Run("simulated score never drops below 1", func(t *testing.T) {
		uc := usecase.New(memory.New())
		risk := seedRisk(t, uc, &model.Risk{
			Title:             "Residual noise",
			CurrentLikelihood: intPtr(1),
			CurrentImpact:     intPtr(1),
		})

		result, err := uc.Analysis.SimulateWhatIf(ctx, "", &model.SimulationRequest{
			RiskID: risk.ID,
			Scenario: model.Scenario{
				SimulatedControlEffectiveness: intPtr(100),
			},
		})
		gt.NoError(t, err).Required()
		gt.Value(t, result.Simulated.Score).Equal(1)
	})

	t.Run("stored zero inputs fall back to the default baseline", func(t *testing.T) {
		uc := usecase.New(memory.New())
		risk := seedRisk(t, uc, &model.Risk{
			Title:             "Half-assessed exposure",
			CurrentLikelihood: intPtr(0),
			CurrentImpact:     intPtr(3),
		})

		result, err := uc.Analysis.SimulateWhatIf(ctx, "", &model.SimulationRequest{
			RiskID: risk.ID,
		})
		gt.NoError(t, err).Required()

		// zero likelihood reads as unassessed and falls back to the midpoint
		gt.Value(t, result.Original.Likelihood).Equal(3)
		gt.Value(t, result.Original.Score).Equal(9)
		gt.Value(t, result.Simulated.Score).Equal(9)
		gt.Value(t, result.ImpactAnalysis.ScoreChange).Equal(0)
		gt.Value(t, result.ImpactAnalysis.ScoreChangePercentage).Equal(0)
		gt.Value(t, result.ImpactAnalysis.Recommendation).
			Equal("No significant changes detected in this scenario.")
	})

	t.Run("additional controls stack as effectiveness points", func(t *testing.T) {
		uc := usecase.New(memory.New())
		risk := seedRisk(t, uc, &model.Risk{
			Title:             "Unpatched fleet",
			CurrentLikelihood: intPtr(4),
			CurrentImpact:     intPtr(4),
		})

		byControls, err := uc.Analysis.SimulateWhatIf(ctx, "", &model.SimulationRequest{
			RiskID:   risk.ID,
			Scenario: model.Scenario{AdditionalControls: 2},
		})
		gt.NoError(t, err).Required()

		byOverride, err := uc.Analysis.SimulateWhatIf(ctx, "", &model.SimulationRequest{
			RiskID:   risk.ID,
			Scenario: model.Scenario{SimulatedControlEffectiveness: intPtr(20)},
		})
		gt.NoError(t, err).Required()

		gt.Value(t, byControls.Simulated.ControlEffectiveness).Equal(20)
		gt.Value(t, byControls.Simulated.Score).Equal(byOverride.Simulated.Score)
		gt.String(t, byControls.ImpactAnalysis.Recommendation).Contains("Adding 2 control(s)")
	})

	t.Run("stacked effectiveness caps at 100", func(t *testing.T) {
		uc := usecase.New(memory.New())
		risk := seedRisk(t, uc, &model.Risk{
			Title:             "Vendor lock",
			CurrentLikelihood: intPtr(3),
			CurrentImpact:     intPtr(3),
		})

		result, err := uc.Analysis.SimulateWhatIf(ctx, "", &model.SimulationRequest{
			RiskID: risk.ID,
			Scenario: model.Scenario{
				SimulatedControlEffectiveness: intPtr(80),
				AdditionalControls:            5,
			},
		})
		gt.NoError(t, err).Required()
		gt.Value(t, result.Simulated.ControlEffectiveness).Equal(100)
		gt.Value(t, result.Simulated.Score).Equal(5) // 9 * 0.5, rounded up
	})

	t.Run("no change yields the neutral recommendation", func(t *testing.T) {
		uc := usecase.New(memory.New())
		risk := seedRisk(t, uc, &model.Risk{
			Title:             "Steady state",
			CurrentLikelihood: intPtr(2),
			CurrentImpact:     intPtr(3),
		})

		result, err := uc.Analysis.SimulateWhatIf(ctx, "", &model.SimulationRequest{
			RiskID: risk.ID,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, result.ImpactAnalysis.ScoreChange).Equal(0)
		gt.Value(t, result.ImpactAnalysis.Recommendation).
			Equal("No significant changes detected in this scenario.")
	})

	t.Run("scenario bringing risk within appetite says so", func(t *testing.T) {
		uc := usecase.New(memory.New())
		risk := seedRisk(t, uc, &model.Risk{
			Title:             "Cloud region failure",
			CurrentLikelihood: intPtr(4),
			CurrentImpact:     intPtr(5),
		})

		result, err := uc.Analysis.SimulateWhatIf(ctx, "", &model.SimulationRequest{
			RiskID: risk.ID,
			Scenario: model.Scenario{
				SimulatedLikelihood: intPtr(2),
				SimulatedImpact:     intPtr(2),
			},
		})
		gt.NoError(t, err).Required()
		gt.Value(t, result.Simulated.Score).Equal(4)
		gt.Value(t, result.ImpactAnalysis.ExceedsAppetite).Equal(false)
		gt.String(t, result.ImpactAnalysis.Recommendation).
			Contains("Risk level would improve from Critical to Low.")
		gt.String(t, result.ImpactAnalysis.Recommendation).
			Contains("bring the risk within acceptable appetite levels")
	})

	t.Run("worsening scenario warns", func(t *testing.T) {
		uc := usecase.New(memory.New())
		risk := seedRisk(t, uc, &model.Risk{
			Title:             "Creeping scope",
			CurrentLikelihood: intPtr(2),
			CurrentImpact:     intPtr(2),
		})

		result, err := uc.Analysis.SimulateWhatIf(ctx, "", &model.SimulationRequest{
			RiskID: risk.ID,
			Scenario: model.Scenario{
				SimulatedLikelihood: intPtr(5),
				SimulatedImpact:     intPtr(5),
			},
		})
		gt.NoError(t, err).Required()
		gt.String(t, result.ImpactAnalysis.Recommendation).Contains("Warning: This scenario would increase risk by")
		gt.String(t, result.ImpactAnalysis.Recommendation).Contains("Risk level would worsen from Low to Critical.")
	})

	t.Run("unknown risk fails", func(t *testing.T) {
		uc := usecase.New(memory.New())
		_, err := uc.Analysis.SimulateWhatIf(ctx, "", &model.SimulationRequest{
			RiskID: types.NewRiskID(),
		})
		gt.Error(t, err).Is(model.ErrRiskNotFound)
	})
}

func TestBatchWhatIf(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())
	risk := seedRisk(t, uc, &model.Risk{
		Title:             "Phishing campaign",
		CurrentLikelihood: intPtr(4),
		CurrentImpact:     intPtr(4),
	})

	t.Run("results preserve scenario order", func(t *testing.T) {
		results, err := uc.Analysis.BatchWhatIf(ctx, "", &model.BatchSimulationRequest{
			RiskID: risk.ID,
			Scenarios: []model.Scenario{
				{SimulatedControlEffectiveness: intPtr(20)},
				{SimulatedControlEffectiveness: intPtr(60)},
				{SimulatedControlEffectiveness: intPtr(100)},
			},
		})
		gt.NoError(t, err).Required()
		gt.Array(t, results).Length(3)

		gt.Value(t, results[0].Simulated.Score).Equal(14) // 16 * 0.9
		gt.Value(t, results[1].Simulated.Score).Equal(11) // 16 * 0.7, rounded
		gt.Value(t, results[2].Simulated.Score).Equal(8)  // 16 * 0.5
	})

	t.Run("empty scenario list yields no results", func(t *testing.T) {
		results, err := uc.Analysis.BatchWhatIf(ctx, "", &model.BatchSimulationRequest{
			RiskID: risk.ID,
		})
		gt.NoError(t, err).Required()
		gt.Array(t, results).Length(0)
	})
}
