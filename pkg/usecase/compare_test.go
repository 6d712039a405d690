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

func TestCompareRisks(t *testing.T) {
	ctx := context.Background()

	t.Run("summary over three scored risks", func(t *testing.T) {
		uc := usecase.New(memory.New())
		high := seedRisk(t, uc, &model.Risk{
			Title:             "Ransomware",
			CurrentLikelihood: intPtr(4), CurrentImpact: intPtr(5),
		})
		mid := seedRisk(t, uc, &model.Risk{
			Title:             "Insider misuse",
			CurrentLikelihood: intPtr(4), CurrentImpact: intPtr(3),
		})
		low := seedRisk(t, uc, &model.Risk{
			Title:             "Printer outage",
			CurrentLikelihood: intPtr(2), CurrentImpact: intPtr(3),
		})

		result, err := uc.Analysis.CompareRisks(ctx, "", &model.ComparisonRequest{
			RiskIDs: []types.RiskID{high.ID, mid.ID, low.ID},
		})
		gt.NoError(t, err).Required()

		gt.Array(t, result.Risks).Length(3)
		gt.Value(t, result.Summary.TotalRisks).Equal(3)
		gt.Value(t, result.Summary.AverageCurrentScore).Equal(12.7) // (20+12+6)/3 rounded
		gt.Value(t, result.Summary.HighestRisk.ID).Equal(high.ID)
		gt.Value(t, result.Summary.HighestRisk.Score).Equal(20)
		gt.Value(t, result.Summary.LowestRisk.ID).Equal(low.ID)
		gt.Value(t, result.Summary.LowestRisk.Score).Equal(6)

		gt.Array(t, result.Matrix).Length(9).Required()
		scoreRow := result.Matrix[0]
		gt.Value(t, scoreRow.Metric).Equal("Current Risk Score")
		gt.Value(t, scoreRow.Variance).NotNil()
		gt.Value(t, *scoreRow.Variance).Equal(14) // 20 - 6
	})

	t.Run("matrix rows keep a fixed order", func(t *testing.T) {
		uc := usecase.New(memory.New())
		risk := seedRisk(t, uc, &model.Risk{
			Title:             "Single",
			CurrentLikelihood: intPtr(3), CurrentImpact: intPtr(3),
		})

		result, err := uc.Analysis.CompareRisks(ctx, "", &model.ComparisonRequest{
			RiskIDs: []types.RiskID{risk.ID},
		})
		gt.NoError(t, err).Required()

		wantMetrics := []string{
			"Current Risk Score",
			"Current Likelihood",
			"Current Impact",
			"Risk Level",
			"Control Effectiveness",
			"Risk Reduction",
			"Gap to Target",
			"Linked Controls",
			"Active Treatments",
		}
		gt.Array(t, result.Matrix).Length(len(wantMetrics)).Required()
		for i, want := range wantMetrics {
			gt.Value(t, result.Matrix[i].Metric).Equal(want)
		}

		// one risk means no variance
		gt.Value(t, result.Matrix[0].Variance).Nil()
	})

	t.Run("reduction and gap stay nil when operands are missing", func(t *testing.T) {
		uc := usecase.New(memory.New())
		risk := seedRisk(t, uc, &model.Risk{
			Title:             "Current only",
			CurrentLikelihood: intPtr(2), CurrentImpact: intPtr(2),
		})

		result, err := uc.Analysis.CompareRisks(ctx, "", &model.ComparisonRequest{
			RiskIDs: []types.RiskID{risk.ID},
		})
		gt.NoError(t, err).Required()

		row := result.Risks[0]
		gt.Value(t, row.RiskReduction).Nil()
		gt.Value(t, row.GapToTarget).Nil()
	})

	t.Run("reduction and gap computed with the full triad", func(t *testing.T) {
		uc := usecase.New(memory.New())
		risk := seedRisk(t, uc, &model.Risk{
			Title:              "Fully assessed",
			InherentLikelihood: intPtr(4), InherentImpact: intPtr(5),
			CurrentLikelihood: intPtr(3), CurrentImpact: intPtr(4),
			TargetLikelihood: intPtr(2), TargetImpact: intPtr(2),
		})

		result, err := uc.Analysis.CompareRisks(ctx, "", &model.ComparisonRequest{
			RiskIDs: []types.RiskID{risk.ID},
		})
		gt.NoError(t, err).Required()

		row := result.Risks[0]
		gt.Value(t, *row.RiskReduction).Equal(40) // (20-12)/20
		gt.Value(t, *row.GapToTarget).Equal(8)    // 12-4
	})

	t.Run("unknown IDs are skipped, duplicates duplicated", func(t *testing.T) {
		uc := usecase.New(memory.New())
		risk := seedRisk(t, uc, &model.Risk{
			Title:             "Known",
			CurrentLikelihood: intPtr(3), CurrentImpact: intPtr(2),
		})

		result, err := uc.Analysis.CompareRisks(ctx, "", &model.ComparisonRequest{
			RiskIDs: []types.RiskID{risk.ID, types.NewRiskID(), risk.ID},
		})
		gt.NoError(t, err).Required()
		gt.Array(t, result.Risks).Length(2)
		gt.Value(t, result.Risks[0].ID).Equal(risk.ID)
		gt.Value(t, result.Risks[1].ID).Equal(risk.ID)
	})

	t.Run("no resolvable risks fails", func(t *testing.T) {
		uc := usecase.New(memory.New())
		_, err := uc.Analysis.CompareRisks(ctx, "", &model.ComparisonRequest{
			RiskIDs: []types.RiskID{types.NewRiskID()},
		})
		gt.Error(t, err).Is(usecase.ErrNoRisksFound)
	})
}
