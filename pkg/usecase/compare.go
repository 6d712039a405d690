package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/grclab/riskscope/pkg/domain/model"
	"github.com/grclab/riskscope/pkg/domain/types"
	"github.com/grclab/riskscope/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

// CompareRisks builds a side-by-side comparison of the given risks. IDs that
// do not resolve are skipped; when none resolve the comparison fails.
// Duplicated IDs produce duplicate rows.
func (uc *AnalysisUseCase) CompareRisks(ctx context.Context, orgID types.OrgID, req *model.ComparisonRequest) (*model.Comparison, error) {
	risks, err := uc.repo.Risk().GetByIDs(ctx, req.RiskIDs)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve risks for comparison")
	}
	if len(risks) == 0 {
		return nil, goerr.Wrap(ErrNoRisksFound, "comparison requires at least one resolvable risk",
			goerr.V("requested", len(req.RiskIDs)))
	}

	ids := make([]types.RiskID, len(risks))
	for i, risk := range risks {
		ids[i] = risk.ID
	}
	// Counts only enrich the output; a lookup failure degrades to zeros.
	counts, err := uc.repo.Counts().CountsFor(ctx, ids)
	if err != nil {
		errutil.Handle(ctx, err, "failed to load linked-entity counts for comparison")
		counts = map[types.RiskID]model.LinkCounts{}
	}

	rows := make([]model.ComparisonRow, len(risks))
	for i, risk := range risks {
		rows[i] = buildComparisonRow(risk, counts[risk.ID])
	}

	return &model.Comparison{
		Risks:   rows,
		Summary: buildComparisonSummary(rows),
		Matrix:  buildComparisonMatrix(rows),
	}, nil
}

func buildComparisonRow(risk *model.Risk, counts model.LinkCounts) model.ComparisonRow {
	inherent := risk.InherentScoreValue()
	current := risk.CurrentScoreValue()
	target := risk.TargetScoreValue()

	// Reduction and gap stay nil when an operand is missing; an unknown
	// reduction must not read as 0%.
	var reduction *int
	if inherent != nil && current != nil && *inherent > 0 {
		pct := roundPct(float64(*inherent-*current) / float64(*inherent))
		reduction = &pct
	}
	var gap *int
	if current != nil && target != nil {
		diff := *current - *target
		gap = &diff
	}

	return model.ComparisonRow{
		ID:           risk.ID,
		Ref:          risk.Ref,
		Title:        risk.Title,
		CategoryName: risk.CategoryName,
		Status:       risk.Status,
		OwnerName:    risk.OwnerName,

		InherentLikelihood: risk.InherentLikelihood,
		InherentImpact:     risk.InherentImpact,
		InherentScore:      inherent,
		InherentLevel:      risk.InherentLevel,

		CurrentLikelihood: risk.CurrentLikelihood,
		CurrentImpact:     risk.CurrentImpact,
		CurrentScore:      current,
		CurrentLevel:      risk.CurrentLevel,

		TargetLikelihood: risk.TargetLikelihood,
		TargetImpact:     risk.TargetImpact,
		TargetScore:      target,
		TargetLevel:      risk.TargetLevel,

		ControlEffectiveness: risk.ControlEffectiveness,

		LinkedControls:   counts.Controls,
		LinkedAssets:     counts.Assets,
		ActiveTreatments: counts.Treatments,
		KRICount:         counts.KRIs,

		RiskReduction: reduction,
		GapToTarget:   gap,
	}
}

func buildComparisonSummary(rows []model.ComparisonRow) model.ComparisonSummary {
	summary := model.ComparisonSummary{
		TotalRisks: len(rows),
	}

	var scoreSum int
	scored := make([]model.ComparisonRow, 0, len(rows))
	for _, row := range rows {
		if row.CurrentScore != nil {
			scored = append(scored, row)
			scoreSum += *row.CurrentScore
		}
		summary.TotalLinkedControls += row.LinkedControls
		summary.TotalActiveTreatments += row.ActiveTreatments
	}

	if len(scored) > 0 {
		avg := float64(scoreSum) / float64(len(scored))
		summary.AverageCurrentScore = math.Round(avg*10) / 10

		// Stable descending sort: ties keep input order, so the first
		// occurrence wins for highest and the last for lowest.
		sort.SliceStable(scored, func(i, j int) bool {
			return *scored[i].CurrentScore > *scored[j].CurrentScore
		})
		highest, lowest := scored[0], scored[len(scored)-1]
		summary.HighestRisk = model.RiskRef{ID: highest.ID, Title: highest.Title, Score: *highest.CurrentScore}
		summary.LowestRisk = model.RiskRef{ID: lowest.ID, Title: lowest.Title, Score: *lowest.CurrentScore}
	}

	var effSum, effCount int
	for _, row := range rows {
		if row.ControlEffectiveness != nil {
			effSum += *row.ControlEffectiveness
			effCount++
		}
	}
	if effCount > 0 {
		summary.AverageControlEffectiveness = int(math.Round(float64(effSum) / float64(effCount)))
	}

	return summary
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func levelOrUnknown(level string) string {
	if level == "" {
		return types.LevelUnknown.String()
	}
	return level
}

// buildComparisonMatrix produces the fixed, ordered metric rows. Only the
// current score row carries a variance, and only when at least two risks
// have a defined score.
func buildComparisonMatrix(rows []model.ComparisonRow) []model.MetricRow {
	metric := func(name string, value func(model.ComparisonRow) any) model.MetricRow {
		row := model.MetricRow{Metric: name, Values: make([]model.MetricValue, len(rows))}
		for i, r := range rows {
			row.Values[i] = model.MetricValue{RiskRef: r.Ref, Value: value(r)}
		}
		return row
	}

	scoreRow := metric("Current Risk Score", func(r model.ComparisonRow) any { return intOrZero(r.CurrentScore) })
	var defined []int
	for _, r := range rows {
		if r.CurrentScore != nil {
			defined = append(defined, *r.CurrentScore)
		}
	}
	if len(defined) > 1 {
		minScore, maxScore := defined[0], defined[0]
		for _, s := range defined[1:] {
			minScore = min(minScore, s)
			maxScore = max(maxScore, s)
		}
		variance := maxScore - minScore
		scoreRow.Variance = &variance
	}

	return []model.MetricRow{
		scoreRow,
		metric("Current Likelihood", func(r model.ComparisonRow) any { return intOrZero(r.CurrentLikelihood) }),
		metric("Current Impact", func(r model.ComparisonRow) any { return intOrZero(r.CurrentImpact) }),
		metric("Risk Level", func(r model.ComparisonRow) any { return levelOrUnknown(r.CurrentLevel) }),
		metric("Control Effectiveness", func(r model.ComparisonRow) any {
			return fmt.Sprintf("%d%%", intOrZero(r.ControlEffectiveness))
		}),
		metric("Risk Reduction", func(r model.ComparisonRow) any {
			return fmt.Sprintf("%d%%", intOrZero(r.RiskReduction))
		}),
		metric("Gap to Target", func(r model.ComparisonRow) any { return intOrZero(r.GapToTarget) }),
		metric("Linked Controls", func(r model.ComparisonRow) any { return r.LinkedControls }),
		metric("Active Treatments", func(r model.ComparisonRow) any { return r.ActiveTreatments }),
	}
}
