package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/grclab/riskscope/pkg/domain/interfaces"
	"github.com/grclab/riskscope/pkg/domain/model"
	"github.com/grclab/riskscope/pkg/domain/types"
	"github.com/grclab/riskscope/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

const reportDefaultSortField = "current_risk_score"

// GenerateReport builds an ad hoc analytical report over the risk register:
// filter (AND semantics), sort, project, and optionally group and summarize.
func (uc *AnalysisUseCase) GenerateReport(ctx context.Context, orgID types.OrgID, cfg *model.ReportConfig) (*model.Report, error) {
	risks, err := uc.repo.Risk().List(ctx,
		interfaces.WithLevels(cfg.RiskLevels),
		interfaces.WithCategories(cfg.Categories),
		interfaces.WithStatuses(cfg.Statuses),
		interfaces.WithOwnerIDs(cfg.OwnerIDs),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list risks for report")
	}

	sortRisks(risks, cfg.SortBy, cfg.SortDirection)

	// The appetite filter is a post-step on purpose: it reflects the policy
	// threshold at report-generation time rather than a stored flag.
	if cfg.ExceedsAppetiteOnly {
		policy, err := uc.settings.GetPolicy(ctx, orgID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to resolve policy for appetite filter")
		}
		filtered := risks[:0]
		for _, risk := range risks {
			if score := risk.CurrentScoreValue(); score != nil && *score > policy.MaxAcceptableScore {
				filtered = append(filtered, risk)
			}
		}
		risks = filtered
	}

	ids := make([]types.RiskID, len(risks))
	for i, risk := range risks {
		ids[i] = risk.ID
	}
	// Counts only enrich the output; a lookup failure degrades to zeros.
	counts, err := uc.repo.Counts().CountsFor(ctx, ids)
	if err != nil {
		errutil.Handle(ctx, err, "failed to load linked-entity counts for report")
		counts = map[types.RiskID]model.LinkCounts{}
	}

	rows := make([]model.ReportRow, len(risks))
	for i, risk := range risks {
		rows[i] = projectReportRow(risk, counts[risk.ID], cfg.Fields)
	}

	report := &model.Report{
		ReportName:     cfg.Name,
		GeneratedAt:    time.Now().UTC(),
		FiltersApplied: cfg.Filters(),
		Data:           rows,
	}

	if cfg.IncludeSummary {
		report.Summary = buildReportSummary(risks)
	}

	// Grouped output supersedes the flat data array
	if cfg.GroupBy != "" {
		report.GroupedData = groupReportRows(rows, cfg.GroupBy)
		report.Data = []model.ReportRow{}
	}

	return report, nil
}

// ListReportFields returns the static catalog of reportable fields
func (uc *AnalysisUseCase) ListReportFields() []model.ReportField {
	return model.ReportFieldCatalog()
}

// fullReportRow projects a risk into the complete reportable-field superset.
// Optional values that are absent are omitted entirely so that a missing
// score never reads as 0.
func fullReportRow(risk *model.Risk, counts model.LinkCounts) model.ReportRow {
	row := model.ReportRow{
		"id":      risk.ID,
		"risk_id": risk.Ref,
		"title":   risk.Title,
		"status":  risk.Status.String(),

		"linked_controls_count":   counts.Controls,
		"linked_assets_count":     counts.Assets,
		"active_treatments_count": counts.Treatments,
		"kri_count":               counts.KRIs,

		"created_at": risk.CreatedAt,
		"updated_at": risk.UpdatedAt,
	}

	putString := func(key, value string) {
		if value != "" {
			row[key] = value
		}
	}
	putInt := func(key string, value *int) {
		if value != nil {
			row[key] = *value
		}
	}
	putTime := func(key string, value *time.Time) {
		if value != nil {
			row[key] = *value
		}
	}

	putString("description", risk.Description)
	putString("risk_statement", risk.RiskStatement)
	putString("category", risk.Category)
	putString("category_name", risk.CategoryName)
	putString("owner_name", risk.OwnerName)
	putString("analyst_name", risk.AnalystName)

	putInt("inherent_likelihood", risk.InherentLikelihood)
	putInt("inherent_impact", risk.InherentImpact)
	putInt("inherent_risk_score", risk.InherentScoreValue())
	putString("inherent_risk_level", risk.InherentLevel)

	putInt("current_likelihood", risk.CurrentLikelihood)
	putInt("current_impact", risk.CurrentImpact)
	putInt("current_risk_score", risk.CurrentScoreValue())
	putString("current_risk_level", risk.CurrentLevel)

	putInt("target_likelihood", risk.TargetLikelihood)
	putInt("target_impact", risk.TargetImpact)
	putInt("target_risk_score", risk.TargetScoreValue())
	putString("target_risk_level", risk.TargetLevel)

	putInt("control_effectiveness", risk.ControlEffectiveness)

	putString("threat_source", risk.ThreatSource)
	putString("risk_velocity", risk.RiskVelocity)

	putTime("date_identified", risk.DateIdentified)
	putTime("next_review_date", risk.NextReviewDate)
	putTime("last_review_date", risk.LastReviewDate)

	return row
}

// projectReportRow builds the full superset row and, when a field selection
// is given, keeps only the requested fields. Unknown requested fields are
// silently dropped.
func projectReportRow(risk *model.Risk, counts model.LinkCounts, fields []string) model.ReportRow {
	full := fullReportRow(risk, counts)
	if len(fields) == 0 {
		return full
	}

	selected := make(model.ReportRow, len(fields))
	for _, field := range fields {
		if value, ok := full[field]; ok {
			selected[field] = value
		}
	}
	return selected
}

// groupReportRows partitions projected rows by the string value of the
// group-by field. Rows without a value land under "Unknown".
func groupReportRows(rows []model.ReportRow, groupBy string) map[string][]model.ReportRow {
	grouped := make(map[string][]model.ReportRow)
	for _, row := range rows {
		key := "Unknown"
		if value, ok := row[groupBy]; ok && value != nil && value != "" {
			key = fmt.Sprintf("%v", value)
		}
		grouped[key] = append(grouped[key], row)
	}
	return grouped
}

// buildReportSummary aggregates the filtered rows before projection
func buildReportSummary(risks []*model.Risk) *model.ReportSummary {
	summary := &model.ReportSummary{
		TotalRisks: len(risks),
		ByLevel:    make(map[string]int),
		ByStatus:   make(map[string]int),
	}

	var scoreSum, scoreCount int
	for _, risk := range risks {
		if score := risk.CurrentScoreValue(); score != nil {
			scoreSum += *score
			scoreCount++
			if scoreCount == 1 {
				summary.MaxScore, summary.MinScore = *score, *score
			} else {
				summary.MaxScore = max(summary.MaxScore, *score)
				summary.MinScore = min(summary.MinScore, *score)
			}
		}
		if risk.CurrentLevel != "" {
			summary.ByLevel[strings.ToLower(risk.CurrentLevel)]++
		}
		if risk.Status != "" {
			summary.ByStatus[risk.Status.String()]++
		}
	}
	if scoreCount > 0 {
		avg := float64(scoreSum) / float64(scoreCount)
		summary.AverageScore = math.Round(avg*10) / 10
	}

	return summary
}

// sortRisks orders the candidate rows by the requested field, falling back
// to current score. Direction defaults to descending like the original
// report surface.
func sortRisks(risks []*model.Risk, field, direction string) {
	if field == "" {
		field = reportDefaultSortField
	}
	ascending := strings.EqualFold(direction, "asc")

	less := func(a, b *model.Risk) bool {
		av, bv := riskSortValue(a, field), riskSortValue(b, field)
		switch x := av.(type) {
		case float64:
			return x < bv.(float64)
		case string:
			return x < bv.(string)
		default:
			return false
		}
	}

	sort.SliceStable(risks, func(i, j int) bool {
		if ascending {
			return less(risks[i], risks[j])
		}
		return less(risks[j], risks[i])
	})
}

// riskSortValue extracts a comparable value for the sort field. Missing
// numeric values sort as 0 so they gather at the low end.
func riskSortValue(risk *model.Risk, field string) any {
	num := func(v *int) float64 {
		if v == nil {
			return 0
		}
		return float64(*v)
	}

	switch field {
	case "current_risk_score":
		return num(risk.CurrentScoreValue())
	case "current_likelihood":
		return num(risk.CurrentLikelihood)
	case "current_impact":
		return num(risk.CurrentImpact)
	case "inherent_risk_score":
		return num(risk.InherentScoreValue())
	case "target_risk_score":
		return num(risk.TargetScoreValue())
	case "control_effectiveness":
		return num(risk.ControlEffectiveness)
	case "risk_id":
		return risk.Ref
	case "title":
		return risk.Title
	case "status":
		return risk.Status.String()
	case "category":
		return risk.Category
	case "current_risk_level":
		return risk.CurrentLevel
	case "owner_name":
		return risk.OwnerName
	case "created_at":
		return float64(risk.CreatedAt.UnixNano())
	case "updated_at":
		return float64(risk.UpdatedAt.UnixNano())
	default:
		return num(risk.CurrentScoreValue())
	}
}
