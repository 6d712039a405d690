package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/grclab/riskscope/pkg/domain/model"
	"github.com/grclab/riskscope/pkg/repository/memory"
	"github.com/grclab/riskscope/pkg/usecase"
)

func seedReportRegister(t *testing.T, uc *usecase.UseCases) {
	t.Helper()
	seedRisk(t, uc, &model.Risk{
		Title:    "Data breach",
		Category: "security", CategoryName: "Security",
		CurrentLikelihood: intPtr(4), CurrentImpact: intPtr(5),
	})
	seedRisk(t, uc, &model.Risk{
		Title:    "Vendor insolvency",
		Category: "thirdparty", CategoryName: "Third Party",
		CurrentLikelihood: intPtr(3), CurrentImpact: intPtr(3),
	})
	seedRisk(t, uc, &model.Risk{
		Title:    "Audit finding backlog",
		Category: "security", CategoryName: "Security",
		CurrentLikelihood: intPtr(2), CurrentImpact: intPtr(2),
	})
}

func TestGenerateReport(t *testing.T) {
	ctx := context.Background()

	t.Run("default report covers all risks sorted by score desc", func(t *testing.T) {
		uc := usecase.New(memory.New())
		seedReportRegister(t, uc)

		report, err := uc.Analysis.GenerateReport(ctx, "", &model.ReportConfig{Name: "register"})
		gt.NoError(t, err).Required()

		gt.Value(t, report.ReportName).Equal("register")
		gt.Array(t, report.Data).Length(3).Required()
		gt.Value(t, report.Data[0]["title"]).Equal("Data breach")
		gt.Value(t, report.Data[1]["title"]).Equal("Vendor insolvency")
		gt.Value(t, report.Data[2]["title"]).Equal("Audit finding backlog")
		gt.Value(t, report.Summary).Nil()
	})

	t.Run("echoed filters carry only filter and sort knobs", func(t *testing.T) {
		uc := usecase.New(memory.New())
		seedReportRegister(t, uc)

		report, err := uc.Analysis.GenerateReport(ctx, "", &model.ReportConfig{
			Name:           "quarterly",
			Fields:         []string{"title"},
			RiskLevels:     []string{"Critical"},
			SortBy:         "current_risk_score",
			IncludeSummary: true,
		})
		gt.NoError(t, err).Required()

		gt.Value(t, report.FiltersApplied).Equal(model.ReportFilters{
			RiskLevels: []string{"Critical"},
			SortBy:     "current_risk_score",
		})
	})

	t.Run("ascending sort flips the order", func(t *testing.T) {
		uc := usecase.New(memory.New())
		seedReportRegister(t, uc)

		report, err := uc.Analysis.GenerateReport(ctx, "", &model.ReportConfig{
			SortBy: "current_risk_score", SortDirection: "asc",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, report.Data[0]["title"]).Equal("Audit finding backlog")
	})

	t.Run("level filter narrows the register", func(t *testing.T) {
		uc := usecase.New(memory.New())
		seedReportRegister(t, uc)

		report, err := uc.Analysis.GenerateReport(ctx, "", &model.ReportConfig{
			RiskLevels: []string{"Critical"},
		})
		gt.NoError(t, err).Required()
		gt.Array(t, report.Data).Length(1).Required()
		gt.Value(t, report.Data[0]["title"]).Equal("Data breach")
	})

	t.Run("field selection projects exactly the requested keys", func(t *testing.T) {
		uc := usecase.New(memory.New())
		seedReportRegister(t, uc)

		report, err := uc.Analysis.GenerateReport(ctx, "", &model.ReportConfig{
			Fields: []string{"title", "current_risk_score", "no_such_field"},
		})
		gt.NoError(t, err).Required()

		for _, row := range report.Data {
			gt.Value(t, len(row)).Equal(2) // unknown fields silently dropped
			gt.Value(t, row["title"]).NotNil()
			gt.Value(t, row["current_risk_score"]).NotNil()
		}
	})

	t.Run("appetite filter keeps only exceeding risks", func(t *testing.T) {
		uc := usecase.New(memory.New())
		seedReportRegister(t, uc)

		report, err := uc.Analysis.GenerateReport(ctx, "", &model.ReportConfig{
			ExceedsAppetiteOnly: true,
		})
		gt.NoError(t, err).Required()
		gt.Array(t, report.Data).Length(1).Required() // only score 20 > 11
		gt.Value(t, report.Data[0]["title"]).Equal("Data breach")
	})

	t.Run("grouping supersedes the flat data array", func(t *testing.T) {
		uc := usecase.New(memory.New())
		seedReportRegister(t, uc)

		report, err := uc.Analysis.GenerateReport(ctx, "", &model.ReportConfig{
			GroupBy: "category_name",
		})
		gt.NoError(t, err).Required()

		gt.Array(t, report.Data).Length(0)
		gt.Value(t, len(report.GroupedData)).Equal(2)
		gt.Array(t, report.GroupedData["Security"]).Length(2)
		gt.Array(t, report.GroupedData["Third Party"]).Length(1)
	})

	t.Run("rows without a group value land under Unknown", func(t *testing.T) {
		uc := usecase.New(memory.New())
		seedRisk(t, uc, &model.Risk{
			Title:             "Uncategorized",
			CurrentLikelihood: intPtr(1), CurrentImpact: intPtr(1),
		})

		report, err := uc.Analysis.GenerateReport(ctx, "", &model.ReportConfig{
			GroupBy: "category_name",
		})
		gt.NoError(t, err).Required()
		gt.Array(t, report.GroupedData["Unknown"]).Length(1)
	})

	t.Run("summary aggregates pre-projection", func(t *testing.T) {
		uc := usecase.New(memory.New())
		seedReportRegister(t, uc)

		report, err := uc.Analysis.GenerateReport(ctx, "", &model.ReportConfig{
			Fields:         []string{"title"},
			IncludeSummary: true,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, report.Summary).NotNil().Required()

		gt.Value(t, report.Summary.TotalRisks).Equal(3)
		gt.Value(t, report.Summary.AverageScore).Equal(11.0) // (20+9+4)/3
		gt.Value(t, report.Summary.MaxScore).Equal(20)
		gt.Value(t, report.Summary.MinScore).Equal(4)
		gt.Value(t, report.Summary.ByLevel["critical"]).Equal(1)
		gt.Value(t, report.Summary.ByLevel["medium"]).Equal(1)
		gt.Value(t, report.Summary.ByLevel["low"]).Equal(1)
		gt.Value(t, report.Summary.ByStatus["identified"]).Equal(3)
	})

	t.Run("absent optional values are omitted from rows", func(t *testing.T) {
		uc := usecase.New(memory.New())
		seedRisk(t, uc, &model.Risk{Title: "Bare"})

		report, err := uc.Analysis.GenerateReport(ctx, "", &model.ReportConfig{})
		gt.NoError(t, err).Required()

		row := report.Data[0]
		_, hasScore := row["current_risk_score"]
		gt.Value(t, hasScore).Equal(false)
		_, hasEff := row["control_effectiveness"]
		gt.Value(t, hasEff).Equal(false)
	})
}

func TestListReportFields(t *testing.T) {
	uc := usecase.New(memory.New())
	fields := uc.Analysis.ListReportFields()

	gt.Number(t, len(fields)).Greater(25)

	byName := map[string]model.ReportField{}
	for _, f := range fields {
		byName[f.Field] = f
	}
	gt.Value(t, byName["current_risk_score"].Category).Equal("Current Risk")
	gt.Value(t, byName["risk_id"].Category).Equal("Identification")
	gt.Value(t, byName["kri_count"].Category).Equal("Additional")
}
