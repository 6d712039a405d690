package model

import "time"

// ReportConfig describes an ad hoc analytical report: which rows to include
// (AND-combined filters), how to sort, which fields to project, and optional
// grouping and summary.
type ReportConfig struct {
	Name                string   `json:"name"`
	Fields              []string `json:"fields,omitempty"`
	RiskLevels          []string `json:"risk_levels,omitempty"`
	Categories          []string `json:"categories,omitempty"`
	Statuses            []string `json:"statuses,omitempty"`
	OwnerIDs            []string `json:"owner_ids,omitempty"`
	ExceedsAppetiteOnly bool     `json:"exceeds_appetite_only,omitempty"`
	SortBy              string   `json:"sort_by,omitempty"`
	SortDirection       string   `json:"sort_direction,omitempty"`
	GroupBy             string   `json:"group_by,omitempty"`
	IncludeSummary      bool     `json:"include_summary,omitempty"`
}

// ReportSummary aggregates the filtered (pre-projection) rows
type ReportSummary struct {
	TotalRisks   int            `json:"total_risks"`
	AverageScore float64        `json:"average_score"`
	MaxScore     int            `json:"max_score"`
	MinScore     int            `json:"min_score"`
	ByLevel      map[string]int `json:"by_level"`
	ByStatus     map[string]int `json:"by_status"`
}

// ReportFilters echoes the filter, sort and group knobs back on the report;
// projection and summary settings are not part of it.
type ReportFilters struct {
	RiskLevels          []string `json:"risk_levels,omitempty"`
	Categories          []string `json:"categories,omitempty"`
	Statuses            []string `json:"statuses,omitempty"`
	OwnerIDs            []string `json:"owner_ids,omitempty"`
	ExceedsAppetiteOnly bool     `json:"exceeds_appetite_only,omitempty"`
	SortBy              string   `json:"sort_by,omitempty"`
	SortDirection       string   `json:"sort_direction,omitempty"`
	GroupBy             string   `json:"group_by,omitempty"`
}

// Filters extracts the echoed knobs from the config
func (c *ReportConfig) Filters() ReportFilters {
	return ReportFilters{
		RiskLevels:          c.RiskLevels,
		Categories:          c.Categories,
		Statuses:            c.Statuses,
		OwnerIDs:            c.OwnerIDs,
		ExceedsAppetiteOnly: c.ExceedsAppetiteOnly,
		SortBy:              c.SortBy,
		SortDirection:       c.SortDirection,
		GroupBy:             c.GroupBy,
	}
}

// ReportRow is one projected report row. Keys are the wire field names from
// the report field catalog; only requested fields are present.
type ReportRow map[string]any

// Report is a generated ad hoc report. When grouping is requested the
// grouped data supersedes the flat data array, which is left empty.
type Report struct {
	ReportName     string                 `json:"report_name"`
	GeneratedAt    time.Time              `json:"generated_at"`
	FiltersApplied ReportFilters          `json:"filters_applied"`
	Data           []ReportRow            `json:"data"`
	Summary        *ReportSummary         `json:"summary,omitempty"`
	GroupedData    map[string][]ReportRow `json:"grouped_data,omitempty"`
}

// ReportField is one entry of the static reportable-field catalog
type ReportField struct {
	Field    string `json:"field"`
	Label    string `json:"label"`
	Category string `json:"category"`
}

// ReportFieldCatalog lists every reportable field grouped by category. Used
// purely for UI discovery; field names match the ReportRow keys.
func ReportFieldCatalog() []ReportField {
	return []ReportField{
		{Field: "risk_id", Label: "Risk ID", Category: "Identification"},
		{Field: "title", Label: "Title", Category: "Identification"},
		{Field: "description", Label: "Description", Category: "Identification"},
		{Field: "risk_statement", Label: "Risk Statement", Category: "Identification"},
		{Field: "category_name", Label: "Category", Category: "Identification"},
		{Field: "status", Label: "Status", Category: "Identification"},

		{Field: "owner_name", Label: "Owner", Category: "Ownership"},
		{Field: "analyst_name", Label: "Analyst", Category: "Ownership"},

		{Field: "inherent_likelihood", Label: "Inherent Likelihood", Category: "Inherent Risk"},
		{Field: "inherent_impact", Label: "Inherent Impact", Category: "Inherent Risk"},
		{Field: "inherent_risk_score", Label: "Inherent Score", Category: "Inherent Risk"},
		{Field: "inherent_risk_level", Label: "Inherent Level", Category: "Inherent Risk"},

		{Field: "current_likelihood", Label: "Current Likelihood", Category: "Current Risk"},
		{Field: "current_impact", Label: "Current Impact", Category: "Current Risk"},
		{Field: "current_risk_score", Label: "Current Score", Category: "Current Risk"},
		{Field: "current_risk_level", Label: "Current Level", Category: "Current Risk"},

		{Field: "target_likelihood", Label: "Target Likelihood", Category: "Target Risk"},
		{Field: "target_impact", Label: "Target Impact", Category: "Target Risk"},
		{Field: "target_risk_score", Label: "Target Score", Category: "Target Risk"},
		{Field: "target_risk_level", Label: "Target Level", Category: "Target Risk"},

		{Field: "control_effectiveness", Label: "Control Effectiveness", Category: "Controls"},
		{Field: "linked_controls_count", Label: "Linked Controls", Category: "Controls"},

		{Field: "threat_source", Label: "Threat Source", Category: "Additional"},
		{Field: "risk_velocity", Label: "Risk Velocity", Category: "Additional"},
		{Field: "linked_assets_count", Label: "Linked Assets", Category: "Additional"},
		{Field: "active_treatments_count", Label: "Active Treatments", Category: "Additional"},
		{Field: "kri_count", Label: "KRIs", Category: "Additional"},

		{Field: "date_identified", Label: "Date Identified", Category: "Dates"},
		{Field: "next_review_date", Label: "Next Review", Category: "Dates"},
		{Field: "last_review_date", Label: "Last Review", Category: "Dates"},
		{Field: "created_at", Label: "Created At", Category: "Dates"},
		{Field: "updated_at", Label: "Updated At", Category: "Dates"},
	}
}
