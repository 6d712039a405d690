package http

import (
	"net/http"

	"github.com/grclab/riskscope/pkg/domain/model"
	"github.com/grclab/riskscope/pkg/utils/errutil"
)

func (s *Server) compareRisks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.ComparisonRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	comparison, err := s.uc.Analysis.CompareRisks(ctx, orgIDFrom(r), &req)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, comparison)
}

func (s *Server) simulateWhatIf(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.SimulationRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	result, err := s.uc.Analysis.SimulateWhatIf(ctx, orgIDFrom(r), &req)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, result)
}

func (s *Server) batchWhatIf(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.BatchSimulationRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	results, err := s.uc.Analysis.BatchWhatIf(ctx, orgIDFrom(r), &req)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]any{
		"risk_id": req.RiskID,
		"results": results,
	})
}

func (s *Server) generateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var cfg model.ReportConfig
	if err := decodeJSON(r, &cfg); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	report, err := s.uc.Analysis.GenerateReport(ctx, orgIDFrom(r), &cfg)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, report)
}

func (s *Server) listReportFields(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	fields := s.uc.Analysis.ListReportFields()

	respondJSON(ctx, w, http.StatusOK, map[string]any{
		"fields": fields,
	})
}
