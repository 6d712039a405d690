package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grclab/riskscope/pkg/domain/model"
	"github.com/grclab/riskscope/pkg/domain/types"
	"github.com/grclab/riskscope/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

func riskIDParam(r *http.Request) (types.RiskID, error) {
	id := types.RiskID(chi.URLParam(r, "riskID"))
	if err := id.Validate(); err != nil {
		return "", goerr.Wrap(err, "invalid risk ID", goerr.V("id", id))
	}
	return id, nil
}

func (s *Server) createRisk(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var risk model.Risk
	if err := decodeJSON(r, &risk); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	created, err := s.uc.Risk.CreateRisk(ctx, orgIDFrom(r), &risk)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, created)
}

func (s *Server) listRisks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	risks, err := s.uc.Risk.ListRisks(ctx)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]any{
		"risks": risks,
		"total": len(risks),
	})
}

func (s *Server) getRisk(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := riskIDParam(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	risk, err := s.uc.Risk.GetRisk(ctx, id)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, risk)
}

func (s *Server) updateRisk(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := riskIDParam(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	var risk model.Risk
	if err := decodeJSON(r, &risk); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}
	risk.ID = id

	updated, err := s.uc.Risk.UpdateRisk(ctx, orgIDFrom(r), &risk)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, updated)
}

func (s *Server) deleteRisk(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := riskIDParam(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	if err := s.uc.Risk.DeleteRisk(ctx, id); err != nil {
		handleError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) recordAssessment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := riskIDParam(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	var input model.AssessmentInput
	if err := decodeJSON(r, &input); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	result, err := s.uc.Risk.RecordAssessment(ctx, orgIDFrom(r), id, input)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, result)
}
