package http

import (
	"net/http"
	"strconv"

	"github.com/grclab/riskscope/pkg/domain/model"
	"github.com/grclab/riskscope/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	policy, err := s.uc.Settings.GetPolicy(ctx, orgIDFrom(r))
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, policy)
}

func (s *Server) updateSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var patch model.PolicyPatch
	if err := decodeJSON(r, &patch); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	policy, err := s.uc.Settings.UpdatePolicy(ctx, orgIDFrom(r), &patch)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, policy)
}

func (s *Server) resetSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	policy, err := s.uc.Settings.ResetPolicy(ctx, orgIDFrom(r))
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, policy)
}

func scoreQuery(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("score")
	score, err := strconv.Atoi(raw)
	if err != nil {
		return 0, goerr.Wrap(err, "score query parameter must be an integer", goerr.V("score", raw))
	}
	return score, nil
}

func (s *Server) classifyScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	score, err := scoreQuery(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	band, err := s.uc.Settings.ClassifyScore(ctx, orgIDFrom(r), score)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, band)
}

func (s *Server) checkAppetite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	score, err := scoreQuery(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	check, err := s.uc.Settings.CheckAppetite(ctx, orgIDFrom(r), score)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, check)
}

func (s *Server) likelihoodScale(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	policy, err := s.uc.Settings.GetPolicy(ctx, orgIDFrom(r))
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]any{
		"likelihood_scale": policy.LikelihoodScale,
	})
}

func (s *Server) impactScale(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	policy, err := s.uc.Settings.GetPolicy(ctx, orgIDFrom(r))
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]any{
		"impact_scale": policy.ImpactScale,
	})
}
