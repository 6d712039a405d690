package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/grclab/riskscope/pkg/domain/model"
	"github.com/grclab/riskscope/pkg/domain/types"
	"github.com/grclab/riskscope/pkg/usecase"
	"github.com/grclab/riskscope/pkg/utils/errutil"
	"github.com/grclab/riskscope/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

// orgIDHeader selects the organization whose scoring policy applies to the
// request. Absent means the default organization.
const orgIDHeader = "X-Organization-ID"

func orgIDFrom(r *http.Request) types.OrgID {
	return types.OrgID(r.Header.Get(orgIDHeader))
}

func respondJSON(ctx context.Context, w http.ResponseWriter, statusCode int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	safe.Write(ctx, w, data)
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return goerr.Wrap(err, "failed to decode request body")
	}
	return nil
}

// handleError maps domain sentinels to HTTP status codes. Anything not
// recognized is a server fault.
func handleError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrRiskNotFound),
		errors.Is(err, model.ErrPolicyNotFound),
		errors.Is(err, usecase.ErrNoRisksFound):
		errutil.HandleHTTP(ctx, w, err, http.StatusNotFound)

	case errors.Is(err, usecase.ErrValueOutOfRange),
		errors.Is(err, usecase.ErrUnknownMethod),
		errors.Is(err, usecase.ErrInvalidPolicy),
		errors.Is(err, usecase.ErrInvalidRisk):
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)

	default:
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
	}
}
