package httputil

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	dErrors "esbresolver/pkg/domain-errors"
	"esbresolver/pkg/validation"
)

// DecodeJSON decodes the request body into T and runs struct validation.
// On failure it writes the error response and returns nil, false.
//
// Usage:
//
//	req, ok := httputil.DecodeJSON[models.ResolutionRequest](ctx, w, r, h.logger)
//	if !ok {
//	    return
//	}
func DecodeJSON[T any](ctx context.Context, w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "failed to decode request body", "error", err)
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return nil, false
	}
	if err := validation.Validate(req); err != nil {
		logger.WarnContext(ctx, "invalid request", "error", err)
		WriteError(w, err)
		return nil, false
	}
	return &req, true
}
