// Package respond writes handler responses and maps engine errors to HTTP statuses.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/chris/daily-prize-pools/pkg/api"
	"github.com/chris/daily-prize-pools/pkg/pool"
	"github.com/chris/daily-prize-pools/pkg/storage"
)

// JSON encodes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// Status returns the HTTP status for an error returned by the engine.
func Status(err error) int {
	var invalidParam *api.InvalidParamFormatError
	var requiredParam *api.RequiredParamError
	switch {
	case errors.As(err, &invalidParam), errors.As(err, &requiredParam):
		return http.StatusBadRequest
	case errors.Is(err, pool.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrPoolNotFound),
		errors.Is(err, storage.ErrDistributionNotFound),
		errors.Is(err, storage.ErrPurchaseNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrPoolClosed),
		errors.Is(err, storage.ErrDuplicateTicket),
		errors.Is(err, storage.ErrAlreadySettled),
		errors.Is(err, pool.ErrPayoutWindowClosed),
		errors.Is(err, pool.ErrNotDistributed),
		errors.Is(err, pool.ErrDrawNotExecuted),
		errors.Is(err, pool.ErrPriorDayUnsettled):
		return http.StatusConflict
	case errors.Is(err, pool.ErrContributionFailed),
		errors.Is(err, pool.ErrDistributionFailed),
		errors.Is(err, pool.ErrPayoutFailed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as plain text with the status from Status. Server errors are logged
// with the request logger.
func Error(w http.ResponseWriter, r *http.Request, action string, err error) {
	status := Status(err)
	if status >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("action", action).Msg("request failed")
	}
	http.Error(w, fmt.Sprintf("Failed to %s: %v", action, err), status)
}

// ParamError is the error handler for parameters the router could not bind.
func ParamError(w http.ResponseWriter, r *http.Request, err error) {
	http.Error(w, err.Error(), Status(err))
}
