package respond

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chris/daily-prize-pools/pkg/api"
	"github.com/chris/daily-prize-pools/pkg/pool"
	"github.com/chris/daily-prize-pools/pkg/storage"
)

func TestStatus(t *testing.T) {
	cases := map[string]struct {
		err  error
		want int
	}{
		"Validation":        {fmt.Errorf("%w: bad", pool.ErrValidation), http.StatusBadRequest},
		"Bad Param":         {&api.InvalidParamFormatError{ParamName: "gameDay", Err: errors.New("x")}, http.StatusBadRequest},
		"Missing Param":     {&api.RequiredParamError{ParamName: "before"}, http.StatusBadRequest},
		"Pool Not Found":    {fmt.Errorf("read: %w", storage.ErrPoolNotFound), http.StatusNotFound},
		"Pool Closed":       {storage.ErrPoolClosed, http.StatusConflict},
		"Duplicate Ticket":  {storage.ErrDuplicateTicket, http.StatusConflict},
		"Already Settled":   {storage.ErrAlreadySettled, http.StatusConflict},
		"Window Closed":     {pool.ErrPayoutWindowClosed, http.StatusConflict},
		"Prior Unsettled":   {pool.ErrPriorDayUnsettled, http.StatusConflict},
		"Draw Pending":      {fmt.Errorf("%w: 2024-01-01", pool.ErrDrawNotExecuted), http.StatusConflict},
		"Retries Exhausted": {fmt.Errorf("%w: %w", pool.ErrContributionFailed, storage.ErrConcurrencyConflict), http.StatusServiceUnavailable},
		"Invariant":         {pool.ErrInvariantViolation, http.StatusInternalServerError},
		"Unknown":           {errors.New("boom"), http.StatusInternalServerError},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, Status(tc.err))
		})
	}
}

func TestError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/pools/2024-01-01", nil)
	rr := httptest.NewRecorder()

	Error(rr, req, "get pool", storage.ErrPoolNotFound)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Failed to get pool: pool not found")
}
