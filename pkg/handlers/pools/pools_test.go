package pools_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chris/daily-prize-pools/pkg/api"
	"github.com/chris/daily-prize-pools/pkg/handlers/pools"
	"github.com/chris/daily-prize-pools/pkg/mapping"
	"github.com/chris/daily-prize-pools/pkg/models"
	"github.com/chris/daily-prize-pools/pkg/pool"
	"github.com/chris/daily-prize-pools/pkg/pool/mocks"
	"github.com/chris/daily-prize-pools/pkg/storage"
)

const day = "2024-01-01"

func TestContribute(t *testing.T) {
	body, _ := json.Marshal(api.ContributionRequest{TicketId: "t1", UserId: "u1", GameDay: mapping.ToDate(day), Amount: 20})
	want := pool.ContributionRequest{TicketID: "t1", UserID: "u1", GameDay: day, Amount: 20}

	t.Run("Success", func(t *testing.T) {
		service := mocks.NewPoolService(t)
		service.On("Contribute", mock.Anything, want).Return(true, nil)
		h := pools.NewPoolsHandler(service, mapping.New(6))

		req := httptest.NewRequest(http.MethodPost, "/contributions", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		h.Contribute(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var result api.ContributionResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
		assert.True(t, result.Accepted)
		assert.Equal(t, "t1", result.TicketId)
	})

	t.Run("Pool Distributed", func(t *testing.T) {
		service := mocks.NewPoolService(t)
		service.On("Contribute", mock.Anything, want).Return(false, nil)
		h := pools.NewPoolsHandler(service, mapping.New(6))

		req := httptest.NewRequest(http.MethodPost, "/contributions", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		h.Contribute(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		var result api.ContributionResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
		assert.False(t, result.Accepted)
	})

	t.Run("Duplicate Ticket", func(t *testing.T) {
		service := mocks.NewPoolService(t)
		service.On("Contribute", mock.Anything, want).Return(false, storage.ErrDuplicateTicket)
		h := pools.NewPoolsHandler(service, mapping.New(6))

		req := httptest.NewRequest(http.MethodPost, "/contributions", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		h.Contribute(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Invalid Amount", func(t *testing.T) {
		service := mocks.NewPoolService(t)
		service.On("Contribute", mock.Anything, mock.Anything).Return(false, fmt.Errorf("%w: amount", pool.ErrValidation))
		h := pools.NewPoolsHandler(service, mapping.New(6))

		req := httptest.NewRequest(http.MethodPost, "/contributions", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		h.Contribute(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Bad Body", func(t *testing.T) {
		h := pools.NewPoolsHandler(mocks.NewPoolService(t), mapping.New(6))

		req := httptest.NewRequest(http.MethodPost, "/contributions", bytes.NewReader([]byte("{")))
		rr := httptest.NewRecorder()
		h.Contribute(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid request body")
	})
}

func TestGetPool(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		service := mocks.NewPoolService(t)
		service.On("Snapshot", mock.Anything, day).Return(&models.DailyPrizePool{GameDay: day, TotalCollected: 1_000_000, TicketCount: 1, Version: 1}, nil)
		h := pools.NewPoolsHandler(service, mapping.New(6))

		req := httptest.NewRequest(http.MethodGet, "/pools/"+day, nil)
		rr := httptest.NewRecorder()
		h.GetPool(rr, req, mapping.ToDate(day))

		assert.Equal(t, http.StatusOK, rr.Code)
		var p api.PrizePool
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
		assert.Equal(t, "1.000000", p.TotalCollected.Display)
		assert.Equal(t, int64(1), p.TicketCount)
	})

	t.Run("Not Found", func(t *testing.T) {
		service := mocks.NewPoolService(t)
		service.On("Snapshot", mock.Anything, day).Return(nil, storage.ErrPoolNotFound)
		h := pools.NewPoolsHandler(service, mapping.New(6))

		req := httptest.NewRequest(http.MethodGet, "/pools/"+day, nil)
		rr := httptest.NewRecorder()
		h.GetPool(rr, req, mapping.ToDate(day))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestDistributePool(t *testing.T) {
	t.Run("Prior Day Unsettled", func(t *testing.T) {
		service := mocks.NewPoolService(t)
		service.On("Distribute", mock.Anything, day).Return(nil, fmt.Errorf("carry: %w", pool.ErrPriorDayUnsettled))
		h := pools.NewPoolsHandler(service, mapping.New(6))

		req := httptest.NewRequest(http.MethodPost, "/pools/"+day+"/distribute", nil)
		rr := httptest.NewRecorder()
		h.DistributePool(rr, req, mapping.ToDate(day))

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Retries Exhausted", func(t *testing.T) {
		service := mocks.NewPoolService(t)
		service.On("Distribute", mock.Anything, day).Return(nil, fmt.Errorf("%w: %w", pool.ErrDistributionFailed, storage.ErrConcurrencyConflict))
		h := pools.NewPoolsHandler(service, mapping.New(6))

		req := httptest.NewRequest(http.MethodPost, "/pools/"+day+"/distribute", nil)
		rr := httptest.NewRecorder()
		h.DistributePool(rr, req, mapping.ToDate(day))

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}

func TestGetCarryForward(t *testing.T) {
	service := mocks.NewPoolService(t)
	service.On("ComputeCarryForward", mock.Anything, day).Return(pool.CarryForward{
		Amounts:   map[models.Tier]int64{models.TierFirst: 500},
		Depth:     map[models.Tier]int{models.TierFirst: 2},
		SourceDay: map[models.Tier]string{models.TierFirst: "2023-12-30"},
	}, nil)
	h := pools.NewPoolsHandler(service, mapping.New(0))

	req := httptest.NewRequest(http.MethodGet, "/pools/"+day+"/carry-forward", nil)
	rr := httptest.NewRecorder()
	h.GetCarryForward(rr, req, mapping.ToDate(day))

	assert.Equal(t, http.StatusOK, rr.Code)
	var carry api.CarryForward
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &carry))
	require.Len(t, carry.Tiers, 3)
	assert.Equal(t, int64(500), carry.Tiers[0].Amount.Units)
	assert.Equal(t, 2, carry.Tiers[0].Depth)
}

func TestListUnsettledPools(t *testing.T) {
	service := mocks.NewPoolService(t)
	service.On("ListUnsettledPools", mock.Anything, day).Return([]models.DailyPrizePool{
		{GameDay: "2023-12-30"},
		{GameDay: "2023-12-31", PoolsDistributed: true},
	}, nil)
	h := pools.NewPoolsHandler(service, mapping.New(0))

	req := httptest.NewRequest(http.MethodGet, "/reconciliation/unsettled?before="+day, nil)
	rr := httptest.NewRecorder()
	h.ListUnsettledPools(rr, req, api.ListUnsettledPoolsParams{Before: mapping.ToDate(day)})

	assert.Equal(t, http.StatusOK, rr.Code)
	var out []api.PrizePool
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.Len(t, out, 2)
	assert.False(t, out[0].PoolsDistributed)
	assert.True(t, out[1].PoolsDistributed)
}

func TestListPoolTransactions(t *testing.T) {
	service := mocks.NewPoolService(t)
	service.On("PoolTransactions", mock.Anything, day).Return(nil, fmt.Errorf("%w: bad day", pool.ErrValidation))
	h := pools.NewPoolsHandler(service, mapping.New(0))

	req := httptest.NewRequest(http.MethodGet, "/pools/"+day+"/transactions", nil)
	rr := httptest.NewRecorder()
	h.ListPoolTransactions(rr, req, mapping.ToDate(day))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
