package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chris/daily-prize-pools/pkg/api"
	"github.com/chris/daily-prize-pools/pkg/mapping"
	"github.com/chris/daily-prize-pools/pkg/metrics"
	"github.com/chris/daily-prize-pools/pkg/models"
	"github.com/chris/daily-prize-pools/pkg/pool"
	scheduler_mocks "github.com/chris/daily-prize-pools/pkg/scheduler/mocks"
	"github.com/chris/daily-prize-pools/pkg/storage/memory"
)

const day = "2024-01-01"

type testServer struct {
	t      *testing.T
	router http.Handler
	sched  *scheduler_mocks.Scheduler
	store  *memory.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	reg := prometheus.NewRegistry()
	cfg := pool.DefaultConfig()
	cfg.BaseDelay = 0
	cfg.MaxDelay = 0
	store := memory.New()
	engine, err := pool.New(store, cfg, pool.WithMetrics(metrics.New(reg)))
	require.NoError(t, err)

	sched := scheduler_mocks.NewScheduler(t)
	h := NewApiHandler(engine, sched, mapping.New(0))
	return &testServer{t: t, router: NewRouter(h, zerolog.Nop(), reg), sched: sched, store: store}
}

func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func TestPoolLifecycle(t *testing.T) {
	s := newTestServer(t)

	// Three tickets of 100 make a pool of 300: 240/30/15/15.
	for i := 1; i <= 3; i++ {
		rr := s.do(http.MethodPost, "/contributions", api.ContributionRequest{
			TicketId: fmt.Sprintf("t%d", i),
			UserId:   fmt.Sprintf("u%d", i),
			GameDay:  mapping.ToDate(day),
			Amount:   100,
		})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	}

	rr := s.do(http.MethodGet, "/pools/"+day, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var open api.PrizePool
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &open))
	assert.Equal(t, int64(300), open.TotalCollected.Units)
	assert.Equal(t, int64(3), open.TicketCount)
	assert.Nil(t, open.Tiers)

	rr = s.do(http.MethodPost, "/pools/"+day+"/distribute", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var distributed api.PrizePool
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &distributed))
	require.NotNil(t, distributed.Tiers)
	assert.Equal(t, int64(240), (*distributed.Tiers)[0].Final.Units)

	// Late tickets bounce off the distributed pool.
	rr = s.do(http.MethodPost, "/contributions", api.ContributionRequest{TicketId: "late", UserId: "u9", GameDay: mapping.ToDate(day), Amount: 100})
	assert.Equal(t, http.StatusConflict, rr.Code)

	winners := api.PayoutRequest{Winners: []api.Winner{
		{UserId: "u1", WalletRef: "w1", TicketId: "t1"},
		{UserId: "u2", WalletRef: "w2", TicketId: "t2"},
	}}

	// Nothing is paid or closed until the oracle has executed the draw.
	rr = s.do(http.MethodPost, "/pools/"+day+"/payouts/first", winners)
	assert.Equal(t, http.StatusConflict, rr.Code)
	rr = s.do(http.MethodPost, "/pools/"+day+"/finalize", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
	s.store.PutDrawResult(models.DrawResult{GameDay: day, WinningNumbers: [4]int{1, 2, 3, 4}, Executed: true})

	rr = s.do(http.MethodPost, "/pools/"+day+"/payouts/first", winners)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var record api.PrizeDistribution
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &record))
	assert.Equal(t, int64(120), record.PerWinnerAmount.Units)

	rr = s.do(http.MethodPost, "/pools/"+day+"/payouts/second", api.PayoutRequest{Winners: []api.Winner{}})
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = s.do(http.MethodPost, "/pools/"+day+"/finalize", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(http.MethodPost, "/pools/"+day+"/payouts/third", api.PayoutRequest{Winners: []api.Winner{{UserId: "u3", WalletRef: "w3", TicketId: "t3"}}})
	assert.Equal(t, http.StatusConflict, rr.Code)

	// The next day inherits the unpaid second and third tiers.
	rr = s.do(http.MethodGet, "/pools/2024-01-02/carry-forward", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var carry api.CarryForward
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &carry))
	assert.Equal(t, int64(0), carry.Tiers[0].Amount.Units)
	assert.Equal(t, int64(30), carry.Tiers[1].Amount.Units)
	assert.Equal(t, int64(15), carry.Tiers[2].Amount.Units)

	rr = s.do(http.MethodGet, "/users/u1/claimable?from=2024-01-01&to=2024-01-07", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var claimable api.Claimable
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &claimable))
	assert.Equal(t, int64(120), claimable.Claimable.Units)

	settlement := api.NewSettlement{UserId: "u1", TicketId: "t1", GameDay: mapping.ToDate(day), Tier: api.TierFirst, Amount: 120}
	rr = s.do(http.MethodPost, "/settlements", settlement)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	rr = s.do(http.MethodPost, "/settlements", settlement)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = s.do(http.MethodGet, "/pools/"+day+"/transactions", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var txs []api.PoolTransaction
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &txs))
	assert.NotEmpty(t, txs)

	rr = s.do(http.MethodGet, "/pools/"+day+"/distributions", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var records []api.PrizeDistribution
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, api.TierFirst, records[0].Tier)
}

func TestScheduleSettlementRoute(t *testing.T) {
	s := newTestServer(t)
	s.sched.On("ScheduleSettlement", mock.Anything, models.SettlementJob{GameDay: day, Attempt: 1}, time.Duration(0)).Return(nil)

	rr := s.do(http.MethodPost, "/pools/"+day+"/settle", nil)
	assert.Equal(t, http.StatusAccepted, rr.Code)
}

func TestParamErrors(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(http.MethodGet, "/pools/not-a-day", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.do(http.MethodGet, "/reconciliation/unsettled", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.do(http.MethodGet, "/pools/2024-02-02", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestOperationalRoutes(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	s.do(http.MethodPost, "/contributions", api.ContributionRequest{TicketId: "t1", UserId: "u1", GameDay: mapping.ToDate(day), Amount: 5})
	rr = s.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "prize_pool_accumulator_contributions_total")
}
