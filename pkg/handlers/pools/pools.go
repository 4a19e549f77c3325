package pools

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/chris/daily-prize-pools/pkg/api"
	"github.com/chris/daily-prize-pools/pkg/handlers/respond"
	"github.com/chris/daily-prize-pools/pkg/mapping"
	"github.com/chris/daily-prize-pools/pkg/pool"
)

// PoolsHandler holds the dependencies for pool-related handlers.
type PoolsHandler struct {
	Service pool.PoolService
	Mapper  *mapping.Mapper
}

// NewPoolsHandler creates a new PoolsHandler.
func NewPoolsHandler(service pool.PoolService, mapper *mapping.Mapper) *PoolsHandler {
	return &PoolsHandler{Service: service, Mapper: mapper}
}

// Contribute adds a ticket's price to its day's pool.
func (h *PoolsHandler) Contribute(w http.ResponseWriter, r *http.Request) {
	var req api.ContributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	accepted, err := h.Service.Contribute(r.Context(), mapping.ToDomainContribution(&req))
	if err != nil {
		respond.Error(w, r, "record contribution", err)
		return
	}

	result := &api.ContributionResult{TicketId: req.TicketId, GameDay: req.GameDay, Accepted: accepted}
	if !accepted {
		// The game day closed before the ticket arrived.
		respond.JSON(w, http.StatusConflict, result)
		return
	}
	respond.JSON(w, http.StatusCreated, result)
}

func (h *PoolsHandler) GetPool(w http.ResponseWriter, r *http.Request, gameDay api.GameDay) {
	p, err := h.Service.Snapshot(r.Context(), mapping.FromDate(gameDay))
	if err != nil {
		respond.Error(w, r, "retrieve pool", err)
		return
	}
	respond.JSON(w, http.StatusOK, h.Mapper.ToApiPool(p))
}

// GetCarryForward reports what the day would inherit if it were distributed now.
func (h *PoolsHandler) GetCarryForward(w http.ResponseWriter, r *http.Request, gameDay api.GameDay) {
	day := mapping.FromDate(gameDay)
	carry, err := h.Service.ComputeCarryForward(r.Context(), day)
	if err != nil {
		respond.Error(w, r, "compute carry-forward", err)
		return
	}
	respond.JSON(w, http.StatusOK, h.Mapper.ToApiCarryForward(day, carry))
}

func (h *PoolsHandler) DistributePool(w http.ResponseWriter, r *http.Request, gameDay api.GameDay) {
	p, err := h.Service.Distribute(r.Context(), mapping.FromDate(gameDay))
	if err != nil {
		respond.Error(w, r, "distribute pool", err)
		return
	}
	respond.JSON(w, http.StatusOK, h.Mapper.ToApiPool(p))
}

func (h *PoolsHandler) ListDistributions(w http.ResponseWriter, r *http.Request, gameDay api.GameDay) {
	records, err := h.Service.DistributionHistory(r.Context(), mapping.FromDate(gameDay))
	if err != nil {
		respond.Error(w, r, "retrieve distributions", err)
		return
	}
	respond.JSON(w, http.StatusOK, h.Mapper.ToApiDistributions(records))
}

func (h *PoolsHandler) ListPoolTransactions(w http.ResponseWriter, r *http.Request, gameDay api.GameDay) {
	txs, err := h.Service.PoolTransactions(r.Context(), mapping.FromDate(gameDay))
	if err != nil {
		respond.Error(w, r, "retrieve pool transactions", err)
		return
	}
	respond.JSON(w, http.StatusOK, h.Mapper.ToApiPoolTransactions(txs))
}

// ListUnsettledPools lists the pools before a day whose payouts are still open.
func (h *PoolsHandler) ListUnsettledPools(w http.ResponseWriter, r *http.Request, params api.ListUnsettledPoolsParams) {
	pools, err := h.Service.ListUnsettledPools(r.Context(), mapping.FromDate(params.Before))
	if err != nil {
		respond.Error(w, r, "list unsettled pools", err)
		return
	}
	respond.JSON(w, http.StatusOK, h.Mapper.ToApiPools(pools))
}
