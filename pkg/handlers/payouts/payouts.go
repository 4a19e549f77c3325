package payouts

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/chris/daily-prize-pools/pkg/api"
	"github.com/chris/daily-prize-pools/pkg/handlers/respond"
	"github.com/chris/daily-prize-pools/pkg/mapping"
	"github.com/chris/daily-prize-pools/pkg/models"
	"github.com/chris/daily-prize-pools/pkg/pool"
	"github.com/chris/daily-prize-pools/pkg/scheduler"
)

// PayoutsHandler holds the dependencies for payout and settlement handlers.
type PayoutsHandler struct {
	Service   pool.PayoutService
	Scheduler scheduler.Scheduler
	Mapper    *mapping.Mapper
}

// NewPayoutsHandler creates a new PayoutsHandler.
func NewPayoutsHandler(service pool.PayoutService, scheduler scheduler.Scheduler, mapper *mapping.Mapper) *PayoutsHandler {
	return &PayoutsHandler{Service: service, Scheduler: scheduler, Mapper: mapper}
}

// PayoutTier pays a tier's winners. An empty winner list pays nothing and answers 204.
func (h *PayoutsHandler) PayoutTier(w http.ResponseWriter, r *http.Request, gameDay api.GameDay, tier api.Tier) {
	var req api.PayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	record, err := h.Service.Payout(r.Context(), mapping.FromDate(gameDay), models.Tier(tier), mapping.ToDomainWinners(&req))
	if err != nil {
		respond.Error(w, r, "pay out tier", err)
		return
	}
	if record == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respond.JSON(w, http.StatusOK, h.Mapper.ToApiDistribution(record))
}

func (h *PayoutsHandler) FinalizePayouts(w http.ResponseWriter, r *http.Request, gameDay api.GameDay) {
	p, err := h.Service.FinalizePayouts(r.Context(), mapping.FromDate(gameDay))
	if err != nil {
		respond.Error(w, r, "finalize payouts", err)
		return
	}
	respond.JSON(w, http.StatusOK, h.Mapper.ToApiPool(p))
}

// ScheduleSettlement enqueues the settlement of a day for the worker.
func (h *PayoutsHandler) ScheduleSettlement(w http.ResponseWriter, r *http.Request, gameDay api.GameDay) {
	if h.Scheduler == nil {
		http.Error(w, "Settlement queue is not configured", http.StatusServiceUnavailable)
		return
	}

	job := models.SettlementJob{GameDay: mapping.FromDate(gameDay), Attempt: 1}
	if err := h.Scheduler.ScheduleSettlement(r.Context(), job, 0); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("game_day", job.GameDay).Msg("failed to enqueue settlement")
		http.Error(w, fmt.Sprintf("Failed to schedule settlement: %v", err), http.StatusInternalServerError)
		return
	}
	respond.JSON(w, http.StatusAccepted, mapping.ToApiSettlementJob(job))
}
