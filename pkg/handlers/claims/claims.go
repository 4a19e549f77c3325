package claims

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/chris/daily-prize-pools/pkg/api"
	"github.com/chris/daily-prize-pools/pkg/handlers/respond"
	"github.com/chris/daily-prize-pools/pkg/mapping"
	"github.com/chris/daily-prize-pools/pkg/pool"
)

// ClaimsHandler holds the dependencies for award and settlement handlers.
type ClaimsHandler struct {
	Service pool.ClaimService
	Mapper  *mapping.Mapper
}

// NewClaimsHandler creates a new ClaimsHandler.
func NewClaimsHandler(service pool.ClaimService, mapper *mapping.Mapper) *ClaimsHandler {
	return &ClaimsHandler{Service: service, Mapper: mapper}
}

func (h *ClaimsHandler) GetClaimable(w http.ResponseWriter, r *http.Request, userId string, params api.GetClaimableParams) {
	summary, err := h.Service.Claimable(r.Context(), userId, mapping.FromDate(params.From), mapping.FromDate(params.To))
	if err != nil {
		respond.Error(w, r, "compute claimable", err)
		return
	}
	respond.JSON(w, http.StatusOK, h.Mapper.ToApiClaimable(summary))
}

// RecordSettlement stores that the custody layer paid an award.
func (h *ClaimsHandler) RecordSettlement(w http.ResponseWriter, r *http.Request) {
	var req api.NewSettlement
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	settlement, err := h.Service.RecordSettlement(r.Context(), mapping.ToDomainSettlement(&req))
	if err != nil {
		respond.Error(w, r, "record settlement", err)
		return
	}
	respond.JSON(w, http.StatusCreated, h.Mapper.ToApiSettlement(settlement))
}
