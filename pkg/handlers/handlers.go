package handlers

import (
	"github.com/chris/daily-prize-pools/pkg/api"
	"github.com/chris/daily-prize-pools/pkg/handlers/claims"
	"github.com/chris/daily-prize-pools/pkg/handlers/payouts"
	"github.com/chris/daily-prize-pools/pkg/handlers/pools"
	"github.com/chris/daily-prize-pools/pkg/mapping"
	"github.com/chris/daily-prize-pools/pkg/pool"
	"github.com/chris/daily-prize-pools/pkg/scheduler"
)

// ApiHandler implements the generated server interface by composing the handler groups.
type ApiHandler struct {
	*pools.PoolsHandler
	*payouts.PayoutsHandler
	*claims.ClaimsHandler
}

// NewApiHandler wires every handler group to the engine.
func NewApiHandler(service pool.Service, sched scheduler.Scheduler, mapper *mapping.Mapper) *ApiHandler {
	return &ApiHandler{
		PoolsHandler:   pools.NewPoolsHandler(service, mapper),
		PayoutsHandler: payouts.NewPayoutsHandler(service, sched, mapper),
		ClaimsHandler:  claims.NewClaimsHandler(service, mapper),
	}
}

// Make sure we conform to the interface
var _ api.ServerInterface = (*ApiHandler)(nil)
