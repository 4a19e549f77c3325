// Package mapping converts between domain models and the API representation.
package mapping

import (
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"github.com/chris/daily-prize-pools/pkg/api"
	"github.com/chris/daily-prize-pools/pkg/gameday"
	"github.com/chris/daily-prize-pools/pkg/models"
	"github.com/chris/daily-prize-pools/pkg/pool"
)

// Mapper renders token amounts with a fixed number of decimals.
type Mapper struct {
	Decimals int32
}

// New returns a Mapper for a token with the given decimals.
func New(decimals int32) *Mapper {
	return &Mapper{Decimals: decimals}
}

// ToApiAmount pairs raw units with their human readable value.
func (m *Mapper) ToApiAmount(units int64) api.Amount {
	return api.Amount{
		Units:   units,
		Display: decimal.New(units, -m.Decimals).StringFixed(m.Decimals),
	}
}

// ToDate converts a game day key. Keys come from storage and are already validated.
func ToDate(day string) openapi_types.Date {
	t, _ := gameday.Parse(day)
	return openapi_types.Date{Time: t}
}

func toDatePtr(day string) *openapi_types.Date {
	if day == "" {
		return nil
	}
	d := ToDate(day)
	return &d
}

// FromDate converts an API date to a game day key.
func FromDate(d openapi_types.Date) string {
	return gameday.Key(d.Time)
}

// ToApiPool converts a pool snapshot. Tier breakdowns are only present after distribution.
func (m *Mapper) ToApiPool(p *models.DailyPrizePool) *api.PrizePool {
	out := &api.PrizePool{
		GameDay:          ToDate(p.GameDay),
		TotalCollected:   m.ToApiAmount(p.TotalCollected),
		TicketCount:      p.TicketCount,
		PoolsDistributed: p.PoolsDistributed,
		PayoutsFinalized: p.PayoutsFinalized,
		Version:          p.Version,
		DistributedAt:    p.DistributedAt,
		FinalizedAt:      p.FinalizedAt,
	}
	if !p.PoolsDistributed {
		return out
	}

	dust := p.RoundingDust
	out.RoundingDust = &dust
	tiers := make([]api.TierPool, 0, len(models.PoolTiers))
	for _, tier := range models.PoolTiers {
		tp := api.TierPool{
			Tier:           api.Tier(tier),
			Base:           m.ToApiAmount(p.TierPools[tier]),
			CarriedForward: m.ToApiAmount(p.CarriedForward[tier]),
			Final:          m.ToApiAmount(p.FinalTierPools[tier]),
		}
		if tier.IsPrize() {
			released := p.ReserveReleased[tier]
			depth := p.CarryDepth[tier]
			tp.ReserveReleased = &released
			tp.CarryDepth = &depth
			tp.CarrySourceDay = toDatePtr(p.CarrySourceDay[tier])
		}
		tiers = append(tiers, tp)
	}
	out.Tiers = &tiers
	return out
}

// ToApiPools converts a list of pools.
func (m *Mapper) ToApiPools(pools []models.DailyPrizePool) []*api.PrizePool {
	out := make([]*api.PrizePool, len(pools))
	for i := range pools {
		out[i] = m.ToApiPool(&pools[i])
	}
	return out
}

// ToApiCarryForward converts the carry a day would inherit.
func (m *Mapper) ToApiCarryForward(day string, carry pool.CarryForward) *api.CarryForward {
	out := &api.CarryForward{GameDay: ToDate(day), Tiers: make([]api.CarryTier, 0, len(models.PrizeTiers))}
	for _, tier := range models.PrizeTiers {
		out.Tiers = append(out.Tiers, api.CarryTier{
			Tier:      api.Tier(tier),
			Amount:    m.ToApiAmount(carry.Amounts[tier]),
			Depth:     carry.Depth[tier],
			SourceDay: toDatePtr(carry.SourceDay[tier]),
		})
	}
	return out
}

// ToApiDistribution converts a payout record.
func (m *Mapper) ToApiDistribution(r *models.PrizeDistributionRecord) *api.PrizeDistribution {
	winners := make([]api.WinnerAward, len(r.Winners))
	for i, w := range r.Winners {
		winners[i] = api.WinnerAward{
			UserId:    w.UserID,
			WalletRef: w.WalletRef,
			TicketId:  w.TicketID,
			Amount:    m.ToApiAmount(w.AmountAwarded),
		}
	}
	return &api.PrizeDistribution{
		GameDay:            ToDate(r.GameDay),
		Tier:               api.Tier(r.Tier),
		TotalWinners:       r.TotalWinners,
		TotalPrizePoolUsed: m.ToApiAmount(r.TotalPrizePoolUsed),
		PerWinnerAmount:    m.ToApiAmount(r.PerWinnerAmount),
		Remainder:          m.ToApiAmount(r.Remainder),
		Winners:            winners,
		ReserveActivated:   r.ReserveActivatedThisRecord,
		CreatedAt:          r.CreatedAt,
	}
}

// ToApiDistributions converts a day's payout records.
func (m *Mapper) ToApiDistributions(records []models.PrizeDistributionRecord) []*api.PrizeDistribution {
	out := make([]*api.PrizeDistribution, len(records))
	for i := range records {
		out[i] = m.ToApiDistribution(&records[i])
	}
	return out
}

// ToApiPoolTransactions converts audit entries.
func (m *Mapper) ToApiPoolTransactions(txs []models.PoolTransaction) []*api.PoolTransaction {
	out := make([]*api.PoolTransaction, len(txs))
	for i, tx := range txs {
		apiTx := &api.PoolTransaction{
			Id:        tx.ID,
			GameDay:   ToDate(tx.GameDay),
			Type:      api.PoolTransactionType(tx.Type),
			Amount:    m.ToApiAmount(tx.Amount),
			CreatedAt: tx.CreatedAt,
		}
		if tx.Tier != "" {
			tier := api.Tier(tx.Tier)
			apiTx.Tier = &tier
		}
		if tx.TicketID != "" {
			ticketID := tx.TicketID
			apiTx.TicketId = &ticketID
		}
		if tx.UserID != "" {
			userID := tx.UserID
			apiTx.UserId = &userID
		}
		out[i] = apiTx
	}
	return out
}

// ToApiClaimable converts a user's award summary.
func (m *Mapper) ToApiClaimable(c *pool.Claimable) *api.Claimable {
	awards := make([]api.ClaimableAward, len(c.Awards))
	for i, a := range c.Awards {
		awards[i] = api.ClaimableAward{
			GameDay:  ToDate(a.GameDay),
			Tier:     api.Tier(a.Tier),
			TicketId: a.TicketID,
			Amount:   m.ToApiAmount(a.Amount),
			Settled:  a.Settled,
		}
	}
	return &api.Claimable{
		UserId:    c.UserID,
		From:      ToDate(c.From),
		To:        ToDate(c.To),
		Awarded:   m.ToApiAmount(c.Awarded),
		Settled:   m.ToApiAmount(c.Settled),
		Claimable: m.ToApiAmount(c.Claimable),
		Awards:    awards,
	}
}

// ToDomainContribution converts a contribution request.
func ToDomainContribution(req *api.ContributionRequest) pool.ContributionRequest {
	return pool.ContributionRequest{
		TicketID: req.TicketId,
		UserID:   req.UserId,
		GameDay:  FromDate(req.GameDay),
		Amount:   req.Amount,
	}
}

// ToDomainWinners converts the winners of a payout request.
func ToDomainWinners(req *api.PayoutRequest) []models.Winner {
	winners := make([]models.Winner, len(req.Winners))
	for i, w := range req.Winners {
		winners[i] = models.Winner{UserID: w.UserId, WalletRef: w.WalletRef, TicketID: w.TicketId}
	}
	return winners
}

// ToDomainSettlement converts a settlement report.
func ToDomainSettlement(s *api.NewSettlement) models.Settlement {
	out := models.Settlement{
		UserID:   s.UserId,
		TicketID: s.TicketId,
		GameDay:  FromDate(s.GameDay),
		Tier:     models.Tier(s.Tier),
		Amount:   s.Amount,
	}
	if s.TxRef != nil {
		out.TxRef = *s.TxRef
	}
	return out
}

// ToApiSettlement converts a stored settlement.
func (m *Mapper) ToApiSettlement(s *models.Settlement) *api.Settlement {
	out := &api.Settlement{
		UserId:    s.UserID,
		TicketId:  s.TicketID,
		GameDay:   ToDate(s.GameDay),
		Tier:      api.Tier(s.Tier),
		Amount:    m.ToApiAmount(s.Amount),
		SettledAt: s.SettledAt,
	}
	if s.TxRef != "" {
		ref := s.TxRef
		out.TxRef = &ref
	}
	return out
}

// ToApiSettlementJob converts a queued settlement job.
func ToApiSettlementJob(job models.SettlementJob) *api.SettlementJob {
	return &api.SettlementJob{GameDay: ToDate(job.GameDay), Attempt: job.Attempt}
}
