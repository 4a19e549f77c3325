package models

import (
	"time"
)

// Tier identifies a prize tier or the development cut of a pool.
type Tier string

const (
	TierFirst       Tier = "first"
	TierSecond      Tier = "second"
	TierThird       Tier = "third"
	TierFreeTicket  Tier = "free_ticket"
	TierDevelopment Tier = "development"
	TierNone        Tier = "none"
)

// PrizeTiers are the tiers that are paid out of the pool.
var PrizeTiers = []Tier{TierFirst, TierSecond, TierThird}

// PoolTiers are the tiers a pool is split into at distribution time.
var PoolTiers = []Tier{TierFirst, TierSecond, TierThird, TierDevelopment}

// IsPrize reports whether winners of the tier are paid from the pool.
func (t Tier) IsPrize() bool {
	return t == TierFirst || t == TierSecond || t == TierThird
}

// PoolTransactionType is the kind of an audit entry written against a pool.
type PoolTransactionType string

const (
	PoolTxContribution PoolTransactionType = "contribution"
	PoolTxDistribution PoolTransactionType = "distribution"
	PoolTxPayout       PoolTransactionType = "payout"
)

// DailyPrizePool is the money accounting record for one game day.
type DailyPrizePool struct {
	GameDay          string          `json:"game_day" dynamodbav:"game_day"`
	TotalCollected   int64           `json:"total_collected" dynamodbav:"total_collected"`
	TicketCount      int64           `json:"ticket_count" dynamodbav:"ticket_count"`
	PoolsDistributed bool            `json:"pools_distributed" dynamodbav:"pools_distributed"`
	TierPools        map[Tier]int64  `json:"tier_pools,omitempty" dynamodbav:"tier_pools,omitempty"`
	CarriedForward   map[Tier]int64  `json:"carried_forward,omitempty" dynamodbav:"carried_forward,omitempty"`
	FinalTierPools   map[Tier]int64  `json:"final_tier_pools,omitempty" dynamodbav:"final_tier_pools,omitempty"`
	ReserveReleased  map[Tier]bool   `json:"reserve_released,omitempty" dynamodbav:"reserve_released,omitempty"`
	RoundingDust     int64           `json:"rounding_dust" dynamodbav:"rounding_dust"`
	CarryDepth       map[Tier]int    `json:"carry_depth,omitempty" dynamodbav:"carry_depth,omitempty"`
	CarrySourceDay   map[Tier]string `json:"carry_source_day,omitempty" dynamodbav:"carry_source_day,omitempty"`
	PayoutsFinalized bool            `json:"payouts_finalized" dynamodbav:"payouts_finalized"`
	Version          int64           `json:"version" dynamodbav:"version"`
	CreatedAt        time.Time       `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" dynamodbav:"updated_at"`
	DistributedAt    *time.Time      `json:"distributed_at,omitempty" dynamodbav:"distributed_at,omitempty"`
	FinalizedAt      *time.Time      `json:"finalized_at,omitempty" dynamodbav:"finalized_at,omitempty"`
}

// Clone returns a deep copy of the pool.
func (p *DailyPrizePool) Clone() *DailyPrizePool {
	if p == nil {
		return nil
	}
	c := *p
	c.TierPools = cloneMap(p.TierPools)
	c.CarriedForward = cloneMap(p.CarriedForward)
	c.FinalTierPools = cloneMap(p.FinalTierPools)
	c.ReserveReleased = cloneMap(p.ReserveReleased)
	c.CarryDepth = cloneMap(p.CarryDepth)
	c.CarrySourceDay = cloneMap(p.CarrySourceDay)
	if p.DistributedAt != nil {
		t := *p.DistributedAt
		c.DistributedAt = &t
	}
	if p.FinalizedAt != nil {
		t := *p.FinalizedAt
		c.FinalizedAt = &t
	}
	return &c
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// TicketPurchase records the revenue one ticket added to a pool.
type TicketPurchase struct {
	TicketID    string    `json:"ticket_id" dynamodbav:"ticket_id"`
	UserID      string    `json:"user_id" dynamodbav:"user_id"`
	GameDay     string    `json:"game_day" dynamodbav:"game_day"`
	Amount      int64     `json:"amount" dynamodbav:"amount"`
	PurchasedAt time.Time `json:"purchased_at" dynamodbav:"purchased_at"`
}

// PoolTransaction is an audit entry for money moving into, across or out of a pool.
type PoolTransaction struct {
	ID        string              `json:"id" dynamodbav:"tx_id"`
	GameDay   string              `json:"game_day" dynamodbav:"game_day"`
	Type      PoolTransactionType `json:"type" dynamodbav:"type"`
	Tier      Tier                `json:"tier,omitempty" dynamodbav:"tier,omitempty"`
	Amount    int64               `json:"amount" dynamodbav:"amount"`
	TicketID  string              `json:"ticket_id,omitempty" dynamodbav:"ticket_id,omitempty"`
	UserID    string              `json:"user_id,omitempty" dynamodbav:"user_id,omitempty"`
	CreatedAt time.Time           `json:"created_at" dynamodbav:"created_at"`
}

// Winner is a ticket holder entitled to a share of a tier.
type Winner struct {
	UserID    string `json:"user_id"`
	WalletRef string `json:"wallet_ref"`
	TicketID  string `json:"ticket_id"`
}

// WinnerAward is the share of a tier paid to a single ticket.
type WinnerAward struct {
	UserID        string `json:"user_id" dynamodbav:"user_id"`
	WalletRef     string `json:"wallet_ref" dynamodbav:"wallet_ref"`
	TicketID      string `json:"ticket_id" dynamodbav:"ticket_id"`
	AmountAwarded int64  `json:"amount_awarded" dynamodbav:"amount_awarded"`
}

// PrizeDistributionRecord is the payout of one tier on one game day.
type PrizeDistributionRecord struct {
	GameDay                    string        `json:"game_day" dynamodbav:"game_day"`
	Tier                       Tier          `json:"tier" dynamodbav:"tier"`
	TotalWinners               int           `json:"total_winners" dynamodbav:"total_winners"`
	TotalPrizePoolUsed         int64         `json:"total_prize_pool_used" dynamodbav:"total_prize_pool_used"`
	PerWinnerAmount            int64         `json:"per_winner_amount" dynamodbav:"per_winner_amount"`
	Remainder                  int64         `json:"remainder" dynamodbav:"remainder"`
	Winners                    []WinnerAward `json:"winners" dynamodbav:"winners"`
	ReserveActivatedThisRecord bool          `json:"reserve_activated_this_record" dynamodbav:"reserve_activated_this_record"`
	CreatedAt                  time.Time     `json:"created_at" dynamodbav:"created_at"`
}

// Ticket is a purchased ticket as held by the ticket ledger.
type Ticket struct {
	TicketID  string `json:"ticket_id" dynamodbav:"ticket_id"`
	OwnerID   string `json:"owner_id" dynamodbav:"owner_id"`
	WalletRef string `json:"wallet_ref" dynamodbav:"wallet_ref"`
	GameDay   string `json:"game_day" dynamodbav:"game_day"`
	Numbers   [4]int `json:"numbers" dynamodbav:"numbers"`
	Claimed   bool   `json:"claimed" dynamodbav:"claimed"`
}

// DrawResult is the oracle's outcome for a game day.
type DrawResult struct {
	GameDay        string    `json:"game_day" dynamodbav:"game_day"`
	WinningNumbers [4]int    `json:"winning_numbers" dynamodbav:"winning_numbers"`
	Executed       bool      `json:"executed" dynamodbav:"executed"`
	DrawnAt        time.Time `json:"drawn_at" dynamodbav:"drawn_at"`
}

// TicketMatch is a classified ticket that won something.
type TicketMatch struct {
	GameDay   string `json:"game_day" dynamodbav:"game_day"`
	TicketID  string `json:"ticket_id" dynamodbav:"ticket_id"`
	OwnerID   string `json:"owner_id" dynamodbav:"owner_id"`
	WalletRef string `json:"wallet_ref" dynamodbav:"wallet_ref"`
	Tier      Tier   `json:"tier" dynamodbav:"tier"`
}

// ScanCursor tracks how far the settlement scan of a day has progressed.
type ScanCursor struct {
	GameDay   string    `json:"game_day" dynamodbav:"game_day"`
	Cursor    string    `json:"cursor" dynamodbav:"cursor"`
	Processed int64     `json:"processed" dynamodbav:"processed"`
	Matched   int64     `json:"matched" dynamodbav:"matched"`
	Done      bool      `json:"done" dynamodbav:"done"`
	Version   int64     `json:"version" dynamodbav:"version"`
	UpdatedAt time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

// Settlement records that an award was paid out to its owner by the custody layer.
type Settlement struct {
	UserID    string    `json:"user_id" dynamodbav:"user_id"`
	TicketID  string    `json:"ticket_id" dynamodbav:"ticket_id"`
	GameDay   string    `json:"game_day" dynamodbav:"game_day"`
	Tier      Tier      `json:"tier" dynamodbav:"tier"`
	Amount    int64     `json:"amount" dynamodbav:"amount"`
	TxRef     string    `json:"tx_ref,omitempty" dynamodbav:"tx_ref,omitempty"`
	SettledAt time.Time `json:"settled_at" dynamodbav:"settled_at"`
}

// SettlementJob is the queue message that drives the settlement of a day.
type SettlementJob struct {
	GameDay string `json:"game_day"`
	Attempt int    `json:"attempt"`
}
