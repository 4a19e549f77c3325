package sqlstore

import (
	"time"

	"github.com/chris/daily-prize-pools/pkg/models"
)

type poolRow struct {
	GameDay          string                 `gorm:"column:game_day;primaryKey;size:10"`
	TotalCollected   int64                  `gorm:"column:total_collected;not null;default:0"`
	TicketCount      int64                  `gorm:"column:ticket_count;not null;default:0"`
	PoolsDistributed bool                   `gorm:"column:pools_distributed;not null;default:false"`
	TierPools        map[models.Tier]int64  `gorm:"column:tier_pools;serializer:json"`
	CarriedForward   map[models.Tier]int64  `gorm:"column:carried_forward;serializer:json"`
	FinalTierPools   map[models.Tier]int64  `gorm:"column:final_tier_pools;serializer:json"`
	ReserveReleased  map[models.Tier]bool   `gorm:"column:reserve_released;serializer:json"`
	RoundingDust     int64                  `gorm:"column:rounding_dust;not null;default:0"`
	CarryDepth       map[models.Tier]int    `gorm:"column:carry_depth;serializer:json"`
	CarrySourceDay   map[models.Tier]string `gorm:"column:carry_source_day;serializer:json"`
	PayoutsFinalized bool                   `gorm:"column:payouts_finalized;not null;default:false;index"`
	Version          int64                  `gorm:"column:version;not null;default:0"`
	CreatedAt        time.Time              `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt        time.Time              `gorm:"column:updated_at;autoUpdateTime:false"`
	DistributedAt    *time.Time             `gorm:"column:distributed_at"`
	FinalizedAt      *time.Time             `gorm:"column:finalized_at"`
}

func (poolRow) TableName() string { return "daily_prize_pools" }

func newPoolRow(p *models.DailyPrizePool) poolRow {
	return poolRow{
		GameDay:          p.GameDay,
		TotalCollected:   p.TotalCollected,
		TicketCount:      p.TicketCount,
		PoolsDistributed: p.PoolsDistributed,
		TierPools:        p.TierPools,
		CarriedForward:   p.CarriedForward,
		FinalTierPools:   p.FinalTierPools,
		ReserveReleased:  p.ReserveReleased,
		RoundingDust:     p.RoundingDust,
		CarryDepth:       p.CarryDepth,
		CarrySourceDay:   p.CarrySourceDay,
		PayoutsFinalized: p.PayoutsFinalized,
		Version:          p.Version,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		DistributedAt:    p.DistributedAt,
		FinalizedAt:      p.FinalizedAt,
	}
}

func (r poolRow) model() *models.DailyPrizePool {
	return &models.DailyPrizePool{
		GameDay:          r.GameDay,
		TotalCollected:   r.TotalCollected,
		TicketCount:      r.TicketCount,
		PoolsDistributed: r.PoolsDistributed,
		TierPools:        r.TierPools,
		CarriedForward:   r.CarriedForward,
		FinalTierPools:   r.FinalTierPools,
		ReserveReleased:  r.ReserveReleased,
		RoundingDust:     r.RoundingDust,
		CarryDepth:       r.CarryDepth,
		CarrySourceDay:   r.CarrySourceDay,
		PayoutsFinalized: r.PayoutsFinalized,
		Version:          r.Version,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
		DistributedAt:    r.DistributedAt,
		FinalizedAt:      r.FinalizedAt,
	}
}

type purchaseRow struct {
	TicketID    string    `gorm:"column:ticket_id;primaryKey"`
	UserID      string    `gorm:"column:user_id;not null"`
	GameDay     string    `gorm:"column:game_day;not null;index"`
	Amount      int64     `gorm:"column:amount;not null"`
	PurchasedAt time.Time `gorm:"column:purchased_at"`
}

func (purchaseRow) TableName() string { return "ticket_purchases" }

type poolTxRow struct {
	GameDay   string    `gorm:"column:game_day;primaryKey"`
	TxID      string    `gorm:"column:tx_id;primaryKey"`
	Type      string    `gorm:"column:type;not null"`
	Tier      string    `gorm:"column:tier"`
	Amount    int64     `gorm:"column:amount;not null"`
	TicketID  string    `gorm:"column:ticket_id"`
	UserID    string    `gorm:"column:user_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime:false"`
}

func (poolTxRow) TableName() string { return "pool_transactions" }

func newPoolTxRow(tx models.PoolTransaction) poolTxRow {
	return poolTxRow{
		GameDay:   tx.GameDay,
		TxID:      tx.ID,
		Type:      string(tx.Type),
		Tier:      string(tx.Tier),
		Amount:    tx.Amount,
		TicketID:  tx.TicketID,
		UserID:    tx.UserID,
		CreatedAt: tx.CreatedAt,
	}
}

type distributionRow struct {
	GameDay            string               `gorm:"column:game_day;primaryKey"`
	Tier               string               `gorm:"column:tier;primaryKey"`
	TotalWinners       int                  `gorm:"column:total_winners;not null"`
	TotalPrizePoolUsed int64                `gorm:"column:total_prize_pool_used;not null"`
	PerWinnerAmount    int64                `gorm:"column:per_winner_amount;not null"`
	Remainder          int64                `gorm:"column:remainder;not null"`
	Winners            []models.WinnerAward `gorm:"column:winners;serializer:json"`
	ReserveActivated   bool                 `gorm:"column:reserve_activated_this_record"`
	CreatedAt          time.Time            `gorm:"column:created_at;autoCreateTime:false"`
}

func (distributionRow) TableName() string { return "prize_distributions" }

func (r distributionRow) model() models.PrizeDistributionRecord {
	return models.PrizeDistributionRecord{
		GameDay:                    r.GameDay,
		Tier:                       models.Tier(r.Tier),
		TotalWinners:               r.TotalWinners,
		TotalPrizePoolUsed:         r.TotalPrizePoolUsed,
		PerWinnerAmount:            r.PerWinnerAmount,
		Remainder:                  r.Remainder,
		Winners:                    r.Winners,
		ReserveActivatedThisRecord: r.ReserveActivated,
		CreatedAt:                  r.CreatedAt,
	}
}

type ticketRow struct {
	TicketID  string `gorm:"column:ticket_id;primaryKey"`
	GameDay   string `gorm:"column:game_day;not null;index"`
	OwnerID   string `gorm:"column:owner_id;not null"`
	WalletRef string `gorm:"column:wallet_ref"`
	Numbers   [4]int `gorm:"column:numbers;serializer:json"`
	Claimed   bool   `gorm:"column:claimed"`
}

func (ticketRow) TableName() string { return "tickets" }

type drawRow struct {
	GameDay        string    `gorm:"column:game_day;primaryKey"`
	WinningNumbers [4]int    `gorm:"column:winning_numbers;serializer:json"`
	Executed       bool      `gorm:"column:executed"`
	DrawnAt        time.Time `gorm:"column:drawn_at"`
}

func (drawRow) TableName() string { return "draw_results" }

type scanCursorRow struct {
	GameDay   string    `gorm:"column:game_day;primaryKey"`
	Cursor    string    `gorm:"column:cursor"`
	Processed int64     `gorm:"column:processed"`
	Matched   int64     `gorm:"column:matched"`
	Done      bool      `gorm:"column:done"`
	Version   int64     `gorm:"column:version;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (scanCursorRow) TableName() string { return "scan_cursors" }

type matchRow struct {
	GameDay   string `gorm:"column:game_day;primaryKey"`
	TicketID  string `gorm:"column:ticket_id;primaryKey"`
	OwnerID   string `gorm:"column:owner_id"`
	WalletRef string `gorm:"column:wallet_ref"`
	Tier      string `gorm:"column:tier;index"`
}

func (matchRow) TableName() string { return "ticket_matches" }

type settlementRow struct {
	UserID    string    `gorm:"column:user_id;primaryKey"`
	TicketID  string    `gorm:"column:ticket_id;primaryKey"`
	GameDay   string    `gorm:"column:game_day;not null"`
	Tier      string    `gorm:"column:tier;not null"`
	Amount    int64     `gorm:"column:amount;not null"`
	TxRef     string    `gorm:"column:tx_ref"`
	SettledAt time.Time `gorm:"column:settled_at"`
}

func (settlementRow) TableName() string { return "settlements" }
