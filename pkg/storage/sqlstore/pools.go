package sqlstore

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/chris/daily-prize-pools/pkg/models"
	"github.com/chris/daily-prize-pools/pkg/storage"
)

func (s *Store) GetPool(ctx context.Context, gameDay string) (*models.DailyPrizePool, error) {
	var row poolRow
	if err := s.db.WithContext(ctx).Where("game_day = ?", gameDay).First(&row).Error; err != nil {
		if isNotFound(err) {
			return nil, storage.ErrPoolNotFound
		}
		return nil, err
	}
	return row.model(), nil
}

func (s *Store) GetTicketPurchase(ctx context.Context, ticketID string) (*models.TicketPurchase, error) {
	var row purchaseRow
	if err := s.db.WithContext(ctx).Where("ticket_id = ?", ticketID).First(&row).Error; err != nil {
		if isNotFound(err) {
			return nil, storage.ErrPurchaseNotFound
		}
		return nil, err
	}
	return &models.TicketPurchase{
		TicketID:    row.TicketID,
		UserID:      row.UserID,
		GameDay:     row.GameDay,
		Amount:      row.Amount,
		PurchasedAt: row.PurchasedAt,
	}, nil
}

func (s *Store) ListPoolTransactions(ctx context.Context, gameDay string) ([]models.PoolTransaction, error) {
	var rows []poolTxRow
	if err := s.db.WithContext(ctx).Where("game_day = ?", gameDay).Order("tx_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	txs := make([]models.PoolTransaction, 0, len(rows))
	for _, r := range rows {
		txs = append(txs, models.PoolTransaction{
			ID:        r.TxID,
			GameDay:   r.GameDay,
			Type:      models.PoolTransactionType(r.Type),
			Tier:      models.Tier(r.Tier),
			Amount:    r.Amount,
			TicketID:  r.TicketID,
			UserID:    r.UserID,
			CreatedAt: r.CreatedAt,
		})
	}
	return txs, nil
}

func (s *Store) ListUnsettledPools(ctx context.Context) ([]models.DailyPrizePool, error) {
	var rows []poolRow
	if err := s.db.WithContext(ctx).Where("payouts_finalized = ?", false).Order("game_day").Find(&rows).Error; err != nil {
		return nil, err
	}
	pools := make([]models.DailyPrizePool, 0, len(rows))
	for _, r := range rows {
		pools = append(pools, *r.model())
	}
	return pools, nil
}

func (s *Store) CreatePool(ctx context.Context, pool *models.DailyPrizePool) error {
	row := newPoolRow(pool)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isDuplicate(err) {
			return storage.ErrPoolExists
		}
		return err
	}
	return nil
}

func (s *Store) CommitContribution(ctx context.Context, purchase *models.TicketPurchase, audit *models.PoolTransaction) error {
	return s.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		var existing int64
		if err := dbtx.Model(&purchaseRow{}).Where("ticket_id = ?", purchase.TicketID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return storage.ErrDuplicateTicket
		}

		result := dbtx.Model(&poolRow{}).
			Where("game_day = ? AND pools_distributed = ?", purchase.GameDay, false).
			Updates(map[string]interface{}{
				"total_collected": gorm.Expr("total_collected + ?", purchase.Amount),
				"ticket_count":    gorm.Expr("ticket_count + 1"),
				"version":         gorm.Expr("version + 1"),
				"updated_at":      purchase.PurchasedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return storage.ErrPoolClosed
		}

		row := purchaseRow{
			TicketID:    purchase.TicketID,
			UserID:      purchase.UserID,
			GameDay:     purchase.GameDay,
			Amount:      purchase.Amount,
			PurchasedAt: purchase.PurchasedAt,
		}
		if err := dbtx.Create(&row).Error; err != nil {
			if isDuplicate(err) {
				return storage.ErrDuplicateTicket
			}
			return err
		}

		txRow := newPoolTxRow(*audit)
		return dbtx.Create(&txRow).Error
	})
}

func (s *Store) CommitDistribution(ctx context.Context, pool *models.DailyPrizePool, expectedVersion int64, audit []models.PoolTransaction) error {
	return s.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		row := newPoolRow(pool)
		result := dbtx.Model(&row).
			Where("version = ? AND pools_distributed = ?", expectedVersion, false).
			Select("*").
			Updates(&row)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return s.missingOrConflict(dbtx, pool.GameDay)
		}

		if len(audit) == 0 {
			return nil
		}
		rows := make([]poolTxRow, 0, len(audit))
		for _, tx := range audit {
			rows = append(rows, newPoolTxRow(tx))
		}
		return dbtx.Create(&rows).Error
	})
}

func (s *Store) CommitPayout(ctx context.Context, record *models.PrizeDistributionRecord, expectedVersion int64, audit *models.PoolTransaction) error {
	return s.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		var existing int64
		err := dbtx.Model(&distributionRow{}).
			Where("game_day = ? AND tier = ?", record.GameDay, string(record.Tier)).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return storage.ErrDistributionExists
		}

		var pool poolRow
		err = dbtx.Where("game_day = ? AND version = ? AND pools_distributed = ? AND payouts_finalized = ?",
			record.GameDay, expectedVersion, true, false).First(&pool).Error
		if err != nil {
			if isNotFound(err) {
				return storage.ErrConcurrencyConflict
			}
			return err
		}

		if pool.ReserveReleased == nil {
			pool.ReserveReleased = make(map[models.Tier]bool)
		}
		pool.ReserveReleased[record.Tier] = true
		pool.Version = expectedVersion + 1
		pool.UpdatedAt = record.CreatedAt
		result := dbtx.Model(&pool).
			Where("version = ?", expectedVersion).
			Select("reserve_released", "version", "updated_at").
			Updates(&pool)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return storage.ErrConcurrencyConflict
		}

		dist := distributionRow{
			GameDay:            record.GameDay,
			Tier:               string(record.Tier),
			TotalWinners:       record.TotalWinners,
			TotalPrizePoolUsed: record.TotalPrizePoolUsed,
			PerWinnerAmount:    record.PerWinnerAmount,
			Remainder:          record.Remainder,
			Winners:            record.Winners,
			ReserveActivated:   record.ReserveActivatedThisRecord,
			CreatedAt:          record.CreatedAt,
		}
		if err := dbtx.Create(&dist).Error; err != nil {
			if isDuplicate(err) {
				return storage.ErrDistributionExists
			}
			return err
		}

		txRow := newPoolTxRow(*audit)
		return dbtx.Create(&txRow).Error
	})
}

func (s *Store) FinalizePool(ctx context.Context, gameDay string, expectedVersion int64, at time.Time) error {
	db := s.db.WithContext(ctx)
	result := db.Model(&poolRow{}).
		Where("game_day = ? AND version = ? AND pools_distributed = ?", gameDay, expectedVersion, true).
		Updates(map[string]interface{}{
			"payouts_finalized": true,
			"finalized_at":      at,
			"updated_at":        at,
			"version":           gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return s.missingOrConflict(db, gameDay)
	}
	return nil
}

// missingOrConflict explains why a guarded pool update matched no row.
func (s *Store) missingOrConflict(db *gorm.DB, gameDay string) error {
	var n int64
	if err := db.Model(&poolRow{}).Where("game_day = ?", gameDay).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrPoolNotFound
	}
	return storage.ErrConcurrencyConflict
}
