package sqlstore

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chris/daily-prize-pools/pkg/models"
	"github.com/chris/daily-prize-pools/pkg/storage"
)

// PutTicket inserts or replaces a ticket in the ledger.
func (s *Store) PutTicket(ctx context.Context, t models.Ticket) error {
	row := ticketRow{
		TicketID:  t.TicketID,
		GameDay:   t.GameDay,
		OwnerID:   t.OwnerID,
		WalletRef: t.WalletRef,
		Numbers:   t.Numbers,
		Claimed:   t.Claimed,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error
}

// PutDrawResult inserts or replaces the draw of a day.
func (s *Store) PutDrawResult(ctx context.Context, d models.DrawResult) error {
	row := drawRow{
		GameDay:        d.GameDay,
		WinningNumbers: d.WinningNumbers,
		Executed:       d.Executed,
		DrawnAt:        d.DrawnAt,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error
}

// ListTickets pages by ticket ID; the cursor is the last ticket ID of the previous page.
func (s *Store) ListTickets(ctx context.Context, gameDay string, cursor string, limit int32) ([]models.Ticket, string, error) {
	q := s.db.WithContext(ctx).Where("game_day = ?", gameDay)
	if cursor != "" {
		q = q.Where("ticket_id > ?", cursor)
	}
	q = q.Order("ticket_id")
	if limit > 0 {
		q = q.Limit(int(limit) + 1)
	}

	var rows []ticketRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, "", err
	}

	next := ""
	if limit > 0 && len(rows) > int(limit) {
		rows = rows[:limit]
		next = rows[len(rows)-1].TicketID
	}
	tickets := make([]models.Ticket, 0, len(rows))
	for _, r := range rows {
		tickets = append(tickets, models.Ticket{
			TicketID:  r.TicketID,
			OwnerID:   r.OwnerID,
			WalletRef: r.WalletRef,
			GameDay:   r.GameDay,
			Numbers:   r.Numbers,
			Claimed:   r.Claimed,
		})
	}
	return tickets, next, nil
}

func (s *Store) GetDrawResult(ctx context.Context, gameDay string) (*models.DrawResult, error) {
	var row drawRow
	if err := s.db.WithContext(ctx).Where("game_day = ?", gameDay).First(&row).Error; err != nil {
		if isNotFound(err) {
			return nil, storage.ErrDrawNotFound
		}
		return nil, err
	}
	return &models.DrawResult{
		GameDay:        row.GameDay,
		WinningNumbers: row.WinningNumbers,
		Executed:       row.Executed,
		DrawnAt:        row.DrawnAt,
	}, nil
}

func (s *Store) GetScanCursor(ctx context.Context, gameDay string) (*models.ScanCursor, error) {
	var row scanCursorRow
	if err := s.db.WithContext(ctx).Where("game_day = ?", gameDay).First(&row).Error; err != nil {
		if isNotFound(err) {
			return &models.ScanCursor{GameDay: gameDay}, nil
		}
		return nil, err
	}
	return &models.ScanCursor{
		GameDay:   row.GameDay,
		Cursor:    row.Cursor,
		Processed: row.Processed,
		Matched:   row.Matched,
		Done:      row.Done,
		Version:   row.Version,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func (s *Store) SaveScanCursor(ctx context.Context, cursor *models.ScanCursor, expectedVersion int64) error {
	row := scanCursorRow{
		GameDay:   cursor.GameDay,
		Cursor:    cursor.Cursor,
		Processed: cursor.Processed,
		Matched:   cursor.Matched,
		Done:      cursor.Done,
		Version:   cursor.Version,
		UpdatedAt: cursor.UpdatedAt,
	}
	db := s.db.WithContext(ctx)
	if expectedVersion == 0 {
		if err := db.Create(&row).Error; err != nil {
			if isDuplicate(err) {
				return storage.ErrConcurrencyConflict
			}
			return err
		}
		return nil
	}

	result := db.Model(&row).Where("version = ?", expectedVersion).Select("*").Updates(&row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return storage.ErrConcurrencyConflict
	}
	return nil
}

func (s *Store) SaveMatches(ctx context.Context, matches []models.TicketMatch) error {
	if len(matches) == 0 {
		return nil
	}
	rows := make([]matchRow, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, matchRow{
			GameDay:   m.GameDay,
			TicketID:  m.TicketID,
			OwnerID:   m.OwnerID,
			WalletRef: m.WalletRef,
			Tier:      string(m.Tier),
		})
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).CreateInBatches(&rows, 100).Error
}

func (s *Store) ListMatches(ctx context.Context, gameDay string, tier models.Tier) ([]models.TicketMatch, error) {
	var rows []matchRow
	err := s.db.WithContext(ctx).
		Where("game_day = ? AND tier = ?", gameDay, string(tier)).
		Order("ticket_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]models.TicketMatch, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.TicketMatch{
			GameDay:   r.GameDay,
			TicketID:  r.TicketID,
			OwnerID:   r.OwnerID,
			WalletRef: r.WalletRef,
			Tier:      models.Tier(r.Tier),
		})
	}
	return out, nil
}

func (s *Store) RecordSettlement(ctx context.Context, settlement *models.Settlement) error {
	return s.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		var n int64
		err := dbtx.Model(&settlementRow{}).
			Where("user_id = ? AND ticket_id = ?", settlement.UserID, settlement.TicketID).
			Count(&n).Error
		if err != nil {
			return err
		}
		if n > 0 {
			return storage.ErrAlreadySettled
		}
		row := settlementRow{
			UserID:    settlement.UserID,
			TicketID:  settlement.TicketID,
			GameDay:   settlement.GameDay,
			Tier:      string(settlement.Tier),
			Amount:    settlement.Amount,
			TxRef:     settlement.TxRef,
			SettledAt: settlement.SettledAt,
		}
		if err := dbtx.Create(&row).Error; err != nil {
			if isDuplicate(err) {
				return storage.ErrAlreadySettled
			}
			return err
		}
		return nil
	})
}

func (s *Store) ListSettlementsByUser(ctx context.Context, userID string) ([]models.Settlement, error) {
	var rows []settlementRow
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("ticket_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.Settlement, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.Settlement{
			UserID:    r.UserID,
			TicketID:  r.TicketID,
			GameDay:   r.GameDay,
			Tier:      models.Tier(r.Tier),
			Amount:    r.Amount,
			TxRef:     r.TxRef,
			SettledAt: r.SettledAt,
		})
	}
	return out, nil
}
