package storage

import (
	"context"

	"github.com/chris/daily-prize-pools/pkg/models"
)

// SettlementStateStore persists the progress of the batched ticket scan.
type SettlementStateStore interface {
	// GetScanCursor retrieves the scan cursor of a day. A day that was never scanned
	// yields a zero cursor with Version 0.
	GetScanCursor(ctx context.Context, gameDay string) (*models.ScanCursor, error)

	// SaveScanCursor stores the cursor if the stored version still equals expectedVersion.
	SaveScanCursor(ctx context.Context, cursor *models.ScanCursor, expectedVersion int64) error

	// SaveMatches stores classified tickets. Saving the same match twice is a no-op.
	SaveMatches(ctx context.Context, matches []models.TicketMatch) error

	// ListMatches retrieves the matches of a tier on a game day.
	ListMatches(ctx context.Context, gameDay string, tier models.Tier) ([]models.TicketMatch, error)
}

// SettlementStore records awards that the custody layer has paid out.
type SettlementStore interface {
	// RecordSettlement stores a settlement, or returns ErrAlreadySettled.
	RecordSettlement(ctx context.Context, settlement *models.Settlement) error

	// ListSettlementsByUser retrieves every settlement of a user.
	ListSettlementsByUser(ctx context.Context, userID string) ([]models.Settlement, error)
}
