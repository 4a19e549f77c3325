package storage

import (
	"context"

	"github.com/chris/daily-prize-pools/pkg/models"
)

// TicketLedger pages through the tickets sold for a game day.
type TicketLedger interface {
	// ListTickets returns up to limit tickets after cursor, and the cursor of the next
	// page. An empty next cursor means the last page was returned.
	ListTickets(ctx context.Context, gameDay string, cursor string, limit int32) ([]models.Ticket, string, error)
}

// DrawReader exposes the draw oracle's published results.
type DrawReader interface {
	// GetDrawResult retrieves the draw of a game day, or ErrDrawNotFound.
	GetDrawResult(ctx context.Context, gameDay string) (*models.DrawResult, error)
}
