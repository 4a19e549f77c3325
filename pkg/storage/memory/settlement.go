package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/chris/daily-prize-pools/pkg/models"
	"github.com/chris/daily-prize-pools/pkg/storage"
)

// PutTicket adds a ticket to the ledger of its day.
func (s *Store) PutTicket(t models.Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets[t.GameDay] = append(s.tickets[t.GameDay], t)
	sort.Slice(s.tickets[t.GameDay], func(i, j int) bool {
		return s.tickets[t.GameDay][i].TicketID < s.tickets[t.GameDay][j].TicketID
	})
}

// PutDrawResult publishes a draw result.
func (s *Store) PutDrawResult(d models.DrawResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draws[d.GameDay] = d
}

// ListTickets pages by offset; the cursor is the decimal offset of the next page.
func (s *Store) ListTickets(ctx context.Context, gameDay string, cursor string, limit int32) ([]models.Ticket, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.tickets[gameDay]
	offset := 0
	if cursor != "" {
		n, err := strconv.Atoi(cursor)
		if err != nil || n < 0 {
			return nil, "", fmt.Errorf("invalid ticket cursor %q", cursor)
		}
		offset = n
	}
	if offset >= len(all) {
		return nil, "", nil
	}
	end := offset + int(limit)
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	page := append([]models.Ticket(nil), all[offset:end]...)
	next := ""
	if end < len(all) {
		next = strconv.Itoa(end)
	}
	return page, next, nil
}

func (s *Store) GetDrawResult(ctx context.Context, gameDay string) (*models.DrawResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.draws[gameDay]
	if !ok {
		return nil, storage.ErrDrawNotFound
	}
	return &d, nil
}

func (s *Store) GetScanCursor(ctx context.Context, gameDay string) (*models.ScanCursor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cursors[gameDay]
	if !ok {
		return &models.ScanCursor{GameDay: gameDay}, nil
	}
	return &c, nil
}

func (s *Store) SaveScanCursor(ctx context.Context, cursor *models.ScanCursor, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursors[cursor.GameDay].Version != expectedVersion {
		return storage.ErrConcurrencyConflict
	}
	s.cursors[cursor.GameDay] = *cursor
	return nil
}

func (s *Store) SaveMatches(ctx context.Context, matches []models.TicketMatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range matches {
		if s.matches[m.GameDay] == nil {
			s.matches[m.GameDay] = make(map[string]models.TicketMatch)
		}
		s.matches[m.GameDay][m.TicketID] = m
	}
	return nil
}

func (s *Store) ListMatches(ctx context.Context, gameDay string, tier models.Tier) ([]models.TicketMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.TicketMatch
	for _, m := range s.matches[gameDay] {
		if m.Tier == tier {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TicketID < out[j].TicketID })
	return out, nil
}

func (s *Store) RecordSettlement(ctx context.Context, settlement *models.Settlement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.settlements[settlement.UserID][settlement.TicketID]; ok {
		return storage.ErrAlreadySettled
	}
	if s.settlements[settlement.UserID] == nil {
		s.settlements[settlement.UserID] = make(map[string]models.Settlement)
	}
	s.settlements[settlement.UserID][settlement.TicketID] = *settlement
	return nil
}

func (s *Store) ListSettlementsByUser(ctx context.Context, userID string) ([]models.Settlement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Settlement, 0, len(s.settlements[userID]))
	for _, st := range s.settlements[userID] {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TicketID < out[j].TicketID })
	return out, nil
}
