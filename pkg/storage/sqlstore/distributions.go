package sqlstore

import (
	"context"

	"github.com/chris/daily-prize-pools/pkg/models"
	"github.com/chris/daily-prize-pools/pkg/storage"
)

func (s *Store) GetDistribution(ctx context.Context, gameDay string, tier models.Tier) (*models.PrizeDistributionRecord, error) {
	var row distributionRow
	err := s.db.WithContext(ctx).Where("game_day = ? AND tier = ?", gameDay, string(tier)).First(&row).Error
	if err != nil {
		if isNotFound(err) {
			return nil, storage.ErrDistributionNotFound
		}
		return nil, err
	}
	record := row.model()
	return &record, nil
}

func (s *Store) ListDistributions(ctx context.Context, gameDay string) ([]models.PrizeDistributionRecord, error) {
	var rows []distributionRow
	if err := s.db.WithContext(ctx).Where("game_day = ?", gameDay).Order("tier").Find(&rows).Error; err != nil {
		return nil, err
	}
	records := make([]models.PrizeDistributionRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.model())
	}
	return records, nil
}
