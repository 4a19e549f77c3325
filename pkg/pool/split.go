package pool

import (
	"fmt"

	"github.com/chris/daily-prize-pools/pkg/models"
)

// Split is the percentage of a day's collection assigned to each pool tier.
type Split struct {
	First       int64
	Second      int64
	Third       int64
	Development int64
}

// DefaultSplit is 80/10/5/5.
var DefaultSplit = Split{First: 80, Second: 10, Third: 5, Development: 5}

// Validate checks that every share is non-negative and the shares add up to 100.
func (s Split) Validate() error {
	for _, p := range []int64{s.First, s.Second, s.Third, s.Development} {
		if p < 0 {
			return fmt.Errorf("%w: negative split percentage %d", ErrValidation, p)
		}
	}
	if sum := s.First + s.Second + s.Third + s.Development; sum != 100 {
		return fmt.Errorf("%w: split percentages add up to %d, want 100", ErrValidation, sum)
	}
	return nil
}

func (s Split) percent(tier models.Tier) int64 {
	switch tier {
	case models.TierFirst:
		return s.First
	case models.TierSecond:
		return s.Second
	case models.TierThird:
		return s.Third
	case models.TierDevelopment:
		return s.Development
	}
	return 0
}

// Apply divides a non-negative total into tier pools, truncating each share. The
// truncation dust is added to the development tier and also returned, so the pools always
// sum to total.
func (s Split) Apply(total int64) (map[models.Tier]int64, int64) {
	pools := make(map[models.Tier]int64, len(models.PoolTiers))
	var assigned int64
	for _, tier := range models.PoolTiers {
		p := s.percent(tier)
		// Same as total*p/100 without overflowing near MaxInt64.
		share := total/100*p + total%100*p/100
		pools[tier] = share
		assigned += share
	}
	dust := total - assigned
	pools[models.TierDevelopment] += dust
	return pools, dust
}
