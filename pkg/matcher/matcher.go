// Package matcher classifies lottery tickets against a day's winning numbers.
package matcher

import (
	"fmt"

	"github.com/chris/daily-prize-pools/pkg/models"
)

// AlphabetSize is the number of distinct symbols a ticket number can take.
const AlphabetSize = 25

// Classify returns the prize tier a ticket earns against the winning numbers.
// Exactly one tier is returned for every input.
func Classify(ticket, winning [4]int) models.Tier {
	exact := 0
	for i := range ticket {
		if ticket[i] == winning[i] {
			exact++
		}
	}

	// Each winning slot can be matched at most once.
	remaining := make(map[int]int, len(winning))
	for _, n := range winning {
		remaining[n]++
	}
	anyOrder := 0
	for _, n := range ticket {
		if remaining[n] > 0 {
			remaining[n]--
			anyOrder++
		}
	}

	switch {
	case exact == 4:
		return models.TierFirst
	case anyOrder == 4:
		return models.TierSecond
	case exact == 3:
		return models.TierThird
	case anyOrder == 3:
		return models.TierFreeTicket
	default:
		return models.TierNone
	}
}

// Validate checks that every number is inside the ticket alphabet.
func Validate(numbers [4]int) error {
	for i, n := range numbers {
		if n < 0 || n >= AlphabetSize {
			return fmt.Errorf("number %d at position %d is outside 0..%d", n, i, AlphabetSize-1)
		}
	}
	return nil
}
