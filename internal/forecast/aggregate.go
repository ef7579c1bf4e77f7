package forecast

import (
	"sort"
	"time"

	"github.com/davron17/finflow/internal/models"
)

// AggregateDaily groups transactions by calendar day, sums signed amounts per
// day and returns the running cumulative balance seeded by initialBalance.
// The result is strictly ascending by date with no duplicate dates. An empty
// input is ErrEmptyInput: no history means nothing downstream may run.
func (e *Engine) AggregateDaily(txns []models.Transaction, initialBalance float64) ([]models.DailyBalancePoint, error) {
	if len(txns) == 0 {
		return nil, ErrEmptyInput
	}

	changes := make(map[time.Time]float64, len(txns))
	for _, t := range txns {
		amount, _ := t.SignedAmount().Float64()
		changes[dateOnly(t.Date)] += amount
	}

	days := make([]time.Time, 0, len(changes))
	for d := range changes {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	balance := initialBalance
	out := make([]models.DailyBalancePoint, 0, len(days))
	for _, d := range days {
		balance += changes[d]
		out = append(out, models.DailyBalancePoint{
			Date:        d,
			DailyChange: changes[d],
			Balance:     balance,
		})
	}
	return out, nil
}

// dateOnly truncates a timestamp to its UTC calendar day. Time of day carries
// no significance anywhere in the engine.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
