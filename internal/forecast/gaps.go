package forecast

import (
	"math"

	"github.com/davron17/finflow/internal/models"
)

// DetectCashGaps returns, in chronological order, every forecast point whose
// predicted balance is negative. An empty forecast yields an empty result.
func (e *Engine) DetectCashGaps(forecast []models.ForecastPoint) []models.CashGap {
	gaps := make([]models.CashGap, 0)
	for _, p := range forecast {
		if p.PredictedBalance < 0 {
			gaps = append(gaps, models.CashGap{
				Date:    p.Date,
				Deficit: math.Abs(p.PredictedBalance),
			})
		}
	}
	return gaps
}
