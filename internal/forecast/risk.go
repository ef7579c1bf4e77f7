package forecast

import (
	"github.com/davron17/finflow/internal/models"
)

// ClassifyRisk labels a forecast. Any cash gap is HIGH. A forecast that never
// ticks up between consecutive points and ends below half its starting value
// is MEDIUM; a single up-tick anywhere drops it to LOW.
func (e *Engine) ClassifyRisk(forecast []models.ForecastPoint, gaps []models.CashGap) models.RiskLevel {
	if len(gaps) > 0 {
		return models.RiskHigh
	}
	if len(forecast) >= 2 {
		nonIncreasing := true
		for i := 1; i < len(forecast); i++ {
			if forecast[i].PredictedBalance > forecast[i-1].PredictedBalance {
				nonIncreasing = false
				break
			}
		}
		if nonIncreasing && forecast[len(forecast)-1].PredictedBalance < forecast[0].PredictedBalance/2 {
			return models.RiskMedium
		}
	}
	return models.RiskLow
}
