package forecast

import (
	"math"

	"github.com/davron17/finflow/internal/models"
)

const (
	// dampingFactor assumes observed growth is 10% weaker than history shows.
	dampingFactor = 0.9

	// seasonalAmplitude and seasonalPeriodDays shape the synthetic 30-day
	// oscillation applied to the drift.
	seasonalAmplitude  = 0.05
	seasonalPeriodDays = 30

	// Bounds are a fixed fraction of the point estimate, not a statistical
	// interval. For negative predictions the numeric lower bound therefore
	// exceeds the upper bound; that asymmetry is kept on purpose.
	lowerBandFactor = 0.85
	upperBandFactor = 1.15
)

// simulate is the deterministic fallback forecaster: a damped historical
// drift with a sinusoidal 30-day seasonality multiplier, projected from the
// last known balance. Histories with fewer than two distinct days have no
// measurable drift and project flat.
func simulate(daily []models.DailyBalancePoint, horizonDays int) []models.ForecastPoint {
	if len(daily) == 0 || horizonDays <= 0 {
		return nil
	}

	// The mean day-over-day delta of the cumulative balance telescopes to
	// the endpoints of the series.
	var avgDailyChange float64
	if len(daily) >= 2 {
		avgDailyChange = (daily[len(daily)-1].Balance - daily[0].Balance) / float64(len(daily)-1)
	}
	dampedChange := avgDailyChange * dampingFactor

	lastDate := daily[len(daily)-1].Date
	balance := daily[len(daily)-1].Balance
	points := make([]models.ForecastPoint, 0, horizonDays)
	for i := 0; i < horizonDays; i++ {
		multiplier := 1 + seasonalAmplitude*math.Sin(2*math.Pi*float64(i)/seasonalPeriodDays)
		balance += dampedChange * multiplier
		points = append(points, models.ForecastPoint{
			Date:             lastDate.AddDate(0, 0, i+1),
			PredictedBalance: balance,
			LowerBound:       balance * lowerBandFactor,
			UpperBound:       balance * upperBandFactor,
		})
	}
	return points
}
