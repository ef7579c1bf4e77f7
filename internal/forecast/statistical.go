package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/davron17/finflow/internal/models"
)

const (
	// minFitDays is the floor below which the decomposition is meaningless:
	// two full weeks are needed before weekday effects can be separated
	// from trend at all.
	minFitDays = 14

	// yearlySpanDays gates the month-of-year component. On shorter spans the
	// month means would absorb the trend instead of modelling seasonality.
	yearlySpanDays = 365

	// intervalZ is the normal quantile for the ~95% prediction interval.
	intervalZ = 1.96
)

// fitSeasonalTrend fits an additive decomposition to the cumulative balance
// series: a least-squares linear trend, weekday seasonal means and, when the
// history spans at least a year, month-of-year seasonal means. Predictions
// cover only dates strictly after the last historical date, with symmetric
// bounds derived from the residual spread.
//
// Every failure (short history, degenerate regression, non-finite output) is
// an error here; the orchestrator converts it into fallback metadata.
func fitSeasonalTrend(daily []models.DailyBalancePoint, horizonDays int) ([]models.ForecastPoint, error) {
	if len(daily) < minFitDays {
		return nil, fmt.Errorf("history too short for seasonal fit: %d days", len(daily))
	}
	if horizonDays <= 0 {
		return nil, fmt.Errorf("non-positive forecast horizon: %d", horizonDays)
	}

	first := daily[0].Date
	n := len(daily)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range daily {
		xs[i] = p.Date.Sub(first).Hours() / 24
		ys[i] = p.Balance
	}

	intercept, slope, err := linearFit(xs, ys)
	if err != nil {
		return nil, err
	}

	resid := make([]float64, n)
	for i := range xs {
		resid[i] = ys[i] - (intercept + slope*xs[i])
	}

	weekly := seasonalMeans(daily, resid, weekdayBucket, 7)
	for i, p := range daily {
		resid[i] -= weekly[weekdayBucket(p.Date)]
	}

	span := daily[n-1].Date.Sub(first).Hours() / 24
	var yearly []float64
	if span >= yearlySpanDays {
		yearly = seasonalMeans(daily, resid, monthBucket, 12)
		for i, p := range daily {
			resid[i] -= yearly[monthBucket(p.Date)]
		}
	}

	sigma := stddev(resid)
	if !isFinite(intercept) || !isFinite(slope) || !isFinite(sigma) {
		return nil, fmt.Errorf("seasonal fit produced non-finite parameters")
	}

	last := daily[n-1].Date
	points := make([]models.ForecastPoint, 0, horizonDays)
	for i := 1; i <= horizonDays; i++ {
		d := last.AddDate(0, 0, i)
		x := d.Sub(first).Hours() / 24
		y := intercept + slope*x + weekly[weekdayBucket(d)]
		if yearly != nil {
			y += yearly[monthBucket(d)]
		}
		if !isFinite(y) {
			return nil, fmt.Errorf("seasonal fit produced non-finite prediction for %s", d.Format("2006-01-02"))
		}
		points = append(points, models.ForecastPoint{
			Date:             d,
			PredictedBalance: y,
			LowerBound:       y - intervalZ*sigma,
			UpperBound:       y + intervalZ*sigma,
		})
	}
	return points, nil
}

func weekdayBucket(t time.Time) int { return int(t.Weekday()) }
func monthBucket(t time.Time) int   { return int(t.Month()) - 1 }

// linearFit returns the ordinary-least-squares intercept and slope.
func linearFit(xs, ys []float64) (intercept, slope float64, err error) {
	n := float64(len(xs))
	var sumX, sumY, sumXX, sumXY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXX += xs[i] * xs[i]
		sumXY += xs[i] * ys[i]
	}
	den := n*sumXX - sumX*sumX
	if den == 0 {
		return 0, 0, fmt.Errorf("degenerate time axis: no variance in dates")
	}
	slope = (n*sumXY - sumX*sumY) / den
	intercept = (sumY - slope*sumX) / n
	return intercept, slope, nil
}

// seasonalMeans averages residuals per bucket; buckets with no observations
// contribute no adjustment.
func seasonalMeans(daily []models.DailyBalancePoint, resid []float64, bucket func(time.Time) int, size int) []float64 {
	sums := make([]float64, size)
	counts := make([]int, size)
	for i, p := range daily {
		b := bucket(p.Date)
		sums[b] += resid[i]
		counts[b]++
	}
	means := make([]float64, size)
	for i := range sums {
		if counts[i] > 0 {
			means[i] = sums[i] / float64(counts[i])
		}
	}
	return means
}

func stddev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))
	var ss float64
	for _, x := range xs {
		ss += (x - mean) * (x - mean)
	}
	return math.Sqrt(ss / float64(len(xs)))
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
