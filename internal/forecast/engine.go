// Package forecast implements the cash-flow forecasting and risk analysis
// engine: daily balance aggregation, a hybrid statistical/simulation balance
// projection, cash-gap detection, stress testing, category spending anomaly
// detection, liquidity checks and risk classification.
//
// The engine is a pure computation pipeline: it performs no I/O, holds no
// state between calls, and allocates its outputs fresh per invocation.
package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/davron17/finflow/internal/models"
)

// Config holds the engine thresholds. Values are process-wide configuration,
// exposed here so tests can exercise both forecasting regimes.
type Config struct {
	// MinHistoryDays is the number of distinct transaction days required
	// before the statistical forecaster is attempted.
	MinHistoryDays int

	// AnomalyGrowthThreshold flags a category whose trailing 30-day spend
	// grew by more than this ratio over the preceding 30 days.
	AnomalyGrowthThreshold float64

	// NewExpenseThreshold flags a category with no prior spend whose
	// trailing 30-day total exceeds this absolute amount.
	NewExpenseThreshold float64

	// StatisticalTimeout bounds the statistical fit; expiry is treated the
	// same as a fit failure. Zero disables the deadline.
	StatisticalTimeout time.Duration
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		MinHistoryDays:         90,
		AnomalyGrowthThreshold: 0.20,
		NewExpenseThreshold:    1000000,
		StatisticalTimeout:     10 * time.Second,
	}
}

// Engine runs the forecasting and risk analysis pipeline.
type Engine struct {
	cfg Config
	log *logrus.Logger
}

// NewEngine initializes a new engine
func NewEngine(cfg Config, log *logrus.Logger) *Engine {
	return &Engine{cfg: cfg, log: log}
}

// Forecast projects the balance horizonDays forward. Histories with at least
// MinHistoryDays distinct transaction days attempt the statistical fit first;
// any fit failure falls back to the deterministic simulation and is recorded
// in the returned metadata, never surfaced as an error. ErrForecastUnavailable
// is returned only when the simulation also produces nothing.
func (e *Engine) Forecast(ctx context.Context, daily []models.DailyBalancePoint, horizonDays int) ([]models.ForecastPoint, models.ForecastMetadata, error) {
	meta := models.ForecastMetadata{
		HistoryDays: len(daily),
		HorizonDays: horizonDays,
	}

	if len(daily) >= e.cfg.MinHistoryDays {
		points, err := e.fitStatistical(ctx, daily, horizonDays)
		if err == nil && len(points) > 0 {
			meta.Strategy = models.StrategyStatistical
			return points, meta, nil
		}
		if err != nil {
			meta.FallbackReason = err.Error()
			e.log.WithField("reason", err.Error()).Warn("Statistical fit failed, falling back to simulation")
		}
	}

	points := simulate(daily, horizonDays)
	if len(points) == 0 {
		return nil, meta, ErrForecastUnavailable
	}
	meta.Strategy = models.StrategySimulation
	return points, meta, nil
}

// fitStatistical runs the seasonal fit under the configured deadline. The fit
// is CPU-bound and can take seconds on long histories, so it runs in its own
// goroutine and a deadline expiry abandons it like any other fit failure.
func (e *Engine) fitStatistical(ctx context.Context, daily []models.DailyBalancePoint, horizonDays int) ([]models.ForecastPoint, error) {
	if e.cfg.StatisticalTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.StatisticalTimeout)
		defer cancel()
	}

	type fitResult struct {
		points []models.ForecastPoint
		err    error
	}
	done := make(chan fitResult, 1)
	go func() {
		points, err := fitSeasonalTrend(daily, horizonDays)
		done <- fitResult{points: points, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("statistical fit abandoned: %w", ctx.Err())
	case res := <-done:
		return res.points, res.err
	}
}
