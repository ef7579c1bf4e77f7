package forecast

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davron17/finflow/internal/models"
)

func TestForecast_BelowThresholdUsesSimulation(t *testing.T) {
	e := testEngine(Config{MinHistoryDays: 90, StatisticalTimeout: 0})
	daily := steadyIncomeHistory(t, 89, 10000)

	points, meta, err := e.Forecast(context.Background(), daily, 30)
	require.NoError(t, err)
	require.Len(t, points, 30)
	assert.Equal(t, models.StrategySimulation, meta.Strategy)
	assert.Empty(t, meta.FallbackReason, "no statistical attempt below the threshold")
	assert.Equal(t, 89, meta.HistoryDays)
}

func TestForecast_AtThresholdAttemptsStatistical(t *testing.T) {
	e := testEngine(Config{MinHistoryDays: 90, StatisticalTimeout: 0})
	daily := steadyIncomeHistory(t, 90, 10000)

	points, meta, err := e.Forecast(context.Background(), daily, 30)
	require.NoError(t, err)
	require.Len(t, points, 30)
	assert.Equal(t, models.StrategyStatistical, meta.Strategy)

	// A perfectly linear history fits exactly: the trend continues at
	// +10,000/day with a collapsed interval.
	lastBalance := daily[len(daily)-1].Balance
	for i, p := range points {
		assert.InDelta(t, lastBalance+10000*float64(i+1), p.PredictedBalance, 1e-3)
		assert.InDelta(t, p.PredictedBalance, p.LowerBound, 1e-3)
		assert.InDelta(t, p.PredictedBalance, p.UpperBound, 1e-3)
	}
}

func TestForecast_StatisticalFailureFallsBackWithReason(t *testing.T) {
	e := testEngine(Config{MinHistoryDays: 90, StatisticalTimeout: 0})

	// Non-finite balances break the fit deterministically; the orchestrator
	// must recover via simulation and record why.
	daily := steadyIncomeHistory(t, 90, 10000)
	daily[45].Balance = math.Inf(1)

	points, meta, err := e.Forecast(context.Background(), daily, 30)
	require.NoError(t, err)
	require.Len(t, points, 30)
	assert.Equal(t, models.StrategySimulation, meta.Strategy)
	assert.Contains(t, meta.FallbackReason, "non-finite")
}

func TestForecast_EmptyHistoryIsUnavailable(t *testing.T) {
	e := testEngine(DefaultConfig())
	_, _, err := e.Forecast(context.Background(), nil, 30)
	require.ErrorIs(t, err, ErrForecastUnavailable)
}

func TestForecast_CancelledContextFallsBack(t *testing.T) {
	e := testEngine(Config{MinHistoryDays: 90, StatisticalTimeout: 0})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	daily := steadyIncomeHistory(t, 120, 10000)
	points, meta, err := e.Forecast(ctx, daily, 30)
	require.NoError(t, err)
	require.Len(t, points, 30)
	// The fit may or may not complete before cancellation is observed; either
	// way the caller gets a usable series, never a context error.
	assert.NotEmpty(t, meta.Strategy)
}
