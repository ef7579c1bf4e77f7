package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davron17/finflow/internal/models"
)

func TestCheckLiquidity_EmptyForecast(t *testing.T) {
	e := testEngine(DefaultConfig())
	_, err := e.CheckLiquidity(nil, 1000)
	require.ErrorIs(t, err, ErrNoForecast)
}

func TestCheckLiquidity_UnaffordableExpense(t *testing.T) {
	// Worst projected balance 1,000,000 against a 2,000,000 spend:
	// deficit 1,000,000, max affordable 800,000 (20% margin).
	e := testEngine(DefaultConfig())
	forecast := []models.ForecastPoint{
		{Date: day(t, "2024-06-01"), PredictedBalance: 3000000},
		{Date: day(t, "2024-06-02"), PredictedBalance: 1000000},
		{Date: day(t, "2024-06-03"), PredictedBalance: 2500000},
	}

	result, err := e.CheckLiquidity(forecast, 2000000)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.InDelta(t, 1000000, result.Deficit, 1e-9)
	assert.InDelta(t, 800000, result.MaxAffordable, 1e-9)
}

func TestCheckLiquidity_AffordableExpense(t *testing.T) {
	e := testEngine(DefaultConfig())
	forecast := []models.ForecastPoint{
		{Date: day(t, "2024-06-01"), PredictedBalance: 3000000},
		{Date: day(t, "2024-06-02"), PredictedBalance: 1000000},
	}

	result, err := e.CheckLiquidity(forecast, 400000)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.InDelta(t, 600000, result.RemainingBuffer, 1e-9)
	assert.Zero(t, result.Deficit)
}
