package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davron17/finflow/internal/models"
)

func TestDetectCashGaps_NegativeSubsetInOrder(t *testing.T) {
	e := testEngine(DefaultConfig())
	forecast := []models.ForecastPoint{
		{Date: day(t, "2024-06-01"), PredictedBalance: 100},
		{Date: day(t, "2024-06-02"), PredictedBalance: -250},
		{Date: day(t, "2024-06-03"), PredictedBalance: 0},
		{Date: day(t, "2024-06-04"), PredictedBalance: -75.5},
	}

	gaps := e.DetectCashGaps(forecast)
	require.Len(t, gaps, 2)
	assert.Equal(t, day(t, "2024-06-02"), gaps[0].Date)
	assert.InDelta(t, 250, gaps[0].Deficit, 1e-9)
	assert.Equal(t, day(t, "2024-06-04"), gaps[1].Date)
	assert.InDelta(t, 75.5, gaps[1].Deficit, 1e-9)
}

func TestDetectCashGaps_ZeroBalanceIsNotAGap(t *testing.T) {
	e := testEngine(DefaultConfig())
	gaps := e.DetectCashGaps([]models.ForecastPoint{
		{Date: day(t, "2024-06-01"), PredictedBalance: 0},
	})
	assert.Empty(t, gaps)
}

func TestDetectCashGaps_EmptyForecast(t *testing.T) {
	e := testEngine(DefaultConfig())
	assert.Empty(t, e.DetectCashGaps(nil))
}
