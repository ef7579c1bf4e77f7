package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davron17/finflow/internal/models"
)

func TestRunStressTest_EmptyHistory(t *testing.T) {
	e := testEngine(DefaultConfig())
	_, err := e.RunStressTest(nil, 90)
	require.ErrorIs(t, err, ErrInsufficientHistory)
}

func TestRunStressTest_ShockArithmetic(t *testing.T) {
	// Deltas: +1000, -500, +1000, -500 -> avgInflow 1000, avgOutflow -500.
	// Stressed: 1000*0.80 + (-500)*1.10 = 800 - 550 = 250/day.
	start := day(t, "2024-01-01")
	daily := []models.DailyBalancePoint{
		{Date: start, DailyChange: 2000, Balance: 2000},
		{Date: start.AddDate(0, 0, 1), DailyChange: 1000, Balance: 3000},
		{Date: start.AddDate(0, 0, 2), DailyChange: -500, Balance: 2500},
		{Date: start.AddDate(0, 0, 3), DailyChange: 1000, Balance: 3500},
		{Date: start.AddDate(0, 0, 4), DailyChange: -500, Balance: 3000},
	}

	e := testEngine(DefaultConfig())
	result, err := e.RunStressTest(daily, 10)
	require.NoError(t, err)

	assert.InDelta(t, 250, result.StressedDailyChange, 1e-9)
	assert.True(t, result.IsSurvived)
	// Rising stressed trajectory: the minimum stays at the starting balance.
	assert.InDelta(t, 3000, result.MinBalance, 1e-9)
	assert.Equal(t, "Revenue -20%, Expense +10%", result.Scenario)
}

func TestRunStressTest_DecliningTrajectoryFails(t *testing.T) {
	// Income 1,000,000 then expense 1,500,000: the only delta is -1,500,000,
	// so the stressed projection collapses immediately.
	e := testEngine(DefaultConfig())
	daily, err := e.AggregateDaily([]models.Transaction{
		txn(t, "2024-03-01", 1000000, false, ""),
		txn(t, "2024-03-02", 1500000, true, ""),
	}, 0)
	require.NoError(t, err)

	result, err := e.RunStressTest(daily, 30)
	require.NoError(t, err)
	assert.False(t, result.IsSurvived)
	assert.InDelta(t, -1500000*1.10, result.StressedDailyChange, 1e-6)
	assert.Less(t, result.MinBalance, -500000.0)
}

func TestRunStressTest_SingleDayHasNoDeltas(t *testing.T) {
	e := testEngine(DefaultConfig())
	daily := []models.DailyBalancePoint{
		{Date: day(t, "2024-03-01"), DailyChange: 700, Balance: 700},
	}
	result, err := e.RunStressTest(daily, 30)
	require.NoError(t, err)
	assert.Zero(t, result.StressedDailyChange)
	assert.InDelta(t, 700, result.MinBalance, 1e-9)
	assert.True(t, result.IsSurvived)
}
