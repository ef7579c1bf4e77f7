package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davron17/finflow/internal/models"
)

func TestDetectAnomalies_RentSpikeFlagged(t *testing.T) {
	e := testEngine(DefaultConfig())
	txns := []models.Transaction{
		// Previous window: (last-60d, last-30d]
		txn(t, "2024-04-10", 5000000, true, "Rent"),
		// Current window: (last-30d, last]
		txn(t, "2024-05-20", 6200000, true, "Rent"),
		txn(t, "2024-05-25", 100, false, "Sales"),
	}

	anomalies := e.DetectAnomalies(txns)
	require.Len(t, anomalies, 1)
	assert.Equal(t, "Rent", anomalies[0].Category)
	assert.InDelta(t, 0.24, anomalies[0].ChangeRatio, 1e-9)
	assert.InDelta(t, 6200000, anomalies[0].CurrentAmount, 1e-9)
	assert.InDelta(t, 5000000, anomalies[0].PreviousAmount, 1e-9)
	assert.Contains(t, anomalies[0].Message, "Rent")
}

func TestDetectAnomalies_ExactThresholdNotFlagged(t *testing.T) {
	// 6,000,000 over 5,000,000 is exactly +20%; the threshold is strict.
	e := testEngine(DefaultConfig())
	anomalies := e.DetectAnomalies([]models.Transaction{
		txn(t, "2024-04-10", 5000000, true, "Rent"),
		txn(t, "2024-05-20", 6000000, true, "Rent"),
	})
	assert.Empty(t, anomalies)
}

func TestDetectAnomalies_NoBaselineWindow(t *testing.T) {
	// All expenses fall in the current window: no baseline, no anomalies.
	e := testEngine(DefaultConfig())
	anomalies := e.DetectAnomalies([]models.Transaction{
		txn(t, "2024-05-10", 9000000, true, "Rent"),
		txn(t, "2024-05-20", 9500000, true, "Rent"),
	})
	assert.Empty(t, anomalies)
}

func TestDetectAnomalies_NewLargeExpense(t *testing.T) {
	e := testEngine(DefaultConfig())
	anomalies := e.DetectAnomalies([]models.Transaction{
		txn(t, "2024-04-10", 200000, true, "Supplies"),
		txn(t, "2024-05-20", 1500000, true, "Equipment"),
	})
	require.Len(t, anomalies, 1)
	assert.Equal(t, "Equipment", anomalies[0].Category)
	assert.Equal(t, 1.0, anomalies[0].ChangeRatio)
	assert.Zero(t, anomalies[0].PreviousAmount)
}

func TestDetectAnomalies_NewSmallExpenseIgnored(t *testing.T) {
	e := testEngine(DefaultConfig())
	anomalies := e.DetectAnomalies([]models.Transaction{
		txn(t, "2024-04-10", 200000, true, "Supplies"),
		txn(t, "2024-05-20", 999999, true, "Equipment"),
	})
	assert.Empty(t, anomalies)
}

func TestDetectAnomalies_AnchorsToDataNotWallClock(t *testing.T) {
	// Years in the past: windows must anchor to the max date in the data.
	e := testEngine(DefaultConfig())
	anomalies := e.DetectAnomalies([]models.Transaction{
		txn(t, "2019-04-10", 1000000, true, "Rent"),
		txn(t, "2019-05-20", 2000000, true, "Rent"),
	})
	require.Len(t, anomalies, 1)
	assert.InDelta(t, 1.0, anomalies[0].ChangeRatio, 1e-9)
}

func TestDetectAnomalies_IncomeIgnored(t *testing.T) {
	e := testEngine(DefaultConfig())
	anomalies := e.DetectAnomalies([]models.Transaction{
		txn(t, "2024-04-10", 5000000, false, "Sales"),
		txn(t, "2024-05-20", 9000000, false, "Sales"),
		// An expense baseline exists so the comparison runs at all.
		txn(t, "2024-04-12", 100000, true, "Rent"),
	})
	assert.Empty(t, anomalies)
}

func TestDetectAnomalies_EmptyInput(t *testing.T) {
	e := testEngine(DefaultConfig())
	assert.Empty(t, e.DetectAnomalies(nil))
}

func TestDetectAnomalies_ConfigurableNewExpenseThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NewExpenseThreshold = 1000
	e := testEngine(cfg)
	anomalies := e.DetectAnomalies([]models.Transaction{
		txn(t, "2024-04-10", 500, true, "Supplies"),
		txn(t, "2024-05-20", 1500, true, "Equipment"),
	})
	require.Len(t, anomalies, 1)
	assert.Equal(t, "Equipment", anomalies[0].Category)
}
