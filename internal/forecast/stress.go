package forecast

import (
	"github.com/davron17/finflow/internal/models"
)

const (
	// inflowShock and outflowShock define the pessimistic scenario:
	// revenue down 20%, costs up 10%.
	inflowShock  = 0.80
	outflowShock = 1.10

	stressScenario = "Revenue -20%, Expense +10%"
)

// RunStressTest projects the historical balance horizonDays forward under the
// pessimistic fixed-shock scenario. Positive and negative day-over-day deltas
// are averaged separately; an empty subset averages to zero. The outflow
// average is already negative, so its shock multiplier deepens the deduction.
func (e *Engine) RunStressTest(daily []models.DailyBalancePoint, horizonDays int) (models.StressTestResult, error) {
	if len(daily) == 0 {
		return models.StressTestResult{}, ErrInsufficientHistory
	}

	var inflowSum, outflowSum float64
	var inflowN, outflowN int
	for i := 1; i < len(daily); i++ {
		delta := daily[i].Balance - daily[i-1].Balance
		switch {
		case delta > 0:
			inflowSum += delta
			inflowN++
		case delta < 0:
			outflowSum += delta
			outflowN++
		}
	}

	var avgInflow, avgOutflow float64
	if inflowN > 0 {
		avgInflow = inflowSum / float64(inflowN)
	}
	if outflowN > 0 {
		avgOutflow = outflowSum / float64(outflowN)
	}
	stressedDailyChange := avgInflow*inflowShock + avgOutflow*outflowShock

	balance := daily[len(daily)-1].Balance
	minBalance := balance
	for i := 0; i < horizonDays; i++ {
		balance += stressedDailyChange
		if balance < minBalance {
			minBalance = balance
		}
	}

	return models.StressTestResult{
		IsSurvived:          minBalance >= 0,
		MinBalance:          minBalance,
		StressedDailyChange: stressedDailyChange,
		Scenario:            stressScenario,
	}, nil
}
