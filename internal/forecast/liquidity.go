package forecast

import (
	"math"

	"github.com/davron17/finflow/internal/models"
)

// affordabilityBuffer keeps a 20% safety margin below the worst projected
// balance when suggesting the maximum affordable spend.
const affordabilityBuffer = 0.8

// CheckLiquidity tests whether a hypothetical lump-sum expense fits under the
// worst point of the forecast.
func (e *Engine) CheckLiquidity(forecast []models.ForecastPoint, expenseAmount float64) (models.LiquidityResult, error) {
	if len(forecast) == 0 {
		return models.LiquidityResult{}, ErrNoForecast
	}

	minProjected := forecast[0].PredictedBalance
	for _, p := range forecast[1:] {
		if p.PredictedBalance < minProjected {
			minProjected = p.PredictedBalance
		}
	}

	balanceAfterExpense := minProjected - expenseAmount
	if balanceAfterExpense < 0 {
		return models.LiquidityResult{
			Allowed:       false,
			MaxAffordable: minProjected * affordabilityBuffer,
			Deficit:       math.Abs(balanceAfterExpense),
			Reason:        "projected cash gap risk",
		}, nil
	}
	return models.LiquidityResult{
		Allowed:         true,
		RemainingBuffer: balanceAfterExpense,
		Reason:          "sufficient liquidity",
	}, nil
}
