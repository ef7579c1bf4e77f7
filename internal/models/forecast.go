package models

import "time"

// DailyBalancePoint is one day of known history: the net change on that day
// and the cumulative balance after applying it. Series are ascending by date
// with no duplicate dates; days without transactions are absent.
type DailyBalancePoint struct {
	Date        time.Time `json:"date"`
	DailyChange float64   `json:"daily_change"`
	Balance     float64   `json:"balance"`
}

// ForecastPoint is one projected day. The simulation strategy derives bounds
// as a fixed fraction of the point estimate, so for negative predictions the
// numeric lower bound can exceed the upper bound.
type ForecastPoint struct {
	Date             time.Time `json:"date"`
	PredictedBalance float64   `json:"predicted_balance"`
	LowerBound       float64   `json:"lower_bound"`
	UpperBound       float64   `json:"upper_bound"`
}

// ForecastStrategy identifies which forecaster produced a series.
type ForecastStrategy string

const (
	StrategyStatistical ForecastStrategy = "statistical"
	StrategySimulation  ForecastStrategy = "simulation"
)

// ForecastMetadata describes how a forecast was produced, for observability
// by the caller. FallbackReason is set only when the statistical fit was
// attempted and failed.
type ForecastMetadata struct {
	Strategy       ForecastStrategy `json:"strategy"`
	HistoryDays    int              `json:"history_days"`
	HorizonDays    int              `json:"horizon_days"`
	FallbackReason string           `json:"fallback_reason,omitempty"`
}

// CashGap marks a forecasted day with a negative predicted balance.
type CashGap struct {
	Date    time.Time `json:"date"`
	Deficit float64   `json:"deficit"`
}

// StressTestResult reports survivability under the pessimistic scenario.
type StressTestResult struct {
	IsSurvived          bool    `json:"is_survived"`
	MinBalance          float64 `json:"min_balance"`
	StressedDailyChange float64 `json:"stressed_daily_change"`
	Scenario            string  `json:"scenario"`
}

// Anomaly flags a spending category whose trailing 30-day total grew sharply
// against the preceding 30-day window.
type Anomaly struct {
	Category       string  `json:"category"`
	CurrentAmount  float64 `json:"current_amount"`
	PreviousAmount float64 `json:"previous_amount"`
	ChangeRatio    float64 `json:"change_ratio"`
	Message        string  `json:"message"`
}

// RiskLevel is the overall classification of a forecast.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// LiquidityResult answers whether a hypothetical lump-sum expense is
// affordable against the worst point of a forecast.
type LiquidityResult struct {
	Allowed         bool    `json:"allowed"`
	MaxAffordable   float64 `json:"max_affordable,omitempty"`
	Deficit         float64 `json:"deficit,omitempty"`
	RemainingBuffer float64 `json:"remaining_buffer,omitempty"`
	Reason          string  `json:"reason"`
}
