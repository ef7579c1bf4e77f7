package service

import (
	"context"
	"time"

	"github.com/davron17/finflow/internal/analytics"
	"github.com/davron17/finflow/internal/forecast"
	"github.com/davron17/finflow/internal/models"
)

// ForecastResult is the consolidated output of one forecast run.
type ForecastResult struct {
	Forecast       []models.ForecastPoint  `json:"forecast"`
	Metadata       models.ForecastMetadata `json:"metadata"`
	CurrentBalance float64                 `json:"current_balance"`
	CashGaps       []models.CashGap        `json:"cash_gaps"`
	RiskLevel      models.RiskLevel        `json:"risk_level"`
}

// LiquiditySummary is the headline block of a liquidity analysis.
type LiquiditySummary struct {
	PeriodDays      int     `json:"period_days"`
	LiquidityStatus string  `json:"liquidity_status"`
	MinBalance      float64 `json:"min_balance"`
	FinalBalance    float64 `json:"final_balance"`
	CashGapsCount   int     `json:"cash_gaps_count"`
	Recommendation  string  `json:"recommendation,omitempty"`
}

// LiquidityAnalysis is the full liquidity analysis payload.
type LiquidityAnalysis struct {
	Summary      LiquiditySummary        `json:"summary"`
	CashGaps     []models.CashGap        `json:"cash_gaps"`
	ExpenseCheck *models.LiquidityResult `json:"expense_check,omitempty"`
	ChartData    []models.ForecastPoint  `json:"chart_data"`
}

const (
	liquidityGood     = "Good"
	liquidityModerate = "Moderate (low balance)"
	liquidityRisky    = "Risky (cash gap)"

	// lowBalanceFraction marks the analysis Moderate when the projected
	// minimum drops below this share of the initial balance.
	lowBalanceFraction = 0.1
)

// RunForecast produces the balance projection plus derived risk facts for
// the authenticated user.
func (s *Service) RunForecast(ctx context.Context, initialBalance float64, horizonDays int) (*ForecastResult, error) {
	if horizonDays <= 0 {
		horizonDays = s.config.ForecastHorizonDays
	}

	txns, err := s.listOwnTransactions(ctx)
	if err != nil {
		return nil, err
	}

	daily, err := s.engine.AggregateDaily(txns, initialBalance)
	if err != nil {
		return nil, err
	}

	points, meta, err := s.engine.Forecast(ctx, daily, horizonDays)
	if err != nil {
		return nil, err
	}

	gaps := s.engine.DetectCashGaps(points)
	result := &ForecastResult{
		Forecast:       points,
		Metadata:       meta,
		CurrentBalance: daily[len(daily)-1].Balance,
		CashGaps:       gaps,
		RiskLevel:      s.engine.ClassifyRisk(points, gaps),
	}

	s.log.WithFields(map[string]interface{}{
		"strategy":  meta.Strategy,
		"history":   meta.HistoryDays,
		"horizon":   meta.HorizonDays,
		"cash_gaps": len(gaps),
		"risk":      result.RiskLevel,
	}).Info("Forecast completed")
	return result, nil
}

// AnalyzeLiquidity runs a forecast over periodDays and summarizes liquidity;
// a positive expenseAmount additionally checks that lump-sum spend.
func (s *Service) AnalyzeLiquidity(ctx context.Context, initialBalance float64, periodDays int, expenseAmount float64) (*LiquidityAnalysis, error) {
	forecastResult, err := s.RunForecast(ctx, initialBalance, periodDays)
	if err != nil {
		return nil, err
	}
	points := forecastResult.Forecast

	minBalance := points[0].PredictedBalance
	for _, p := range points[1:] {
		if p.PredictedBalance < minBalance {
			minBalance = p.PredictedBalance
		}
	}

	status := liquidityGood
	switch {
	case len(forecastResult.CashGaps) > 0:
		status = liquidityRisky
	case minBalance < initialBalance*lowBalanceFraction:
		status = liquidityModerate
	}

	analysis := &LiquidityAnalysis{
		Summary: LiquiditySummary{
			PeriodDays:      forecastResult.Metadata.HorizonDays,
			LiquidityStatus: status,
			MinBalance:      minBalance,
			FinalBalance:    points[len(points)-1].PredictedBalance,
			CashGapsCount:   len(forecastResult.CashGaps),
		},
		CashGaps:  forecastResult.CashGaps,
		ChartData: points,
	}

	if expenseAmount > 0 {
		check, err := s.engine.CheckLiquidity(points, expenseAmount)
		if err != nil {
			return nil, err
		}
		analysis.ExpenseCheck = &check
	}

	if s.recommender != nil {
		user, err := s.CurrentUser(ctx)
		businessType := ""
		if err == nil {
			businessType = user.BusinessType
		}
		recommendation, err := s.recommender.Recommend(ctx, RecommendationFacts{
			PeriodDays:      analysis.Summary.PeriodDays,
			LiquidityStatus: status,
			MinBalance:      minBalance,
			FinalBalance:    analysis.Summary.FinalBalance,
			CashGaps:        forecastResult.CashGaps,
			BusinessType:    businessType,
		})
		if err != nil {
			s.log.Warnf("Recommendation unavailable: %v", err)
		} else {
			analysis.Summary.Recommendation = recommendation
		}
	}

	return analysis, nil
}

// RunStressTest projects the pessimistic scenario for the user's history.
func (s *Service) RunStressTest(ctx context.Context, initialBalance float64, horizonDays int) (*models.StressTestResult, error) {
	if horizonDays <= 0 {
		horizonDays = s.config.ForecastHorizonDays
	}

	txns, err := s.listOwnTransactions(ctx)
	if err != nil {
		return nil, err
	}
	daily, err := s.engine.AggregateDaily(txns, initialBalance)
	if err != nil {
		return nil, err
	}
	result, err := s.engine.RunStressTest(daily, horizonDays)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DetectAnomalies scans the user's expenses for category spending spikes.
func (s *Service) DetectAnomalies(ctx context.Context) ([]models.Anomaly, error) {
	txns, err := s.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	return s.engine.DetectAnomalies(txns), nil
}

// Dashboard aggregates the user's transactions into the dashboard payload.
// Wall-clock anchoring is a concern of this layer, not of the analytics core.
func (s *Service) Dashboard(ctx context.Context, filter analytics.Filter) (*models.DashboardData, error) {
	txns, err := s.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	data := s.analytics.Dashboard(txns, filter, time.Now().UTC())
	return &data, nil
}

// FilterOptions reports selectable dashboard filter ranges.
func (s *Service) FilterOptions(ctx context.Context) (*models.FilterOptions, error) {
	txns, err := s.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	options := s.analytics.FilterOptions(txns)
	return &options, nil
}

// listOwnTransactions fetches the caller's records and enforces the shared
// precondition that analyses need at least one transaction.
func (s *Service) listOwnTransactions(ctx context.Context) ([]models.Transaction, error) {
	txns, err := s.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	if len(txns) == 0 {
		return nil, forecast.ErrEmptyInput
	}
	return txns, nil
}
