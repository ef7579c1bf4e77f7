package forecast

import (
	"fmt"
	"sort"
	"time"

	"github.com/davron17/finflow/internal/models"
)

// anomalyWindowDays is the width of each comparison window.
const anomalyWindowDays = 30

// DetectAnomalies compares category expense totals between the trailing
// 30-day window and the 30 days before it. Both windows anchor to the latest
// transaction date in the set, never wall-clock time, so results are
// reproducible for a given input. Without any expense in the previous window
// there is no baseline and nothing is flagged.
func (e *Engine) DetectAnomalies(txns []models.Transaction) []models.Anomaly {
	anomalies := make([]models.Anomaly, 0)
	if len(txns) == 0 {
		return anomalies
	}

	var lastDate time.Time
	for _, t := range txns {
		if d := dateOnly(t.Date); d.After(lastDate) {
			lastDate = d
		}
	}
	currentCutoff := lastDate.AddDate(0, 0, -anomalyWindowDays)
	previousCutoff := currentCutoff.AddDate(0, 0, -anomalyWindowDays)

	current := make(map[string]float64)
	previous := make(map[string]float64)
	previousExpenses := 0
	for _, t := range txns {
		if !t.IsExpense {
			continue
		}
		d := dateOnly(t.Date)
		amount, _ := t.Amount.Float64()
		switch {
		case d.After(currentCutoff):
			if t.Category != "" {
				current[t.Category] += amount
			}
		case d.After(previousCutoff):
			previousExpenses++
			if t.Category != "" {
				previous[t.Category] += amount
			}
		}
	}
	if previousExpenses == 0 {
		return anomalies
	}

	categories := make([]string, 0, len(current))
	for c := range current {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	for _, category := range categories {
		currentAmount := current[category]
		previousAmount := previous[category]
		if previousAmount > 0 {
			changeRatio := (currentAmount - previousAmount) / previousAmount
			if changeRatio > e.cfg.AnomalyGrowthThreshold {
				anomalies = append(anomalies, models.Anomaly{
					Category:       category,
					CurrentAmount:  currentAmount,
					PreviousAmount: previousAmount,
					ChangeRatio:    changeRatio,
					Message:        fmt.Sprintf("%s spending rose %.1f%% versus the previous 30 days", category, changeRatio*100),
				})
			}
		} else if currentAmount > e.cfg.NewExpenseThreshold {
			anomalies = append(anomalies, models.Anomaly{
				Category:       category,
				CurrentAmount:  currentAmount,
				PreviousAmount: 0,
				ChangeRatio:    1.0,
				Message:        fmt.Sprintf("new large expense in %s: %.0f", category, currentAmount),
			})
		}
	}
	return anomalies
}
