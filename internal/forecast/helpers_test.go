package forecast

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/davron17/finflow/internal/models"
)

func testEngine(cfg Config) *Engine {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewEngine(cfg, log)
}

func day(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad test date %q: %v", value, err)
	}
	return d
}

func txn(t *testing.T, date string, amount float64, isExpense bool, category string) models.Transaction {
	t.Helper()
	return models.Transaction{
		Date:      day(t, date),
		Amount:    decimal.NewFromFloat(amount),
		Category:  category,
		IsExpense: isExpense,
	}
}

// steadyIncomeHistory builds n days of history with one +amount income per
// day starting at start, aggregated from initial balance 0.
func steadyIncomeHistory(t *testing.T, n int, amount float64) []models.DailyBalancePoint {
	t.Helper()
	start := day(t, "2024-01-01")
	txns := make([]models.Transaction, 0, n)
	for i := 0; i < n; i++ {
		txns = append(txns, models.Transaction{
			Date:   start.AddDate(0, 0, i),
			Amount: decimal.NewFromFloat(amount),
		})
	}
	daily, err := testEngine(DefaultConfig()).AggregateDaily(txns, 0)
	if err != nil {
		t.Fatalf("AggregateDaily: %v", err)
	}
	return daily
}
