package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davron17/finflow/internal/models"
)

func testService() *Service {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewService(log)
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

func TestDashboard_SummaryAndBreakdown(t *testing.T) {
	svc := testService()
	now := day(t, "2024-05-15")
	txns := []models.Transaction{
		txn(t, "2024-05-02", 10000, false, "Sales"),
		txn(t, "2024-05-03", 2000, true, "Rent"),
		txn(t, "2024-05-04", 1000, true, "Supplies"),
		txn(t, "2024-05-05", 1000, true, "Rent"),
	}

	data := svc.Dashboard(txns, Filter{Type: FilterThisMonth}, now)

	assert.InDelta(t, 6000, data.CurrentBalance, 1e-9)
	assert.InDelta(t, 10000, data.Summary.TotalIncome, 1e-9)
	assert.InDelta(t, 4000, data.Summary.TotalExpense, 1e-9)
	assert.InDelta(t, 6000, data.Summary.NetProfit, 1e-9)
	assert.InDelta(t, 60.0, data.Summary.SavingsRate, 1e-9)

	require.Len(t, data.Details.ExpenseByCategory, 2)
	assert.Equal(t, "Rent", data.Details.ExpenseByCategory[0].Category)
	assert.InDelta(t, 3000, data.Details.ExpenseByCategory[0].Amount, 1e-9)
	assert.InDelta(t, 75.0, data.Details.ExpenseByCategory[0].Percentage, 1e-9)
	assert.Equal(t, data.TopExpenses, data.Details.ExpenseByCategory)
}

func TestDashboard_CurrentBalanceIgnoresFilter(t *testing.T) {
	svc := testService()
	now := day(t, "2024-05-15")
	txns := []models.Transaction{
		txn(t, "2023-01-10", 50000, false, "Sales"),
		txn(t, "2024-05-02", 1000, true, "Rent"),
	}

	data := svc.Dashboard(txns, Filter{Type: FilterLast7Days}, now)
	assert.InDelta(t, 49000, data.CurrentBalance, 1e-9)
	assert.Zero(t, data.Summary.TotalIncome, "old income is outside the filtered period")
}

func TestDashboard_GrowthAgainstPreviousWeek(t *testing.T) {
	svc := testService()
	now := day(t, "2024-05-15")
	txns := []models.Transaction{
		// Previous 7-day window: 2024-05-02 .. 2024-05-08
		txn(t, "2024-05-03", 1000, false, "Sales"),
		// Current window: 2024-05-09 .. 2024-05-15
		txn(t, "2024-05-12", 1500, false, "Sales"),
	}

	data := svc.Dashboard(txns, Filter{Type: FilterLast7Days}, now)
	assert.InDelta(t, 50.0, data.GrowthPercentage, 1e-9)
}

func TestDashboard_TrendSeriesIsZeroFilled(t *testing.T) {
	svc := testService()
	now := day(t, "2024-05-07")
	txns := []models.Transaction{
		txn(t, "2024-05-02", 500, false, "Sales"),
		txn(t, "2024-05-06", 200, true, "Rent"),
	}

	data := svc.Dashboard(txns, Filter{Type: FilterLast7Days}, now)
	require.Len(t, data.Charts, 7)
	assert.Equal(t, "2024-05-01", data.Charts[0].Date)
	assert.Equal(t, "2024-05-07", data.Charts[6].Date)
	assert.InDelta(t, 500, data.Charts[1].Income, 1e-9)
	assert.Zero(t, data.Charts[2].Income)
	assert.InDelta(t, -200, data.Charts[5].NetChange, 1e-9)
}

func TestDashboard_YearViewBucketsMonthly(t *testing.T) {
	svc := testService()
	now := day(t, "2024-04-20")
	txns := []models.Transaction{
		txn(t, "2024-01-15", 100, false, "Sales"),
		txn(t, "2024-03-10", 40, true, "Rent"),
	}

	data := svc.Dashboard(txns, Filter{Type: FilterThisYear}, now)
	require.Len(t, data.Charts, 4)
	assert.Equal(t, "2024-01", data.Charts[0].Date)
	assert.InDelta(t, 100, data.Charts[0].Income, 1e-9)
	assert.InDelta(t, 40, data.Charts[2].Expense, 1e-9)
}

func TestDashboard_CategoryAndAmountFilters(t *testing.T) {
	svc := testService()
	now := day(t, "2024-05-15")
	minAmount := 500.0
	txns := []models.Transaction{
		txn(t, "2024-05-10", 1000, true, "Rent"),
		txn(t, "2024-05-11", 100, true, "Rent"),
		txn(t, "2024-05-12", 900, true, "Supplies"),
	}

	data := svc.Dashboard(txns, Filter{Type: FilterThisMonth, Category: "Rent", MinAmount: &minAmount}, now)
	assert.InDelta(t, 1000, data.Summary.TotalExpense, 1e-9)
}

func TestDashboard_EmptyInput(t *testing.T) {
	svc := testService()
	data := svc.Dashboard(nil, Filter{Type: FilterThisMonth}, day(t, "2024-05-15"))
	assert.Zero(t, data.CurrentBalance)
	assert.Empty(t, data.Details.ExpenseByCategory)
	assert.NotEmpty(t, data.Charts, "chart range is emitted even with no data")
}

func TestFilterOptions(t *testing.T) {
	svc := testService()
	txns := []models.Transaction{
		txn(t, "2024-02-01", 700, true, "Rent"),
		txn(t, "2024-03-05", 120, false, "Sales"),
		txn(t, "2024-01-20", 9000, false, ""),
	}

	options := svc.FilterOptions(txns)
	assert.Equal(t, []string{"Rent", "Sales"}, options.Categories)
	assert.Equal(t, "2024-01-20", options.MinDate)
	assert.Equal(t, "2024-03-05", options.MaxDate)
	assert.InDelta(t, 120, options.MinAmount, 1e-9)
	assert.InDelta(t, 9000, options.MaxAmount, 1e-9)
}

func TestFilterOptions_Empty(t *testing.T) {
	svc := testService()
	options := svc.FilterOptions(nil)
	assert.Empty(t, options.Categories)
	assert.Empty(t, options.MinDate)
}
