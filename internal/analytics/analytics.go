// Package analytics aggregates raw transactions into the dashboard payload:
// KPI summary, category breakdowns, growth versus the previous period and a
// zero-filled income/expense trend series. All date anchoring comes from the
// caller-supplied reference time, never from the wall clock.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/davron17/finflow/internal/models"
)

// Filter selects the transactions feeding a dashboard view.
type Filter struct {
	Type      string // "last_7_days", "this_month", "last_month", "this_year", "custom" or "" for all
	StartDate *time.Time
	EndDate   *time.Time
	Category  string
	MinAmount *float64
	MaxAmount *float64
}

const (
	FilterLast7Days = "last_7_days"
	FilterThisMonth = "this_month"
	FilterLastMonth = "last_month"
	FilterThisYear  = "this_year"
	FilterCustom    = "custom"
)

// Service computes dashboard aggregations.
type Service struct {
	log *logrus.Logger
}

// NewService initializes a new analytics service
func NewService(log *logrus.Logger) *Service {
	return &Service{log: log}
}

// Dashboard builds the full dashboard payload for one filter selection.
// The current balance always covers the whole history regardless of filter.
func (s *Service) Dashboard(txns []models.Transaction, filter Filter, now time.Time) models.DashboardData {
	now = dateOnly(now)

	currentBalance := 0.0
	for _, t := range txns {
		f, _ := t.SignedAmount().Float64()
		currentBalance += f
	}

	filtered := filterTransactions(txns, filter, now)
	data := models.DashboardData{
		CurrentBalance: currentBalance,
		TopExpenses:    []models.CategoryDetail{},
		Charts:         []models.ChartPoint{},
		Details: models.DashboardDetails{
			IncomeByCategory:  []models.CategoryDetail{},
			ExpenseByCategory: []models.CategoryDetail{},
		},
	}

	var totalIncome, totalExpense float64
	for _, t := range filtered {
		amount, _ := t.Amount.Float64()
		if t.IsExpense {
			totalExpense += amount
		} else {
			totalIncome += amount
		}
	}
	data.Summary = models.DashboardSummary{
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
		NetProfit:    totalIncome - totalExpense,
	}
	if totalIncome > 0 {
		data.Summary.SavingsRate = round1((totalIncome - totalExpense) / totalIncome * 100)
	}

	data.GrowthPercentage = round1(s.growthPercentage(txns, filter, now, totalIncome))

	data.Details.IncomeByCategory = categoryDetails(filtered, false, totalIncome)
	data.Details.ExpenseByCategory = categoryDetails(filtered, true, totalExpense)
	if len(data.Details.ExpenseByCategory) > 3 {
		data.TopExpenses = data.Details.ExpenseByCategory[:3]
	} else {
		data.TopExpenses = data.Details.ExpenseByCategory
	}

	data.Charts = trendSeries(filtered, filter, now)
	return data
}

// FilterOptions reports the selectable ranges present in the data.
func (s *Service) FilterOptions(txns []models.Transaction) models.FilterOptions {
	options := models.FilterOptions{Categories: []string{}}
	if len(txns) == 0 {
		return options
	}

	categories := make(map[string]struct{})
	minDate, maxDate := dateOnly(txns[0].Date), dateOnly(txns[0].Date)
	minAmount, _ := txns[0].Amount.Float64()
	maxAmount := minAmount
	for _, t := range txns {
		if t.Category != "" {
			categories[t.Category] = struct{}{}
		}
		d := dateOnly(t.Date)
		if d.Before(minDate) {
			minDate = d
		}
		if d.After(maxDate) {
			maxDate = d
		}
		amount, _ := t.Amount.Float64()
		if amount < minAmount {
			minAmount = amount
		}
		if amount > maxAmount {
			maxAmount = amount
		}
	}

	for c := range categories {
		options.Categories = append(options.Categories, c)
	}
	sort.Strings(options.Categories)
	options.MinDate = minDate.Format("2006-01-02")
	options.MaxDate = maxDate.Format("2006-01-02")
	options.MinAmount = minAmount
	options.MaxAmount = maxAmount
	return options
}

// periodRange resolves a filter to inclusive date bounds. Nil means unbounded.
func periodRange(filter Filter, now time.Time) (start, end *time.Time) {
	switch filter.Type {
	case FilterLast7Days:
		s := now.AddDate(0, 0, -6)
		return &s, &now
	case FilterThisMonth:
		s := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return &s, &now
	case FilterLastMonth:
		firstThis := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		e := firstThis.AddDate(0, 0, -1)
		s := time.Date(e.Year(), e.Month(), 1, 0, 0, 0, 0, time.UTC)
		return &s, &e
	case FilterThisYear:
		s := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		return &s, &now
	case FilterCustom:
		return filter.StartDate, filter.EndDate
	default:
		return nil, nil
	}
}

func filterTransactions(txns []models.Transaction, filter Filter, now time.Time) []models.Transaction {
	start, end := periodRange(filter, now)
	out := make([]models.Transaction, 0, len(txns))
	for _, t := range txns {
		d := dateOnly(t.Date)
		if start != nil && d.Before(dateOnly(*start)) {
			continue
		}
		if end != nil && d.After(dateOnly(*end)) {
			continue
		}
		if filter.Category != "" && t.Category != filter.Category {
			continue
		}
		amount, _ := t.Amount.Float64()
		if filter.MinAmount != nil && amount < *filter.MinAmount {
			continue
		}
		if filter.MaxAmount != nil && amount > *filter.MaxAmount {
			continue
		}
		out = append(out, t)
	}
	return out
}

// growthPercentage compares the filtered period's income with the equivalent
// preceding period. Only rolling filters have a well-defined predecessor.
func (s *Service) growthPercentage(txns []models.Transaction, filter Filter, now time.Time, totalIncome float64) float64 {
	var prevStart, prevEnd time.Time
	switch filter.Type {
	case FilterThisMonth:
		firstThis := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		prevEnd = firstThis.AddDate(0, 0, -1)
		prevStart = time.Date(prevEnd.Year(), prevEnd.Month(), 1, 0, 0, 0, 0, time.UTC)
	case FilterLast7Days:
		prevEnd = now.AddDate(0, 0, -7)
		prevStart = prevEnd.AddDate(0, 0, -6)
	default:
		return 0
	}

	var prevIncome float64
	for _, t := range txns {
		if t.IsExpense {
			continue
		}
		d := dateOnly(t.Date)
		if d.Before(prevStart) || d.After(prevEnd) {
			continue
		}
		amount, _ := t.Amount.Float64()
		prevIncome += amount
	}

	if prevIncome > 0 {
		return (totalIncome - prevIncome) / prevIncome * 100
	}
	if totalIncome > 0 {
		return 100
	}
	return 0
}

func categoryDetails(txns []models.Transaction, isExpense bool, total float64) []models.CategoryDetail {
	details := []models.CategoryDetail{}
	if total == 0 {
		return details
	}
	sums := make(map[string]float64)
	for _, t := range txns {
		if t.IsExpense != isExpense || t.Category == "" {
			continue
		}
		amount, _ := t.Amount.Float64()
		sums[t.Category] += amount
	}
	for category, amount := range sums {
		details = append(details, models.CategoryDetail{
			Category:   category,
			Amount:     amount,
			Percentage: round1(amount / total * 100),
		})
	}
	sort.Slice(details, func(i, j int) bool {
		if details[i].Amount != details[j].Amount {
			return details[i].Amount > details[j].Amount
		}
		return details[i].Category < details[j].Category
	})
	return details
}

// trendSeries buckets income and expense over the full chart range so the
// series has no holes: daily buckets, monthly for the year view.
func trendSeries(txns []models.Transaction, filter Filter, now time.Time) []models.ChartPoint {
	monthly := filter.Type == FilterThisYear

	chartStart := now.AddDate(0, 0, -30)
	chartEnd := now
	if start, end := periodRange(filter, now); start != nil && end != nil {
		chartStart, chartEnd = dateOnly(*start), dateOnly(*end)
	}

	layout := "2006-01-02"
	if monthly {
		layout = "2006-01"
	}

	income := make(map[string]float64)
	expense := make(map[string]float64)
	for _, t := range txns {
		key := dateOnly(t.Date).Format(layout)
		amount, _ := t.Amount.Float64()
		if t.IsExpense {
			expense[key] += amount
		} else {
			income[key] += amount
		}
	}

	points := []models.ChartPoint{}
	appendPoint := func(key string) {
		points = append(points, models.ChartPoint{
			Date:      key,
			Income:    income[key],
			Expense:   expense[key],
			NetChange: income[key] - expense[key],
		})
	}

	if monthly {
		for d := time.Date(chartStart.Year(), chartStart.Month(), 1, 0, 0, 0, 0, time.UTC); !d.After(chartEnd); d = d.AddDate(0, 1, 0) {
			appendPoint(d.Format(layout))
		}
	} else {
		for d := chartStart; !d.After(chartEnd); d = d.AddDate(0, 0, 1) {
			appendPoint(d.Format(layout))
		}
	}
	return points
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
