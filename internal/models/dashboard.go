package models

// DashboardSummary holds the headline KPIs for a filtered period.
type DashboardSummary struct {
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	NetProfit    float64 `json:"net_profit"`
	SavingsRate  float64 `json:"savings_rate"`
}

// CategoryDetail is one category's share of income or expense.
type CategoryDetail struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// ChartPoint is one bucket of the income/expense trend series.
type ChartPoint struct {
	Date      string  `json:"date"`
	Income    float64 `json:"income"`
	Expense   float64 `json:"expense"`
	NetChange float64 `json:"net_change"`
}

// DashboardDetails breaks both sides down by category.
type DashboardDetails struct {
	IncomeByCategory  []CategoryDetail `json:"income_by_category"`
	ExpenseByCategory []CategoryDetail `json:"expense_by_category"`
}

// DashboardData is the full dashboard payload for one filter selection.
type DashboardData struct {
	CurrentBalance   float64          `json:"current_balance"`
	GrowthPercentage float64          `json:"growth_percentage"`
	TopExpenses      []CategoryDetail `json:"top_expenses"`
	Summary          DashboardSummary `json:"summary"`
	Charts           []ChartPoint     `json:"charts"`
	Details          DashboardDetails `json:"details"`
}

// FilterOptions describes the selectable ranges present in a user's data.
type FilterOptions struct {
	Categories []string `json:"categories"`
	MinDate    string   `json:"min_date,omitempty"`
	MaxDate    string   `json:"max_date,omitempty"`
	MinAmount  float64  `json:"min_amount"`
	MaxAmount  float64  `json:"max_amount"`
}
