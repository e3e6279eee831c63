package models

// BudgetView is the state of one budget at projection time.
// Remaining is negative when a budget was tightened below what was already spent.
type BudgetView struct {
	Limit     float64 `json:"limit"`
	Spent     float64 `json:"spent"`
	Remaining float64 `json:"remaining"`
}

// StatsView is the read-only summary of a wallet.
type StatsView struct {
	User             string                `json:"user"`
	TotalIncome      float64               `json:"total_income"`
	TotalExpenses    float64               `json:"total_expenses"`
	Balance          float64               `json:"balance"`
	IncomeByCategory map[string]float64    `json:"income_by_category"`
	Budgets          map[string]BudgetView `json:"budgets"`
}
