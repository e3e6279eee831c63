package ledger

import (
	"strings"

	"finances/internal/models"
)

// ProjectStats builds the read-only summary of w.
//
// IncomeByCategory holds one amount per category: when several incomes share a
// category the last one recorded wins, it is not a sum.
func ProjectStats(login string, w *Wallet) *models.StatsView {
	view := &models.StatsView{
		User:             login,
		TotalIncome:      w.TotalIncome(),
		TotalExpenses:    w.TotalExpenses(),
		Balance:          w.Balance(),
		IncomeByCategory: make(map[string]float64),
		Budgets:          make(map[string]models.BudgetView),
	}

	for _, tx := range w.transactions {
		if strings.EqualFold(tx.Kind, models.TransactionKindIncome) {
			view.IncomeByCategory[tx.Category] = tx.Amount
		}
	}

	for _, key := range w.budgetOrder {
		b := w.budgets[key]
		spent := w.expenses[key]
		view.Budgets[b.Category] = models.BudgetView{
			Limit:     b.Limit,
			Spent:     spent,
			Remaining: b.Limit - spent,
		}
	}

	return view
}
