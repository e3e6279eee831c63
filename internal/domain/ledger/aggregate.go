/*
Package ledger holds the invariant-preserving logic of a user's wallet.

A Wallet aggregate is loaded once per operation, mutated in memory by the Engine
and handed back to the store, which persists the pending changes it reports.
Nothing in this package performs I/O.

Every committed state keeps these properties:

	total expenses <= total income
	expenses in a budgeted category <= that budget's limit (checked on each new expense)

Category comparison is case-insensitive throughout.
*/
package ledger

import (
	"strings"

	"finances/internal/models"
)

// Wallet is the in-memory view of one wallet: its transaction history, its
// budgets and the sums derived from them.
type Wallet struct {
	ID     uint
	UserID uint

	transactions []*models.Transaction
	budgets      map[string]*models.Budget
	budgetOrder  []string

	totalIncome   float64
	totalExpenses float64
	expenses      map[string]float64

	pending []*models.Transaction
	dirty   []string
}

// NewWallet builds an aggregate from stored rows. Transactions are expected in
// creation order.
func NewWallet(w models.Wallet, transactions []models.Transaction, budgets []models.Budget) *Wallet {
	agg := &Wallet{
		ID:       w.ID,
		UserID:   w.UserID,
		budgets:  make(map[string]*models.Budget, len(budgets)),
		expenses: make(map[string]float64),
	}
	for i := range transactions {
		tx := transactions[i]
		agg.add(&tx)
	}
	for i := range budgets {
		b := budgets[i]
		if b.CategoryKey == "" {
			b.CategoryKey = CategoryKey(b.Category)
		}
		if _, ok := agg.budgets[b.CategoryKey]; !ok {
			agg.budgetOrder = append(agg.budgetOrder, b.CategoryKey)
		}
		agg.budgets[b.CategoryKey] = &b
	}
	return agg
}

// TotalIncome is the sum of all income transactions.
func (w *Wallet) TotalIncome() float64 {
	return w.totalIncome
}

// TotalExpenses is the sum of all expense transactions.
func (w *Wallet) TotalExpenses() float64 {
	return w.totalExpenses
}

// Balance is TotalIncome minus TotalExpenses.
func (w *Wallet) Balance() float64 {
	return w.totalIncome - w.totalExpenses
}

// ExpenseByCategory sums expenses whose category matches case-insensitively.
func (w *Wallet) ExpenseByCategory(category string) float64 {
	return w.expenses[CategoryKey(category)]
}

// FindBudget returns the budget for category, matched case-insensitively.
func (w *Wallet) FindBudget(category string) (*models.Budget, bool) {
	b, ok := w.budgets[CategoryKey(category)]
	return b, ok
}

// Transactions returns the history in creation order.
func (w *Wallet) Transactions() []models.Transaction {
	out := make([]models.Transaction, len(w.transactions))
	for i, tx := range w.transactions {
		out[i] = *tx
	}
	return out
}

// Budgets returns the budgets in the order they were first set.
func (w *Wallet) Budgets() []models.Budget {
	out := make([]models.Budget, 0, len(w.budgetOrder))
	for _, key := range w.budgetOrder {
		out = append(out, *w.budgets[key])
	}
	return out
}

// PendingTransactions are transactions appended since the aggregate was loaded
// or last committed. The store assigns their IDs on insert.
func (w *Wallet) PendingTransactions() []*models.Transaction {
	return w.pending
}

// DirtyBudgets are budgets created or changed since the last commit.
func (w *Wallet) DirtyBudgets() []*models.Budget {
	out := make([]*models.Budget, 0, len(w.dirty))
	for _, key := range w.dirty {
		out = append(out, w.budgets[key])
	}
	return out
}

// HasChanges reports whether there is anything to persist.
func (w *Wallet) HasChanges() bool {
	return len(w.pending) > 0 || len(w.dirty) > 0
}

// MarkCommitted clears the pending change set after a successful save.
func (w *Wallet) MarkCommitted() {
	w.pending = nil
	w.dirty = nil
}

func (w *Wallet) add(tx *models.Transaction) {
	w.transactions = append(w.transactions, tx)
	switch {
	case strings.EqualFold(tx.Kind, models.TransactionKindIncome):
		w.totalIncome += tx.Amount
	case strings.EqualFold(tx.Kind, models.TransactionKindExpense):
		w.totalExpenses += tx.Amount
		w.expenses[CategoryKey(tx.Category)] += tx.Amount
	}
}

func (w *Wallet) appendPending(tx *models.Transaction) {
	tx.WalletID = w.ID
	w.add(tx)
	w.pending = append(w.pending, tx)
}

func (w *Wallet) putBudget(b *models.Budget) {
	if _, ok := w.budgets[b.CategoryKey]; !ok {
		w.budgetOrder = append(w.budgetOrder, b.CategoryKey)
	}
	w.budgets[b.CategoryKey] = b
	for _, key := range w.dirty {
		if key == b.CategoryKey {
			return
		}
	}
	w.dirty = append(w.dirty, b.CategoryKey)
}
