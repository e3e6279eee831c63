package ledger

import (
	"math"
	"strings"
	"time"

	"finances/internal/errors"
	"finances/internal/models"
)

// Engine decides whether an operation on a wallet is allowed and applies it to
// the in-memory aggregate. It never touches more than the wallets it is given.
type Engine struct {
	now func() time.Time
}

func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// NewEngineWithClock is used by tests that need stable timestamps.
func NewEngineWithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// ParseKind normalizes a transaction kind; "EXPENSE" and "expense" are the same.
func ParseKind(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case models.TransactionKindIncome:
		return models.TransactionKindIncome, nil
	case models.TransactionKindExpense:
		return models.TransactionKindExpense, nil
	}
	return "", errors.ErrInvalidKind.Withf("unknown transaction type %q", kind)
}

// ValidAmount reports whether amount is finite and non-negative.
func ValidAmount(amount float64) bool {
	return !math.IsNaN(amount) && !math.IsInf(amount, 0) && amount >= 0
}

// RecordTransaction appends an income or expense to w.
//
// Income is always accepted. An expense is rejected with InsufficientFunds when
// it would push total expenses above total income, and with BudgetExceeded when
// the category has a budget and the category's spend would go above its limit.
// A rejected call leaves w untouched.
func (e *Engine) RecordTransaction(w *Wallet, kind, category string, amount float64) (*models.Transaction, error) {
	if !ValidAmount(amount) {
		return nil, errors.ErrInvalidAmount
	}
	kind, err := ParseKind(kind)
	if err != nil {
		return nil, err
	}

	if kind == models.TransactionKindExpense {
		if w.TotalExpenses()+amount > w.TotalIncome() {
			return nil, errors.ErrInsufficientFunds
		}
		if budget, ok := w.FindBudget(category); ok {
			if w.ExpenseByCategory(category)+amount > budget.Limit {
				return nil, errors.ErrBudgetExceeded.Withf("budget for category %q would be exceeded", budget.Category)
			}
		}
	}

	tx := &models.Transaction{
		Kind:      kind,
		Category:  category,
		Amount:    amount,
		CreatedAt: e.now(),
	}
	w.appendPending(tx)
	return tx, nil
}

// SetBudget creates the budget for category or overwrites the limit of the
// existing one. Past expenses are not re-checked against the new limit.
func (e *Engine) SetBudget(w *Wallet, category string, limit float64) (*models.Budget, error) {
	if !ValidAmount(limit) {
		return nil, errors.ErrInvalidAmount
	}

	if existing, ok := w.FindBudget(category); ok {
		existing.Limit = limit
		existing.UpdatedAt = e.now()
		w.putBudget(existing)
		return existing, nil
	}

	now := e.now()
	budget := &models.Budget{
		WalletID:    w.ID,
		Category:    category,
		CategoryKey: CategoryKey(category),
		Limit:       limit,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	w.putBudget(budget)
	return budget, nil
}
