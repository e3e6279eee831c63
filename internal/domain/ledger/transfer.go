package ledger

import (
	"fmt"

	"finances/internal/errors"
	"finances/internal/models"
)

// TransferRequest describes a balance movement between two wallets.
type TransferRequest struct {
	Amount    float64
	FromLogin string
	ToLogin   string
	Reference string
}

// DebitCategory is the label of the sender's expense.
func (r TransferRequest) DebitCategory() string {
	return fmt.Sprintf("Transfer to %s", r.ToLogin)
}

// CreditCategory is the label of the receiver's income.
func (r TransferRequest) CreditCategory() string {
	return fmt.Sprintf("Transfer from %s", r.FromLogin)
}

// Transfer debits from and credits to. Only the sender's balance is checked:
// category budgets never block a transfer. Either both transactions are
// appended or neither is.
func (e *Engine) Transfer(from, to *Wallet, req TransferRequest) (debit, credit *models.Transaction, err error) {
	if from == to || from.ID == to.ID {
		return nil, nil, errors.ErrSelfTransfer
	}
	if !ValidAmount(req.Amount) {
		return nil, nil, errors.ErrInvalidAmount
	}
	if req.Amount > from.Balance() {
		return nil, nil, errors.ErrInsufficientFunds.Withf("insufficient funds: balance %.2f, requested %.2f", from.Balance(), req.Amount)
	}

	now := e.now()
	debit = &models.Transaction{
		Kind:      models.TransactionKindExpense,
		Category:  req.DebitCategory(),
		Amount:    req.Amount,
		Reference: req.Reference,
		CreatedAt: now,
	}
	credit = &models.Transaction{
		Kind:      models.TransactionKindIncome,
		Category:  req.CreditCategory(),
		Amount:    req.Amount,
		Reference: req.Reference,
		CreatedAt: now,
	}
	from.appendPending(debit)
	to.appendPending(credit)
	return debit, credit, nil
}
