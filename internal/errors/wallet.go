package errors

const (
	CodeNotFound           = "NOT_FOUND"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeDuplicateLogin     = "DUPLICATE_LOGIN"
	CodeInvalidAmount      = "INVALID_AMOUNT"
	CodeInvalidKind        = "INVALID_TRANSACTION_KIND"
	CodeSelfTransfer       = "SELF_TRANSFER"
	CodeInsufficientFunds  = "INSUFFICIENT_FUNDS"
	CodeBudgetExceeded     = "BUDGET_EXCEEDED"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodeInvalidRequest     = "INVALID_REQUEST"
)

var (
	ErrNotFound = &DomainError{
		Code:    CodeNotFound,
		Message: "user not found",
	}
	ErrUnauthorized = &DomainError{
		Code:    CodeUnauthorized,
		Message: "invalid login or password",
	}
	ErrDuplicateLogin = &DomainError{
		Code:    CodeDuplicateLogin,
		Message: "login is already taken",
	}
	ErrInvalidAmount = &DomainError{
		Code:    CodeInvalidAmount,
		Message: "amount must be a finite non-negative number",
	}
	ErrInvalidKind = &DomainError{
		Code:    CodeInvalidKind,
		Message: "transaction type must be income or expense",
	}
	ErrSelfTransfer = &DomainError{
		Code:    CodeSelfTransfer,
		Message: "cannot transfer to the same wallet",
	}
	ErrInsufficientFunds = &DomainError{
		Code:    CodeInsufficientFunds,
		Message: "expenses would exceed income",
	}
	ErrBudgetExceeded = &DomainError{
		Code:    CodeBudgetExceeded,
		Message: "category budget would be exceeded",
	}
	ErrStorageUnavailable = &DomainError{
		Code:    CodeStorageUnavailable,
		Message: "storage unavailable",
	}
	ErrInvalidRequest = &DomainError{
		Code:    CodeInvalidRequest,
		Message: "invalid request",
	}
)

// StorageUnavailable wraps a persistence failure so it is never mistaken for a
// validation failure.
func StorageUnavailable(err error) error {
	return ErrStorageUnavailable.Wrap(err)
}
