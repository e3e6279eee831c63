package validation

import (
	"strings"

	"finances/internal/models"
)

// CreateUser trims the login in place before checking it, so the stored login
// is the one that was validated.
func CreateUser(in *models.CreateUserInput) error {
	in.Login = strings.TrimSpace(in.Login)

	v := New()
	v.Struct(in)
	v.NotBlank("login", in.Login)
	return v.Err()
}

// Transaction checks the shape of the request only; kind and amount are
// judged by the ledger.
func Transaction(in *models.CreateTransactionInput) error {
	v := New()
	v.Struct(in)
	v.NotBlank("type", in.Type)
	v.NotBlank("category", in.Category)
	return v.Err()
}

func Budget(in *models.SetBudgetInput) error {
	v := New()
	v.Struct(in)
	v.NotBlank("category", in.Category)
	return v.Err()
}

func Transfer(in *models.TransferInput) error {
	v := New()
	v.Struct(in)
	v.NotBlank("to_login", in.ToLogin)
	return v.Err()
}
