package repositories

import (
	"context"
	"errors"

	domainerrors "finances/internal/errors"
)

// ToDomainError maps repository failures onto the caller-visible kinds.
// Errors that already carry a domain code pass through untouched, missing
// records become NotFound and everything else is StorageUnavailable.
func ToDomainError(err error) error {
	if err == nil {
		return nil
	}
	if domainerrors.Code(err) != "" {
		return err
	}
	switch {
	case errors.Is(err, ErrUserNotFound):
		return domainerrors.ErrNotFound.Wrap(err)
	case errors.Is(err, ErrWalletNotFound):
		return domainerrors.ErrNotFound.Withf("wallet not found").Wrap(err)
	case errors.Is(err, ErrLoginTaken):
		return domainerrors.ErrDuplicateLogin.Wrap(err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	}
	return domainerrors.StorageUnavailable(err)
}
