package repositories

import (
	"context"
	"errors"
	"fmt"
	"testing"

	domainerrors "finances/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"user not found", ErrUserNotFound, domainerrors.CodeNotFound},
		{"wrapped wallet not found", fmt.Errorf("load: %w", ErrWalletNotFound), domainerrors.CodeNotFound},
		{"login taken", ErrLoginTaken, domainerrors.CodeDuplicateLogin},
		{"domain error passes through", domainerrors.ErrBudgetExceeded, domainerrors.CodeBudgetExceeded},
		{"driver failure", errors.New("connection refused"), domainerrors.CodeStorageUnavailable},
		{"cancelled", context.Canceled, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDomainError(tt.err)
			assert.Equal(t, tt.want, domainerrors.Code(got))
			if tt.err != nil {
				assert.ErrorIs(t, got, tt.err)
			}
		})
	}
}
