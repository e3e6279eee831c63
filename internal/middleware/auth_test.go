package middleware

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	domainerrors "finances/internal/errors"
	"finances/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuth struct {
	mock.Mock
}

func (m *MockAuth) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	args := m.Called(login, password)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		login      string
		password   string
		setup      func(*MockAuth)
		wantStatus int
	}{
		{
			name:       "missing headers",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:     "valid credentials",
			login:    "alice",
			password: "secret",
			setup: func(m *MockAuth) {
				m.On("Authenticate", "alice", "secret").Return(&models.User{ID: 7, Login: "alice"}, nil)
			},
			wantStatus: fiber.StatusOK,
		},
		{
			name:     "wrong password",
			login:    "alice",
			password: "nope",
			setup: func(m *MockAuth) {
				m.On("Authenticate", "alice", "nope").Return(nil, domainerrors.ErrUnauthorized)
			},
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:     "store down",
			login:    "alice",
			password: "secret",
			setup: func(m *MockAuth) {
				m.On("Authenticate", "alice", "secret").Return(nil, domainerrors.StorageUnavailable(errors.New("db down")))
			},
			wantStatus: fiber.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authService := new(MockAuth)
			if tt.setup != nil {
				tt.setup(authService)
			}

			app := fiber.New()
			app.Get("/me", NewAuthMiddleware(authService).Handler, func(c *fiber.Ctx) error {
				return c.SendString(CurrentUser(c).Login)
			})

			req := httptest.NewRequest("GET", "/me", nil)
			if tt.login != "" {
				req.Header.Set(HeaderLogin, tt.login)
				req.Header.Set(HeaderPassword, tt.password)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			authService.AssertExpectations(t)
		})
	}
}
