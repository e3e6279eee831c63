// Package middleware provides HTTP middleware components for the application.
package middleware

import (
	"errors"

	domainerrors "finances/internal/errors"
	"finances/internal/models"
	"finances/internal/services/auth"
	"finances/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

const (
	HeaderLogin    = "X-User-Login"
	HeaderPassword = "X-User-Password"

	userLocalsKey = "user"
)

// AuthMiddleware resolves the caller from the login/password headers sent with
// every request.
type AuthMiddleware struct {
	authService auth.Service
}

func NewAuthMiddleware(authService auth.Service) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Handler stores the authenticated user in the request locals.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	login := c.Get(HeaderLogin)
	password := c.Get(HeaderPassword)
	if login == "" || password == "" {
		return response.ErrorWithCode(c, fiber.StatusUnauthorized, domainerrors.CodeUnauthorized, "missing credentials")
	}

	user, err := m.authService.Authenticate(c.UserContext(), login, password)
	if err != nil {
		if errors.Is(err, domainerrors.ErrUnauthorized) {
			return response.ErrorWithCode(c, fiber.StatusUnauthorized, domainerrors.CodeUnauthorized, "invalid login or password")
		}
		return response.ErrorWithCode(c, fiber.StatusServiceUnavailable, domainerrors.Code(err), "authentication unavailable")
	}

	c.Locals(userLocalsKey, user)
	return c.Next()
}

// CurrentUser returns the user stored by Handler, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocalsKey).(*models.User)
	return user
}
