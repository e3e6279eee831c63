package repositories

import (
	"context"
	"errors"

	"finances/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrLoginTaken   = errors.New("login already taken")
)

// UserRepository defines the user lookups and registration write.
type UserRepository interface {
	// Create inserts the user together with an empty wallet in one commit.
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by their ID. A cached user carries no
	// password hash.
	GetByID(ctx context.Context, id uint) (*models.User, error)

	// GetByLogin retrieves a user by their exact login. A cached user carries
	// no password hash.
	GetByLogin(ctx context.Context, login string) (*models.User, error)

	// GetCredentials reads the user and its password hash from the database,
	// skipping the cache.
	GetCredentials(ctx context.Context, login string) (*models.User, error)
}
