package auth

import (
	"context"
	"errors"
	"log"

	domainerrors "finances/internal/errors"
	"finances/internal/models"
	"finances/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// Service resolves a login/password pair to a user.
type Service interface {
	Authenticate(ctx context.Context, login, password string) (*models.User, error)
}

type service struct {
	userRepo repositories.UserRepository
}

func NewService(userRepo repositories.UserRepository) Service {
	if userRepo == nil {
		panic("user repository is required")
	}
	return &service{
		userRepo: userRepo,
	}
}

// Authenticate returns Unauthorized for an unknown login and for a wrong
// password alike.
func (s *service) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	if login == "" || password == "" {
		return nil, domainerrors.ErrUnauthorized
	}

	user, err := s.userRepo.GetCredentials(ctx, login)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			log.Printf("Authentication failed: unknown login %q", login)
			return nil, domainerrors.ErrUnauthorized
		}
		return nil, repositories.ToDomainError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		log.Printf("Authentication failed: incorrect password for user ID: %d", user.ID)
		return nil, domainerrors.ErrUnauthorized
	}

	return user, nil
}
