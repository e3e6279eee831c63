package user

import (
	"context"
	"fmt"
	"log"
	"strings"

	"finances/internal/models"
	"finances/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	// Register creates the user and its empty wallet in one commit.
	Register(ctx context.Context, input *models.CreateUserInput) (*models.User, error)
}

type service struct {
	repo       repositories.UserRepository
	bcryptCost int
}

func NewService(repo repositories.UserRepository, bcryptCost int) Service {
	if repo == nil {
		panic("user repository is required")
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &service{
		repo:       repo,
		bcryptCost: bcryptCost,
	}
}

func (s *service) Register(ctx context.Context, input *models.CreateUserInput) (*models.User, error) {
	login := strings.TrimSpace(input.Login)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Login:    login,
		Password: string(hashedPassword),
		Wallet:   &models.Wallet{},
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, repositories.ToDomainError(err)
	}

	log.Printf("Registered user %d (%s) with wallet %d", user.ID, user.Login, user.Wallet.ID)
	return user, nil
}
