package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"

	"finances/internal/models"
	"finances/internal/repositories/cache"

	"gorm.io/gorm"
)

type userRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

// NewUserRepository creates a UserRepository. cacheService may be nil, in which
// case every lookup goes to the database.
func NewUserRepository(db *gorm.DB, cacheService *cache.CacheService) UserRepository {
	return &userRepository{
		db:    db,
		cache: cacheService,
	}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.Wallet == nil {
		user.Wallet = &models.Wallet{}
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrLoginTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if r.cache != nil {
		if user, err := r.cache.GetUserByID(ctx, id); err == nil {
			return user, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("user cache lookup failed for id %d: %v", id, err)
		}
	}

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	r.remember(ctx, &user)
	return &user, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	if r.cache != nil {
		if user, err := r.cache.GetUserByLogin(ctx, login); err == nil {
			return user, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("user cache lookup failed for login %q: %v", login, err)
		}
	}

	user, err := r.GetCredentials(ctx, login)
	if err != nil {
		return nil, err
	}
	r.remember(ctx, user)
	return user, nil
}

func (r *userRepository) GetCredentials(ctx context.Context, login string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("login = ?", login).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) remember(ctx context.Context, user *models.User) {
	if r.cache == nil {
		return
	}
	if err := r.cache.CacheUser(ctx, user); err != nil {
		log.Printf("Failed to cache user %d: %v", user.ID, err)
	}
}
