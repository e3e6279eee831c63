// Package stats serves the read-only wallet summary, cached per user.
package stats

import (
	"context"
	"errors"
	"log"
	"strconv"

	domain "finances/internal/domain/ledger"
	"finances/internal/models"
	"finances/internal/repositories"
	"finances/internal/repositories/cache"

	"golang.org/x/sync/singleflight"
)

// Cache stores projected views. GetStats returns cache.ErrCacheMiss when the
// view is absent.
type Cache interface {
	GetStats(ctx context.Context, userID uint) (*models.StatsView, error)
	SetStats(ctx context.Context, userID uint, view *models.StatsView) error
	InvalidateStats(ctx context.Context, userIDs ...uint) error
}

type Service interface {
	GetStats(ctx context.Context, user *models.User) (*models.StatsView, error)
}

type service struct {
	wallets repositories.WalletRepository
	cache   Cache
	group   singleflight.Group
}

// NewService creates the stats service. cache may be nil.
func NewService(wallets repositories.WalletRepository, c Cache) Service {
	if wallets == nil {
		panic("wallet repository is required")
	}
	return &service{
		wallets: wallets,
		cache:   c,
	}
}

func (s *service) GetStats(ctx context.Context, user *models.User) (*models.StatsView, error) {
	if s.cache != nil {
		view, err := s.cache.GetStats(ctx, user.ID)
		if err == nil {
			return view, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("stats cache read failed for user %d: %v", user.ID, err)
		}
	}

	// Concurrent misses for the same user share one projection. The flight
	// outlives any single caller, so it runs detached from the caller's
	// cancellation and each caller waits on its own context.
	flightCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(strconv.FormatUint(uint64(user.ID), 10), func() (interface{}, error) {
		return s.project(flightCtx, user)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, repositories.ToDomainError(res.Err)
		}
		return res.Val.(*models.StatsView), nil
	}
}

// project reads the wallet and fills the cache while holding the wallet lock,
// so a concurrent mutation cannot commit between the read and the cache write.
func (s *service) project(ctx context.Context, user *models.User) (*models.StatsView, error) {
	wallet, err := s.wallets.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	var view *models.StatsView
	err = s.wallets.WithWalletLocks(ctx, []uint{wallet.ID}, func(repo repositories.WalletRepository) error {
		agg, err := repo.LoadAggregate(ctx, wallet.ID)
		if err != nil {
			return err
		}
		view = domain.ProjectStats(user.Login, agg)

		if s.cache != nil {
			if err := s.cache.SetStats(ctx, user.ID, view); err != nil {
				log.Printf("stats cache write failed for user %d: %v", user.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
