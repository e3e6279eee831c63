package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"finances/internal/models"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by typed getters when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

type CacheService struct {
	client *redis.Client
	ttl    time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// Stats counts lookups since the service was created.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			s.misses.Add(1)
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	s.hits.Add(1)
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// Key generation
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return GenerateKey(entityType, keyType, value)
}

func GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// User caching
func (s *CacheService) CacheUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("cannot cache nil user")
	}

	entry := newUserEntry(user)
	for _, key := range []string{
		s.GenerateKey("user", "id", user.ID),
		s.GenerateKey("user", "login", user.Login),
	} {
		if err := s.Set(ctx, key, entry); err != nil {
			return err
		}
	}
	return nil
}

func (s *CacheService) GetUser(ctx context.Context, key string) (*models.User, error) {
	var entry userEntry
	found, err := s.Get(ctx, key, &entry)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrCacheMiss
	}
	return &models.User{ID: entry.ID, Login: entry.Login}, nil
}

func (s *CacheService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.GetUser(ctx, s.GenerateKey("user", "id", id))
}

func (s *CacheService) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	return s.GetUser(ctx, s.GenerateKey("user", "login", login))
}

// userEntry is the cached identity of a user. The password hash never leaves
// the database; credential checks read it from there.
type userEntry struct {
	ID    uint   `json:"id"`
	Login string `json:"login"`
}

func newUserEntry(user *models.User) userEntry {
	return userEntry{ID: user.ID, Login: user.Login}
}

// Stats caching
func (s *CacheService) SetStats(ctx context.Context, userID uint, view *models.StatsView) error {
	return s.Set(ctx, s.GenerateKey("stats", "user", userID), view)
}

func (s *CacheService) GetStats(ctx context.Context, userID uint) (*models.StatsView, error) {
	var view models.StatsView
	found, err := s.Get(ctx, s.GenerateKey("stats", "user", userID), &view)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrCacheMiss
	}
	return &view, nil
}

// Invalidation patterns
func (s *CacheService) InvalidateStats(ctx context.Context, userIDs ...uint) error {
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, s.GenerateKey("stats", "user", id))
	}
	return s.Delete(ctx, keys...)
}

// HealthCheck pings the Redis server.
func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

func (s *CacheService) Stats() Stats {
	return Stats{Hits: s.hits.Load(), Misses: s.misses.Load()}
}

// FlushAll flushes all keys from the cache
func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

// Close closes the Redis client connection
func (s *CacheService) Close() error {
	return s.client.Close()
}
