// internal/services/cache_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/damaiputra/living-backend/internal/config"
)

// CacheService fronts Redis for hot read paths, mainly per-user ticket lists.
// Every method degrades gracefully: a cache failure is logged and treated as a
// miss, never surfaced to the caller.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

const ticketListTTL = 5 * time.Minute

func NewCacheService(cfg config.RedisConfig) *CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &CacheService{client: client, ttl: ticketListTTL}
}

// NewCacheServiceWithClient is used by tests to inject a miniredis-backed client.
func NewCacheServiceWithClient(client *redis.Client) *CacheService {
	return &CacheService{client: client, ttl: ticketListTTL}
}

func (s *CacheService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *CacheService) Close() error {
	return s.client.Close()
}

func ticketListKey(userID string) string {
	return fmt.Sprintf("tickets:user:%s", userID)
}

func (s *CacheService) GetTicketList(ctx context.Context, userID string, dest interface{}) bool {
	data, err := s.client.Get(ctx, ticketListKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logrus.WithError(err).Warn("Ticket list cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		logrus.WithError(err).Warn("Ticket list cache entry corrupt, dropping")
		s.client.Del(ctx, ticketListKey(userID))
		return false
	}
	return true
}

func (s *CacheService) SetTicketList(ctx context.Context, userID string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		logrus.WithError(err).Warn("Ticket list cache marshal failed")
		return
	}
	if err := s.client.Set(ctx, ticketListKey(userID), data, s.ttl).Err(); err != nil {
		logrus.WithError(err).Warn("Ticket list cache write failed")
	}
}

// InvalidateTicketList drops the cached list after any ticket mutation.
func (s *CacheService) InvalidateTicketList(ctx context.Context, userID string) {
	if err := s.client.Del(ctx, ticketListKey(userID)).Err(); err != nil {
		logrus.WithError(err).Warn("Ticket list cache invalidation failed")
	}
}
