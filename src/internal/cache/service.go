package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"sentra-identity-svc/src/internal/config"
	"sentra-identity-svc/src/internal/models"
)

type Service interface {
	GetActiveSession(ctx context.Context, userID, sessionID string) (*models.Session, error)
	CacheActiveSession(ctx context.Context, session *models.Session) error
	UpdateSessionActivity(ctx context.Context, userID, sessionID string) error
	InvalidateSession(ctx context.Context, userID, sessionID string) error
}

type cacheService struct {
	client *redis.Client
	cfg    *config.CacheConfig
}

func NewCacheService(client *redis.Client, cfg *config.Configuration) Service {
	return &cacheService{
		client: client,
		cfg:    &cfg.Cache,
	}
}

func (c *cacheService) key(userID, sessionID string) string {
	return fmt.Sprintf("%s%s:%s", c.cfg.SessionKeyPrefix, userID, sessionID)
}

func (c *cacheService) GetActiveSession(ctx context.Context, userID, sessionID string) (*models.Session, error) {
	key := c.key(userID, sessionID)

	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			logrus.WithField("key", key).Debug("Session not found in cache")
			return nil, nil // Not an error, just not found
		}
		logrus.WithError(err).WithField("key", key).Error("Failed to get session from cache")
		return nil, models.ErrRedisGet
	}

	var session models.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		logrus.WithError(err).WithField("key", key).Error("Failed to unmarshal session from cache")
		return nil, models.ErrRedisGet
	}

	return &session, nil
}

func (c *cacheService) CacheActiveSession(ctx context.Context, session *models.Session) error {
	key := c.key(session.UserID, session.SessionID)

	data, err := json.Marshal(session)
	if err != nil {
		logrus.WithError(err).WithField("session_id", session.SessionID).Error("Failed to marshal session for cache")
		return models.ErrRedisSet
	}

	ttl := time.Duration(c.cfg.SessionExpirationMinutes) * time.Minute
	if remaining := time.Until(session.ExpiresAt); remaining < ttl {
		ttl = remaining
	}
	if ttl <= 0 {
		logrus.WithField("session_id", session.SessionID).Warn("Session already expired, not caching")
		return nil
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Error("Failed to cache session")
		return models.ErrRedisSet
	}

	logrus.WithField("session_id", session.SessionID).Debug("Session cached successfully")
	return nil
}

func (c *cacheService) UpdateSessionActivity(ctx context.Context, userID, sessionID string) error {
	session, err := c.GetActiveSession(ctx, userID, sessionID)
	if err != nil || session == nil {
		return err
	}

	session.LastActivityAt = time.Now()
	return c.CacheActiveSession(ctx, session)
}

func (c *cacheService) InvalidateSession(ctx context.Context, userID, sessionID string) error {
	key := c.key(userID, sessionID)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Error("Failed to invalidate cached session")
		return models.ErrRedisDelete
	}
	return nil
}
