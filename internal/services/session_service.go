package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionService keeps the set of live login tokens in redis. A token that
// has been revoked (or expired out of redis) is rejected even if the JWT
// itself is still valid.
type SessionService struct {
	redis *redis.Client
	ctx   context.Context
}

func NewSessionService(redis *redis.Client, ctx context.Context) *SessionService {
	return &SessionService{
		redis: redis,
		ctx:   ctx,
	}
}

func (ss *SessionService) StoreSession(token string, userID uint, ttl time.Duration) error {
	return ss.redis.Set(ss.ctx, sessionKey(token), userID, ttl).Err()
}

func (ss *SessionService) SessionExists(token string) bool {
	count, err := ss.redis.Exists(ss.ctx, sessionKey(token)).Result()
	return err == nil && count > 0
}

func (ss *SessionService) RevokeSession(token string) error {
	return ss.redis.Del(ss.ctx, sessionKey(token)).Err()
}

func sessionKey(token string) string {
	return "session:" + token
}
