package session

import (
	"context"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	tokenKey = "portfolio-gw-session||token"
	userKey  = "portfolio-gw-session||user"
)

var _ Store = (*RedisStore)(nil)
var _ Store = (*TestStore)(nil)

// Store keeps the admin session token and the cached user snapshot
// between requests. Clear always removes both.
type Store interface {
	SetToken(ctx context.Context, token string) error
	Token(ctx context.Context) (string, bool)
	SetUser(ctx context.Context, userJSON []byte) error
	User(ctx context.Context) ([]byte, bool)
	Clear(ctx context.Context) error
}

type RedisStore struct {
	redisClient *redis.Client
}

// NewRedisStore returns a redis backed session store. A nil redis client is
// allowed: all operations then degrade to no-ops that report "no value",
// so code paths without a persistent backend keep working.
func NewRedisStore(redisClient *redis.Client) *RedisStore {
	return &RedisStore{
		redisClient: redisClient,
	}
}

func (s *RedisStore) SetToken(ctx context.Context, token string) error {
	if s.redisClient == nil {
		return nil
	}
	return s.redisClient.Set(ctx, tokenKey, token, 0).Err()
}

func (s *RedisStore) Token(ctx context.Context) (string, bool) {
	if s.redisClient == nil {
		return "", false
	}

	cmd := s.redisClient.Get(ctx, tokenKey)
	if err := cmd.Err(); err != nil {
		if err != redis.Nil {
			log.Errorf("session store, get token: %s", err)
		}
		return "", false
	}

	tokenValue := cmd.Val()
	if tokenValue == "" {
		return "", false
	}

	return tokenValue, true
}

func (s *RedisStore) SetUser(ctx context.Context, userJSON []byte) error {
	if s.redisClient == nil {
		return nil
	}
	return s.redisClient.Set(ctx, userKey, userJSON, 0).Err()
}

func (s *RedisStore) User(ctx context.Context) ([]byte, bool) {
	if s.redisClient == nil {
		return nil, false
	}

	cmd := s.redisClient.Get(ctx, userKey)
	if err := cmd.Err(); err != nil {
		if err != redis.Nil {
			log.Errorf("session store, get user: %s", err)
		}
		return nil, false
	}

	userValue := cmd.Val()
	if userValue == "" {
		return nil, false
	}

	return []byte(userValue), true
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if s.redisClient == nil {
		return nil
	}
	return s.redisClient.Del(ctx, tokenKey, userKey).Err()
}
