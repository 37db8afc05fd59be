package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
	ErrExtendFailed     = errors.New("token extend failed")
	ErrTokenDeleted     = errors.New("token delete failed")
)

const (
	userTokenPrefix = "login:user:token"
	userTokenExpire = 60 * 30
)

// TokenRepository keeps the single live access token per user. The auth
// middleware compares the presented token against it, so a later login
// (or a logout) invalidates earlier sessions.
type TokenRepository struct {
	Client *redis.Client
}

func (r *TokenRepository) AddUserToken(userID uint64, token string) error {
	key := fmt.Sprintf("%s:%d", userTokenPrefix, userID)
	if err := r.Client.Set(context.Background(), key, token, time.Second*userTokenExpire).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *TokenRepository) GetUserToken(userID uint64) (string, error) {
	key := fmt.Sprintf("%s:%d", userTokenPrefix, userID)
	token, err := r.Client.Get(context.Background(), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return token, nil
}

func (r *TokenRepository) ExtendUserToken(userID uint64) error {
	key := fmt.Sprintf("%s:%d", userTokenPrefix, userID)
	if _, err := r.Client.Expire(context.Background(), key, time.Second*userTokenExpire).Result(); err != nil {
		return ErrExtendFailed
	}
	return nil
}

func (r *TokenRepository) DeleteUserToken(userID uint64) error {
	key := fmt.Sprintf("%s:%d", userTokenPrefix, userID)
	if err := r.Client.Del(context.Background(), key).Err(); err != nil {
		return ErrTokenDeleted
	}
	return nil
}
