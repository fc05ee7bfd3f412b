package session

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "gymnote-session||"

var _ Store = (*RedisStore)(nil)

// RedisStore keeps session id -> account id with the session TTL, so
// expiry and revocation are both handled by Redis.
type RedisStore struct {
	redisClient *redis.Client
	signer      signer
	ttl         time.Duration

	// injectable for tests
	NewSessionID func() string
	Now          func() time.Time
}

func NewRedisStore(redisClient *redis.Client, secret string, ttl time.Duration) *RedisStore {
	s := newSigner(secret, ttl)
	return &RedisStore{
		redisClient:  redisClient,
		signer:       s,
		ttl:          s.ttl,
		NewSessionID: newSessionID,
		Now:          time.Now,
	}
}

func (rs *RedisStore) Create(ctx context.Context, accountID string) (string, error) {
	sessionID := rs.NewSessionID()
	token, err := rs.signer.sign(accountID, sessionID, rs.Now())
	if err != nil {
		return "", err
	}

	if err := rs.redisClient.Set(ctx, sessionKeyPrefix+sessionID, accountID, rs.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (rs *RedisStore) Validate(ctx context.Context, token string) (string, error) {
	c, err := rs.signer.parse(token)
	if err != nil {
		return "", err
	}

	accountID, err := rs.redisClient.Get(ctx, sessionKeyPrefix+c.ID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrInvalidSession
		}
		return "", err
	}
	if accountID != c.AccountID {
		return "", ErrInvalidSession
	}
	return accountID, nil
}

func (rs *RedisStore) Delete(ctx context.Context, token string) error {
	c, err := rs.signer.parse(token)
	if err != nil {
		return err
	}

	deleted, err := rs.redisClient.Del(ctx, sessionKeyPrefix+c.ID).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrInvalidSession
	}
	return nil
}
