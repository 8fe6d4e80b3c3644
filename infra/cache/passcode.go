package cache

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisPasscodeStore keeps one pending passcode hash per email, expiring
// after the TTL. Consume is single-use: a successful match deletes the key.
type RedisPasscodeStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPasscodeStore(addr, password string, db int, ttl time.Duration) *RedisPasscodeStore {
	return &RedisPasscodeStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

func passcodeKey(email string) string {
	return "passcode:" + email
}

func (s *RedisPasscodeStore) Put(ctx context.Context, email, codeHash string) error {
	return s.client.Set(ctx, passcodeKey(email), codeHash, s.ttl).Err()
}

func (s *RedisPasscodeStore) Consume(ctx context.Context, email, codeHash string) (bool, error) {
	key := passcodeKey(email)

	stored, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(codeHash)) != 1 {
		return false, nil
	}

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return false, err
	}
	return true, nil
}
