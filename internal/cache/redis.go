package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"saju-match/internal/config"
)

// RedisStore keeps entries under <prefix>pillar:<date> with no expiry.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(cfg config.RedisConfig) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &RedisStore{client: client, prefix: cfg.KeyPrefix}
}

func (s *RedisStore) key(date string) string {
	return s.prefix + "pillar:" + date
}

func (s *RedisStore) Get(ctx context.Context, date string) (Entry, bool, error) {
	if err := validKey(date); err != nil {
		return Entry{}, false, err
	}
	b, err := s.client.Get(ctx, s.key(date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	e, err := decode(date, b)
	if err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

// Put uses SETNX: the first writer of a date wins and later writes of the
// same content are no-ops.
func (s *RedisStore) Put(ctx context.Context, e Entry) error {
	if err := validKey(e.Date); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}
	b, err := encode(e)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}
	if err := s.client.SetNX(ctx, s.key(e.Date), b, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
