package rediskv

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/doonites/schoolhub/core"
)

// Store keeps every namespace as a plain redis string.
type Store struct {
	client *redis.Client
}

var _ core.Store = (*Store)(nil)

func Open(ctx context.Context, conf core.StorageConfig) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.RedisAddr,
		Password: conf.RedisPassword,
		DB:       conf.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "pinging redis at %s", conf.RedisAddr)
	}
	return &Store{client: client}, nil
}

// New wraps an existing client.
func New(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, core.ErrKeyNotFound
		}
		return nil, errors.Wrapf(err, "redis GET %s", key)
	}
	return val, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return errors.Wrapf(err, "redis SET %s", key)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return errors.Wrapf(err, "redis DEL %s", key)
	}
	return nil
}

func (s *Store) Close() error { return s.client.Close() }
