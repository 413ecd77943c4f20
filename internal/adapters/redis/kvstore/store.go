package kvstore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Store is a Redis implementation of kvstore.Store. The trip cache keeps one
// blob per key, so plain GET/SET without expiry is all it needs.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.client == nil {
		return nil, false, errors.New("nil redis client")
	}
	v, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return v, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if s.client == nil {
		return errors.New("nil redis client")
	}
	return s.client.Set(ctx, key, value, 0).Err()
}
