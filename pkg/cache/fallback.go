package cache

import (
	"context"
	"time"
)

// FallbackStore reads and writes through the primary store and silently
// falls back to the secondary when the primary errors. Writes that reach
// only the secondary are lost on restart, which is the accepted trade-off:
// availability over continuity.
type FallbackStore struct {
	primary   Store
	secondary Store
	onError   func(err error)
}

var _ Store = &FallbackStore{}

func NewFallbackStore(primary, secondary Store, onError func(err error)) *FallbackStore {
	if onError == nil {
		onError = func(error) {}
	}
	return &FallbackStore{
		primary:   primary,
		secondary: secondary,
		onError:   onError,
	}
}

func (s *FallbackStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, found, err := s.primary.Get(ctx, key)
	if err == nil {
		return val, found, nil
	}
	s.onError(err)
	return s.secondary.Get(ctx, key)
}

func (s *FallbackStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.primary.Set(ctx, key, value, ttl); err != nil {
		s.onError(err)
		return s.secondary.Set(ctx, key, value, ttl)
	}
	return nil
}

func (s *FallbackStore) Delete(ctx context.Context, key string) error {
	if err := s.primary.Delete(ctx, key); err != nil {
		s.onError(err)
		return s.secondary.Delete(ctx, key)
	}
	return nil
}

func (s *FallbackStore) Ping(ctx context.Context) error {
	return s.primary.Ping(ctx)
}
