package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type erroringStore struct{}

func (erroringStore) Get(_ context.Context, _ string) ([]byte, bool, error) {
	return nil, false, errors.New("primary down")
}
func (erroringStore) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error {
	return errors.New("primary down")
}
func (erroringStore) Delete(_ context.Context, _ string) error { return errors.New("primary down") }
func (erroringStore) Ping(_ context.Context) error             { return errors.New("primary down") }

func TestFallbackUsesSecondaryOnPrimaryError(t *testing.T) {
	secondary := NewMemoryStore(time.Minute)
	notified := 0
	store := NewFallbackStore(erroringStore{}, secondary, func(error) { notified++ })
	ctx := context.Background()

	if err := store.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set via fallback: %v", err)
	}

	val, found, err := store.Get(ctx, "k")
	if err != nil || !found {
		t.Fatalf("get via fallback: found=%v err=%v", found, err)
	}
	if string(val) != "v" {
		t.Errorf("value = %q, want v", val)
	}
	if notified == 0 {
		t.Error("onError callback never fired")
	}
}

func TestFallbackPrefersHealthyPrimary(t *testing.T) {
	primary := NewMemoryStore(time.Minute)
	secondary := NewMemoryStore(time.Minute)
	store := NewFallbackStore(primary, secondary, func(error) {
		t.Error("onError fired with a healthy primary")
	})
	ctx := context.Background()

	if err := store.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}

	if _, found, _ := secondary.Get(ctx, "k"); found {
		t.Error("write leaked to secondary while primary was healthy")
	}
	if _, found, _ := primary.Get(ctx, "k"); !found {
		t.Error("value missing from primary")
	}
}

func TestFallbackPingReflectsPrimary(t *testing.T) {
	store := NewFallbackStore(erroringStore{}, NewMemoryStore(time.Minute), nil)
	if err := store.Ping(context.Background()); err == nil {
		t.Error("ping must report the primary outage")
	}
}
