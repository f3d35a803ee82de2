package testutil

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/doonites/schoolhub/core"
	"github.com/doonites/schoolhub/core/seed"
	"github.com/doonites/schoolhub/storage/kv/inmemkv"
)

// Now is the fixed clock used by seeded test data.
var Now = time.Date(2026, time.March, 2, 9, 30, 0, 0, time.UTC)

var ErrWriteRefused = errors.New("quota exceeded")

// NewSeeder returns a deterministic seeder writing into store.
func NewSeeder(store core.Store, randSeed int64) *seed.Seeder {
	return seed.New(seed.Options{
		Store: store,
		Rand:  rand.New(rand.NewSource(randSeed)),
		Now:   func() time.Time { return Now },
	})
}

// SeededStore returns an in-memory store holding a full dataset, notifications included.
func SeededStore(t *testing.T) *inmemkv.Store {
	t.Helper()
	store := inmemkv.Open()
	seeded, err := NewSeeder(store, 42).SeedIfEmpty(context.Background())
	if err != nil {
		t.Fatalf("SeedIfEmpty() failed: %v", err)
	}
	if !seeded {
		t.Fatal("SeedIfEmpty() did not seed an empty store")
	}
	return store
}

// FailingStore wraps a core.Store and refuses writes to the keys in FailOn (every key when empty).
type FailingStore struct {
	core.Store
	FailOn map[string]bool
}

func (s *FailingStore) Put(ctx context.Context, key string, value []byte) error {
	if len(s.FailOn) == 0 || s.FailOn[key] {
		return ErrWriteRefused
	}
	return s.Store.Put(ctx, key, value)
}
