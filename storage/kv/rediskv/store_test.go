package rediskv

import (
	"context"
	"os"
	"testing"

	"github.com/doonites/schoolhub/core"
	"github.com/doonites/schoolhub/storage/kv/kvtest"
)

func TestStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	store, err := Open(context.Background(), core.StorageConfig{RedisAddr: addr})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()
	kvtest.Run(t, store, "test:")
}
