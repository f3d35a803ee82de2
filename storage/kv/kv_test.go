package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/doonites/schoolhub/core"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		conf    core.StorageConfig
		wantErr bool
	}{
		{name: "default", conf: core.StorageConfig{}},
		{name: "inmem", conf: core.StorageConfig{Driver: core.StorageInMem}},
		{name: "sqlite", conf: core.StorageConfig{Driver: core.StorageSQLite, SQLitePath: filepath.Join(t.TempDir(), "kv.db")}},
		{name: "unknown", conf: core.StorageConfig{Driver: "etcd"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(ctx, tt.conf)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if store != nil {
				_ = store.Close()
			}
		})
	}
}
