// Package kv opens the configured core.Store.
package kv

import (
	"context"

	"github.com/pkg/errors"

	"github.com/doonites/schoolhub/core"
	"github.com/doonites/schoolhub/storage/kv/inmemkv"
	"github.com/doonites/schoolhub/storage/kv/pgkv"
	"github.com/doonites/schoolhub/storage/kv/rediskv"
	"github.com/doonites/schoolhub/storage/kv/sqlitekv"
)

func Open(ctx context.Context, conf core.StorageConfig) (core.Store, error) {
	var (
		store core.Store
		err   error
	)
	switch conf.Driver {
	case "", core.StorageInMem:
		return inmemkv.Open(), nil
	case core.StorageRedis:
		store, err = rediskv.Open(ctx, conf)
	case core.StorageSQLite:
		store, err = sqlitekv.Open(conf.SQLitePath)
	case core.StoragePostgres:
		store, err = pgkv.Open(ctx, conf.PostgresURL)
	default:
		return nil, errors.Errorf("unknown storage driver %q", conf.Driver)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s store", conf.Driver)
	}
	return store, nil
}
