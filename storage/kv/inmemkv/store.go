package inmemkv

import (
	"context"
	"sort"
	"sync"

	"github.com/doonites/schoolhub/core"
)

// Store keeps every namespace in memory. Values are copied in and out.
type Store struct {
	mutex sync.RWMutex
	table map[string][]byte
}

var _ core.Store = (*Store)(nil)

func Open() *Store {
	return &Store{table: make(map[string][]byte)}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	val, ok := s.table[key]
	if !ok {
		return nil, core.ErrKeyNotFound
	}
	return append([]byte(nil), val...), nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.table[key] = append([]byte(nil), value...)
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.table, key)
	return nil
}

// Keys returns the stored keys, sorted.
func (s *Store) Keys() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	keys := make([]string, 0, len(s.table))
	for k := range s.table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *Store) Close() error { return nil }
