// Package kvtest holds the behaviour every core.Store implementation must share.
package kvtest

import (
	"context"
	"testing"

	"github.com/pkg/errors"

	"github.com/doonites/schoolhub/core"
)

// Run exercises store with keys prefixed by prefix.
func Run(t *testing.T, store core.Store, prefix string) {
	t.Helper()
	ctx := context.Background()
	key := prefix + "classes:doonites"
	t.Cleanup(func() { _ = store.Remove(ctx, key) })

	t.Run("missing key", func(t *testing.T) {
		if _, err := store.Get(ctx, prefix+"nope"); errors.Cause(err) != core.ErrKeyNotFound {
			t.Errorf("Get() error = %v, want %v", err, core.ErrKeyNotFound)
		}
	})

	t.Run("put then get", func(t *testing.T) {
		want := `[{"id":"a","name":"Class 6","sections":["A"]}]`
		if err := store.Put(ctx, key, []byte(want)); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		got, err := store.Get(ctx, key)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		assertJSON(t, got, want)
	})

	t.Run("last writer wins", func(t *testing.T) {
		want := `[]`
		if err := store.Put(ctx, key, []byte(`[{"id":"b"}]`)); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		if err := store.Put(ctx, key, []byte(want)); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		got, err := store.Get(ctx, key)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		assertJSON(t, got, want)
	})

	t.Run("remove", func(t *testing.T) {
		if err := store.Remove(ctx, key); err != nil {
			t.Fatalf("Remove() error = %v", err)
		}
		if _, err := store.Get(ctx, key); errors.Cause(err) != core.ErrKeyNotFound {
			t.Errorf("Get() after Remove() error = %v, want %v", err, core.ErrKeyNotFound)
		}
		if err := store.Remove(ctx, key); err != nil {
			t.Errorf("Remove() of a missing key error = %v", err)
		}
	})
}

// assertJSON compares ignoring whitespace, postgres reformats JSONB values.
func assertJSON(t *testing.T, got []byte, want string) {
	t.Helper()
	strip := func(s string) string {
		out := make([]rune, 0, len(s))
		for _, r := range s {
			if r != ' ' && r != '\n' && r != '\t' {
				out = append(out, r)
			}
		}
		return string(out)
	}
	if strip(string(got)) != strip(want) {
		t.Errorf("Get() = %s, want %s", got, want)
	}
}
