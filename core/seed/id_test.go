package seed

import (
	"math/rand"
	"strconv"
	"testing"
	"time"
)

func TestSeeder_newID(t *testing.T) {
	now := time.Date(2026, time.January, 15, 8, 0, 0, 0, time.UTC)
	s := New(Options{Rand: rand.New(rand.NewSource(1)), Now: func() time.Time { return now }})
	stamp := strconv.FormatInt(now.UnixNano()/int64(time.Millisecond), 36)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := s.newID()
		if len(id) <= len(stamp) || id[len(id)-len(stamp):] != stamp {
			t.Fatalf("newID() = %q, want a %q suffix", id, stamp)
		}
		if _, err := strconv.ParseInt(id[:len(id)-len(stamp)], 36, 64); err != nil {
			t.Fatalf("newID() = %q, random part is not base 36: %v", id, err)
		}
		if seen[id] {
			t.Fatalf("newID() repeated %q", id)
		}
		seen[id] = true
	}
}
