package seed

import (
	"strconv"
	"time"
)

// newID combines a random base-36 fragment with the base-36 millisecond timestamp.
// Unique enough for demo data; not a cryptographic identifier.
func (s *Seeder) newID() string {
	rnd := strconv.FormatInt(s.rand.Int63(), 36)
	if len(rnd) > 9 {
		rnd = rnd[:9]
	}
	return rnd + strconv.FormatInt(s.now().UnixNano()/int64(time.Millisecond), 36)
}
