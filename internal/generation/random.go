package generation

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Random is a seeded random source safe for concurrent use.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom creates a source from seed. A zero seed uses the current time.
func NewRandom(seed uint64) *Random {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return &Random{
		rng: rand.New(rand.NewPCG(seed, seed)),
	}
}

// IntN returns a value in [0, n). n must be positive.
func (r *Random) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}
