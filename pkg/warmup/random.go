package warmup

import (
	"math/rand"
	"time"
)

// Rand bundles the session's randomness so runs are jittered but tests can
// seed it deterministically.
type Rand struct {
	rnd *rand.Rand
}

// NewRand creates a time-seeded Rand.
func NewRand() *Rand {
	return NewSeededRand(time.Now().UnixNano())
}

// NewSeededRand creates a Rand with a fixed seed.
func NewSeededRand(seed int64) *Rand {
	return &Rand{rnd: rand.New(rand.NewSource(seed))}
}

// Delay returns a random pause in [min, max].
func (r *Rand) Delay(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(r.rnd.Int63n(int64(max-min)))
}

// Chance reports true with probability p.
func (r *Rand) Chance(p float64) bool {
	return r.rnd.Float64() < p
}

// IntBetween returns a random int in [min, max].
func (r *Rand) IntBetween(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.rnd.Intn(max-min+1)
}

// ShufflePlan shuffles the plan items in place, keeping the final item (the
// own-profile visit) where it is. No two sessions replay the same sequence.
func (r *Rand) ShufflePlan(p *Plan) {
	if len(p.Items) < 3 {
		return
	}
	body := p.Items[:len(p.Items)-1]
	r.rnd.Shuffle(len(body), func(i, j int) {
		body[i], body[j] = body[j], body[i]
	})
}
