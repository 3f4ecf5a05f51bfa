package progression

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// Default gain range for an ordinary message/activity tick.
const (
	DefaultMinGain = 15
	DefaultMaxGain = 25
)

// Roller draws experience amounts. The random source is injected so
// tests can pin the draw; it is the only nondeterminism in the engine.
// Draws are serialized; rand.Rand is not safe for concurrent use.
type Roller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRoller() *Roller {
	return &Roller{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func NewRollerWithSource(src rand.Source) *Roller {
	return &Roller{rng: rand.New(src)}
}

// Roll draws a base amount from the default range, inclusive.
func (r *Roller) Roll() int64 {
	return r.RollRange(DefaultMinGain, DefaultMaxGain)
}

// RollRange draws uniformly from [min, max] inclusive. A degenerate
// range collapses to min.
func (r *Roller) RollRange(min, max int64) int64 {
	if max <= min {
		return min
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return min + r.rng.Int63n(max-min+1)
}

// Scale applies a multiplier to a base roll, rounding up.
func Scale(base int64, multiplier int) int64 {
	if multiplier <= 1 {
		return base
	}
	return int64(math.Ceil(float64(base) * float64(multiplier)))
}
