package progression

import (
	"math/rand"
	"testing"
)

func TestRollWithinDefaultRange(t *testing.T) {
	roller := NewRollerWithSource(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		got := roller.Roll()
		if got < DefaultMinGain || got > DefaultMaxGain {
			t.Fatalf("roll %d outside [%d, %d]", got, DefaultMinGain, DefaultMaxGain)
		}
	}
}

func TestRollRangeInclusive(t *testing.T) {
	roller := NewRollerWithSource(rand.NewSource(1))
	seen := make(map[int64]bool)
	for i := 0; i < 5000; i++ {
		got := roller.RollRange(5, 7)
		if got < 5 || got > 7 {
			t.Fatalf("roll %d outside [5, 7]", got)
		}
		seen[got] = true
	}
	for v := int64(5); v <= 7; v++ {
		if !seen[v] {
			t.Errorf("value %d never drawn from inclusive range", v)
		}
	}
}

func TestRollRangeDegenerate(t *testing.T) {
	roller := NewRollerWithSource(rand.NewSource(1))
	if got := roller.RollRange(10, 10); got != 10 {
		t.Errorf("expected collapsed range to return 10, got %d", got)
	}
	if got := roller.RollRange(10, 3); got != 10 {
		t.Errorf("expected inverted range to return min, got %d", got)
	}
}
