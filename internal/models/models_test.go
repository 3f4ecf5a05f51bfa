package models

import (
	"testing"
	"time"
)

func TestHasActiveBoostLazyExpiry(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	cases := []struct {
		name       string
		multiplier int
		expireAt   *time.Time
		want       bool
	}{
		{"active with future expiry", 2, &future, true},
		{"expired row still present", 2, &past, false},
		{"expiry exactly now", 2, &now, false},
		{"no expiry on record", 2, nil, false},
		{"multiplier 1 is never a boost", 1, &future, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gb := &GuildBoost{Multiplier: tc.multiplier, ExpireAt: tc.expireAt}
			if got := gb.HasActiveBoost(now); got != tc.want {
				t.Errorf("guild boost: got %v, want %v", got, tc.want)
			}
			ub := &UserBoost{Multiplier: tc.multiplier, ExpireAt: tc.expireAt}
			if got := ub.HasActiveBoost(now); got != tc.want {
				t.Errorf("user boost: got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNilBoostIsInactive(t *testing.T) {
	var gb *GuildBoost
	var ub *UserBoost
	if gb.HasActiveBoost(time.Now()) || ub.HasActiveBoost(time.Now()) {
		t.Error("expected nil boosts to be inactive")
	}
}

func TestDefaultLevelCurveIsMonotonic(t *testing.T) {
	curve := DefaultLevelCurve()
	if len(curve) == 0 {
		t.Fatal("expected a non-empty default curve")
	}
	if curve[0].Level != 1 || curve[0].Threshold != 0 {
		t.Errorf("expected level 1 at threshold 0, got %+v", curve[0])
	}
	for i := 1; i < len(curve); i++ {
		if curve[i].Level != curve[i-1].Level+1 {
			t.Fatalf("levels not consecutive at index %d", i)
		}
		if curve[i].Threshold <= curve[i-1].Threshold {
			t.Fatalf("threshold not increasing at level %d", curve[i].Level)
		}
	}
}
