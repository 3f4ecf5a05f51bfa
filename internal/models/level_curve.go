package models

// LevelCurveEntry maps a level to the cumulative experience required to
// reach it. Reference data: seeded once, queried, never mutated.
type LevelCurveEntry struct {
	Level     int   `gorm:"primaryKey" json:"level"`
	Threshold int64 `gorm:"not null" json:"threshold"`
}

// DefaultLevelCurve is the curve seeded when the table is empty.
// Thresholds follow the classic 5/6·L³ community-bot progression,
// precomputed so the table stays data rather than a formula.
func DefaultLevelCurve() []LevelCurveEntry {
	entries := make([]LevelCurveEntry, 0, 100)
	for lvl := 1; lvl <= 100; lvl++ {
		l := int64(lvl - 1)
		// cumulative xp to reach lvl: 5/6·l·(2l² + 27l + 91)
		threshold := 5 * l * (2*l*l + 27*l + 91) / 6
		entries = append(entries, LevelCurveEntry{Level: lvl, Threshold: threshold})
	}
	return entries
}
