// Package progression holds the pure level/rank math. No I/O: callers
// hand in curve and rank tables and get derived values back.
package progression

import (
	"time"

	"github.com/Fluxpuck/sero-backend/internal/models"
)

// Progress is the derived state for an experience total against a curve.
type Progress struct {
	Level           int
	CurrentLevelExp int64
	NextLevelExp    int64
	RemainingExp    int64
}

// LevelFor resolves experience to a level via the curve. The curve must
// be ordered ascending by level. Negative experience clamps to the
// curve origin. At the curve ceiling NextLevelExp and RemainingExp are
// both zero.
func LevelFor(experience int64, curve []models.LevelCurveEntry) Progress {
	p := Progress{Level: 1}
	if experience < 0 {
		experience = 0
	}
	for _, entry := range curve {
		if entry.Threshold <= experience {
			p.Level = entry.Level
			p.CurrentLevelExp = entry.Threshold
			continue
		}
		p.NextLevelExp = entry.Threshold
		p.RemainingExp = entry.Threshold - experience
		break
	}
	if p.Level < 1 {
		p.Level = 1
	}
	return p
}

// RankFor resolves a level to its rank ordinal and the cumulative set
// of rewards owed at that level. Ranks must be ordered ascending by
// level. Rank 0 means no threshold reached yet.
func RankFor(level int, ranks []models.GuildRank) (int, []models.GuildRank) {
	rank := 0
	var eligible []models.GuildRank
	for i, r := range ranks {
		if r.Level > level {
			break
		}
		rank = i + 1
		eligible = append(eligible, r)
	}
	return rank, eligible
}

// EffectiveMultiplier combines the guild-wide and personal boosts.
// Inactive or expired boosts count as 1. The product is deliberately
// not re-clamped: both factors are bounded [1,10] at write time and a
// compounding boost of up to 100x is permitted.
func EffectiveMultiplier(guild *models.GuildBoost, user *models.UserBoost, now time.Time) int {
	mult := 1
	if guild.HasActiveBoost(now) {
		mult *= guild.Multiplier
	}
	if user.HasActiveBoost(now) {
		mult *= user.Multiplier
	}
	return mult
}
