package models

import "time"

const (
	MinMultiplier = 1
	MaxMultiplier = 10
)

// GuildBoost is a guild-wide experience multiplier. Expiry is lazy:
// expired rows stay in the table and are ignored at read time.
type GuildBoost struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	GuildID         string     `gorm:"size:32;not null;uniqueIndex" json:"guild_id"`
	Multiplier      int        `gorm:"not null;default:1" json:"multiplier"`
	DurationSeconds *int64     `json:"duration_seconds,omitempty"`
	ExpireAt        *time.Time `json:"expire_at,omitempty"`
}

// UserBoost is a personal multiplier scoped to one member of a guild.
type UserBoost struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	GuildID         string     `gorm:"size:32;not null;uniqueIndex:idx_guild_user_boost" json:"guild_id"`
	UserID          string     `gorm:"size:32;not null;uniqueIndex:idx_guild_user_boost" json:"user_id"`
	Multiplier      int        `gorm:"not null;default:1" json:"multiplier"`
	DurationSeconds *int64     `json:"duration_seconds,omitempty"`
	ExpireAt        *time.Time `json:"expire_at,omitempty"`
}

func (b *GuildBoost) HasActiveBoost(now time.Time) bool {
	if b == nil {
		return false
	}
	return activeBoost(b.Multiplier, b.ExpireAt, now)
}

func (b *UserBoost) HasActiveBoost(now time.Time) bool {
	if b == nil {
		return false
	}
	return activeBoost(b.Multiplier, b.ExpireAt, now)
}

// activeBoost evaluates expiry lazily at read time. A boost with no
// expiry on record never activates; writes always derive ExpireAt from
// the requested duration.
func activeBoost(multiplier int, expireAt *time.Time, now time.Time) bool {
	if multiplier <= 1 {
		return false
	}
	if expireAt == nil {
		return false
	}
	return now.Before(*expireAt)
}
