package models

import (
	"time"
)

// UserLevel is the progression record for a member within a guild.
// Level, rank and the cached curve fields are always recomputed from
// Experience on write; they are never trusted across mutations.
type UserLevel struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	GuildID string `gorm:"size:32;not null;uniqueIndex:idx_guild_user" json:"guild_id"`
	UserID  string `gorm:"size:32;not null;uniqueIndex:idx_guild_user" json:"user_id"`

	Experience      int64 `gorm:"not null;default:0" json:"experience"`
	Level           int   `gorm:"not null;default:1" json:"level"`
	Rank            int   `gorm:"not null;default:0" json:"rank"`
	CurrentLevelExp int64 `gorm:"not null;default:0" json:"current_level_exp"`
	NextLevelExp    int64 `gorm:"not null;default:0" json:"next_level_exp"`
	RemainingExp    int64 `gorm:"not null;default:0" json:"remaining_exp"`
}

// GainResult is what mutation endpoints return: the persisted record
// plus a summary of the amount that was actually granted.
type GainResult struct {
	Record    *UserLevel `json:"record"`
	Amount    int64      `json:"amount"`
	LeveledUp bool       `json:"leveled_up"`
	Message   string     `json:"message"`
}
