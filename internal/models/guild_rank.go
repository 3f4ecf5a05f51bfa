package models

import "time"

// GuildRank is a reward threshold: a member whose level is at or above
// Level is entitled to the role. Rewards are cumulative across
// thresholds, not a single-level mapping.
type GuildRank struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	GuildID string `gorm:"size:32;not null;uniqueIndex:idx_guild_rank_level" json:"guild_id"`
	Level   int    `gorm:"not null;uniqueIndex:idx_guild_rank_level" json:"level"`
	RoleID  string `gorm:"size:32;not null" json:"role_id"`
	Badge   string `json:"badge,omitempty"`
}
