package bus

// LevelUpPayload is the level-change notification. It is a complete
// snapshot of the member's desired role state; consumers never need to
// look anything up to act on it.
type LevelUpPayload struct {
	EventID       string   `json:"event_id"`
	GuildID       string   `json:"guild_id"`
	UserID        string   `json:"user_id"`
	Level         int      `json:"level"`
	Rank          int      `json:"rank"`
	EligibleRoles []string `json:"eligible_rewards"`
	AllGuildRoles []string `json:"all_guild_rewards"`
	PreviousLevel int      `json:"previous_level"`
}

// ErrorPayload is the dead-letter wrapper for misaddressed payloads.
type ErrorPayload struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
