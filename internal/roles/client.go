// Package roles converges chat-platform role membership with the
// authoritative progression state.
package roles

import "context"

// Client performs role membership operations against the chat
// platform. Both operations must be idempotent: adding a role the
// member already holds or removing one they do not is a no-op.
type Client interface {
	AddRole(ctx context.Context, guildID, userID, roleID string) error
	RemoveRole(ctx context.Context, guildID, userID, roleID string) error
}
