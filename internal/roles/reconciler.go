package roles

import (
	"context"
	"fmt"
	"log"

	"github.com/Fluxpuck/sero-backend/internal/bus"
)

// Reconciler applies level-change notifications to the chat platform.
// It keeps no state of its own: the payload is the complete snapshot of
// desired role membership, so duplicate or out-of-order notifications
// converge to the same result.
type Reconciler struct {
	client Client
}

func NewReconciler(client Client) *Reconciler {
	return &Reconciler{client: client}
}

// Apply removes every reward the member no longer qualifies for, then
// grants every reward they do. Each operation is attempted
// independently; failures are collected, not retried.
func (r *Reconciler) Apply(ctx context.Context, payload bus.LevelUpPayload) []error {
	eligible := make(map[string]bool, len(payload.EligibleRoles))
	for _, roleID := range payload.EligibleRoles {
		eligible[roleID] = true
	}

	var failures []error
	for _, roleID := range payload.AllGuildRoles {
		if eligible[roleID] {
			continue
		}
		if err := r.client.RemoveRole(ctx, payload.GuildID, payload.UserID, roleID); err != nil {
			failures = append(failures, fmt.Errorf("remove role %s: %w", roleID, err))
		}
	}
	for _, roleID := range payload.EligibleRoles {
		if err := r.client.AddRole(ctx, payload.GuildID, payload.UserID, roleID); err != nil {
			failures = append(failures, fmt.Errorf("add role %s: %w", roleID, err))
		}
	}

	for _, err := range failures {
		log.Printf("reconcile guild %s user %s: %v", payload.GuildID, payload.UserID, err)
	}
	return failures
}
