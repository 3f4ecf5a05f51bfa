package testutil

import (
	"testing"
	"time"

	"github.com/Fluxpuck/sero-backend/internal/models"
)

// TestHelper provides utility functions for tests
type TestHelper struct {
	t *testing.T
}

func NewTestHelper(t *testing.T) *TestHelper {
	return &TestHelper{t: t}
}

// Snowflake-shaped identifiers used across tests.
const (
	GuildID = "100000000000000001"
	UserID  = "200000000000000002"
	RoleA   = "300000000000000003"
	RoleB   = "300000000000000004"
)

// Curve returns a small three-level curve: level 2 at 100, level 3 at 300.
func (h *TestHelper) Curve() []models.LevelCurveEntry {
	return []models.LevelCurveEntry{
		{Level: 1, Threshold: 0},
		{Level: 2, Threshold: 100},
		{Level: 3, Threshold: 300},
	}
}

// Ranks returns reward thresholds at levels 2 and 3.
func (h *TestHelper) Ranks() []models.GuildRank {
	return []models.GuildRank{
		{GuildID: GuildID, Level: 2, RoleID: RoleA},
		{GuildID: GuildID, Level: 3, RoleID: RoleB},
	}
}

// ActiveBoostExpiry returns an expiry comfortably in the future.
func (h *TestHelper) ActiveBoostExpiry() *time.Time {
	t := time.Now().Add(time.Hour)
	return &t
}

// ExpiredBoostExpiry returns an expiry in the past.
func (h *TestHelper) ExpiredBoostExpiry() *time.Time {
	t := time.Now().Add(-time.Hour)
	return &t
}
