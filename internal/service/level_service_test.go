package service

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/Fluxpuck/sero-backend/internal/bus"
	"github.com/Fluxpuck/sero-backend/internal/progression"
	"github.com/Fluxpuck/sero-backend/internal/testutil"
)

func newTestLevelService(t *testing.T) (*LevelService, *MockUserLevelRepository, *MockBoostRepository, *MockRankRepository, *MockPublisher) {
	h := testutil.NewTestHelper(t)

	levelRepo := NewMockUserLevelRepository()
	boostRepo := NewMockBoostRepository()
	rankRepo := NewMockRankRepository()
	curveRepo := NewMockCurveRepository(h.Curve())
	publisher := NewMockPublisher()

	for _, r := range h.Ranks() {
		rank := r
		if err := rankRepo.Upsert(&rank); err != nil {
			t.Fatalf("seed rank: %v", err)
		}
	}

	svc := NewLevelService(levelRepo, boostRepo, rankRepo, curveRepo, publisher,
		progression.NewRollerWithSource(rand.NewSource(7)), nil)
	return svc, levelRepo, boostRepo, rankRepo, publisher
}

func waitForPublish(t *testing.T, publisher *MockPublisher) bus.LevelUpPayload {
	t.Helper()
	select {
	case <-publisher.Signal:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for level-up publish")
	}
	payloads := publisher.Payloads()
	payload, ok := payloads[len(payloads)-1].(bus.LevelUpPayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", payloads[len(payloads)-1])
	}
	return payload
}

func TestGainCreatesRecordAndRollsWithinRange(t *testing.T) {
	svc, _, _, _, _ := newTestLevelService(t)

	result, err := svc.Gain(testutil.GuildID, testutil.UserID)
	if err != nil {
		t.Fatalf("gain failed: %v", err)
	}
	if result.Amount < progression.DefaultMinGain || result.Amount > progression.DefaultMaxGain {
		t.Errorf("unboosted gain %d outside default range", result.Amount)
	}
	if result.Record.Experience != result.Amount {
		t.Errorf("experience %d does not match granted amount %d", result.Record.Experience, result.Amount)
	}
	if result.Record.Level != 1 {
		t.Errorf("expected level 1 after a single gain, got %d", result.Record.Level)
	}
}

func TestClaimAppliesCompoundedBoosts(t *testing.T) {
	svc, _, boostRepo, _, _ := newTestLevelService(t)

	boosts := NewBoostService(boostRepo)
	dur := int64(3600)
	if _, err := boosts.SetGuildBoost(testutil.GuildID, 2, &dur); err != nil {
		t.Fatalf("set guild boost: %v", err)
	}
	if _, err := boosts.SetUserBoost(testutil.GuildID, testutil.UserID, 3, &dur); err != nil {
		t.Fatalf("set user boost: %v", err)
	}

	result, err := svc.Claim(testutil.GuildID, testutil.UserID, 20, 0, 0)
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if result.Amount != 120 {
		t.Errorf("expected base 20 x 6 = 120, got %d", result.Amount)
	}
	if result.Record.Experience != 120 {
		t.Errorf("expected experience 120, got %d", result.Record.Experience)
	}
	if result.Record.Level != 2 {
		t.Errorf("expected level 2 at 120 experience, got %d", result.Record.Level)
	}
}

func TestClaimRequiresAmountOrRange(t *testing.T) {
	svc, _, _, _, _ := newTestLevelService(t)

	if _, err := svc.Claim(testutil.GuildID, testutil.UserID, 0, 0, 0); err == nil {
		t.Error("expected error for claim without amount or range")
	}
	if _, err := svc.Claim(testutil.GuildID, testutil.UserID, 0, 50, 10); err == nil {
		t.Error("expected error for inverted range")
	}
}

func TestClaimRangeDrawsWithinBounds(t *testing.T) {
	svc, _, _, _, _ := newTestLevelService(t)

	result, err := svc.Claim(testutil.GuildID, testutil.UserID, 0, 40, 60)
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if result.Amount < 40 || result.Amount > 60 {
		t.Errorf("range claim %d outside [40, 60]", result.Amount)
	}
}

func TestLevelUpPublishesSnapshotAfterCommit(t *testing.T) {
	svc, _, _, _, publisher := newTestLevelService(t)

	result, err := svc.Claim(testutil.GuildID, testutil.UserID, 150, 0, 0)
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if !result.LeveledUp {
		t.Fatal("expected a level change at 150 experience")
	}

	payload := waitForPublish(t, publisher)
	if payload.Level != 2 || payload.PreviousLevel != 1 {
		t.Errorf("expected level 1 -> 2, got %d -> %d", payload.PreviousLevel, payload.Level)
	}
	if payload.Rank != 1 {
		t.Errorf("expected rank 1, got %d", payload.Rank)
	}
	if len(payload.EligibleRoles) != 1 || payload.EligibleRoles[0] != testutil.RoleA {
		t.Errorf("expected eligible [%s], got %v", testutil.RoleA, payload.EligibleRoles)
	}
	if len(payload.AllGuildRoles) != 2 {
		t.Errorf("expected the full guild reward set, got %v", payload.AllGuildRoles)
	}
	if payload.EventID == "" {
		t.Error("expected a populated event id")
	}
}

func TestNoPublishWithoutLevelChange(t *testing.T) {
	svc, _, _, _, publisher := newTestLevelService(t)

	result, err := svc.Claim(testutil.GuildID, testutil.UserID, 10, 0, 0)
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if result.LeveledUp {
		t.Fatal("did not expect a level change at 10 experience")
	}

	select {
	case <-publisher.Signal:
		t.Error("unexpected publish without a level change")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestAddNegativeDeltaFloorsAtZero(t *testing.T) {
	svc, _, _, _, _ := newTestLevelService(t)

	if _, err := svc.Add(testutil.GuildID, testutil.UserID, 250); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	result, err := svc.Add(testutil.GuildID, testutil.UserID, -100000)
	if err != nil {
		t.Fatalf("negative add failed: %v", err)
	}
	if result.Record.Experience != 0 {
		t.Errorf("expected experience floored at 0, got %d", result.Record.Experience)
	}
	if result.Record.Level != 1 || result.Record.Rank != 0 {
		t.Errorf("expected level 1 rank 0 after floor, got level %d rank %d", result.Record.Level, result.Record.Rank)
	}
}

func TestResetDrivesRecordToFloor(t *testing.T) {
	svc, _, _, _, publisher := newTestLevelService(t)

	if _, err := svc.Add(testutil.GuildID, testutil.UserID, 500); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	// Drain the level-up publish from the setup mutation.
	waitForPublish(t, publisher)

	result, err := svc.Reset(testutil.GuildID, testutil.UserID)
	if err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if result.Record.Experience != 0 || result.Record.Level != 1 || result.Record.Rank != 0 {
		t.Errorf("expected floored record, got %+v", result.Record)
	}

	payload := waitForPublish(t, publisher)
	if payload.Level != 1 {
		t.Errorf("expected reset notification at level 1, got %d", payload.Level)
	}
	if len(payload.EligibleRoles) != 0 {
		t.Errorf("expected no eligible rewards after reset, got %v", payload.EligibleRoles)
	}
}

func TestConcurrentGainsDoNotLoseUpdates(t *testing.T) {
	svc, _, _, _, _ := newTestLevelService(t)

	const workers = 50
	const amount = int64(10)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, err := svc.Claim(testutil.GuildID, testutil.UserID, amount, 0, 0); err != nil {
				t.Errorf("concurrent claim failed: %v", err)
			}
		}()
	}
	wg.Wait()

	record, err := svc.Get(testutil.GuildID, testutil.UserID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if record.Experience != workers*amount {
		t.Errorf("lost update: expected %d experience, got %d", workers*amount, record.Experience)
	}
}

func TestResetGuildResetsEveryRecordInBatches(t *testing.T) {
	svc, _, _, _, _ := newTestLevelService(t)

	users := []string{
		"200000000000000002",
		"200000000000000003",
		"200000000000000004",
		"200000000000000005",
		"200000000000000006",
	}
	for _, userID := range users {
		if _, err := svc.Add(testutil.GuildID, userID, 400); err != nil {
			t.Fatalf("seed add failed: %v", err)
		}
	}

	count, err := svc.ResetGuild(testutil.GuildID)
	if err != nil {
		t.Fatalf("guild reset failed: %v", err)
	}
	if count != len(users) {
		t.Errorf("expected %d resets, got %d", len(users), count)
	}

	for _, userID := range users {
		record, err := svc.Get(testutil.GuildID, userID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if record.Experience != 0 || record.Level != 1 {
			t.Errorf("user %s not reset: %+v", userID, record)
		}
	}
}
