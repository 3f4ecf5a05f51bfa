package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Fluxpuck/sero-backend/internal/bus"
	"github.com/Fluxpuck/sero-backend/internal/cache"
	"github.com/Fluxpuck/sero-backend/internal/models"
	"github.com/Fluxpuck/sero-backend/internal/progression"
	"github.com/Fluxpuck/sero-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	publishTimeout  = 2 * time.Second
	resetBatchSize  = 100
	resetBatchPause = 250 * time.Millisecond
)

// EventPublisher is the slice of the bus the mutation service needs.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, payload any) error
}

// LevelService orchestrates every progression mutation: resolve boosts,
// recompute level and rank from experience, persist under a row lock,
// and fire a level-up notification after commit.
type LevelService struct {
	levelRepo repository.UserLevelRepositoryInterface
	boostRepo repository.BoostRepositoryInterface
	rankRepo  repository.RankRepositoryInterface
	curveRepo repository.CurveRepositoryInterface
	publisher EventPublisher
	roller    *progression.Roller
	cache     *cache.LevelCache
}

func NewLevelService(
	levelRepo repository.UserLevelRepositoryInterface,
	boostRepo repository.BoostRepositoryInterface,
	rankRepo repository.RankRepositoryInterface,
	curveRepo repository.CurveRepositoryInterface,
	publisher EventPublisher,
	roller *progression.Roller,
	levelCache *cache.LevelCache,
) *LevelService {
	if roller == nil {
		roller = progression.NewRoller()
	}
	return &LevelService{
		levelRepo: levelRepo,
		boostRepo: boostRepo,
		rankRepo:  rankRepo,
		curveRepo: curveRepo,
		publisher: publisher,
		roller:    roller,
		cache:     levelCache,
	}
}

// Gain rolls the default amount, applies active boosts, and adds the
// result to the member's experience.
func (s *LevelService) Gain(guildID, userID string) (*models.GainResult, error) {
	return s.applyBoosted(guildID, userID, s.roller.Roll())
}

// Claim is a one-off reward drop: the amount is caller-supplied, or
// drawn from a caller-supplied range. Active boosts apply the same way
// they do for a gain. The premium entitlement check is the caller's
// responsibility, not this method's.
func (s *LevelService) Claim(guildID, userID string, amount, minAmount, maxAmount int64) (*models.GainResult, error) {
	base := amount
	if base <= 0 {
		if maxAmount < minAmount || minAmount <= 0 {
			return nil, errors.New("claim requires an amount or a valid range")
		}
		base = s.roller.RollRange(minAmount, maxAmount)
	}
	return s.applyBoosted(guildID, userID, base)
}

// Add applies a raw delta with no boost scaling; used for
// administrative grants and transfers. Negative deltas floor the
// experience at zero.
func (s *LevelService) Add(guildID, userID string, delta int64) (*models.GainResult, error) {
	return s.mutate(guildID, userID, func(exp int64) int64 {
		return exp + delta
	}, delta)
}

// Reset drives the record back to the floor. It is a first-class
// operation rather than a large negative delta, so an audit trail can
// tell an administrative reset apart from lost experience.
func (s *LevelService) Reset(guildID, userID string) (*models.GainResult, error) {
	return s.mutate(guildID, userID, func(int64) int64 {
		return 0
	}, 0)
}

// ResetGuild resets every record in the guild in capped batches with a
// pause between them, so a mass reset on a large guild does not flood
// the role-reconciliation channel. Returns the number of records reset.
func (s *LevelService) ResetGuild(guildID string) (int, error) {
	total := 0
	var afterID uint
	for {
		records, err := s.levelRepo.ListByGuild(guildID, afterID, resetBatchSize)
		if err != nil {
			return total, err
		}
		if len(records) == 0 {
			return total, nil
		}
		for i := range records {
			rec := &records[i]
			if _, err := s.Reset(rec.GuildID, rec.UserID); err != nil {
				return total, fmt.Errorf("reset user %s: %w", rec.UserID, err)
			}
			total++
			afterID = rec.ID
		}
		if len(records) < resetBatchSize {
			return total, nil
		}
		time.Sleep(resetBatchPause)
	}
}

// Get returns the persisted record, preferring the cache.
func (s *LevelService) Get(guildID, userID string) (*models.UserLevel, error) {
	if rec, ok := s.cache.Get(guildID, userID); ok {
		return rec, nil
	}
	rec, err := s.levelRepo.Find(guildID, userID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(rec)
	return rec, nil
}

func (s *LevelService) applyBoosted(guildID, userID string, base int64) (*models.GainResult, error) {
	mult, err := s.effectiveMultiplier(guildID, userID)
	if err != nil {
		return nil, err
	}
	amount := progression.Scale(base, mult)
	return s.mutate(guildID, userID, func(exp int64) int64 {
		return exp + amount
	}, amount)
}

func (s *LevelService) effectiveMultiplier(guildID, userID string) (int, error) {
	guildBoost, err := s.boostRepo.GetGuildBoost(guildID)
	if err != nil {
		return 0, err
	}
	userBoost, err := s.boostRepo.GetUserBoost(guildID, userID)
	if err != nil {
		return 0, err
	}
	return progression.EffectiveMultiplier(guildBoost, userBoost, time.Now()), nil
}

// mutate is the single read-modify-write path. The record is loaded
// under a row lock, experience is transformed, level and rank are
// recomputed from scratch, and the row is saved; the whole step commits
// or rolls back as one. The notification fires only after commit.
func (s *LevelService) mutate(guildID, userID string, transform func(int64) int64, amount int64) (*models.GainResult, error) {
	curve, err := s.curveRepo.ListOrdered()
	if err != nil {
		return nil, err
	}
	ranks, err := s.rankRepo.ListByGuild(guildID)
	if err != nil {
		return nil, err
	}

	if _, err := s.levelRepo.FindOrCreate(guildID, userID); err != nil {
		return nil, err
	}

	var updated models.UserLevel
	var prevLevel int
	err = s.levelRepo.Transaction(func(tx *gorm.DB) error {
		rec, err := s.levelRepo.FindForUpdate(tx, guildID, userID)
		if err != nil {
			return err
		}
		prevLevel = rec.Level

		exp := transform(rec.Experience)
		if exp < 0 {
			exp = 0
		}
		rec.Experience = exp

		prog := progression.LevelFor(exp, curve)
		rec.Level = prog.Level
		rec.CurrentLevelExp = prog.CurrentLevelExp
		rec.NextLevelExp = prog.NextLevelExp
		rec.RemainingExp = prog.RemainingExp

		rank, _ := progression.RankFor(prog.Level, ranks)
		rec.Rank = rank

		if err := s.levelRepo.SaveTx(tx, rec); err != nil {
			return err
		}
		updated = *rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(guildID, userID)

	leveledUp := updated.Level != prevLevel
	if leveledUp {
		s.publishLevelChange(&updated, prevLevel, ranks)
	}

	return &models.GainResult{
		Record:    &updated,
		Amount:    amount,
		LeveledUp: leveledUp,
		Message:   fmt.Sprintf("granted %d experience", amount),
	}, nil
}

// publishLevelChange fires the notification off the request path.
// Delivery is best-effort: a failure is logged and swallowed, never
// surfaced to the caller, because the committed mutation is the source
// of truth.
func (s *LevelService) publishLevelChange(rec *models.UserLevel, prevLevel int, ranks []models.GuildRank) {
	_, eligible := progression.RankFor(rec.Level, ranks)

	payload := bus.LevelUpPayload{
		EventID:       uuid.NewString(),
		GuildID:       rec.GuildID,
		UserID:        rec.UserID,
		Level:         rec.Level,
		Rank:          rec.Rank,
		EligibleRoles: roleIDs(eligible),
		AllGuildRoles: roleIDs(ranks),
		PreviousLevel: prevLevel,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := s.publisher.Publish(ctx, bus.ChannelLevelUp, payload); err != nil {
			log.Printf("level-up publish failed for guild %s user %s: %v", rec.GuildID, rec.UserID, err)
		}
	}()
}

func roleIDs(ranks []models.GuildRank) []string {
	ids := make([]string, 0, len(ranks))
	for _, r := range ranks {
		ids = append(ids, r.RoleID)
	}
	return ids
}
