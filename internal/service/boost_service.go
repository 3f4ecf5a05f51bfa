package service

import (
	"errors"
	"time"

	"github.com/Fluxpuck/sero-backend/internal/models"
	"github.com/Fluxpuck/sero-backend/internal/progression"
	"github.com/Fluxpuck/sero-backend/internal/repository"
)

var ErrInvalidMultiplier = errors.New("multiplier must be between 1 and 10")

// BoostService manages guild-wide and personal experience multipliers.
// Expiry is recomputed from the duration on every write, so re-applying
// a boost resets its clock rather than extending it. Expired rows are
// never swept; reads evaluate expiry lazily.
type BoostService struct {
	boostRepo repository.BoostRepositoryInterface
}

func NewBoostService(boostRepo repository.BoostRepositoryInterface) *BoostService {
	return &BoostService{boostRepo: boostRepo}
}

// SetGuildBoost upserts the guild-wide multiplier. durationSeconds nil
// stores a boost with no expiry on record.
func (s *BoostService) SetGuildBoost(guildID string, multiplier int, durationSeconds *int64) (*models.GuildBoost, error) {
	if multiplier < models.MinMultiplier || multiplier > models.MaxMultiplier {
		return nil, ErrInvalidMultiplier
	}
	boost := &models.GuildBoost{
		GuildID:         guildID,
		Multiplier:      multiplier,
		DurationSeconds: durationSeconds,
		ExpireAt:        expiry(durationSeconds),
	}
	if err := s.boostRepo.UpsertGuildBoost(boost); err != nil {
		return nil, err
	}
	return boost, nil
}

func (s *BoostService) SetUserBoost(guildID, userID string, multiplier int, durationSeconds *int64) (*models.UserBoost, error) {
	if multiplier < models.MinMultiplier || multiplier > models.MaxMultiplier {
		return nil, ErrInvalidMultiplier
	}
	boost := &models.UserBoost{
		GuildID:         guildID,
		UserID:          userID,
		Multiplier:      multiplier,
		DurationSeconds: durationSeconds,
		ExpireAt:        expiry(durationSeconds),
	}
	if err := s.boostRepo.UpsertUserBoost(boost); err != nil {
		return nil, err
	}
	return boost, nil
}

// Effective returns the combined multiplier currently in force for a
// member, with inactive and expired boosts counting as 1.
func (s *BoostService) Effective(guildID, userID string) (int, error) {
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

func expiry(durationSeconds *int64) *time.Time {
	if durationSeconds == nil {
		return nil
	}
	t := time.Now().Add(time.Duration(*durationSeconds) * time.Second)
	return &t
}
