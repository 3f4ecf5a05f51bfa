package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/Fluxpuck/sero-backend/internal/models"
	"github.com/Fluxpuck/sero-backend/internal/progression"
	"github.com/Fluxpuck/sero-backend/internal/repository"
	"github.com/Fluxpuck/sero-backend/internal/storage"
)

var ErrStorageNotConfigured = errors.New("storage not configured")

// RankService manages a guild's reward thresholds and their badge
// icons.
type RankService struct {
	rankRepo repository.RankRepositoryInterface
	store    *storage.S3Storage
}

func NewRankService(rankRepo repository.RankRepositoryInterface, store *storage.S3Storage) *RankService {
	return &RankService{rankRepo: rankRepo, store: store}
}

func (s *RankService) SetRank(guildID string, level int, roleID string) (*models.GuildRank, error) {
	if level < 1 {
		return nil, errors.New("rank level must be at least 1")
	}
	rank := &models.GuildRank{GuildID: guildID, Level: level, RoleID: roleID}
	if err := s.rankRepo.Upsert(rank); err != nil {
		return nil, err
	}
	return rank, nil
}

func (s *RankService) RemoveRank(guildID string, level int) error {
	return s.rankRepo.Delete(guildID, level)
}

func (s *RankService) ListRanks(guildID string) ([]models.GuildRank, error) {
	return s.rankRepo.ListByGuild(guildID)
}

// RewardsFor returns the cumulative reward set owed at a level.
func (s *RankService) RewardsFor(guildID string, level int) (int, []models.GuildRank, error) {
	ranks, err := s.rankRepo.ListByGuild(guildID)
	if err != nil {
		return 0, nil, err
	}
	rank, eligible := progression.RankFor(level, ranks)
	return rank, eligible, nil
}

// UploadBadge normalizes the uploaded image and stores it under a
// stable key, recording the key on the threshold row.
func (s *RankService) UploadBadge(ctx context.Context, guildID string, level int, raw []byte) (string, error) {
	if s.store == nil {
		return "", ErrStorageNotConfigured
	}
	if _, err := s.rankRepo.Find(guildID, level); err != nil {
		return "", err
	}

	normalized, err := storage.NormalizeBadge(raw)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("badges/%s/%d.png", guildID, level)
	if _, err := s.store.PutObject(ctx, key, bytes.NewReader(normalized), int64(len(normalized)), "image/png"); err != nil {
		return "", err
	}
	if err := s.rankRepo.SetBadge(guildID, level, key); err != nil {
		return "", err
	}
	return key, nil
}
