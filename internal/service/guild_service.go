package service

import (
	"errors"

	"github.com/Fluxpuck/sero-backend/internal/models"
	"github.com/Fluxpuck/sero-backend/internal/repository"
	"gorm.io/gorm"
)

var ErrGuildNotFound = errors.New("guild not found")

// GuildService is thin pass-through guild metadata handling; its one
// interesting job is the premium entitlement check that gates claims.
type GuildService struct {
	guildRepo repository.GuildRepositoryInterface
}

func NewGuildService(guildRepo repository.GuildRepositoryInterface) *GuildService {
	return &GuildService{guildRepo: guildRepo}
}

func (s *GuildService) Ensure(guildID string) error {
	return s.guildRepo.Ensure(guildID)
}

func (s *GuildService) Get(guildID string) (*models.Guild, error) {
	guild, err := s.guildRepo.FindByID(guildID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGuildNotFound
	}
	return guild, err
}

func (s *GuildService) SetPremium(guildID string, premium bool) error {
	if err := s.guildRepo.Ensure(guildID); err != nil {
		return err
	}
	return s.guildRepo.SetPremium(guildID, premium)
}

// IsPremium reports the claim entitlement. An unregistered guild is not
// entitled.
func (s *GuildService) IsPremium(guildID string) (bool, error) {
	guild, err := s.Get(guildID)
	if errors.Is(err, ErrGuildNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return guild.Premium, nil
}
