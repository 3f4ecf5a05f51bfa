package repository

import (
	"github.com/Fluxpuck/sero-backend/internal/models"
	"gorm.io/gorm"
)

// UserLevelRepositoryInterface defines the contract for progression record storage
type UserLevelRepositoryInterface interface {
	FindOrCreate(guildID, userID string) (*models.UserLevel, error)
	Find(guildID, userID string) (*models.UserLevel, error)
	FindForUpdate(tx *gorm.DB, guildID, userID string) (*models.UserLevel, error)
	SaveTx(tx *gorm.DB, record *models.UserLevel) error
	ListByGuild(guildID string, afterID uint, limit int) ([]models.UserLevel, error)
	Transaction(fn func(tx *gorm.DB) error) error
}

// BoostRepositoryInterface defines the contract for boost storage
type BoostRepositoryInterface interface {
	UpsertGuildBoost(boost *models.GuildBoost) error
	UpsertUserBoost(boost *models.UserBoost) error
	GetGuildBoost(guildID string) (*models.GuildBoost, error)
	GetUserBoost(guildID, userID string) (*models.UserBoost, error)
}

// RankRepositoryInterface defines the contract for reward threshold storage
type RankRepositoryInterface interface {
	Upsert(rank *models.GuildRank) error
	Delete(guildID string, level int) error
	ListByGuild(guildID string) ([]models.GuildRank, error)
	Find(guildID string, level int) (*models.GuildRank, error)
	SetBadge(guildID string, level int, badge string) error
}

// GuildRepositoryInterface defines the contract for guild metadata storage
type GuildRepositoryInterface interface {
	Ensure(guildID string) error
	FindByID(guildID string) (*models.Guild, error)
	SetPremium(guildID string, premium bool) error
}

// CurveRepositoryInterface defines the contract for level curve reads
type CurveRepositoryInterface interface {
	ListOrdered() ([]models.LevelCurveEntry, error)
}
