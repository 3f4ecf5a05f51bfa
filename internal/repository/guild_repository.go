package repository

import (
	"github.com/Fluxpuck/sero-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GuildRepository struct {
	db *gorm.DB
}

func NewGuildRepository(db *gorm.DB) *GuildRepository {
	return &GuildRepository{db: db}
}

// Ensure registers a guild on first contact; an existing row is left
// untouched.
func (r *GuildRepository) Ensure(guildID string) error {
	guild := models.Guild{GuildID: guildID}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}},
		DoNothing: true,
	}).Create(&guild).Error
}

func (r *GuildRepository) FindByID(guildID string) (*models.Guild, error) {
	var guild models.Guild
	if err := r.db.Where("guild_id = ?", guildID).First(&guild).Error; err != nil {
		return nil, err
	}
	return &guild, nil
}

func (r *GuildRepository) SetPremium(guildID string, premium bool) error {
	return r.db.Model(&models.Guild{}).
		Where("guild_id = ?", guildID).
		Update("premium", premium).Error
}
