package repository

import (
	"github.com/Fluxpuck/sero-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RankRepository struct {
	db *gorm.DB
}

func NewRankRepository(db *gorm.DB) *RankRepository {
	return &RankRepository{db: db}
}

func (r *RankRepository) Upsert(rank *models.GuildRank) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}, {Name: "level"}},
		DoUpdates: clause.AssignmentColumns([]string{"role_id", "updated_at"}),
	}).Create(rank).Error
}

func (r *RankRepository) Delete(guildID string, level int) error {
	return r.db.Where("guild_id = ? AND level = ?", guildID, level).
		Delete(&models.GuildRank{}).Error
}

// ListByGuild returns a guild's reward thresholds ordered ascending by
// level; the order is what rank ordinals are derived from.
func (r *RankRepository) ListByGuild(guildID string) ([]models.GuildRank, error) {
	var ranks []models.GuildRank
	err := r.db.Where("guild_id = ?", guildID).
		Order("level ASC").
		Find(&ranks).Error
	return ranks, err
}

func (r *RankRepository) Find(guildID string, level int) (*models.GuildRank, error) {
	var rank models.GuildRank
	err := r.db.Where("guild_id = ? AND level = ?", guildID, level).
		First(&rank).Error
	if err != nil {
		return nil, err
	}
	return &rank, nil
}

func (r *RankRepository) SetBadge(guildID string, level int, badge string) error {
	return r.db.Model(&models.GuildRank{}).
		Where("guild_id = ? AND level = ?", guildID, level).
		Update("badge", badge).Error
}
