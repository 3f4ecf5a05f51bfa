package repository

import (
	"errors"

	"github.com/Fluxpuck/sero-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BoostRepository struct {
	db *gorm.DB
}

func NewBoostRepository(db *gorm.DB) *BoostRepository {
	return &BoostRepository{db: db}
}

// UpsertGuildBoost writes the guild-wide boost. Re-applying a boost
// overwrites multiplier and expiry, resetting the clock rather than
// extending it.
func (r *BoostRepository) UpsertGuildBoost(boost *models.GuildBoost) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"multiplier", "duration_seconds", "expire_at", "updated_at"}),
	}).Create(boost).Error
}

func (r *BoostRepository) UpsertUserBoost(boost *models.UserBoost) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"multiplier", "duration_seconds", "expire_at", "updated_at"}),
	}).Create(boost).Error
}

// GetGuildBoost returns nil without error when no boost row exists;
// expiry is not evaluated here, callers check HasActiveBoost.
func (r *BoostRepository) GetGuildBoost(guildID string) (*models.GuildBoost, error) {
	var boost models.GuildBoost
	err := r.db.Where("guild_id = ?", guildID).First(&boost).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &boost, nil
}

func (r *BoostRepository) GetUserBoost(guildID, userID string) (*models.UserBoost, error) {
	var boost models.UserBoost
	err := r.db.Where("guild_id = ? AND user_id = ?", guildID, userID).First(&boost).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &boost, nil
}
