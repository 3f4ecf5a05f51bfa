package repository

import (
	"github.com/Fluxpuck/sero-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserLevelRepository struct {
	db *gorm.DB
}

func NewUserLevelRepository(db *gorm.DB) *UserLevelRepository {
	return &UserLevelRepository{db: db}
}

// FindOrCreate loads the progression record for (guild, user), creating
// it atomically on first contact. The uniqueness constraint on
// (guild_id, user_id) is the race-safety mechanism: a concurrent first
// gain hits ON CONFLICT DO NOTHING and the follow-up select observes
// whichever insert won.
func (r *UserLevelRepository) FindOrCreate(guildID, userID string) (*models.UserLevel, error) {
	record := models.UserLevel{
		GuildID: guildID,
		UserID:  userID,
		Level:   1,
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&record).Error
	if err != nil {
		return nil, err
	}
	return r.Find(guildID, userID)
}

func (r *UserLevelRepository) Find(guildID, userID string) (*models.UserLevel, error) {
	var record models.UserLevel
	err := r.db.Where("guild_id = ? AND user_id = ?", guildID, userID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindForUpdate loads a record inside tx holding a row lock, so
// concurrent mutations of the same (guild, user) serialize while other
// records stay unblocked.
func (r *UserLevelRepository) FindForUpdate(tx *gorm.DB, guildID, userID string) (*models.UserLevel, error) {
	var record models.UserLevel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("guild_id = ? AND user_id = ?", guildID, userID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *UserLevelRepository) SaveTx(tx *gorm.DB, record *models.UserLevel) error {
	return tx.Save(record).Error
}

// ListByGuild pages through a guild's records ordered by id, for
// chunked administrative sweeps.
func (r *UserLevelRepository) ListByGuild(guildID string, afterID uint, limit int) ([]models.UserLevel, error) {
	var records []models.UserLevel
	err := r.db.Where("guild_id = ? AND id > ?", guildID, afterID).
		Order("id ASC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// Transaction runs fn inside a database transaction; a returned error
// rolls the whole mutation back.
func (r *UserLevelRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}
