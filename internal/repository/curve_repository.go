package repository

import (
	"github.com/Fluxpuck/sero-backend/internal/models"
	"gorm.io/gorm"
)

type CurveRepository struct {
	db *gorm.DB
}

func NewCurveRepository(db *gorm.DB) *CurveRepository {
	return &CurveRepository{db: db}
}

// ListOrdered returns the full level curve ascending by level.
func (r *CurveRepository) ListOrdered() ([]models.LevelCurveEntry, error) {
	var entries []models.LevelCurveEntry
	err := r.db.Order("level ASC").Find(&entries).Error
	return entries, err
}
