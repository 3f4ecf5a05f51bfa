package repository

import (
	"fmt"
	"os"

	"github.com/Fluxpuck/sero-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB() (*gorm.DB, error) {
	// Build connection string
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
	)

	// Connect to database
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate models
	if err := db.AutoMigrate(
		&models.Guild{},
		&models.UserLevel{},
		&models.LevelCurveEntry{},
		&models.GuildRank{},
		&models.GuildBoost{},
		&models.UserBoost{},
	); err != nil {
		return nil, err
	}

	if err := seedLevelCurve(db); err != nil {
		return nil, err
	}

	return db, nil
}

// seedLevelCurve inserts the default curve on first boot. The curve is
// reference data; an already-populated table is left untouched.
func seedLevelCurve(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.LevelCurveEntry{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	entries := models.DefaultLevelCurve()
	return db.Create(&entries).Error
}
