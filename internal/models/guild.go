package models

import (
	"time"

	"gorm.io/gorm"
)

type Guild struct {
	GuildID   string         `gorm:"primaryKey;size:32" json:"guild_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name    string `gorm:"size:100" json:"name"`
	Premium bool   `gorm:"default:false" json:"premium"`
}
