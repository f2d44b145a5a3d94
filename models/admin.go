package models

import (
	"time"

	"gorm.io/gorm"
)

type Admin struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:255" json:"name"`
	Email     string         `gorm:"uniqueIndex;size:150" json:"email"`
	Contact   string         `gorm:"size:100" json:"contact"`
	Password  string         `gorm:"size:255" json:"-"` // bcrypt hash, never returned
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
