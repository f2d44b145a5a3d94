package models

import (
	"time"

	"gorm.io/gorm"
)

// Room categories used by the catalog and the public booking form.
const (
	CategoryAC          = "AC"
	CategoryNonAC       = "Non-AC"
	CategoryFamilySuite = "Family Suite"
)

// Room is a room type, not a physical room. Title doubles as the value-level
// foreign key bookings reference; the physical rooms of the type carry the
// numbers NumberStart..NumberEnd.
type Room struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title       string `gorm:"uniqueIndex;size:150" json:"title"`
	Category    string `gorm:"size:50" json:"category"`
	Price       int    `json:"price"`
	TotalRooms  int    `json:"totalRooms"`
	// BookedRooms is a cache of a ledger count, never authoritative.
	BookedRooms int    `json:"bookedRooms"`
	Image       string `gorm:"size:255" json:"image"`
	Description string `gorm:"type:text" json:"description"`

	NumberStart int `gorm:"column:number_start" json:"numberStart"`
	NumberEnd   int `gorm:"column:number_end" json:"numberEnd"`
}
