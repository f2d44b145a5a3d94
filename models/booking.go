package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Booking statuses. Transitions only move forward.
const (
	StatusPending    = "Pending"
	StatusCheckedIn  = "Checked In"
	StatusCheckedOut = "Checked Out"
)

type Booking struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name    string `gorm:"size:150" json:"name"`
	Contact string `gorm:"size:100" json:"contact"`

	// Room title by value, matching rooms.title.
	Room   string `gorm:"size:150;index" json:"room"`
	RoomNo *int   `gorm:"column:room_no" json:"roomno,omitempty"`

	Adults      int `gorm:"default:1" json:"adult"`
	Children    int `gorm:"default:0" json:"child"`
	NoOfPersons int `gorm:"column:no_of_persons;default:1" json:"noOfPersons"`

	// Stay interval, half-open: the checkout day itself is free again.
	Checkin  time.Time `gorm:"index" json:"checkin"`
	Checkout time.Time `gorm:"index" json:"checkout"`

	Status       string     `gorm:"size:32;default:Pending" json:"status"`
	CheckInTime  *time.Time `json:"checkInTime,omitempty"`
	CheckOutTime *time.Time `json:"checkOutTime,omitempty"`
	TotalBill    *int       `json:"totalBill,omitempty"`

	// Identity document uploaded with the booking form.
	DocFile string `gorm:"size:255" json:"docFile,omitempty"`
	DocType string `gorm:"size:100" json:"docType,omitempty"`

	// Accompanying members as declared on the form. The roster rows in guests
	// are the working copy; this is the original submission.
	Members datatypes.JSON `json:"members,omitempty"`
}
