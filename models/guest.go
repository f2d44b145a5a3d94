package models

import "time"

// Guest is one named occupant of a stay. Rows created with a booking carry
// BookingID; rows from the standalone admin form do not, and older data is
// matched by the denormalized booker fields instead.
type Guest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	BookingID *uint `gorm:"index;column:booking_id" json:"bookingId,omitempty"`

	BookerName    string `gorm:"size:150;index" json:"bookerName"`
	BookerContact string `gorm:"size:100;index" json:"bookerContact"`

	MemberName    string `gorm:"size:150" json:"memberName"`
	MemberContact string `gorm:"size:100" json:"memberContact"`
	MemberAge     int    `json:"memberAge"`
	MemberGender  string `gorm:"size:20" json:"memberGender"`

	RoomNo   string    `gorm:"size:20;index" json:"roomNo"`
	Checkin  time.Time `json:"checkin"`
	Checkout time.Time `json:"checkout"`
}
