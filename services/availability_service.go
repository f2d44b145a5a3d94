package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"resort-backend/models"
)

// Availability failures are expected outcomes, not faults. Controllers map
// them to 400/404 with a readable message.
var (
	ErrRoomNotFound     = errors.New("room_not_found")
	ErrNoVacancy        = errors.New("no_vacancy")
	ErrRoomNumberTaken  = errors.New("room_number_taken")
	ErrNoRoomNumberFree = errors.New("no_room_number_available")
)

// AvailabilityService answers the two questions the ledger cannot answer by
// itself: does a room type still have vacancy for a date range, and which
// physical number can a stay use.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// CountOverlapping counts bookings of a room title whose [checkin, checkout)
// interval overlaps the probe interval. Half-open: [a,b) and [c,d) overlap iff
// a < d && c < b, so a checkout and a new checkin on the same day never
// conflict.
func (s *AvailabilityService) CountOverlapping(tx *gorm.DB, roomTitle string, checkin, checkout time.Time) (int64, error) {
	var n int64
	err := tx.Model(&models.Booking{}).
		Where("room = ? AND checkin < ? AND checkout > ?", roomTitle, checkout, checkin).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count overlapping bookings: %w", err)
	}
	return n, nil
}

// RoomNumberHeld reports whether an overlapping booking of the same title
// already holds the given physical number. excludeID skips the booking being
// updated or checked in; pass 0 for new bookings.
//
// Both the booking-time explicit room number and the check-in-time assignment
// go through this one predicate, so the two paths cannot disagree.
func (s *AvailabilityService) RoomNumberHeld(tx *gorm.DB, roomTitle string, roomNo int, checkin, checkout time.Time, excludeID uint) (bool, error) {
	var n int64
	err := tx.Model(&models.Booking{}).
		Where("room = ? AND room_no = ? AND checkin < ? AND checkout > ? AND id <> ?",
			roomTitle, roomNo, checkout, checkin, excludeID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check room number conflict: %w", err)
	}
	return n > 0, nil
}

// AssignRoomNumber picks the lowest free number in the room's range for the
// booking's stay. Exhaustion is a recoverable condition: explicit-number
// bookings can claim numbers even while type-level vacancy remains, so a stay
// that passed the vacancy check may still find no number here.
func (s *AvailabilityService) AssignRoomNumber(tx *gorm.DB, room models.Room, booking models.Booking) (int, error) {
	for no := room.NumberStart; no <= room.NumberEnd; no++ {
		held, err := s.RoomNumberHeld(tx, room.Title, no, booking.Checkin, booking.Checkout, booking.ID)
		if err != nil {
			return 0, err
		}
		if !held {
			return no, nil
		}
	}
	return 0, ErrNoRoomNumberFree
}

// RoomOccupancy is one row of the per-date occupancy grid.
type RoomOccupancy struct {
	Room  string `json:"room"`
	Count int    `json:"count"`
}

// OccupancyOn counts, per room title, the bookings whose stay covers the probe
// date (checkin <= date < checkout). Pure read.
func (s *AvailabilityService) OccupancyOn(date time.Time) ([]RoomOccupancy, error) {
	out := []RoomOccupancy{}
	err := s.DB.Model(&models.Booking{}).
		Select("room, COUNT(*) AS count").
		Where("checkin <= ? AND checkout > ?", date, date).
		Group("room").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("compute occupancy: %w", err)
	}
	return out, nil
}

// Nights is the whole-day length of [checkin, checkout), a started day
// counting as a full night.
func Nights(checkin, checkout time.Time) int {
	d := checkout.Sub(checkin)
	n := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		n++
	}
	if n < 1 {
		n = 1
	}
	return n
}
