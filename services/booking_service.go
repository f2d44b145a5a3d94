package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"resort-backend/models"
)

var (
	ErrBookingNotFound  = errors.New("booking_not_found")
	ErrStatusRegression = errors.New("status_regression")
	ErrUnknownStatus    = errors.New("unknown_status")
)

var statusRank = map[string]int{
	models.StatusPending:    0,
	models.StatusCheckedIn:  1,
	models.StatusCheckedOut: 2,
}

// BookingMember is one accompanying occupant declared on the booking form.
type BookingMember struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Age     int    `json:"age"`
	Gender  string `json:"gender"`
}

// BookingUpdate is a merge-patch: nil fields keep their stored value.
type BookingUpdate struct {
	Name     *string
	Contact  *string
	RoomNo   *int
	Adults   *int
	Children *int
	Checkin  *time.Time
	Checkout *time.Time
	Status   *string
	DocFile  *string
	DocType  *string
}

type BookingService struct {
	DB    *gorm.DB
	Avail *AvailabilityService
}

func NewBookingService(db *gorm.DB, avail *AvailabilityService) *BookingService {
	return &BookingService{DB: db, Avail: avail}
}

// lockRoomForUpdate serializes concurrent vacancy checks on one room type so
// check-then-insert cannot overbook. MySQL takes a row lock; the sqlite test
// database rejects FOR UPDATE syntax and is single-writer anyway.
func lockRoomForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "mysql" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// CreateBooking runs the check-and-reserve sequence in a single transaction:
// vacancy check, optional explicit room-number check, the booking insert, the
// counter snapshot and the roster rows commit or roll back together.
func (s *BookingService) CreateBooking(b *models.Booking, members []BookingMember) error {
	if strings.TrimSpace(b.Name) == "" || strings.TrimSpace(b.Contact) == "" || strings.TrimSpace(b.Room) == "" {
		return fmt.Errorf("validation: missing required fields")
	}
	if !b.Checkout.After(b.Checkin) {
		return fmt.Errorf("validation: checkout must be after checkin")
	}
	if b.Adults <= 0 {
		b.Adults = 1
	}
	if b.Children < 0 {
		b.Children = 0
	}
	b.NoOfPersons = b.Adults + b.Children
	if b.Status == "" {
		b.Status = models.StatusPending
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := lockRoomForUpdate(tx).Where("title = ?", b.Room).First(&room).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("load room: %w", err)
		}

		overlap, err := s.Avail.CountOverlapping(tx, b.Room, b.Checkin, b.Checkout)
		if err != nil {
			return err
		}
		if overlap >= int64(room.TotalRooms) {
			return ErrNoVacancy
		}

		if b.RoomNo != nil {
			held, err := s.Avail.RoomNumberHeld(tx, b.Room, *b.RoomNo, b.Checkin, b.Checkout, 0)
			if err != nil {
				return err
			}
			if held {
				return ErrRoomNumberTaken
			}
		}

		if err := tx.Create(b).Error; err != nil {
			return fmt.Errorf("create booking: %w", err)
		}

		// Point-in-time snapshot of the cache, recomputed in full on delete.
		if err := tx.Model(&room).Update("booked_rooms", int(overlap)+1).Error; err != nil {
			return fmt.Errorf("update booked rooms: %w", err)
		}

		rows := guestRows(b, members)
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("create guest rows: %w", err)
		}
		return nil
	})
}

// guestRows builds the roster: the booker first, then each declared member.
func guestRows(b *models.Booking, members []BookingMember) []models.Guest {
	roomNo := "TBD"
	if b.RoomNo != nil {
		roomNo = strconv.Itoa(*b.RoomNo)
	}

	rows := []models.Guest{{
		BookingID:     &b.ID,
		BookerName:    b.Name,
		BookerContact: b.Contact,
		MemberName:    b.Name,
		MemberContact: b.Contact,
		MemberGender:  "N/A",
		RoomNo:        roomNo,
		Checkin:       b.Checkin,
		Checkout:      b.Checkout,
	}}
	for _, m := range members {
		if strings.TrimSpace(m.Name) == "" {
			continue
		}
		rows = append(rows, models.Guest{
			BookingID:     &b.ID,
			BookerName:    b.Name,
			BookerContact: b.Contact,
			MemberName:    m.Name,
			MemberContact: m.Contact,
			MemberAge:     m.Age,
			MemberGender:  m.Gender,
			RoomNo:        roomNo,
			Checkin:       b.Checkin,
			Checkout:      b.Checkout,
		})
	}
	return rows
}

// GetAll returns the ledger newest-first.
func (s *BookingService) GetAll() ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("retrieve bookings: %w", err)
	}
	return list, nil
}

func (s *BookingService) GetByID(id uint) (*models.Booking, error) {
	var b models.Booking
	if err := s.DB.First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("retrieve booking: %w", err)
	}
	return &b, nil
}

// UpdateBooking merge-patches the stored booking. Status changes go through
// the forward-only state machine; an explicit room number goes through the
// same conflict predicate check-in assignment uses.
func (s *BookingService) UpdateBooking(id uint, upd BookingUpdate) (*models.Booking, error) {
	var out models.Booking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var b models.Booking
		if err := tx.First(&b, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("load booking: %w", err)
		}

		if upd.Name != nil {
			b.Name = *upd.Name
		}
		if upd.Contact != nil {
			b.Contact = *upd.Contact
		}
		if upd.Adults != nil && *upd.Adults > 0 {
			b.Adults = *upd.Adults
		}
		if upd.Children != nil && *upd.Children >= 0 {
			b.Children = *upd.Children
		}
		b.NoOfPersons = b.Adults + b.Children
		if upd.Checkin != nil {
			b.Checkin = *upd.Checkin
		}
		if upd.Checkout != nil {
			b.Checkout = *upd.Checkout
		}
		if !b.Checkout.After(b.Checkin) {
			return fmt.Errorf("validation: checkout must be after checkin")
		}
		if upd.DocFile != nil {
			b.DocFile = *upd.DocFile
		}
		if upd.DocType != nil {
			b.DocType = *upd.DocType
		}

		if upd.RoomNo != nil && (b.RoomNo == nil || *b.RoomNo != *upd.RoomNo) {
			held, err := s.Avail.RoomNumberHeld(tx, b.Room, *upd.RoomNo, b.Checkin, b.Checkout, b.ID)
			if err != nil {
				return err
			}
			if held {
				return ErrRoomNumberTaken
			}
			b.RoomNo = upd.RoomNo
		}

		if upd.Status != nil && *upd.Status != b.Status {
			if err := s.transition(tx, &b, *upd.Status); err != nil {
				return err
			}
		}

		if err := tx.Save(&b).Error; err != nil {
			return fmt.Errorf("save booking: %w", err)
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// transition enforces Pending -> Checked In -> Checked Out. There is no way
// back: un-check-in does not exist.
func (s *BookingService) transition(tx *gorm.DB, b *models.Booking, next string) error {
	from, ok := statusRank[b.Status]
	if !ok {
		from = statusRank[models.StatusPending]
	}
	to, ok := statusRank[next]
	if !ok {
		return ErrUnknownStatus
	}
	if to < from {
		return ErrStatusRegression
	}
	if to == from {
		return nil
	}

	now := time.Now()
	switch next {
	case models.StatusCheckedIn:
		if b.RoomNo == nil {
			var room models.Room
			if err := lockRoomForUpdate(tx).Where("title = ?", b.Room).First(&room).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrRoomNotFound
				}
				return fmt.Errorf("load room: %w", err)
			}
			no, err := s.Avail.AssignRoomNumber(tx, room, *b)
			if err != nil {
				return err
			}
			b.RoomNo = &no
		}
		b.CheckInTime = &now

	case models.StatusCheckedOut:
		var room models.Room
		if err := tx.Where("title = ?", b.Room).First(&room).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("load room: %w", err)
		}
		bill := Nights(b.Checkin, b.Checkout) * room.Price * b.NoOfPersons
		b.TotalBill = &bill
		b.CheckOutTime = &now
	}

	b.Status = next
	return nil
}

// DeleteBooking removes the booking and its roster rows, then refreshes the
// room counter from a full recount rather than a decrement so any drift the
// cache picked up heals here.
func (s *BookingService) DeleteBooking(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var b models.Booking
		if err := tx.First(&b, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("load booking: %w", err)
		}

		if err := tx.Where("booking_id = ?", b.ID).Delete(&models.Guest{}).Error; err != nil {
			return fmt.Errorf("delete guest rows: %w", err)
		}
		// Rows that predate the booking_id column are matched by value.
		if err := tx.Where("booking_id IS NULL AND booker_name = ? AND booker_contact = ?",
			b.Name, b.Contact).Delete(&models.Guest{}).Error; err != nil {
			return fmt.Errorf("delete legacy guest rows: %w", err)
		}
		if b.RoomNo != nil {
			if err := tx.Where("booking_id IS NULL AND room_no = ?",
				strconv.Itoa(*b.RoomNo)).Delete(&models.Guest{}).Error; err != nil {
				return fmt.Errorf("delete legacy guest rows by room: %w", err)
			}
		}

		if err := tx.Delete(&b).Error; err != nil {
			return fmt.Errorf("delete booking: %w", err)
		}

		return recountBookedRooms(tx, b.Room)
	})
}

// recountBookedRooms rewrites the cache from the ledger: the count of the
// title's bookings whose checkout is still in the future.
func recountBookedRooms(tx *gorm.DB, roomTitle string) error {
	var room models.Room
	err := tx.Where("title = ?", roomTitle).First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil // room type removed, nothing to heal
	}
	if err != nil {
		return fmt.Errorf("load room for recount: %w", err)
	}

	var n int64
	if err := tx.Model(&models.Booking{}).
		Where("room = ? AND checkout > ?", roomTitle, time.Now()).
		Count(&n).Error; err != nil {
		return fmt.Errorf("recount bookings: %w", err)
	}
	return tx.Model(&room).Update("booked_rooms", n).Error
}
