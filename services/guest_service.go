package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"resort-backend/models"
)

var ErrGuestNotFound = errors.New("guest_not_found")

// GuestUpdate is a merge-patch for a roster row.
type GuestUpdate struct {
	BookerName    *string
	BookerContact *string
	MemberName    *string
	MemberContact *string
	MemberAge     *int
	MemberGender  *string
	RoomNo        *string
	Checkin       *time.Time
	Checkout      *time.Time
}

type GuestService struct {
	DB *gorm.DB
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{DB: db}
}

func (s *GuestService) GetAll() ([]models.Guest, error) {
	var guests []models.Guest
	if err := s.DB.Order("created_at DESC").Find(&guests).Error; err != nil {
		return nil, fmt.Errorf("retrieve guests: %w", err)
	}
	return guests, nil
}

func (s *GuestService) GetByID(id uint) (*models.Guest, error) {
	var g models.Guest
	if err := s.DB.First(&g, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, fmt.Errorf("retrieve guest: %w", err)
	}
	return &g, nil
}

// Create inserts a standalone roster row from the admin guest form. These
// rows have no owning booking.
func (s *GuestService) Create(g *models.Guest) error {
	if strings.TrimSpace(g.BookerName) == "" || strings.TrimSpace(g.BookerContact) == "" ||
		strings.TrimSpace(g.MemberName) == "" || g.MemberAge <= 0 || strings.TrimSpace(g.MemberGender) == "" {
		return fmt.Errorf("validation: required fields missing")
	}
	if err := s.DB.Create(g).Error; err != nil {
		return fmt.Errorf("create guest: %w", err)
	}
	return nil
}

// BulkCreate inserts one row per member, all sharing the same booker, room
// number and stay dates.
func (s *GuestService) BulkCreate(bookerName, bookerContact, roomNo string, checkin, checkout time.Time, members []BookingMember) ([]models.Guest, error) {
	if strings.TrimSpace(bookerName) == "" || strings.TrimSpace(bookerContact) == "" ||
		strings.TrimSpace(roomNo) == "" || len(members) == 0 {
		return nil, fmt.Errorf("validation: invalid payload")
	}

	rows := make([]models.Guest, 0, len(members))
	for _, m := range members {
		if strings.TrimSpace(m.Name) == "" {
			continue
		}
		rows = append(rows, models.Guest{
			BookerName:    bookerName,
			BookerContact: bookerContact,
			MemberName:    m.Name,
			MemberContact: m.Contact,
			MemberAge:     m.Age,
			MemberGender:  m.Gender,
			RoomNo:        roomNo,
			Checkin:       checkin,
			Checkout:      checkout,
		})
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("validation: invalid payload")
	}

	if err := s.DB.Create(&rows).Error; err != nil {
		return nil, fmt.Errorf("create guests: %w", err)
	}
	return rows, nil
}

func (s *GuestService) Update(id uint, upd GuestUpdate) (*models.Guest, error) {
	g, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if upd.BookerName != nil {
		g.BookerName = *upd.BookerName
	}
	if upd.BookerContact != nil {
		g.BookerContact = *upd.BookerContact
	}
	if upd.MemberName != nil {
		g.MemberName = *upd.MemberName
	}
	if upd.MemberContact != nil {
		g.MemberContact = *upd.MemberContact
	}
	if upd.MemberAge != nil {
		g.MemberAge = *upd.MemberAge
	}
	if upd.MemberGender != nil {
		g.MemberGender = *upd.MemberGender
	}
	if upd.RoomNo != nil {
		g.RoomNo = *upd.RoomNo
	}
	if upd.Checkin != nil {
		g.Checkin = *upd.Checkin
	}
	if upd.Checkout != nil {
		g.Checkout = *upd.Checkout
	}

	if err := s.DB.Save(g).Error; err != nil {
		return nil, fmt.Errorf("save guest: %w", err)
	}
	return g, nil
}

func (s *GuestService) Delete(id uint) error {
	result := s.DB.Delete(&models.Guest{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete guest: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrGuestNotFound
	}
	return nil
}
