package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"resort-backend/models"
)

// MaxRoomsPerType is the hard inventory ceiling for one room type.
const MaxRoomsPerType = 20

// RoomUpdate is a merge-patch for a catalog entry. TotalRooms goes through
// the clamp in AdjustTotalRooms, never straight into the row.
type RoomUpdate struct {
	Title       *string
	Category    *string
	Price       *int
	TotalRooms  *int
	Image       *string
	Description *string
	NumberStart *int
	NumberEnd   *int
}

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

func (s *RoomService) GetAll() ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("retrieve rooms: %w", err)
	}
	return rooms, nil
}

func (s *RoomService) GetByID(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("retrieve room: %w", err)
	}
	return &room, nil
}

func (s *RoomService) Create(room *models.Room) error {
	room.Title = strings.TrimSpace(room.Title)
	if room.Title == "" {
		return fmt.Errorf("validation: title is required")
	}
	if room.Price <= 0 {
		return fmt.Errorf("validation: price must be positive")
	}
	if room.TotalRooms < 1 {
		room.TotalRooms = 1
	}
	if room.TotalRooms > MaxRoomsPerType {
		room.TotalRooms = MaxRoomsPerType
	}
	room.BookedRooms = 0

	if err := s.DB.Create(room).Error; err != nil {
		return fmt.Errorf("create room: %w", err)
	}
	return nil
}

// Update merge-patches a room. An inventory change is clamped against the
// committed bookings via AdjustTotalRooms.
func (s *RoomService) Update(id uint, upd RoomUpdate) (*models.Room, error) {
	room, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if upd.Title != nil && strings.TrimSpace(*upd.Title) != "" {
		changes["title"] = strings.TrimSpace(*upd.Title)
	}
	if upd.Category != nil {
		changes["category"] = *upd.Category
	}
	if upd.Price != nil && *upd.Price > 0 {
		changes["price"] = *upd.Price
	}
	if upd.Image != nil {
		changes["image"] = *upd.Image
	}
	if upd.Description != nil {
		changes["description"] = *upd.Description
	}
	if upd.NumberStart != nil {
		changes["number_start"] = *upd.NumberStart
	}
	if upd.NumberEnd != nil {
		changes["number_end"] = *upd.NumberEnd
	}

	if len(changes) > 0 {
		if err := s.DB.Model(room).Updates(changes).Error; err != nil {
			return nil, fmt.Errorf("update room: %w", err)
		}
	}

	if upd.TotalRooms != nil {
		return s.AdjustTotalRooms(id, *upd.TotalRooms)
	}
	return s.GetByID(id)
}

// AdjustTotalRooms clamps the requested inventory to
// [max(BookedRooms, 1), MaxRoomsPerType], so admins cannot shrink a type
// below its committed bookings. Equal clamped value means no write at all.
func (s *RoomService) AdjustTotalRooms(id uint, requested int) (*models.Room, error) {
	room, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	floor := room.BookedRooms
	if floor < 1 {
		floor = 1
	}
	clamped := requested
	if clamped < floor {
		clamped = floor
	}
	if clamped > MaxRoomsPerType {
		clamped = MaxRoomsPerType
	}

	if clamped == room.TotalRooms {
		return room, nil
	}

	if err := s.DB.Model(room).Update("total_rooms", clamped).Error; err != nil {
		return nil, fmt.Errorf("adjust total rooms: %w", err)
	}
	room.TotalRooms = clamped
	return room, nil
}

func (s *RoomService) Delete(id uint) error {
	result := s.DB.Delete(&models.Room{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete room: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// ReconcileBookedRooms rewrites every room's counter from a fresh ledger
// count. Repair operation for cache drift.
func (s *RoomService) ReconcileBookedRooms() error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var rooms []models.Room
		if err := tx.Find(&rooms).Error; err != nil {
			return fmt.Errorf("retrieve rooms: %w", err)
		}
		for _, room := range rooms {
			if err := recountBookedRooms(tx, room.Title); err != nil {
				return err
			}
		}
		return nil
	})
}
