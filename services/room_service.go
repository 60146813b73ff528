package services

import (
	"errors"
	"fmt"

	"quickstay-backend/models"

	"gorm.io/gorm"
)

// RoomService covers the read-mostly room catalog and the owner's
// room management.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// ListAvailable returns listed rooms with their hotel, newest first.
func (s *RoomService) ListAvailable() ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.
		Preload("Hotel").
		Where("is_available = ?", true).
		Order("created_at DESC").
		Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve rooms: %w", err)
	}
	return rooms, nil
}

func (s *RoomService) GetByID(roomID uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.Preload("Hotel").First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to retrieve room %d: %w", roomID, err)
	}
	return &room, nil
}

// CreateForOwner adds a room under the owner's hotel.
func (s *RoomService) CreateForOwner(ownerID string, room models.Room) (*models.Room, error) {
	var hotel models.Hotel
	if err := s.DB.Where("owner_id = ?", ownerID).First(&hotel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoHotelForOwner
		}
		return nil, fmt.Errorf("failed to resolve hotel for owner: %w", err)
	}

	room.ID = 0
	room.HotelID = hotel.ID
	room.IsAvailable = true
	if err := s.DB.Create(&room).Error; err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return &room, nil
}
