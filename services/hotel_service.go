package services

import (
	"errors"
	"fmt"

	"quickstay-backend/models"

	"gorm.io/gorm"
)

// HotelService handles hotel registration by prospective owners.
type HotelService struct {
	DB *gorm.DB
}

func NewHotelService(db *gorm.DB) *HotelService {
	return &HotelService{DB: db}
}

// Register creates the caller's hotel and promotes them to owner, both in
// one transaction. Each user can register at most one hotel.
func (s *HotelService) Register(ownerID string, hotel models.Hotel) (*models.Hotel, error) {
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Hotel
		err := tx.Where("owner_id = ?", ownerID).First(&existing).Error
		if err == nil {
			return ErrHotelExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check existing hotel: %w", err)
		}

		hotel.ID = 0
		hotel.OwnerID = ownerID
		if err := tx.Create(&hotel).Error; err != nil {
			return fmt.Errorf("failed to create hotel: %w", err)
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", ownerID).
			Update("role", models.RoleHotelOwner).Error; err != nil {
			return fmt.Errorf("failed to promote owner: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &hotel, nil
}
