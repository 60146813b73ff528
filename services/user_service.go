package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"quickstay-backend/models"

	"gorm.io/gorm"
)

// UserService maintains the local mirror of identity-provider users.
type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

func (s *UserService) GetByID(userID string) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Upsert creates or refreshes the local record for a provider user.
// The provider id is the primary key, so replays of the same event
// converge on the same row.
func (s *UserService) Upsert(user models.User) error {
	var existing models.User
	err := s.DB.First(&existing, "id = ?", user.ID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if user.Role == "" {
			user.Role = models.RoleUser
		}
		if err := s.DB.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", user.ID, err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("failed to look up user %s: %w", user.ID, err)
	}

	updates := map[string]interface{}{
		"email":    user.Email,
		"username": user.Username,
		"image":    user.Image,
	}
	if err := s.DB.Model(&existing).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.ID, err)
	}
	return nil
}

// Delete removes the local record; deleting an unknown id is a no-op.
func (s *UserService) Delete(userID string) error {
	if err := s.DB.Where("id = ?", userID).Delete(&models.User{}).Error; err != nil {
		return fmt.Errorf("failed to delete user %s: %w", userID, err)
	}
	return nil
}

// PromoteToOwner flips the user's role after hotel registration.
func (s *UserService) PromoteToOwner(userID string) error {
	return s.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("role", models.RoleHotelOwner).Error
}

// StoreRecentSearchedCity appends a city to the user's recent searches,
// dropping duplicates and keeping only the latest three.
func (s *UserService) StoreRecentSearchedCity(userID, city string) ([]string, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}

	var cities []string
	if len(user.RecentSearchedCities) > 0 {
		_ = json.Unmarshal(user.RecentSearchedCities, &cities)
	}

	filtered := make([]string, 0, len(cities)+1)
	for _, c := range cities {
		if c != city {
			filtered = append(filtered, c)
		}
	}
	filtered = append(filtered, city)
	if len(filtered) > 3 {
		filtered = filtered[len(filtered)-3:]
	}

	raw, err := json.Marshal(filtered)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal recent cities: %w", err)
	}
	if err := s.DB.Model(user).Update("recent_searched_cities", raw).Error; err != nil {
		return nil, fmt.Errorf("failed to store recent cities: %w", err)
	}
	return filtered, nil
}
