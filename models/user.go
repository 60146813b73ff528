package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Role values for User.Role
const (
	RoleUser       = "user"
	RoleHotelOwner = "hotelOwner"
)

// User mirrors the identity provider's record. The ID is the provider's
// stable user id (string), never generated locally.
type User struct {
	ID string `gorm:"primaryKey;size:191" json:"id"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Email    string `gorm:"column:email;size:255" json:"email"`
	Username string `gorm:"column:username;size:255" json:"username"`
	Image    string `gorm:"column:image;type:text" json:"image"`
	Role     string `gorm:"column:role;size:32;default:user" json:"role"`

	// Last cities the user searched for, capped at 3 entries.
	RecentSearchedCities datatypes.JSON `gorm:"column:recent_searched_cities" json:"recentSearchedCities,omitempty"`
}
