package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	HotelID uint  `gorm:"column:hotel_id;index" json:"hotelId"`
	Hotel   Hotel `gorm:"foreignKey:HotelID;references:ID" json:"hotel,omitempty"`

	RoomType      string  `gorm:"column:room_type;size:64" json:"roomType"`
	PricePerNight float64 `gorm:"column:price_per_night" json:"pricePerNight"`

	Amenities datatypes.JSON `gorm:"column:amenities" json:"amenities,omitempty"`
	Images    datatypes.JSON `gorm:"column:images" json:"images,omitempty"`

	// Listing flag only; availability for a date range is decided by the
	// overlap check against bookings.
	IsAvailable bool `gorm:"column:is_available;default:true" json:"isAvailable"`
}
