package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking lifecycle states. Confirmed is terminal apart from cancellation.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Payment methods.
const (
	PaymentMethodPayAtProperty = "pay-at-property"
	PaymentMethodOnline        = "online"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"referenceCode"`

	UserID  string `gorm:"column:user_id;size:191;index" json:"userId"`
	RoomID  uint   `gorm:"column:room_id;index" json:"roomId"`
	HotelID uint   `gorm:"column:hotel_id;index" json:"hotelId"`

	CheckInDate  time.Time `gorm:"column:check_in_date" json:"checkInDate"`
	CheckOutDate time.Time `gorm:"column:check_out_date" json:"checkOutDate"`
	Guests       int       `gorm:"column:guests" json:"guests"`
	TotalPrice   float64   `gorm:"column:total_price" json:"totalPrice"`

	IsPaid        bool   `gorm:"column:is_paid;default:false" json:"isPaid"`
	Status        string `gorm:"column:status;size:32;default:pending" json:"status"`
	PaymentMethod string `gorm:"column:payment_method;size:32" json:"paymentMethod"`

	User  User  `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	Room  Room  `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	Hotel Hotel `gorm:"foreignKey:HotelID;references:ID" json:"hotel,omitempty"`
}
