package services

import "errors"

// Sentinel errors controllers translate into HTTP outcomes.
var (
	ErrValidation       = errors.New("validation")
	ErrRoomNotFound     = errors.New("room_not_found")
	ErrRoomNotAvailable = errors.New("room_not_available")
	ErrBookingNotFound  = errors.New("booking_not_found")
	ErrNoHotelForOwner  = errors.New("no_hotel_found")
	ErrHotelExists      = errors.New("hotel_already_registered")
)
