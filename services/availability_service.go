package services

import (
	"time"

	"quickstay-backend/models"

	"gorm.io/gorm"
)

// AvailabilityService answers whether a room is free for a date range.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// IsAvailable reports whether roomID has no overlapping non-cancelled
// booking for the half-open stay [checkIn, checkOut). Same-day turnover
// (existing checkout == new check-in) is not a conflict.
//
// Failure policy is conservative: unknown room, reversed range, or any
// storage error all count as "not available". That can produce false
// negatives but never a double booking.
func (s *AvailabilityService) IsAvailable(roomID uint, checkIn, checkOut time.Time) bool {
	if !checkOut.After(checkIn) {
		return false
	}

	var room models.Room
	if err := s.DB.First(&room, roomID).Error; err != nil {
		return false
	}

	count, err := countOverlappingBookings(s.DB, roomID, checkIn, checkOut)
	if err != nil {
		return false
	}
	return count == 0
}

// countOverlappingBookings is shared with the booking service so the
// transactional re-check at creation time uses the exact same predicate.
func countOverlappingBookings(db *gorm.DB, roomID uint, checkIn, checkOut time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.Booking{}).
		Where("room_id = ?", roomID).
		Where("status <> ?", models.BookingStatusCancelled).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn).
		Count(&count).Error
	return count, err
}
