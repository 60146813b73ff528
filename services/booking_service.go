package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"quickstay-backend/models"
	"quickstay-backend/utils"

	sqlmysql "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingService owns the booking lifecycle: creation with the availability
// guard, payment confirmation, and the read paths for guests and owners.
type BookingService struct {
	DB           *gorm.DB
	Availability *AvailabilityService
}

func NewBookingService(db *gorm.DB, availability *AvailabilityService) *BookingService {
	return &BookingService{DB: db, Availability: availability}
}

type CreateBookingInput struct {
	RoomID        uint
	CheckIn       time.Time
	CheckOut      time.Time
	Guests        int
	PaymentMethod string
}

// HotelDashboard is the owner's aggregate view over their hotel's bookings.
type HotelDashboard struct {
	TotalBookings int              `json:"totalBookings"`
	TotalRevenue  float64          `json:"totalRevenue"`
	Bookings      []models.Booking `json:"bookings"`
}

// Create validates the request, re-verifies availability inside a
// transaction and persists the booking in pending/unpaid state.
//
// The client-side availability read is advisory only; the serialized
// re-check under a row lock on the room is what prevents two concurrent
// requests from both passing the check and double-booking the range.
func (s *BookingService) Create(user models.User, in CreateBookingInput) (*models.Booking, error) {
	if in.Guests < 1 {
		return nil, fmt.Errorf("%w: guests must be at least 1", ErrValidation)
	}
	if !in.CheckOut.After(in.CheckIn) {
		return nil, fmt.Errorf("%w: check-in date must be before check-out date", ErrValidation)
	}
	switch in.PaymentMethod {
	case "":
		in.PaymentMethod = models.PaymentMethodPayAtProperty
	case models.PaymentMethodPayAtProperty, models.PaymentMethodOnline:
	default:
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, in.PaymentMethod)
	}

	// Advisory pre-check; the authoritative one runs inside the transaction.
	if !s.Availability.IsAvailable(in.RoomID, in.CheckIn, in.CheckOut) {
		var room models.Room
		if err := s.DB.First(&room, in.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRoomNotFound
			}
			return nil, fmt.Errorf("db error checking room %d: %w", in.RoomID, err)
		}
		return nil, ErrRoomNotAvailable
	}

	var bookingID uint
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		roomQ := tx
		if tx.Dialector.Name() == "mysql" {
			// Serialize concurrent creates per room. SQLite has no
			// FOR UPDATE; its single-writer transactions already serialize.
			roomQ = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var room models.Room
		if err := roomQ.First(&room, in.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("db error locking room %d: %w", in.RoomID, err)
		}

		count, err := countOverlappingBookings(tx, in.RoomID, in.CheckIn, in.CheckOut)
		if err != nil {
			return fmt.Errorf("failed to re-check availability: %w", err)
		}
		if count > 0 {
			return ErrRoomNotAvailable
		}

		nights := utils.Nights(in.CheckIn, in.CheckOut)
		totalPrice := room.PricePerNight * float64(nights)

		var createErr error
		for attempt := 0; attempt < 3; attempt++ {
			booking := models.Booking{
				ReferenceCode: uuid.NewString(),
				UserID:        user.ID,
				RoomID:        room.ID,
				HotelID:       room.HotelID,
				CheckInDate:   in.CheckIn,
				CheckOutDate:  in.CheckOut,
				Guests:        in.Guests,
				TotalPrice:    totalPrice,
				IsPaid:        false,
				Status:        models.BookingStatusPending,
				PaymentMethod: in.PaymentMethod,
			}
			createErr = tx.Create(&booking).Error
			if createErr == nil {
				bookingID = booking.ID
				return nil
			}

			var myErr *sqlmysql.MySQLError
			if errors.As(createErr, &myErr) && myErr.Number == 1062 {
				log.Printf("booking reference collision (attempt %d) - retrying", attempt+1)
				continue
			}
			return fmt.Errorf("failed to create booking: %w", createErr)
		}
		return fmt.Errorf("failed to create booking after retries: %w", createErr)
	})
	if txErr != nil {
		return nil, txErr
	}

	var booking models.Booking
	if err := s.DB.Preload("Room").Preload("Hotel").First(&booking, bookingID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload booking %d: %w", bookingID, err)
	}

	// Confirmation email is best-effort: the booking is already committed
	// and a send failure must not undo it.
	if mailErr := utils.SendBookingConfirmationEmail(user.Email, user.Username, utils.BookingEmailData{
		BookingRef:   booking.ReferenceCode,
		HotelName:    booking.Hotel.Name,
		HotelAddress: booking.Hotel.Address,
		CheckInDate:  booking.CheckInDate.Format("2006-01-02"),
		CheckOutDate: booking.CheckOutDate.Format("2006-01-02"),
		TotalPrice:   booking.TotalPrice,
	}); mailErr != nil {
		log.Printf("warning: confirmation email for booking %d failed: %v", booking.ID, mailErr)
	}

	return &booking, nil
}

// ConfirmPayment marks a booking paid and confirmed. The update is
// conditional so at-least-once webhook delivery is safe: re-applying it
// leaves the same final state and never reverses a confirmation.
func (s *BookingService) ConfirmPayment(bookingID uint) error {
	res := s.DB.Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Where("status <> ?", models.BookingStatusCancelled).
		Updates(map[string]interface{}{
			"is_paid":        true,
			"status":         models.BookingStatusConfirmed,
			"payment_method": models.PaymentMethodOnline,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to confirm payment for booking %d: %w", bookingID, res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := s.DB.Model(&models.Booking{}).Where("id = ?", bookingID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to look up booking %d: %w", bookingID, err)
		}
		if count == 0 {
			return ErrBookingNotFound
		}
		// Already confirmed with identical values; nothing to do.
	}
	return nil
}

// ListForUser returns the user's bookings, newest first.
func (s *BookingService) ListForUser(userID string) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.DB.
		Preload("Room").
		Preload("Hotel").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return bookings, nil
}

// ListForOwner resolves the owner's hotel and returns its bookings plus
// dashboard aggregates. Owners without a hotel get ErrNoHotelForOwner,
// never another owner's data.
func (s *BookingService) ListForOwner(ownerID string) (*HotelDashboard, error) {
	var hotel models.Hotel
	if err := s.DB.Where("owner_id = ?", ownerID).First(&hotel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoHotelForOwner
		}
		return nil, fmt.Errorf("failed to resolve hotel for owner: %w", err)
	}

	var bookings []models.Booking
	if err := s.DB.
		Preload("Room").
		Preload("Hotel").
		Preload("User").
		Where("hotel_id = ?", hotel.ID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve hotel bookings: %w", err)
	}

	dashboard := &HotelDashboard{
		TotalBookings: len(bookings),
		Bookings:      bookings,
	}
	for _, b := range bookings {
		dashboard.TotalRevenue += b.TotalPrice
	}
	return dashboard, nil
}

// GetByID loads a booking without relations.
func (s *BookingService) GetByID(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to retrieve booking %d: %w", bookingID, err)
	}
	return &booking, nil
}
