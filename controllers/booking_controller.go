package controllers

import (
	"errors"
	"log"
	"net/http"

	"quickstay-backend/middleware"
	"quickstay-backend/services"
	"quickstay-backend/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CheckAvailabilityPayload struct {
	Room         uint   `json:"room" binding:"required"`
	CheckInDate  string `json:"checkInDate" binding:"required"`
	CheckOutDate string `json:"checkOutDate" binding:"required"`
}

type CreateBookingPayload struct {
	Room          uint   `json:"room" binding:"required"`
	CheckInDate   string `json:"checkInDate" binding:"required"`
	CheckOutDate  string `json:"checkOutDate" binding:"required"`
	Guests        int    `json:"guests" binding:"required"`
	PaymentMethod string `json:"paymentMethod"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc      *services.BookingService
	AvailabilitySvc *services.AvailabilityService
}

func NewBookingController(bookingSvc *services.BookingService, availabilitySvc *services.AvailabilityService) *BookingController {
	return &BookingController{BookingSvc: bookingSvc, AvailabilitySvc: availabilitySvc}
}

// CheckAvailability handles POST /api/bookings/check-availability.
// The response is advisory; booking creation re-verifies server-side.
func (ctrl *BookingController) CheckAvailability(c *gin.Context) {
	var payload CheckAvailabilityPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "room, checkInDate and checkOutDate are required")
		return
	}

	checkIn, err := utils.ParseDate(payload.CheckInDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	checkOut, err := utils.ParseDate(payload.CheckOutDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	isAvailable := ctrl.AvailabilitySvc.IsAvailable(payload.Room, checkIn, checkOut)
	c.JSON(http.StatusOK, gin.H{"success": true, "isAvailable": isAvailable})
}

// CreateBooking handles POST /api/bookings/book.
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authorized")
		return
	}

	var payload CreateBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "room, checkInDate, checkOutDate and guests are required")
		return
	}

	checkIn, err := utils.ParseDate(payload.CheckInDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	checkOut, err := utils.ParseDate(payload.CheckOutDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := ctrl.BookingSvc.Create(user, services.CreateBookingInput{
		RoomID:        payload.Room,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Guests:        payload.Guests,
		PaymentMethod: payload.PaymentMethod,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			utils.JSONError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrRoomNotFound):
			utils.JSONError(c, http.StatusNotFound, "Room not found")
		case errors.Is(err, services.ErrRoomNotAvailable):
			utils.JSONError(c, http.StatusConflict, "Room is not available")
		default:
			log.Printf("CreateBooking error for user %s: %v", user.ID, err)
			utils.JSONError(c, http.StatusInternalServerError, "Failed to create booking")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking created successfully",
		"booking": booking,
	})
}

// GetUserBookings handles GET /api/bookings/user.
func (ctrl *BookingController) GetUserBookings(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authorized")
		return
	}

	bookings, err := ctrl.BookingSvc.ListForUser(user.ID)
	if err != nil {
		log.Printf("GetUserBookings error for user %s: %v", user.ID, err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": bookings})
}

// GetHotelBookings handles GET /api/bookings/hotel for hotel owners.
func (ctrl *BookingController) GetHotelBookings(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authorized")
		return
	}

	dashboard, err := ctrl.BookingSvc.ListForOwner(user.ID)
	if err != nil {
		if errors.Is(err, services.ErrNoHotelForOwner) {
			utils.JSONError(c, http.StatusNotFound, "No Hotel found")
			return
		}
		log.Printf("GetHotelBookings error for owner %s: %v", user.ID, err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "dashboardData": dashboard})
}
