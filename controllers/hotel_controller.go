package controllers

import (
	"errors"
	"log"
	"net/http"

	"quickstay-backend/middleware"
	"quickstay-backend/models"
	"quickstay-backend/services"
	"quickstay-backend/utils"

	"github.com/gin-gonic/gin"
)

type RegisterHotelPayload struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	Contact string `json:"contact" binding:"required"`
	City    string `json:"city" binding:"required"`
}

type HotelController struct {
	HotelSvc *services.HotelService
}

func NewHotelController(hotelSvc *services.HotelService) *HotelController {
	return &HotelController{HotelSvc: hotelSvc}
}

// RegisterHotel handles POST /api/hotels.
func (ctrl *HotelController) RegisterHotel(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authorized")
		return
	}

	var payload RegisterHotelPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "name, address, contact and city are required")
		return
	}

	hotel, err := ctrl.HotelSvc.Register(user.ID, models.Hotel{
		Name:    payload.Name,
		Address: payload.Address,
		Contact: payload.Contact,
		City:    payload.City,
	})
	if err != nil {
		if errors.Is(err, services.ErrHotelExists) {
			utils.JSONError(c, http.StatusConflict, "Hotel already registered")
			return
		}
		log.Printf("RegisterHotel error for user %s: %v", user.ID, err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to register hotel")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Hotel registered successfully", "hotel": hotel})
}
