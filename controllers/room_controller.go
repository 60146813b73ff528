package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"quickstay-backend/middleware"
	"quickstay-backend/models"
	"quickstay-backend/services"
	"quickstay-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type CreateRoomPayload struct {
	RoomType      string   `json:"roomType" binding:"required"`
	PricePerNight float64  `json:"pricePerNight" binding:"required"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images"`
}

type RoomController struct {
	RoomSvc *services.RoomService
}

func NewRoomController(roomSvc *services.RoomService) *RoomController {
	return &RoomController{RoomSvc: roomSvc}
}

// GetRooms handles GET /api/rooms.
func (ctrl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctrl.RoomSvc.ListAvailable()
	if err != nil {
		log.Printf("GetRooms error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch rooms")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "rooms": rooms})
}

// GetRoomByID handles GET /api/rooms/:id.
func (ctrl *RoomController) GetRoomByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return
	}

	room, err := ctrl.RoomSvc.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Room not found")
			return
		}
		log.Printf("GetRoomByID error for room %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch room")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "room": room})
}

// CreateRoom handles POST /api/rooms for hotel owners.
func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authorized")
		return
	}

	var payload CreateRoomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "roomType and pricePerNight are required")
		return
	}

	room := models.Room{
		RoomType:      payload.RoomType,
		PricePerNight: payload.PricePerNight,
	}
	if len(payload.Amenities) > 0 {
		raw, err := jsonMarshalStrings(payload.Amenities)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid amenities")
			return
		}
		room.Amenities = raw
	}
	if len(payload.Images) > 0 {
		raw, err := jsonMarshalStrings(payload.Images)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid images")
			return
		}
		room.Images = raw
	}

	created, err := ctrl.RoomSvc.CreateForOwner(user.ID, room)
	if err != nil {
		if errors.Is(err, services.ErrNoHotelForOwner) {
			utils.JSONError(c, http.StatusNotFound, "No Hotel found")
			return
		}
		log.Printf("CreateRoom error for owner %s: %v", user.ID, err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create room")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "room": created})
}

func jsonMarshalStrings(values []string) (datatypes.JSON, error) {
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
