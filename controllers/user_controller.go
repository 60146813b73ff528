package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"quickstay-backend/middleware"
	"quickstay-backend/services"
	"quickstay-backend/utils"

	"github.com/gin-gonic/gin"
)

type StoreRecentSearchPayload struct {
	RecentSearchedCity string `json:"recentSearchedCity" binding:"required"`
}

type UserController struct {
	UserSvc *services.UserService
}

func NewUserController(userSvc *services.UserService) *UserController {
	return &UserController{UserSvc: userSvc}
}

// GetUserData handles GET /api/user.
func (ctrl *UserController) GetUserData(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authorized")
		return
	}

	var cities []string
	if len(user.RecentSearchedCities) > 0 {
		_ = json.Unmarshal(user.RecentSearchedCities, &cities)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":              true,
		"role":                 user.Role,
		"recentSearchedCities": cities,
	})
}

// StoreRecentSearchedCity handles POST /api/user/store-recent-search.
func (ctrl *UserController) StoreRecentSearchedCity(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authorized")
		return
	}

	var payload StoreRecentSearchPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "recentSearchedCity is required")
		return
	}

	cities, err := ctrl.UserSvc.StoreRecentSearchedCity(user.ID, payload.RecentSearchedCity)
	if err != nil {
		log.Printf("StoreRecentSearchedCity error for user %s: %v", user.ID, err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to store recent search")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "recentSearchedCities": cities})
}
