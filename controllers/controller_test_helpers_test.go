package controllers

import (
	"testing"
	"time"

	"quickstay-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Keep the in-memory database on a single connection.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Hotel{},
		&models.Room{},
		&models.Booking{},
	))
	return db
}

func seedPendingBooking(t *testing.T, db *gorm.DB) models.Booking {
	owner := models.User{ID: "owner_1", Email: "owner@example.com", Username: "Owner", Role: models.RoleHotelOwner}
	require.NoError(t, db.Create(&owner).Error)

	hotel := models.Hotel{Name: "Test Hotel", Address: "1 Test Street", Contact: "+123", City: "Testville", OwnerID: owner.ID}
	require.NoError(t, db.Create(&hotel).Error)

	room := models.Room{HotelID: hotel.ID, RoomType: "Double Bed", PricePerNight: 100, IsAvailable: true}
	require.NoError(t, db.Create(&room).Error)

	guest := models.User{ID: "user_1", Email: "guest@example.com", Username: "Guest", Role: models.RoleUser}
	require.NoError(t, db.Create(&guest).Error)

	booking := models.Booking{
		ReferenceCode: "ref-1",
		UserID:        guest.ID,
		RoomID:        room.ID,
		HotelID:       hotel.ID,
		CheckInDate:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate:  time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
		Guests:        2,
		TotalPrice:    400,
		IsPaid:        false,
		Status:        models.BookingStatusPending,
		PaymentMethod: models.PaymentMethodPayAtProperty,
	}
	require.NoError(t, db.Create(&booking).Error)
	return booking
}
