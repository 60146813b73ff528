package services

import (
	"testing"
	"time"

	"quickstay-backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// The in-memory database lives in a single connection; a second pooled
	// connection would see an empty schema.
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

func seedRoom(t *testing.T, db *gorm.DB, ownerID string, pricePerNight float64) models.Room {
	owner := models.User{
		ID:       ownerID,
		Email:    ownerID + "@example.com",
		Username: "Owner " + ownerID,
		Role:     models.RoleHotelOwner,
	}
	require.NoError(t, db.Create(&owner).Error)

	hotel := models.Hotel{
		Name:    "Test Hotel " + ownerID,
		Address: "1 Test Street",
		Contact: "+123456789",
		City:    "Testville",
		OwnerID: owner.ID,
	}
	require.NoError(t, db.Create(&hotel).Error)

	room := models.Room{
		HotelID:       hotel.ID,
		RoomType:      "Double Bed",
		PricePerNight: pricePerNight,
		IsAvailable:   true,
	}
	require.NoError(t, db.Create(&room).Error)
	return room
}

func seedGuest(t *testing.T, db *gorm.DB, id string) models.User {
	guest := models.User{
		ID:       id,
		Email:    id + "@example.com",
		Username: "Guest " + id,
		Role:     models.RoleUser,
	}
	require.NoError(t, db.Create(&guest).Error)
	return guest
}

func day(t *testing.T, value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}
