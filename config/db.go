package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"quickstay-backend/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "quickstay_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// SeedDatabase inserts a demo hotel with a few rooms so a fresh install has
// something to list. Gated by SEED_DEMO_DATA and skipped when rooms exist.
func SeedDatabase() {
	if strings.ToLower(envOrDefault("SEED_DEMO_DATA", "false")) != "true" {
		return
	}

	var roomCount int64
	DB.Model(&models.Room{}).Count(&roomCount)
	if roomCount > 0 {
		log.Println("Demo data already seeded")
		return
	}

	owner := models.User{
		ID:       "user_demo_owner",
		Email:    "owner@quickstay.local",
		Username: "Demo Owner",
		Role:     models.RoleHotelOwner,
	}
	if err := DB.FirstOrCreate(&owner, models.User{ID: owner.ID}).Error; err != nil {
		log.Printf("warning: failed to seed demo owner: %v", err)
		return
	}

	hotel := models.Hotel{
		Name:    "Urbanza Suites",
		Address: "Main Road 123 Street, 23 Colony",
		Contact: "+0123456789",
		City:    "New York",
		OwnerID: owner.ID,
	}
	if err := DB.Create(&hotel).Error; err != nil {
		log.Printf("warning: failed to seed demo hotel: %v", err)
		return
	}

	rooms := []models.Room{
		{HotelID: hotel.ID, RoomType: "Single Bed", PricePerNight: 100, IsAvailable: true,
			Amenities: []byte(`["Room Service","Mountain View","Pool Access"]`)},
		{HotelID: hotel.ID, RoomType: "Double Bed", PricePerNight: 250, IsAvailable: true,
			Amenities: []byte(`["Free WiFi","Free Breakfast","Room Service"]`)},
		{HotelID: hotel.ID, RoomType: "Luxury Room", PricePerNight: 300, IsAvailable: true,
			Amenities: []byte(`["Free WiFi","Free Breakfast","Pool Access"]`)},
	}
	if err := DB.Create(&rooms).Error; err != nil {
		log.Printf("warning: failed to seed demo rooms: %v", err)
		return
	}

	log.Println("Demo hotel and rooms seeded")
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Hotel{},
		&models.Room{},
		&models.Booking{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
