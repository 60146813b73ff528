package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/stripe/stripe-go/v78"

	"quickstay-backend/config"
	"quickstay-backend/controllers"
	"quickstay-backend/routes"
	"quickstay-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	// Stripe credentials (keep behavior: fatal if missing)
	stripeKey := os.Getenv("STRIPE_SECRET_KEY")
	if stripeKey == "" {
		log.Fatal("❌ ERROR: STRIPE_SECRET_KEY environment variable is not set. Cannot initialize payments.")
	}
	stripe.Key = stripeKey

	stripeWebhookSecret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	if stripeWebhookSecret == "" {
		log.Fatal("❌ ERROR: STRIPE_WEBHOOK_SECRET environment variable is not set. Cannot verify payment webhooks.")
	}
	clerkWebhookSecret := os.Getenv("CLERK_WEBHOOK_SECRET")
	if clerkWebhookSecret == "" {
		log.Fatal("❌ ERROR: CLERK_WEBHOOK_SECRET environment variable is not set. Cannot verify identity webhooks.")
	}

	// Connect database (config.ConnectDatabase should set config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	// Initialize services
	availabilityService := services.NewAvailabilityService(db)
	bookingService := services.NewBookingService(db, availabilityService)
	paymentService := services.NewPaymentService(db)
	userService := services.NewUserService(db)
	roomService := services.NewRoomService(db)
	hotelService := services.NewHotelService(db)

	// Initialize controllers
	bookingController := controllers.NewBookingController(bookingService, availabilityService)
	paymentController := controllers.NewPaymentController(paymentService, bookingService, stripeWebhookSecret)
	clerkController := controllers.NewClerkController(userService, clerkWebhookSecret)
	roomController := controllers.NewRoomController(roomService)
	hotelController := controllers.NewHotelController(hotelService)
	userController := controllers.NewUserController(userService)

	// Build router
	router := routes.SetupRouter(
		bookingController,
		paymentController,
		clerkController,
		roomController,
		hotelController,
		userController,
		userService,
	)

	// Port from env (prefer), fallback to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
