package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"quickstay-backend/controllers"
	"quickstay-backend/middleware"
	"quickstay-backend/services"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controllers into the route tree.
//
// The two webhook routes stay outside the authenticated group: they are
// authenticated by signatures over the raw request body, which each
// handler reads untouched before any JSON parsing.
func SetupRouter(
	bc *controllers.BookingController,
	pc *controllers.PaymentController,
	cc *controllers.ClerkController,
	rc *controllers.RoomController,
	hc *controllers.HotelController,
	uc *controllers.UserController,
	userSvc *services.UserService,
) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// Inbound webhooks (signature-authenticated, raw body)
		api.POST("/stripe", pc.StripeWebhook)
		api.POST("/clerk", cc.Webhook)

		auth := middleware.RequireAuth(userSvc)

		bookings := api.Group("/bookings")
		{
			bookings.POST("/check-availability", bc.CheckAvailability)
			bookings.POST("/book", auth, bc.CreateBooking)
			bookings.GET("/user", auth, bc.GetUserBookings)
			bookings.GET("/hotel", auth, bc.GetHotelBookings)
			bookings.POST("/stripe-payment", auth, pc.CreateCheckoutSession)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.GetRooms)
			rooms.GET("/:id", rc.GetRoomByID)
			rooms.POST("", auth, rc.CreateRoom)
		}

		hotels := api.Group("/hotels")
		{
			hotels.POST("", auth, hc.RegisterHotel)
		}

		user := api.Group("/user")
		{
			user.GET("", auth, uc.GetUserData)
			user.POST("/store-recent-search", auth, uc.StoreRecentSearchedCity)
		}
	}

	return r
}
