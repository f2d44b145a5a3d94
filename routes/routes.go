package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"resort-backend/controllers"
	"resort-backend/middleware"
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

// SetupRouter wires controllers onto the REST surface the SPA consumes.
func SetupRouter(
	bc *controllers.BookingController,
	gc *controllers.GuestController,
	rc *controllers.RoomController,
	ac *controllers.AuthController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())
	r.Static("/uploads", "./uploads")

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
		bookings := api.Group("/bookings")
		{
			bookings.GET("", bc.GetBookings)
			bookings.POST("", bc.CreateBooking)
			bookings.PUT("/:id", bc.UpdateBooking)
			bookings.DELETE("/:id", bc.DeleteBooking)

			// has to sit before any /:id GET route we might add
			bookings.GET("/availability/:date", bc.GetAvailability)
		}

		guests := api.Group("/guests")
		{
			guests.GET("", gc.GetGuests)
			guests.POST("", gc.CreateGuest)
			guests.POST("/bulk", gc.BulkCreateGuests)
			guests.PUT("/:id", gc.UpdateGuest)
			guests.DELETE("/:id", gc.DeleteGuest)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.GetRooms)

			protected := rooms.Group("", middleware.RequireAdmin())
			{
				protected.POST("", rc.CreateRoom)
				protected.PUT("/:id", rc.UpdateRoom)
				protected.DELETE("/:id", rc.DeleteRoom)
				protected.POST("/reconcile", rc.ReconcileRooms)
			}
		}

		admin := api.Group("/admin")
		{
			admin.POST("/register", ac.Register)
			admin.POST("/login", middleware.LoginRateLimiter(), ac.Login)
		}
	}

	return r
}
