package controllers

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"resort-backend/middleware"
	"resort-backend/models"
	"resort-backend/services"
)

// testRouter wires the full controller stack against an in-memory database,
// mirroring the production route table.
func testRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}, &models.Room{}, &models.Booking{}, &models.Guest{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	avail := services.NewAvailabilityService(db)
	bc := NewBookingController(services.NewBookingService(db, avail), avail)
	gc := NewGuestController(services.NewGuestService(db))
	rc := NewRoomController(services.NewRoomService(db))
	ac := NewAuthController(services.NewAdminService(db))

	r := gin.New()
	api := r.Group("/api")

	api.GET("/bookings", bc.GetBookings)
	api.POST("/bookings", bc.CreateBooking)
	api.PUT("/bookings/:id", bc.UpdateBooking)
	api.DELETE("/bookings/:id", bc.DeleteBooking)
	api.GET("/bookings/availability/:date", bc.GetAvailability)

	api.GET("/guests", gc.GetGuests)
	api.POST("/guests", gc.CreateGuest)
	api.POST("/guests/bulk", gc.BulkCreateGuests)
	api.PUT("/guests/:id", gc.UpdateGuest)
	api.DELETE("/guests/:id", gc.DeleteGuest)

	api.GET("/rooms", rc.GetRooms)
	api.POST("/rooms", middleware.RequireAdmin(), rc.CreateRoom)
	api.PUT("/rooms/:id", middleware.RequireAdmin(), rc.UpdateRoom)
	api.DELETE("/rooms/:id", middleware.RequireAdmin(), rc.DeleteRoom)
	api.POST("/rooms/reconcile", middleware.RequireAdmin(), rc.ReconcileRooms)

	api.POST("/admin/register", ac.Register)
	api.POST("/admin/login", ac.Login)

	return r, db
}

func seedTestRoom(t *testing.T, db *gorm.DB, title string, price, total, numStart, numEnd int) models.Room {
	t.Helper()
	room := models.Room{
		Title:       title,
		Category:    models.CategoryAC,
		Price:       price,
		TotalRooms:  total,
		NumberStart: numStart,
		NumberEnd:   numEnd,
	}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("failed to seed room: %v", err)
	}
	return room
}

func testDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
