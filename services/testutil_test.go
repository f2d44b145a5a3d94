package services

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"resort-backend/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}, &models.Room{}, &models.Booking{}, &models.Guest{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedRoom(t *testing.T, db *gorm.DB, title string, price, total, numStart, numEnd int) models.Room {
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

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }
