package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"resort-backend/models"
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
	dbName := envOrDefault("DB_NAME", "resort_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold: time.Second,
			LogLevel:      gormlogger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}
	DB = db

	if err := DB.AutoMigrate(
		&models.Admin{},
		&models.Room{},
		&models.Booking{},
		&models.Guest{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}

// SeedDatabase loads the catalog the resort opens with: the three room types
// with their physical number ranges, and a default back-office account.
func SeedDatabase() {
	var roomCount int64
	DB.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		rooms := []models.Room{
			{
				Title:       "AC Deluxe Room",
				Category:    models.CategoryAC,
				Price:       1200,
				TotalRooms:  15,
				Description: "Air-conditioned deluxe room with a queen bed.",
				NumberStart: 201,
				NumberEnd:   215,
			},
			{
				Title:       "Non-AC Standard Room",
				Category:    models.CategoryNonAC,
				Price:       800,
				TotalRooms:  15,
				Description: "Standard room with a ceiling fan and garden view.",
				NumberStart: 101,
				NumberEnd:   115,
			},
			{
				Title:       "Family Suite",
				Category:    models.CategoryFamilySuite,
				Price:       1800,
				TotalRooms:  5,
				Description: "Two-room suite for families of up to five.",
				NumberStart: 1,
				NumberEnd:   5,
			},
		}
		if err := DB.Create(&rooms).Error; err != nil {
			log.Printf("warning: failed to seed rooms: %v", err)
		} else {
			log.Println("Rooms seeded")
		}
	}

	var adminCount int64
	DB.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		password := envOrDefault("ADMIN_PASSWORD", "Admin@123")
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
			return
		}
		admin := models.Admin{
			Name:     "Resort Admin",
			Email:    envOrDefault("ADMIN_EMAIL", "admin@resort.local"),
			Contact:  "0000000000",
			Password: string(hash),
		}
		if err := DB.Create(&admin).Error; err != nil {
			log.Printf("warning: failed to create default admin: %v", err)
		} else {
			log.Println("Default admin seeded")
		}
	}
}
