package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"resort-backend/config"
	"resort-backend/controllers"
	"resort-backend/logger"
	"resort-backend/routes"
	"resort-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		logger.Log.Warn(".env not found or couldn't load it; continuing with environment variables")
	}

	logger.Init()

	if err := config.ConnectDatabase(); err != nil {
		logger.Log.Fatalf("database connect failed: %v", err)
	}
	db := config.DB

	// Services
	availService := services.NewAvailabilityService(db)
	bookingService := services.NewBookingService(db, availService)
	guestService := services.NewGuestService(db)
	roomService := services.NewRoomService(db)
	adminService := services.NewAdminService(db)

	// Controllers
	bookingController := controllers.NewBookingController(bookingService, availService)
	guestController := controllers.NewGuestController(guestService)
	roomController := controllers.NewRoomController(roomService)
	authController := controllers.NewAuthController(adminService)

	router := routes.SetupRouter(bookingController, guestController, roomController, authController)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Log.Infof("server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("server forced to shutdown: %v", err)
	}

	logger.Log.Info("server stopped gracefully")
}
