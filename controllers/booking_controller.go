package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"resort-backend/logger"
	"resort-backend/models"
	"resort-backend/services"
	"resort-backend/utils"
)

// updateBookingRequest is a merge-patch body: absent fields keep their
// stored value. Dates arrive as YYYY-MM-DD strings.
type updateBookingRequest struct {
	Name     *string `json:"name"`
	Contact  *string `json:"contact"`
	RoomNo   *int    `json:"roomno"`
	Adults   *int    `json:"adult"`
	Children *int    `json:"child"`
	Checkin  *string `json:"checkin"`
	Checkout *string `json:"checkout"`
	Status   *string `json:"status"`
}

type BookingController struct {
	Bookings *services.BookingService
	Avail    *services.AvailabilityService
}

func NewBookingController(bookings *services.BookingService, avail *services.AvailabilityService) *BookingController {
	return &BookingController{Bookings: bookings, Avail: avail}
}

// parseDate accepts the date-only form the client sends, with an RFC3339
// fallback for safety.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func allowedDocType(contentType string) bool {
	return contentType == "application/pdf" || strings.HasPrefix(contentType, "image/")
}

// GetBookings lists the ledger newest-first.
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	bookings, err := ctrl.Bookings.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

// CreateBooking handles the multipart booking form: fields, an optional
// identity document and a members JSON array.
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	contact := strings.TrimSpace(c.PostForm("contact"))
	room := strings.TrimSpace(c.PostForm("room"))
	checkinStr := c.PostForm("checkin")
	checkoutStr := c.PostForm("checkout")

	if name == "" || contact == "" || room == "" || checkinStr == "" || checkoutStr == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	checkin, err := parseDate(checkinStr)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid checkin date")
		return
	}
	checkout, err := parseDate(checkoutStr)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid checkout date")
		return
	}

	booking := models.Booking{
		Name:     name,
		Contact:  contact,
		Room:     room,
		Checkin:  checkin,
		Checkout: checkout,
	}

	if v := c.PostForm("roomno"); v != "" {
		no, err := strconv.Atoi(v)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid room number")
			return
		}
		booking.RoomNo = &no
	}
	if v := c.PostForm("adult"); v != "" {
		booking.Adults, _ = strconv.Atoi(v)
	}
	if v := c.PostForm("child"); v != "" {
		booking.Children, _ = strconv.Atoi(v)
	}

	var members []services.BookingMember
	if raw := c.PostForm("members"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &members); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid members payload")
			return
		}
		booking.Members = datatypes.JSON(raw)
	}

	if fh, err := c.FormFile("docFile"); err == nil {
		docType := fh.Header.Get("Content-Type")
		if !allowedDocType(docType) {
			utils.JSONError(c, http.StatusBadRequest, "Only PDF and image files are allowed")
			return
		}
		path, err := services.SaveUploadedFile(fh, "docs")
		if err != nil {
			logger.Log.Errorf("failed to store booking document: %v", err)
			utils.JSONError(c, http.StatusInternalServerError, "Failed to store document")
			return
		}
		booking.DocFile = path
		booking.DocType = docType
	}

	if err := ctrl.Bookings.CreateBooking(&booking, members); err != nil {
		switch {
		case errors.Is(err, services.ErrRoomNotFound):
			utils.JSONError(c, http.StatusNotFound, "Room not found")
		case errors.Is(err, services.ErrNoVacancy):
			utils.JSONError(c, http.StatusBadRequest, "All rooms are booked for selected dates")
		case errors.Is(err, services.ErrRoomNumberTaken):
			utils.JSONError(c, http.StatusBadRequest,
				fmt.Sprintf("Room %d is already booked for the selected dates", *booking.RoomNo))
		case strings.HasPrefix(err.Error(), "validation:"):
			utils.JSONError(c, http.StatusBadRequest, strings.TrimSpace(strings.TrimPrefix(err.Error(), "validation:")))
		default:
			logger.Log.Errorf("create booking failed: %v", err)
			utils.JSONError(c, http.StatusInternalServerError, "Failed to create booking")
		}
		return
	}

	// Confirmation is best-effort; the reservation stands either way.
	if strings.Contains(contact, "@") {
		if err := utils.SendBookingConfirmationEmail(contact, name, room, booking.RoomNo, checkin, checkout); err != nil {
			logger.Log.Warnf("confirmation email failed for booking %d: %v", booking.ID, err)
		}
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"message": "Booking successful",
		"booking": booking,
	})
}

// UpdateBooking merge-patches a booking; status changes ride the same
// endpoint, which is how the admin console drives check-in and check-out.
func (ctrl *BookingController) UpdateBooking(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking id")
		return
	}

	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	upd := services.BookingUpdate{
		Name:     req.Name,
		Contact:  req.Contact,
		RoomNo:   req.RoomNo,
		Adults:   req.Adults,
		Children: req.Children,
		Status:   req.Status,
	}
	if req.Checkin != nil {
		t, err := parseDate(*req.Checkin)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid checkin date")
			return
		}
		upd.Checkin = &t
	}
	if req.Checkout != nil {
		t, err := parseDate(*req.Checkout)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid checkout date")
			return
		}
		upd.Checkout = &t
	}

	booking, err := ctrl.Bookings.UpdateBooking(uint(id), upd)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			utils.JSONError(c, http.StatusNotFound, "Booking not found")
		case errors.Is(err, services.ErrRoomNotFound):
			utils.JSONError(c, http.StatusNotFound, "Room not found")
		case errors.Is(err, services.ErrStatusRegression):
			utils.JSONError(c, http.StatusBadRequest, "Booking status can only move forward")
		case errors.Is(err, services.ErrUnknownStatus):
			utils.JSONError(c, http.StatusBadRequest, "Unknown booking status")
		case errors.Is(err, services.ErrRoomNumberTaken):
			utils.JSONError(c, http.StatusBadRequest, "Room number is already booked for the selected dates")
		case errors.Is(err, services.ErrNoRoomNumberFree):
			utils.JSONError(c, http.StatusBadRequest, "No room number available for the selected dates")
		case strings.HasPrefix(err.Error(), "validation:"):
			utils.JSONError(c, http.StatusBadRequest, strings.TrimSpace(strings.TrimPrefix(err.Error(), "validation:")))
		default:
			logger.Log.Errorf("update booking %d failed: %v", id, err)
			utils.JSONError(c, http.StatusInternalServerError, "Failed to update booking")
		}
		return
	}

	utils.JSONSuccess(c, http.StatusOK, booking)
}

// DeleteBooking removes a booking with its roster rows and heals the room
// counter.
func (ctrl *BookingController) DeleteBooking(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking id")
		return
	}

	if err := ctrl.Bookings.DeleteBooking(uint(id)); err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Booking not found")
			return
		}
		logger.Log.Errorf("delete booking %d failed: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete booking")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Booking & guests deleted"})
}

// GetAvailability returns the per-room-type occupancy counts for one date,
// feeding the admin occupancy grid.
func (ctrl *BookingController) GetAvailability(c *gin.Context) {
	date, err := parseDate(c.Param("date"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid date")
		return
	}

	occupancy, err := ctrl.Avail.OccupancyOn(date)
	if err != nil {
		logger.Log.Errorf("availability query failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch availability")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, occupancy)
}
