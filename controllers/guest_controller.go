package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"resort-backend/logger"
	"resort-backend/models"
	"resort-backend/services"
	"resort-backend/utils"
)

type createGuestRequest struct {
	BookerName    string `json:"bookerName"`
	BookerContact string `json:"bookerContact"`
	MemberName    string `json:"memberName"`
	MemberContact string `json:"memberContact"`
	MemberAge     int    `json:"memberAge"`
	MemberGender  string `json:"memberGender"`
	RoomNo        string `json:"roomNo"`
	Checkin       string `json:"checkin"`
	Checkout      string `json:"checkout"`
}

type updateGuestRequest struct {
	BookerName    *string `json:"bookerName"`
	BookerContact *string `json:"bookerContact"`
	MemberName    *string `json:"memberName"`
	MemberContact *string `json:"memberContact"`
	MemberAge     *int    `json:"memberAge"`
	MemberGender  *string `json:"memberGender"`
	RoomNo        *string `json:"roomNo"`
	Checkin       *string `json:"checkin"`
	Checkout      *string `json:"checkout"`
}

type bulkGuestRequest struct {
	BookerName    string                   `json:"bookerName"`
	BookerContact string                   `json:"bookerContact"`
	RoomNo        string                   `json:"roomNo"`
	Checkin       string                   `json:"checkin"`
	Checkout      string                   `json:"checkout"`
	Members       []services.BookingMember `json:"members"`
}

type GuestController struct {
	Guests *services.GuestService
}

func NewGuestController(guests *services.GuestService) *GuestController {
	return &GuestController{Guests: guests}
}

func reqToGuest(req createGuestRequest) models.Guest {
	return models.Guest{
		BookerName:    strings.TrimSpace(req.BookerName),
		BookerContact: strings.TrimSpace(req.BookerContact),
		MemberName:    strings.TrimSpace(req.MemberName),
		MemberContact: strings.TrimSpace(req.MemberContact),
		MemberAge:     req.MemberAge,
		MemberGender:  strings.TrimSpace(req.MemberGender),
		RoomNo:        strings.TrimSpace(req.RoomNo),
	}
}

func (ctrl *GuestController) GetGuests(c *gin.Context) {
	guests, err := ctrl.Guests.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch guests")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guests)
}

func (ctrl *GuestController) CreateGuest(c *gin.Context) {
	var req createGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	guest := reqToGuest(req)
	if req.Checkin != "" {
		t, err := parseDate(req.Checkin)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid checkin date")
			return
		}
		guest.Checkin = t
	}
	if req.Checkout != "" {
		t, err := parseDate(req.Checkout)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid checkout date")
			return
		}
		guest.Checkout = t
	}

	if err := ctrl.Guests.Create(&guest); err != nil {
		if strings.HasPrefix(err.Error(), "validation:") {
			utils.JSONError(c, http.StatusBadRequest, "Required fields missing")
			return
		}
		logger.Log.Errorf("create guest failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create guest")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, guest)
}

func (ctrl *GuestController) BulkCreateGuests(c *gin.Context) {
	var req bulkGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid payload")
		return
	}

	checkin, err := parseDate(req.Checkin)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid checkin date")
		return
	}
	checkout, err := parseDate(req.Checkout)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid checkout date")
		return
	}

	guests, err := ctrl.Guests.BulkCreate(req.BookerName, req.BookerContact, req.RoomNo, checkin, checkout, req.Members)
	if err != nil {
		if strings.HasPrefix(err.Error(), "validation:") {
			utils.JSONError(c, http.StatusBadRequest, "Invalid payload")
			return
		}
		logger.Log.Errorf("bulk guest insert failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create guests")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, guests)
}

func (ctrl *GuestController) UpdateGuest(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid guest id")
		return
	}

	var req updateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	upd := services.GuestUpdate{
		BookerName:    req.BookerName,
		BookerContact: req.BookerContact,
		MemberName:    req.MemberName,
		MemberContact: req.MemberContact,
		MemberAge:     req.MemberAge,
		MemberGender:  req.MemberGender,
		RoomNo:        req.RoomNo,
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

	guest, err := ctrl.Guests.Update(uint(id), upd)
	if err != nil {
		if errors.Is(err, services.ErrGuestNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Guest not found")
			return
		}
		logger.Log.Errorf("update guest %d failed: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update guest")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

func (ctrl *GuestController) DeleteGuest(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid guest id")
		return
	}

	if err := ctrl.Guests.Delete(uint(id)); err != nil {
		if errors.Is(err, services.ErrGuestNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Guest not found")
			return
		}
		logger.Log.Errorf("delete guest %d failed: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete guest")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Guest deleted successfully"})
}
