package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"

	"resort-backend/logger"
	"resort-backend/models"
	"resort-backend/services"
	"resort-backend/utils"
)

type RoomController struct {
	Rooms *services.RoomService
}

func NewRoomController(rooms *services.RoomService) *RoomController {
	return &RoomController{Rooms: rooms}
}

func (ctrl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctrl.Rooms.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch rooms")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// CreateRoom adds a catalog entry from the admin multipart form. The image
// is optional; only image uploads are accepted for it.
func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	room := models.Room{
		Title:       strings.TrimSpace(c.PostForm("title")),
		Category:    strings.TrimSpace(c.PostForm("category")),
		Description: c.PostForm("description"),
	}
	room.Price, _ = strconv.Atoi(c.PostForm("price"))
	room.TotalRooms, _ = strconv.Atoi(c.PostForm("totalRooms"))
	room.NumberStart, _ = strconv.Atoi(c.PostForm("numberStart"))
	room.NumberEnd, _ = strconv.Atoi(c.PostForm("numberEnd"))

	if fh, err := c.FormFile("image"); err == nil {
		if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
			utils.JSONError(c, http.StatusBadRequest, "Only images allowed")
			return
		}
		path, err := services.SaveUploadedFile(fh, "rooms")
		if err != nil {
			logger.Log.Errorf("failed to store room image: %v", err)
			utils.JSONError(c, http.StatusInternalServerError, "Failed to store image")
			return
		}
		room.Image = path
	}

	if err := ctrl.Rooms.Create(&room); err != nil {
		if strings.HasPrefix(err.Error(), "validation:") {
			utils.JSONError(c, http.StatusBadRequest, strings.TrimSpace(strings.TrimPrefix(err.Error(), "validation:")))
			return
		}
		if isDuplicateKeyError(err) {
			utils.JSONError(c, http.StatusConflict, fmt.Sprintf("Room '%s' already exists", room.Title))
			return
		}
		logger.Log.Errorf("create room failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create room")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

type updateRoomRequest struct {
	Title       *string `json:"title"`
	Category    *string `json:"category"`
	Price       *int    `json:"price"`
	TotalRooms  *int    `json:"totalRooms"`
	Description *string `json:"description"`
	NumberStart *int    `json:"numberStart"`
	NumberEnd   *int    `json:"numberEnd"`
}

// UpdateRoom merge-patches a room. Inventory edits are clamped so the type
// never shrinks below its committed bookings.
func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid room id")
		return
	}

	upd := services.RoomUpdate{}

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		bindRoomForm(c, &upd)

		if fh, err := c.FormFile("image"); err == nil {
			if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
				utils.JSONError(c, http.StatusBadRequest, "Only images allowed")
				return
			}
			path, err := services.SaveUploadedFile(fh, "rooms")
			if err != nil {
				logger.Log.Errorf("failed to store room image: %v", err)
				utils.JSONError(c, http.StatusInternalServerError, "Failed to store image")
				return
			}
			if old, err := ctrl.Rooms.GetByID(uint(id)); err == nil && old.Image != "" {
				services.RemoveUploadedFile(old.Image)
			}
			upd.Image = &path
		}
	} else {
		var req updateRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
			return
		}
		upd = services.RoomUpdate{
			Title:       req.Title,
			Category:    req.Category,
			Price:       req.Price,
			TotalRooms:  req.TotalRooms,
			Description: req.Description,
			NumberStart: req.NumberStart,
			NumberEnd:   req.NumberEnd,
		}
	}

	room, err := ctrl.Rooms.Update(uint(id), upd)
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Room not found")
			return
		}
		if isDuplicateKeyError(err) {
			utils.JSONError(c, http.StatusConflict, "Room title already exists")
			return
		}
		logger.Log.Errorf("update room %d failed: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update room")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// bindRoomForm copies the multipart fields that were actually submitted.
func bindRoomForm(c *gin.Context, upd *services.RoomUpdate) {
	if v, ok := c.GetPostForm("title"); ok {
		upd.Title = &v
	}
	if v, ok := c.GetPostForm("category"); ok {
		upd.Category = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		upd.Description = &v
	}
	if v, ok := c.GetPostForm("price"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			upd.Price = &n
		}
	}
	if v, ok := c.GetPostForm("totalRooms"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			upd.TotalRooms = &n
		}
	}
	if v, ok := c.GetPostForm("numberStart"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			upd.NumberStart = &n
		}
	}
	if v, ok := c.GetPostForm("numberEnd"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			upd.NumberEnd = &n
		}
	}
}

func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid room id")
		return
	}

	if err := ctrl.Rooms.Delete(uint(id)); err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Room not found")
			return
		}
		logger.Log.Errorf("delete room %d failed: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete room")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Room deleted"})
}

// ReconcileRooms recomputes every bookedRooms counter from the ledger.
func (ctrl *RoomController) ReconcileRooms(c *gin.Context) {
	if err := ctrl.Rooms.ReconcileBookedRooms(); err != nil {
		logger.Log.Errorf("room reconciliation failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to reconcile room counters")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Room counters reconciled"})
}

// isDuplicateKeyError spots unique-index violations across MySQL and the
// sqlite test database.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
