package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resort-backend/logger"
	"resort-backend/services"
	"resort-backend/utils"
)

type registerPayload struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Contact  string `json:"contact"`
	Password string `json:"password" binding:"required"`
}

type loginPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	Admins *services.AdminService
}

func NewAuthController(admins *services.AdminService) *AuthController {
	return &AuthController{Admins: admins}
}

func (ctrl *AuthController) Register(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	_, err := ctrl.Admins.Register(payload.Name, payload.Email, payload.Contact, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWeakPassword):
			utils.JSONError(c, http.StatusBadRequest, "Weak password")
		case errors.Is(err, services.ErrAdminExists):
			utils.JSONError(c, http.StatusBadRequest, "Admin already exists")
		default:
			logger.Log.Errorf("admin registration failed: %v", err)
			utils.JSONError(c, http.StatusInternalServerError, "Failed to register admin")
		}
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, gin.H{"message": "Admin registered successfully"})
}

func (ctrl *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	admin, err := ctrl.Admins.Authenticate(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusBadRequest, "Invalid credentials")
			return
		}
		logger.Log.Errorf("admin login failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to log in")
		return
	}

	token, err := utils.GenerateAdminToken(admin.ID, admin.Email)
	if err != nil {
		logger.Log.Errorf("token generation failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"admin": gin.H{
			"id":    admin.ID,
			"name":  admin.Name,
			"email": admin.Email,
		},
	})
}
