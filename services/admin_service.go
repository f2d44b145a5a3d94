package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"resort-backend/models"
)

var (
	ErrWeakPassword       = errors.New("weak_password")
	ErrAdminExists        = errors.New("admin_exists")
	ErrInvalidCredentials = errors.New("invalid_credentials")
)

type AdminService struct {
	DB *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{DB: db}
}

// isStrongPassword requires length 8+, upper, lower, digit and symbol.
func isStrongPassword(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

func (s *AdminService) Register(name, email, contact, password string) (*models.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, fmt.Errorf("validation: name and email are required")
	}
	if !isStrongPassword(password) {
		return nil, ErrWeakPassword
	}

	var existing models.Admin
	err := s.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrAdminExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	admin := models.Admin{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Contact:  strings.TrimSpace(contact),
		Password: string(hash),
	}
	if err := s.DB.Create(&admin).Error; err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return &admin, nil
}

// Authenticate verifies the credentials and returns the stored admin. The
// same error covers unknown email and bad password.
func (s *AdminService) Authenticate(email, password string) (*models.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var admin models.Admin
	if err := s.DB.Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load admin: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &admin, nil
}
