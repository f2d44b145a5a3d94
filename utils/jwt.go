package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

func jwtSecret() []byte {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("resort-dev-secret")
}

// GenerateAdminToken signs the bearer token returned by /admin/login.
func GenerateAdminToken(adminID uint, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":    adminID,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(24 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
}

// ParseAdminToken validates a bearer token and returns the admin id.
func ParseAdminToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	id, ok := claims["id"].(float64)
	if !ok || id <= 0 {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}
