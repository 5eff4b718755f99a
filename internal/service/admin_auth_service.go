package service

import (
	"errors"
	"time"

	"availability/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const adminTokenTTL = time.Hour

type AdminAuthService interface {
	Login(password string) (string, error)
}

type adminAuthService struct {
	cfg config.Admin
	now func() time.Time
}

func NewAdminAuthService(cfg config.Admin) AdminAuthService {
	return &adminAuthService{cfg: cfg, now: time.Now}
}

func (s *adminAuthService) Login(password string) (string, error) {
	if !s.cfg.Enabled() {
		return "", errors.New("admin login is not configured")
	}

	// Comparamos el password hasheado
	err := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password))
	if err != nil {
		return "", ErrInvalidCredentials
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(adminTokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
