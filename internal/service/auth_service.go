package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/taskflow-labs/taskflow-backend/internal/config"
	"github.com/taskflow-labs/taskflow-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// ============================================
// Auth Service
// ============================================

type AuthService interface {
	Login(ctx context.Context, email, password string) (*repository.Employee, string, error)
	ChangePassword(ctx context.Context, employeeID, currentPassword, newPassword string) error
	ValidateToken(token string) (*jwt.Token, error)
	GetUserIDFromToken(token *jwt.Token) (string, error)
}

type authService struct {
	cfg          *config.Config
	employeeRepo repository.EmployeeRepository
}

func NewAuthService(cfg *config.Config, employeeRepo repository.EmployeeRepository) AuthService {
	return &authService{cfg: cfg, employeeRepo: employeeRepo}
}

func (s *authService) Login(ctx context.Context, email, password string) (*repository.Employee, string, error) {
	employee, err := s.employeeRepo.FindByEmail(ctx, email)
	if err != nil || employee == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.generateToken(employee.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return employee, token, nil
}

// ChangePassword verifies the current password, stores the new hash and
// clears the forced-change flag set on first login.
func (s *authService) ChangePassword(ctx context.Context, employeeID, currentPassword, newPassword string) error {
	employee, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return err
	}
	if employee == nil {
		return ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.Password), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}
	if len(newPassword) < 8 {
		return validationErr("newPassword", "must be at least 8 characters")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.employeeRepo.UpdatePassword(ctx, employeeID, string(hashed), false)
}

func (s *authService) ValidateToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

func (s *authService) GetUserIDFromToken(token *jwt.Token) (string, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	userID, ok := claims["sub"].(string)
	if !ok {
		return "", ErrInvalidToken
	}
	return userID, nil
}

func (s *authService) generateToken(employeeID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": employeeID,
		"exp": time.Now().Add(time.Hour * time.Duration(s.cfg.JWTExpiry)).Unix(),
		"iat": time.Now().Unix(),
	})
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
