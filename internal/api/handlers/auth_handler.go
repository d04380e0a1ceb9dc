package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskflow-labs/taskflow-backend/internal/api/middleware"
	"github.com/taskflow-labs/taskflow-backend/internal/models"
	"github.com/taskflow-labs/taskflow-backend/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("❌ [Login] JSON binding failed - Error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.Printf("📝 [Login] Attempt - Email: %s", req.Email)

	employee, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		log.Printf("❌ [Login] Failed - Email: %s, Error: %v", req.Email, err)
		handleServiceError(c, err)
		return
	}

	log.Printf("✅ [Login] Success - EmployeeID: %s", employee.ID)
	c.JSON(http.StatusOK, models.LoginResponse{
		Token:              token,
		Employee:           toEmployeeResponse(employee),
		MustChangePassword: employee.ForcePasswordChange,
	})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("❌ [ChangePassword] JSON binding failed - Error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.Printf("📝 [ChangePassword] Changing password - EmployeeID: %s", userID)

	if err := h.authService.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		log.Printf("❌ [ChangePassword] Failed - EmployeeID: %s, Error: %v", userID, err)
		handleServiceError(c, err)
		return
	}

	log.Printf("✅ [ChangePassword] Success - EmployeeID: %s", userID)
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
