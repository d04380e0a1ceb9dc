package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskflow-labs/taskflow-backend/internal/models"
	"github.com/taskflow-labs/taskflow-backend/internal/repository"
	"github.com/taskflow-labs/taskflow-backend/internal/service"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	Auth     *AuthHandler
	Employee *EmployeeHandler
	Sprint   *SprintHandler
	Task     *TaskHandler
	Board    *BoardHandler
}

// NewHandlers creates all handlers
func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:     &AuthHandler{authService: services.Auth},
		Employee: &EmployeeHandler{employeeService: services.Employee, boardService: services.Board},
		Sprint:   &SprintHandler{sprintService: services.Sprint},
		Task:     &TaskHandler{taskService: services.Task},
		Board:    &BoardHandler{boardService: services.Board},
	}
}

// handleServiceError translates service errors into HTTP responses.
func handleServiceError(c *gin.Context, err error) {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "field": ve.Field})
		return
	}

	switch err {
	case service.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case service.ErrInvalidState:
		c.JSON(http.StatusConflict, gin.H{"error": "Operation not allowed in current status"})
	case service.ErrEmailExists:
		c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
	case service.ErrInvalidCredentials:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case service.ErrUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case service.ErrForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// parseDate parses a YYYY-MM-DD request field.
func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

func parseDatePtr(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := parseDate(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ============================================
// Response Mappers
// ============================================

func toEmployeeResponse(e *repository.Employee) models.EmployeeResponse {
	return models.EmployeeResponse{
		ID:          e.ID,
		Name:        e.Name,
		Email:       e.Email,
		Phone:       e.Phone,
		Role:        e.Role,
		Department:  e.Department,
		Status:      e.Status,
		JoiningDate: e.JoiningDate,
		IsAdmin:     e.IsAdmin,
		CreatedAt:   e.CreatedAt,
	}
}

func toEmployeeResponseList(employees []*repository.Employee) []models.EmployeeResponse {
	response := make([]models.EmployeeResponse, len(employees))
	for i, e := range employees {
		response[i] = toEmployeeResponse(e)
	}
	return response
}

func toHistoryResponse(h *service.SprintHistory) models.SprintHistoryResponse {
	resp := models.SprintHistoryResponse{
		Sprint: models.SprintSummary{
			ID:        h.Sprint.ID,
			Name:      h.Sprint.Name,
			StartDate: h.Sprint.StartDate,
			EndDate:   h.Sprint.EndDate,
			Status:    h.Sprint.Status,
		},
		Tasks: make([]models.HistoryTaskDetail, len(h.Tasks)),
	}
	for i, t := range h.Tasks {
		resp.Tasks[i] = models.HistoryTaskDetail{
			ID:           t.Task.ID,
			TaskNo:       t.Task.TaskNo,
			Title:        t.Task.Title,
			Description:  t.Task.Description,
			Status:       t.Task.Status,
			Priority:     t.Task.Priority,
			Points:       t.Task.Points,
			AssigneeName: t.AssigneeName,
			QAOwnerName:  t.QAOwnerName,
		}
	}
	return resp
}
