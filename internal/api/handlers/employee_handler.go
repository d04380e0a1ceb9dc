package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskflow-labs/taskflow-backend/internal/api/middleware"
	"github.com/taskflow-labs/taskflow-backend/internal/models"
	"github.com/taskflow-labs/taskflow-backend/internal/service"
)

type EmployeeHandler struct {
	employeeService service.EmployeeService
	boardService    service.BoardService
}

func NewEmployeeHandler(employeeService service.EmployeeService, boardService service.BoardService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService, boardService: boardService}
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req models.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("❌ [Employee Create] JSON binding failed - Error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	joiningDate, err := parseDatePtr(req.JoiningDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid joiningDate, expected YYYY-MM-DD"})
		return
	}

	log.Printf("📝 [Employee Create] Creating employee - Email: %s", req.Email)

	employee, err := h.employeeService.Create(c.Request.Context(), &service.CreateEmployeeInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Role:        req.Role,
		Department:  req.Department,
		Status:      req.Status,
		JoiningDate: joiningDate,
		IsAdmin:     req.IsAdmin,
	})
	if err != nil {
		log.Printf("❌ [Employee Create] Failed - Email: %s, Error: %v", req.Email, err)
		handleServiceError(c, err)
		return
	}

	log.Printf("✅ [Employee Create] Success - EmployeeID: %s", employee.ID)
	c.JSON(http.StatusCreated, toEmployeeResponse(employee))
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	employee, err := h.employeeService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEmployeeResponse(employee))
}

// Me returns the authenticated employee's own record.
func (h *EmployeeHandler) Me(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	employee, err := h.employeeService.Get(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEmployeeResponse(employee))
}

func (h *EmployeeHandler) List(c *gin.Context) {
	employees, err := h.employeeService.List(c.Request.Context())
	if err != nil {
		log.Printf("❌ [Employee List] Failed - Error: %v", err)
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEmployeeResponseList(employees))
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	var req models.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("❌ [Employee Update] JSON binding failed - Error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	joiningDate, err := parseDatePtr(req.JoiningDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid joiningDate, expected YYYY-MM-DD"})
		return
	}

	employeeID := c.Param("id")
	log.Printf("📝 [Employee Update] Updating employee - EmployeeID: %s", employeeID)

	employee, err := h.employeeService.Update(c.Request.Context(), employeeID, &service.UpdateEmployeeInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Role:        req.Role,
		Department:  req.Department,
		Status:      req.Status,
		JoiningDate: joiningDate,
		IsAdmin:     req.IsAdmin,
	})
	if err != nil {
		log.Printf("❌ [Employee Update] Failed - EmployeeID: %s, Error: %v", employeeID, err)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toEmployeeResponse(employee))
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	employeeID := c.Param("id")
	log.Printf("📝 [Employee Delete] Deleting employee - EmployeeID: %s", employeeID)

	if err := h.employeeService.Delete(c.Request.Context(), employeeID); err != nil {
		log.Printf("❌ [Employee Delete] Failed - EmployeeID: %s, Error: %v", employeeID, err)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// TaskSummary returns the workload aggregate for one employee.
func (h *EmployeeHandler) TaskSummary(c *gin.Context) {
	summary, err := h.boardService.EmployeeTaskSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// MonthlyPoints returns completed story points bucketed by month.
func (h *EmployeeHandler) MonthlyPoints(c *gin.Context) {
	points, err := h.boardService.MonthlyCompletedPoints(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}
