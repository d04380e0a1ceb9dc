package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskflow-labs/taskflow-backend/internal/models"
	"github.com/taskflow-labs/taskflow-backend/internal/service"
)

type TaskHandler struct {
	taskService service.TaskService
}

func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("❌ [Task Create] JSON binding failed - Error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.Printf("📝 [Task Create] Creating task - Title: %s, SprintID: %s", req.Title, req.SprintID)

	task, err := h.taskService.Create(c.Request.Context(), &service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Points:      req.Points,
		SprintID:    req.SprintID,
		AssigneeID:  req.AssigneeID,
		QAOwnerID:   req.QAOwnerID,
	})
	if err != nil {
		log.Printf("❌ [Task Create] Failed - Error: %v", err)
		handleServiceError(c, err)
		return
	}

	log.Printf("✅ [Task Create] Success - TaskNo: %s", task.TaskNo)
	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) Get(c *gin.Context) {
	task, err := h.taskService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Update(c *gin.Context) {
	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("❌ [Task Update] JSON binding failed - Error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	taskID := c.Param("id")
	log.Printf("📝 [Task Update] Updating task - TaskID: %s", taskID)

	task, err := h.taskService.Update(c.Request.Context(), taskID, &service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Points:      req.Points,
		AssigneeID:  req.AssigneeID,
		QAOwnerID:   req.QAOwnerID,
	})
	if err != nil {
		log.Printf("❌ [Task Update] Failed - TaskID: %s, Error: %v", taskID, err)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateStatus handles the drag & drop status change.
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	var req models.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("❌ [Task UpdateStatus] JSON binding failed - Error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	taskID := c.Param("id")
	log.Printf("📝 [Task UpdateStatus] TaskID: %s, Status: %s", taskID, req.Status)

	task, err := h.taskService.SetStatus(c.Request.Context(), taskID, req.Status)
	if err != nil {
		log.Printf("❌ [Task UpdateStatus] Failed - TaskID: %s, Error: %v", taskID, err)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) MoveToSprint(c *gin.Context) {
	var req models.MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("❌ [Task MoveToSprint] JSON binding failed - Error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	taskID := c.Param("id")
	log.Printf("📝 [Task MoveToSprint] TaskID: %s", taskID)

	task, err := h.taskService.MoveToSprint(c.Request.Context(), taskID, req.SprintID)
	if err != nil {
		log.Printf("❌ [Task MoveToSprint] Failed - TaskID: %s, Error: %v", taskID, err)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	taskID := c.Param("id")
	log.Printf("📝 [Task Delete] Deleting task - TaskID: %s", taskID)

	if err := h.taskService.Delete(c.Request.Context(), taskID); err != nil {
		log.Printf("❌ [Task Delete] Failed - TaskID: %s, Error: %v", taskID, err)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

func (h *TaskHandler) ListBySprint(c *gin.Context) {
	tasks, err := h.taskService.ListBySprint(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}
