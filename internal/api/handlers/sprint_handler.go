package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskflow-labs/taskflow-backend/internal/models"
	"github.com/taskflow-labs/taskflow-backend/internal/service"
)

type SprintHandler struct {
	sprintService service.SprintService
}

func NewSprintHandler(sprintService service.SprintService) *SprintHandler {
	return &SprintHandler{sprintService: sprintService}
}

func (h *SprintHandler) Create(c *gin.Context) {
	var req models.CreateSprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("❌ [Sprint Create] JSON binding failed - Error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate, expected YYYY-MM-DD"})
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate, expected YYYY-MM-DD"})
		return
	}

	log.Printf("📝 [Sprint Create] Creating sprint - Name: %s", req.Name)

	sprint, err := h.sprintService.Create(c.Request.Context(), &service.CreateSprintInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		log.Printf("❌ [Sprint Create] Failed - Error: %v", err)
		handleServiceError(c, err)
		return
	}

	log.Printf("✅ [Sprint Create] Success - SprintID: %s", sprint.ID)
	c.JSON(http.StatusCreated, sprint)
}

func (h *SprintHandler) Get(c *gin.Context) {
	sprint, err := h.sprintService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sprint)
}

func (h *SprintHandler) List(c *gin.Context) {
	sprints, err := h.sprintService.List(c.Request.Context())
	if err != nil {
		log.Printf("❌ [Sprint List] Failed - Error: %v", err)
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sprints)
}

func (h *SprintHandler) ListActive(c *gin.Context) {
	sprints, err := h.sprintService.ListActive(c.Request.Context())
	if err != nil {
		log.Printf("❌ [Sprint ListActive] Failed - Error: %v", err)
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sprints)
}

func (h *SprintHandler) ListCompleted(c *gin.Context) {
	sprints, err := h.sprintService.ListCompleted(c.Request.Context())
	if err != nil {
		log.Printf("❌ [Sprint ListCompleted] Failed - Error: %v", err)
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sprints)
}

func (h *SprintHandler) Update(c *gin.Context) {
	var req models.UpdateSprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("❌ [Sprint Update] JSON binding failed - Error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := parseDatePtr(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate, expected YYYY-MM-DD"})
		return
	}
	endDate, err := parseDatePtr(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate, expected YYYY-MM-DD"})
		return
	}

	sprintID := c.Param("id")
	log.Printf("📝 [Sprint Update] Updating sprint - SprintID: %s", sprintID)

	sprint, err := h.sprintService.Update(c.Request.Context(), sprintID, &service.UpdateSprintInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		log.Printf("❌ [Sprint Update] Failed - SprintID: %s, Error: %v", sprintID, err)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sprint)
}

func (h *SprintHandler) Delete(c *gin.Context) {
	sprintID := c.Param("id")
	log.Printf("📝 [Sprint Delete] Deleting sprint - SprintID: %s", sprintID)

	if err := h.sprintService.Delete(c.Request.Context(), sprintID); err != nil {
		log.Printf("❌ [Sprint Delete] Failed - SprintID: %s, Error: %v", sprintID, err)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

func (h *SprintHandler) Start(c *gin.Context) {
	sprintID := c.Param("id")
	log.Printf("📝 [Sprint Start] Starting sprint - SprintID: %s", sprintID)

	sprint, err := h.sprintService.Start(c.Request.Context(), sprintID)
	if err != nil {
		log.Printf("❌ [Sprint Start] Failed - SprintID: %s, Error: %v", sprintID, err)
		handleServiceError(c, err)
		return
	}

	log.Printf("✅ [Sprint Start] Success - SprintID: %s", sprintID)
	c.JSON(http.StatusOK, sprint)
}

func (h *SprintHandler) Complete(c *gin.Context) {
	sprintID := c.Param("id")
	log.Printf("📝 [Sprint Complete] Completing sprint - SprintID: %s", sprintID)

	sprint, err := h.sprintService.Complete(c.Request.Context(), sprintID)
	if err != nil {
		log.Printf("❌ [Sprint Complete] Failed - SprintID: %s, Error: %v", sprintID, err)
		handleServiceError(c, err)
		return
	}

	log.Printf("✅ [Sprint Complete] Success - SprintID: %s", sprintID)
	c.JSON(http.StatusOK, sprint)
}

func (h *SprintHandler) History(c *gin.Context) {
	history, err := h.sprintService.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHistoryResponse(history))
}
