package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskflow-labs/taskflow-backend/internal/service"
)

type BoardHandler struct {
	boardService service.BoardService
}

func NewBoardHandler(boardService service.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

// Project returns the sprint board grouped by status. Filters come in as
// query params: search, assignee (all|unassigned|<employeeId>), priority.
func (h *BoardHandler) Project(c *gin.Context) {
	sprintID := c.Param("id")
	filters := service.BoardFilters{
		Search:   c.Query("search"),
		Assignee: c.Query("assignee"),
		Priority: c.Query("priority"),
	}

	board, err := h.boardService.ProjectBoard(c.Request.Context(), sprintID, filters)
	if err != nil {
		log.Printf("❌ [Board] Projection failed - SprintID: %s, Error: %v", sprintID, err)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, board)
}
