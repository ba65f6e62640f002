package handlers

import (
	"errors"
	"net/http"

	apierrors "github.com/boardhub/boardhub/internal/errors"
	"github.com/boardhub/boardhub/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ColumnHandler coordinates column HTTP handlers.
type ColumnHandler struct {
	columnService *services.ColumnService
}

// NewColumnHandler creates a new ColumnHandler.
func NewColumnHandler(columnService *services.ColumnService) *ColumnHandler {
	return &ColumnHandler{
		columnService: columnService,
	}
}

// CreateColumn creates a column on a board. Member only.
func (h *ColumnHandler) CreateColumn(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	type CreateColumnRequest struct {
		BoardID  uuid.UUID `json:"board_id" binding:"required"`
		Name     string    `json:"name" binding:"required"`
		Position float64   `json:"position"`
	}

	var req CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	column, err := h.columnService.CreateColumn(services.CreateColumnInput{
		BoardID:  req.BoardID,
		Name:     req.Name,
		Position: req.Position,
		ActorID:  userID,
	})
	if err != nil {
		respondColumnError(c, err)
		return
	}

	c.JSON(http.StatusCreated, column)
}

// UpdateColumn patches a column. Member only.
func (h *ColumnHandler) UpdateColumn(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	columnID, ok := pathID(c, "id")
	if !ok {
		return
	}

	type UpdateColumnRequest struct {
		Name     *string  `json:"name"`
		Position *float64 `json:"position"`
	}

	var req UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	column, err := h.columnService.UpdateColumn(userID, columnID, services.UpdateColumnInput{
		Name:     req.Name,
		Position: req.Position,
	})
	if err != nil {
		respondColumnError(c, err)
		return
	}

	c.JSON(http.StatusOK, column)
}

// MoveColumn places a column at a target index among its board's
// columns. Member only.
func (h *ColumnHandler) MoveColumn(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	columnID, ok := pathID(c, "id")
	if !ok {
		return
	}

	type MoveColumnRequest struct {
		TargetIndex *int `json:"target_index" binding:"required"`
	}

	var req MoveColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	column, err := h.columnService.MoveColumn(userID, columnID, *req.TargetIndex)
	if err != nil {
		respondColumnError(c, err)
		return
	}

	c.JSON(http.StatusOK, column)
}

// DeleteColumn deletes a column and every task in it. Member only.
func (h *ColumnHandler) DeleteColumn(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	columnID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.columnService.DeleteColumn(userID, columnID); err != nil {
		respondColumnError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Column deleted successfully"})
}

func respondColumnError(c *gin.Context, err error) {
	if respondScopeError(c, err) {
		return
	}
	switch {
	case errors.Is(err, services.ErrInvalidColumnName):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
