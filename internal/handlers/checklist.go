package handlers

import (
	"errors"
	"net/http"
	"time"

	apierrors "github.com/boardhub/boardhub/internal/errors"
	"github.com/boardhub/boardhub/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ChecklistHandler coordinates checklist item HTTP handlers.
type ChecklistHandler struct {
	checklistService *services.ChecklistService
}

// NewChecklistHandler creates a new ChecklistHandler.
func NewChecklistHandler(checklistService *services.ChecklistService) *ChecklistHandler {
	return &ChecklistHandler{
		checklistService: checklistService,
	}
}

// CreateChecklistItem adds an item to a task's checklist. Member only.
func (h *ChecklistHandler) CreateChecklistItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	type CreateChecklistItemRequest struct {
		TaskID   uuid.UUID  `json:"task_id" binding:"required"`
		Name     string     `json:"name" binding:"required"`
		Position float64    `json:"position"`
		DueDate  *time.Time `json:"due_date"`
	}

	var req CreateChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.checklistService.CreateChecklistItem(services.CreateChecklistItemInput{
		TaskID:   req.TaskID,
		Name:     req.Name,
		Position: req.Position,
		DueDate:  req.DueDate,
		ActorID:  userID,
	})
	if err != nil {
		respondChecklistError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateChecklistItem patches a checklist item. Member only.
func (h *ChecklistHandler) UpdateChecklistItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	type UpdateChecklistItemRequest struct {
		Name         *string    `json:"name"`
		IsComplete   *bool      `json:"is_complete"`
		Position     *float64   `json:"position"`
		DueDate      *time.Time `json:"due_date"`
		ClearDueDate bool       `json:"clear_due_date"`
	}

	var req UpdateChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.checklistService.UpdateChecklistItem(userID, itemID, services.UpdateChecklistItemInput{
		Name:         req.Name,
		IsComplete:   req.IsComplete,
		Position:     req.Position,
		DueDate:      req.DueDate,
		ClearDueDate: req.ClearDueDate,
	})
	if err != nil {
		respondChecklistError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteChecklistItem removes a checklist item. Member only.
func (h *ChecklistHandler) DeleteChecklistItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.checklistService.DeleteChecklistItem(userID, itemID); err != nil {
		respondChecklistError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Checklist item deleted successfully"})
}

func respondChecklistError(c *gin.Context, err error) {
	if respondScopeError(c, err) {
		return
	}
	switch {
	case errors.Is(err, services.ErrInvalidChecklistItemName):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
