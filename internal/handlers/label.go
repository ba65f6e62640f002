package handlers

import (
	"errors"
	"net/http"

	"github.com/boardhub/boardhub/internal/dto"
	apierrors "github.com/boardhub/boardhub/internal/errors"
	"github.com/boardhub/boardhub/internal/services"
	"github.com/gin-gonic/gin"
)

// LabelHandler coordinates label HTTP handlers. Creation and listing
// live under the workspace routes; this covers the by-id operations.
type LabelHandler struct {
	labelService *services.LabelService
}

// NewLabelHandler creates a new LabelHandler.
func NewLabelHandler(labelService *services.LabelService) *LabelHandler {
	return &LabelHandler{
		labelService: labelService,
	}
}

// UpdateLabel patches a label. Owner only.
func (h *LabelHandler) UpdateLabel(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	labelID, ok := pathID(c, "id")
	if !ok {
		return
	}

	type UpdateLabelRequest struct {
		Name  *string `json:"name"`
		Color *string `json:"color"`
	}

	var req UpdateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	label, err := h.labelService.UpdateLabel(userID, labelID, services.UpdateLabelInput{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		respondLabelError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLabelDTO(*label))
}

// DeleteLabel deletes a label and detaches it from every task. Owner
// only.
func (h *LabelHandler) DeleteLabel(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	labelID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.labelService.DeleteLabel(userID, labelID); err != nil {
		respondLabelError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Label deleted successfully"})
}

func respondLabelError(c *gin.Context, err error) {
	if respondScopeError(c, err) {
		return
	}
	switch {
	case errors.Is(err, services.ErrInvalidLabelName):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
