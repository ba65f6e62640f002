package handlers

import (
	"errors"
	"net/http"

	"github.com/boardhub/boardhub/internal/dto"
	apierrors "github.com/boardhub/boardhub/internal/errors"
	"github.com/boardhub/boardhub/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BoardHandler coordinates board HTTP handlers.
type BoardHandler struct {
	boardService *services.BoardService
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(boardService *services.BoardService) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
	}
}

// CreateBoard creates a board in a workspace. Owner only.
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	type CreateBoardRequest struct {
		WorkspaceID uuid.UUID `json:"workspace_id" binding:"required"`
		Name        string    `json:"name" binding:"required"`
		Description string    `json:"description"`
		Color       string    `json:"color"`
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	board, err := h.boardService.CreateBoard(services.CreateBoardInput{
		WorkspaceID: req.WorkspaceID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		ActorID:     userID,
	})
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBoardSummaryDTO(*board))
}

// GetBoard returns the full board view: columns in position order, each
// with its tasks in position order and their details resolved.
func (h *BoardHandler) GetBoard(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.boardService.GetBoardDetail(userID, boardID)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// UpdateBoard patches a board. Owner only.
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	type UpdateBoardRequest struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Color       *string `json:"color"`
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	board, err := h.boardService.UpdateBoard(userID, boardID, services.UpdateBoardInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardSummaryDTO(*board))
}

// DeleteBoard deletes a board and everything on it. Owner only.
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.boardService.DeleteBoard(userID, boardID); err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Board deleted successfully"})
}

func respondBoardError(c *gin.Context, err error) {
	if respondScopeError(c, err) {
		return
	}
	switch {
	case errors.Is(err, services.ErrInvalidBoardName),
		errors.Is(err, services.ErrDescriptionTooLong):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
