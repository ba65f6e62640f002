package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/boardhub/boardhub/internal/dto"
	apierrors "github.com/boardhub/boardhub/internal/errors"
	"github.com/boardhub/boardhub/internal/models"
	"github.com/boardhub/boardhub/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TaskHandler coordinates task HTTP handlers, including duplication,
// assignment, label toggling and comments.
type TaskHandler struct {
	taskService    *services.TaskService
	labelService   *services.LabelService
	commentService *services.CommentService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(
	taskService *services.TaskService,
	labelService *services.LabelService,
	commentService *services.CommentService,
) *TaskHandler {
	return &TaskHandler{
		taskService:    taskService,
		labelService:   labelService,
		commentService: commentService,
	}
}

// CreateTask creates a task in a column. Member only.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		ColumnID uuid.UUID `json:"column_id" binding:"required"`
		Name     string    `json:"name" binding:"required"`
		Position float64   `json:"position"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		ColumnID: req.ColumnID,
		Name:     req.Name,
		Position: req.Position,
		ActorID:  userID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask patches a task. Absent fields are untouched; the clear
// flags reset the nullable ones. Member only.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Name          *string              `json:"name"`
		ColumnID      *uuid.UUID           `json:"column_id"`
		Position      *float64             `json:"position"`
		Priority      *models.TaskPriority `json:"priority"`
		Estimate      *float64             `json:"estimate"`
		DueDate       *time.Time           `json:"due_date"`
		ClearDueDate  bool                 `json:"clear_due_date"`
		Description   *string              `json:"description"`
		AssignedTo    *uuid.UUID           `json:"assigned_to"`
		ClearAssignee bool                 `json:"clear_assignee"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(userID, taskID, services.UpdateTaskInput{
		Name:          req.Name,
		ColumnID:      req.ColumnID,
		Position:      req.Position,
		Priority:      req.Priority,
		Estimate:      req.Estimate,
		DueDate:       req.DueDate,
		ClearDueDate:  req.ClearDueDate,
		Description:   req.Description,
		AssignedTo:    req.AssignedTo,
		ClearAssignee: req.ClearAssignee,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// MoveTask places a task at a target index, optionally in another
// column of the same workspace. Member only.
func (h *TaskHandler) MoveTask(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	type MoveTaskRequest struct {
		TargetIndex *int       `json:"target_index" binding:"required"`
		ColumnID    *uuid.UUID `json:"column_id"`
	}

	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.MoveTask(userID, taskID, *req.TargetIndex, req.ColumnID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask deletes a task with its comments, checklist items and
// label links. Member only.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(userID, taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// DuplicateTask deep-copies a task next to the original. Member only.
func (h *TaskHandler) DuplicateTask(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	clone, err := h.taskService.DuplicateTask(userID, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, clone)
}

// AssignTask sets the task's assignee. Member only.
func (h *TaskHandler) AssignTask(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	type AssignTaskRequest struct {
		UserID uuid.UUID `json:"user_id" binding:"required"`
	}

	var req AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.AssignUser(userID, taskID, req.UserID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// ToggleLabel attaches or detaches a label on the task. Member only.
func (h *TaskHandler) ToggleLabel(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}
	labelID, ok := pathID(c, "labelId")
	if !ok {
		return
	}

	attached, err := h.labelService.ToggleTaskLabel(userID, taskID, labelID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"attached": attached})
}

// ListComments returns the task's comments with authors resolved.
// Member only.
func (h *TaskHandler) ListComments(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	comments, err := h.commentService.ListComments(userID, taskID)
	if err != nil {
		respondCommentError(c, err)
		return
	}

	commentDTOs := make([]dto.CommentDTO, 0, len(comments))
	for _, comment := range comments {
		commentDTOs = append(commentDTOs, dto.ToCommentDTO(comment))
	}

	c.JSON(http.StatusOK, gin.H{"comments": commentDTOs})
}

// CreateComment adds a comment to the task, attributed to the caller.
func (h *TaskHandler) CreateComment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	type CreateCommentRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.CreateComment(userID, taskID, req.Text)
	if err != nil {
		respondCommentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func respondTaskError(c *gin.Context, err error) {
	if respondScopeError(c, err) {
		return
	}
	switch {
	case errors.Is(err, services.ErrInvalidTaskName),
		errors.Is(err, services.ErrInvalidPriority):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidAssignee):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
