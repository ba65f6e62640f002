package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/boardhub/boardhub/internal/models"
	"github.com/boardhub/boardhub/internal/ordering"
	"github.com/boardhub/boardhub/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidTaskName = errors.New("task name must be between 1 and 50 characters")
	ErrInvalidPriority = errors.New("invalid task priority")
	ErrInvalidAssignee = errors.New("assignee is not a member of the workspace")
)

// duplicatePositionOffset places a task clone immediately after its
// source in the column.
const duplicatePositionOffset = 0.01

// TaskService provides business logic for task operations.
type TaskService struct {
	guard         *Guard
	taskRepo      repository.TaskRepository
	columnRepo    repository.ColumnRepository
	labelRepo     repository.LabelRepository
	checklistRepo repository.ChecklistItemRepository
	commentRepo   repository.CommentRepository
	workspaceRepo repository.WorkspaceRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	guard *Guard,
	taskRepo repository.TaskRepository,
	columnRepo repository.ColumnRepository,
	labelRepo repository.LabelRepository,
	checklistRepo repository.ChecklistItemRepository,
	commentRepo repository.CommentRepository,
	workspaceRepo repository.WorkspaceRepository,
) *TaskService {
	return &TaskService{
		guard:         guard,
		taskRepo:      taskRepo,
		columnRepo:    columnRepo,
		labelRepo:     labelRepo,
		checklistRepo: checklistRepo,
		commentRepo:   commentRepo,
		workspaceRepo: workspaceRepo,
	}
}

// CreateTaskInput represents parameters to create a task.
type CreateTaskInput struct {
	ColumnID uuid.UUID
	Name     string
	Position float64
	ActorID  uuid.UUID
}

// CreateTask creates a task in a column. The caller must be a member of
// the column's workspace and becomes the task's creator.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if !nameValid(input.Name) {
		return nil, ErrInvalidTaskName
	}

	workspaceID, err := s.guard.WorkspaceFromColumn(input.ColumnID)
	if err != nil {
		return nil, err
	}
	user, _, err := s.guard.RequireMember(input.ActorID, workspaceID)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		ColumnID:    input.ColumnID,
		WorkspaceID: workspaceID,
		Name:        input.Name,
		Position:    input.Position,
		CreatedBy:   user.ID,
	}
	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTaskInput represents a partial task update. Nil fields are left
// untouched.
type UpdateTaskInput struct {
	Name          *string
	ColumnID      *uuid.UUID
	Position      *float64
	Priority      *models.TaskPriority
	Estimate      *float64
	DueDate       *time.Time
	ClearDueDate  bool
	Description   *string
	AssignedTo    *uuid.UUID
	ClearAssignee bool
}

// UpdateTask patches the supplied fields of a task. Member only.
func (s *TaskService) UpdateTask(actorID, taskID uuid.UUID, input UpdateTaskInput) (*models.Task, error) {
	workspaceID, err := s.guard.WorkspaceFromTask(taskID)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.guard.RequireMember(actorID, workspaceID); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Name != nil {
		if !nameValid(*input.Name) {
			return nil, ErrInvalidTaskName
		}
		task.Name = *input.Name
	}
	if input.ColumnID != nil {
		// A task may only move between columns of its own workspace.
		column, err := s.columnRepo.FindByID(*input.ColumnID)
		if err != nil || column.WorkspaceID != workspaceID {
			return nil, ErrColumnNotFound
		}
		task.ColumnID = *input.ColumnID
	}
	if input.Position != nil {
		task.Position = *input.Position
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.Estimate != nil {
		task.Estimate = input.Estimate
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.ClearAssignee {
		task.AssignedTo = nil
	} else if input.AssignedTo != nil {
		if err := s.requireWorkspaceUser(workspaceID, *input.AssignedTo); err != nil {
			return nil, err
		}
		task.AssignedTo = input.AssignedTo
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// MoveTask places a task at targetIndex among the tasks of targetColumn
// (its own column when targetColumnID is nil), computing a fractional
// position from the current sibling snapshot.
func (s *TaskService) MoveTask(actorID, taskID uuid.UUID, targetIndex int, targetColumnID *uuid.UUID) (*models.Task, error) {
	workspaceID, err := s.guard.WorkspaceFromTask(taskID)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.guard.RequireMember(actorID, workspaceID); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	columnID := task.ColumnID
	if targetColumnID != nil {
		column, err := s.columnRepo.FindByID(*targetColumnID)
		if err != nil || column.WorkspaceID != workspaceID {
			return nil, ErrColumnNotFound
		}
		columnID = *targetColumnID
	}

	siblings, err := s.taskRepo.ListByColumn(columnID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	// The moving task is not its own neighbor.
	positions := make([]float64, 0, len(siblings))
	for _, sibling := range siblings {
		if sibling.ID == task.ID {
			continue
		}
		positions = append(positions, sibling.Position)
	}

	task.ColumnID = columnID
	task.Position = ordering.ForIndex(positions, targetIndex)

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to move task: %w", err)
	}

	return task, nil
}

// DeleteTask deletes a task together with its comments, checklist items
// and label links. Member only.
func (s *TaskService) DeleteTask(actorID, taskID uuid.UUID) error {
	workspaceID, err := s.guard.WorkspaceFromTask(taskID)
	if err != nil {
		return err
	}
	if _, _, err := s.guard.RequireMember(actorID, workspaceID); err != nil {
		return err
	}

	if err := s.taskRepo.DeleteWithRelatedData(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// DuplicateTask deep-copies a task: label links, checklist items and
// comments all carry over with fresh ids. The clone lands immediately
// after the source and takes a " (Copy)" suffix; the source is left
// untouched.
func (s *TaskService) DuplicateTask(actorID, taskID uuid.UUID) (*models.Task, error) {
	workspaceID, err := s.guard.WorkspaceFromTask(taskID)
	if err != nil {
		return nil, err
	}
	user, _, err := s.guard.RequireMember(actorID, workspaceID)
	if err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	clone := &models.Task{
		ColumnID:    task.ColumnID,
		WorkspaceID: task.WorkspaceID,
		Name:        task.Name + " (Copy)",
		Position:    task.Position + duplicatePositionOffset,
		Priority:    task.Priority,
		Estimate:    task.Estimate,
		DueDate:     task.DueDate,
		Description: task.Description,
		AssignedTo:  task.AssignedTo,
		CreatedBy:   user.ID,
	}
	if err := s.taskRepo.Create(clone); err != nil {
		return nil, fmt.Errorf("failed to create task copy: %w", err)
	}

	links, err := s.labelRepo.ListLinksByTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list label links: %w", err)
	}
	for _, link := range links {
		if err := s.labelRepo.CreateLink(&models.TaskLabel{TaskID: clone.ID, LabelID: link.LabelID}); err != nil {
			return nil, fmt.Errorf("failed to copy label link: %w", err)
		}
	}

	items, err := s.checklistRepo.ListByTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checklist items: %w", err)
	}
	for _, item := range items {
		copied := &models.ChecklistItem{
			TaskID:      clone.ID,
			WorkspaceID: item.WorkspaceID,
			Name:        item.Name,
			IsComplete:  item.IsComplete,
			DueDate:     item.DueDate,
			Position:    item.Position,
		}
		if err := s.checklistRepo.Create(copied); err != nil {
			return nil, fmt.Errorf("failed to copy checklist item: %w", err)
		}
	}

	comments, err := s.commentRepo.ListByTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	for _, comment := range comments {
		copied := &models.Comment{
			TaskID:   clone.ID,
			Text:     comment.Text,
			AuthorID: comment.AuthorID,
		}
		if err := s.commentRepo.Create(copied); err != nil {
			return nil, fmt.Errorf("failed to copy comment: %w", err)
		}
	}

	return clone, nil
}

// AssignUser sets the task's assignee. Member only; the assignee must
// belong to the task's workspace.
func (s *TaskService) AssignUser(actorID, taskID, assigneeID uuid.UUID) (*models.Task, error) {
	workspaceID, err := s.guard.WorkspaceFromTask(taskID)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.guard.RequireMember(actorID, workspaceID); err != nil {
		return nil, err
	}

	if err := s.requireWorkspaceUser(workspaceID, assigneeID); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	task.AssignedTo = &assigneeID

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to assign task: %w", err)
	}

	return task, nil
}

// GetTask returns a task with relations preloaded. Member only.
func (s *TaskService) GetTask(actorID, taskID uuid.UUID) (*models.Task, error) {
	workspaceID, err := s.guard.WorkspaceFromTask(taskID)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.guard.RequireMember(actorID, workspaceID); err != nil {
		return nil, err
	}

	return s.taskRepo.FindByID(taskID, "Creator", "Assignee", "Labels", "ChecklistItems")
}

func (s *TaskService) requireWorkspaceUser(workspaceID, userID uuid.UUID) error {
	if _, err := s.workspaceRepo.FindMember(workspaceID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidAssignee
		}
		return fmt.Errorf("failed to verify assignee: %w", err)
	}
	return nil
}
