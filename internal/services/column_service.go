package services

import (
	"errors"
	"fmt"

	"github.com/boardhub/boardhub/internal/models"
	"github.com/boardhub/boardhub/internal/ordering"
	"github.com/boardhub/boardhub/internal/repository"
	"github.com/google/uuid"
)

var ErrInvalidColumnName = errors.New("column name must be between 1 and 50 characters")

// ColumnService provides business logic for column operations.
type ColumnService struct {
	guard       *Guard
	columnRepo  repository.ColumnRepository
	taskRepo    repository.TaskRepository
	taskService *TaskService
}

// NewColumnService creates a new ColumnService.
func NewColumnService(
	guard *Guard,
	columnRepo repository.ColumnRepository,
	taskRepo repository.TaskRepository,
	taskService *TaskService,
) *ColumnService {
	return &ColumnService{
		guard:       guard,
		columnRepo:  columnRepo,
		taskRepo:    taskRepo,
		taskService: taskService,
	}
}

// CreateColumnInput represents parameters to create a column.
type CreateColumnInput struct {
	BoardID  uuid.UUID
	Name     string
	Position float64
	ActorID  uuid.UUID
}

// CreateColumn creates a column on a board. Member only.
func (s *ColumnService) CreateColumn(input CreateColumnInput) (*models.Column, error) {
	if !nameValid(input.Name) {
		return nil, ErrInvalidColumnName
	}

	workspaceID, err := s.guard.WorkspaceFromBoard(input.BoardID)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.guard.RequireMember(input.ActorID, workspaceID); err != nil {
		return nil, err
	}

	column := &models.Column{
		BoardID:     input.BoardID,
		WorkspaceID: workspaceID,
		Name:        input.Name,
		Position:    input.Position,
	}
	if err := s.columnRepo.Create(column); err != nil {
		return nil, fmt.Errorf("failed to create column: %w", err)
	}

	return column, nil
}

// UpdateColumnInput represents a partial column update.
type UpdateColumnInput struct {
	Name     *string
	Position *float64
}

// UpdateColumn patches the supplied fields of a column. Member only.
func (s *ColumnService) UpdateColumn(actorID, columnID uuid.UUID, input UpdateColumnInput) (*models.Column, error) {
	workspaceID, err := s.guard.WorkspaceFromColumn(columnID)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.guard.RequireMember(actorID, workspaceID); err != nil {
		return nil, err
	}

	column, err := s.columnRepo.FindByID(columnID)
	if err != nil {
		return nil, fmt.Errorf("failed to find column: %w", err)
	}

	if input.Name != nil {
		if !nameValid(*input.Name) {
			return nil, ErrInvalidColumnName
		}
		column.Name = *input.Name
	}
	if input.Position != nil {
		column.Position = *input.Position
	}

	if err := s.columnRepo.Update(column); err != nil {
		return nil, fmt.Errorf("failed to update column: %w", err)
	}

	return column, nil
}

// MoveColumn places a column at targetIndex among its board's columns,
// computing a fractional position from the current sibling snapshot.
func (s *ColumnService) MoveColumn(actorID, columnID uuid.UUID, targetIndex int) (*models.Column, error) {
	workspaceID, err := s.guard.WorkspaceFromColumn(columnID)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.guard.RequireMember(actorID, workspaceID); err != nil {
		return nil, err
	}

	column, err := s.columnRepo.FindByID(columnID)
	if err != nil {
		return nil, fmt.Errorf("failed to find column: %w", err)
	}

	siblings, err := s.columnRepo.ListByBoard(column.BoardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}

	positions := make([]float64, 0, len(siblings))
	for _, sibling := range siblings {
		if sibling.ID == column.ID {
			continue
		}
		positions = append(positions, sibling.Position)
	}

	column.Position = ordering.ForIndex(positions, targetIndex)

	if err := s.columnRepo.Update(column); err != nil {
		return nil, fmt.Errorf("failed to move column: %w", err)
	}

	return column, nil
}

// DeleteColumn deletes a column and every task in it, each task taking
// its comments, checklist items and label links along. Member only.
func (s *ColumnService) DeleteColumn(actorID, columnID uuid.UUID) error {
	workspaceID, err := s.guard.WorkspaceFromColumn(columnID)
	if err != nil {
		return err
	}
	if _, _, err := s.guard.RequireMember(actorID, workspaceID); err != nil {
		return err
	}

	tasks, err := s.taskRepo.ListByColumn(columnID)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}
	for _, task := range tasks {
		if err := s.taskService.DeleteTask(actorID, task.ID); err != nil {
			return err
		}
	}

	if err := s.columnRepo.Delete(columnID); err != nil {
		return fmt.Errorf("failed to delete column: %w", err)
	}

	return nil
}
