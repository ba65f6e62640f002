package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/boardhub/boardhub/internal/models"
	"github.com/boardhub/boardhub/internal/repository"
	"github.com/google/uuid"
)

var ErrInvalidChecklistItemName = errors.New("checklist item name must be between 1 and 50 characters")

// ChecklistService provides business logic for task checklist items.
type ChecklistService struct {
	guard         *Guard
	checklistRepo repository.ChecklistItemRepository
}

// NewChecklistService creates a new ChecklistService.
func NewChecklistService(guard *Guard, checklistRepo repository.ChecklistItemRepository) *ChecklistService {
	return &ChecklistService{
		guard:         guard,
		checklistRepo: checklistRepo,
	}
}

// CreateChecklistItemInput represents parameters to create a checklist item.
type CreateChecklistItemInput struct {
	TaskID   uuid.UUID
	Name     string
	Position float64
	DueDate  *time.Time
	ActorID  uuid.UUID
}

// CreateChecklistItem adds an item to a task's checklist. Member only.
func (s *ChecklistService) CreateChecklistItem(input CreateChecklistItemInput) (*models.ChecklistItem, error) {
	if !nameValid(input.Name) {
		return nil, ErrInvalidChecklistItemName
	}

	workspaceID, err := s.guard.WorkspaceFromTask(input.TaskID)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.guard.RequireMember(input.ActorID, workspaceID); err != nil {
		return nil, err
	}

	item := &models.ChecklistItem{
		TaskID:      input.TaskID,
		WorkspaceID: workspaceID,
		Name:        input.Name,
		Position:    input.Position,
		DueDate:     input.DueDate,
	}
	if err := s.checklistRepo.Create(item); err != nil {
		return nil, fmt.Errorf("failed to create checklist item: %w", err)
	}

	return item, nil
}

// UpdateChecklistItemInput represents a partial checklist item update.
type UpdateChecklistItemInput struct {
	Name         *string
	IsComplete   *bool
	Position     *float64
	DueDate      *time.Time
	ClearDueDate bool
}

// UpdateChecklistItem patches the supplied fields of a checklist item.
// Member only.
func (s *ChecklistService) UpdateChecklistItem(actorID, itemID uuid.UUID, input UpdateChecklistItemInput) (*models.ChecklistItem, error) {
	workspaceID, err := s.guard.WorkspaceFromChecklistItem(itemID)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.guard.RequireMember(actorID, workspaceID); err != nil {
		return nil, err
	}

	item, err := s.checklistRepo.FindByID(itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to find checklist item: %w", err)
	}

	if input.Name != nil {
		if !nameValid(*input.Name) {
			return nil, ErrInvalidChecklistItemName
		}
		item.Name = *input.Name
	}
	if input.IsComplete != nil {
		item.IsComplete = *input.IsComplete
	}
	if input.Position != nil {
		item.Position = *input.Position
	}
	if input.ClearDueDate {
		item.DueDate = nil
	} else if input.DueDate != nil {
		item.DueDate = input.DueDate
	}

	if err := s.checklistRepo.Update(item); err != nil {
		return nil, fmt.Errorf("failed to update checklist item: %w", err)
	}

	return item, nil
}

// DeleteChecklistItem removes a checklist item. Member only.
func (s *ChecklistService) DeleteChecklistItem(actorID, itemID uuid.UUID) error {
	workspaceID, err := s.guard.WorkspaceFromChecklistItem(itemID)
	if err != nil {
		return err
	}
	if _, _, err := s.guard.RequireMember(actorID, workspaceID); err != nil {
		return err
	}

	if err := s.checklistRepo.Delete(itemID); err != nil {
		return fmt.Errorf("failed to delete checklist item: %w", err)
	}

	return nil
}

// ListChecklistItems returns a task's checklist in position order.
// Member only.
func (s *ChecklistService) ListChecklistItems(actorID, taskID uuid.UUID) ([]models.ChecklistItem, error) {
	workspaceID, err := s.guard.WorkspaceFromTask(taskID)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.guard.RequireMember(actorID, workspaceID); err != nil {
		return nil, err
	}

	items, err := s.checklistRepo.ListByTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checklist items: %w", err)
	}

	return items, nil
}
