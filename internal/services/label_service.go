package services

import (
	"errors"
	"fmt"

	"github.com/boardhub/boardhub/internal/models"
	"github.com/boardhub/boardhub/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrInvalidLabelName = errors.New("label name must be between 1 and 50 characters")

// LabelService provides business logic for workspace labels and their
// task links. Label definitions are owner-managed; attaching them to
// tasks is open to every member.
type LabelService struct {
	guard     *Guard
	labelRepo repository.LabelRepository
}

// NewLabelService creates a new LabelService.
func NewLabelService(guard *Guard, labelRepo repository.LabelRepository) *LabelService {
	return &LabelService{
		guard:     guard,
		labelRepo: labelRepo,
	}
}

// CreateLabel creates a label in a workspace. Owner only.
func (s *LabelService) CreateLabel(actorID, workspaceID uuid.UUID, name, color string) (*models.Label, error) {
	if !nameValid(name) {
		return nil, ErrInvalidLabelName
	}

	if _, _, err := s.guard.RequireOwner(actorID, workspaceID); err != nil {
		return nil, err
	}

	label := &models.Label{
		WorkspaceID: workspaceID,
		Name:        name,
		Color:       color,
	}
	if err := s.labelRepo.Create(label); err != nil {
		return nil, fmt.Errorf("failed to create label: %w", err)
	}

	return label, nil
}

// UpdateLabelInput represents a partial label update.
type UpdateLabelInput struct {
	Name  *string
	Color *string
}

// UpdateLabel patches the supplied fields of a label. Owner only.
func (s *LabelService) UpdateLabel(actorID, labelID uuid.UUID, input UpdateLabelInput) (*models.Label, error) {
	workspaceID, err := s.guard.WorkspaceFromLabel(labelID)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.guard.RequireOwner(actorID, workspaceID); err != nil {
		return nil, err
	}

	label, err := s.labelRepo.FindByID(labelID)
	if err != nil {
		return nil, fmt.Errorf("failed to find label: %w", err)
	}

	if input.Name != nil {
		if !nameValid(*input.Name) {
			return nil, ErrInvalidLabelName
		}
		label.Name = *input.Name
	}
	if input.Color != nil {
		label.Color = *input.Color
	}

	if err := s.labelRepo.Update(label); err != nil {
		return nil, fmt.Errorf("failed to update label: %w", err)
	}

	return label, nil
}

// DeleteLabel removes a label and every link tying it to a task, so no
// task keeps a dangling reference. Owner only.
func (s *LabelService) DeleteLabel(actorID, labelID uuid.UUID) error {
	workspaceID, err := s.guard.WorkspaceFromLabel(labelID)
	if err != nil {
		return err
	}
	if _, _, err := s.guard.RequireOwner(actorID, workspaceID); err != nil {
		return err
	}

	if err := s.labelRepo.DeleteWithLinks(labelID); err != nil {
		return fmt.Errorf("failed to delete label: %w", err)
	}

	return nil
}

// ListLabels returns the workspace's labels. Member only.
func (s *LabelService) ListLabels(actorID, workspaceID uuid.UUID) ([]models.Label, error) {
	if _, _, err := s.guard.RequireMember(actorID, workspaceID); err != nil {
		return nil, err
	}

	labels, err := s.labelRepo.ListByWorkspace(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}

	return labels, nil
}

// ToggleTaskLabel attaches the label to the task, or detaches it when
// already attached. Both must belong to the same workspace. It reports
// whether the label is attached after the call. Member only.
func (s *LabelService) ToggleTaskLabel(actorID, taskID, labelID uuid.UUID) (bool, error) {
	workspaceID, err := s.guard.WorkspaceFromTask(taskID)
	if err != nil {
		return false, err
	}
	if _, _, err := s.guard.RequireMember(actorID, workspaceID); err != nil {
		return false, err
	}

	labelWorkspaceID, err := s.guard.WorkspaceFromLabel(labelID)
	if err != nil {
		return false, err
	}
	if labelWorkspaceID != workspaceID {
		return false, ErrLabelNotFound
	}

	if _, err := s.labelRepo.FindLink(taskID, labelID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("failed to look up label link: %w", err)
		}
		if err := s.labelRepo.CreateLink(&models.TaskLabel{TaskID: taskID, LabelID: labelID}); err != nil {
			return false, fmt.Errorf("failed to attach label: %w", err)
		}
		return true, nil
	}

	if err := s.labelRepo.DeleteLink(taskID, labelID); err != nil {
		return false, fmt.Errorf("failed to detach label: %w", err)
	}
	return false, nil
}
