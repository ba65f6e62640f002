package dto

import (
	"time"

	"github.com/boardhub/boardhub/internal/models"
	"github.com/google/uuid"
)

// LabelDTO represents a label in API responses
type LabelDTO struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
}

// ChecklistItemDTO represents a checklist item in API responses
type ChecklistItemDTO struct {
	ID         uuid.UUID  `json:"id"`
	TaskID     uuid.UUID  `json:"task_id"`
	Name       string     `json:"name"`
	IsComplete bool       `json:"is_complete"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	Position   float64    `json:"position"`
}

// TaskDetailDTO is a task enriched for the board view: resolved assignee,
// labels, sorted checklist items and a has-comments flag.
type TaskDetailDTO struct {
	ID             uuid.UUID           `json:"id"`
	ColumnID       uuid.UUID           `json:"column_id"`
	Name           string              `json:"name"`
	Position       float64             `json:"position"`
	Priority       models.TaskPriority `json:"priority,omitempty"`
	Estimate       *float64            `json:"estimate,omitempty"`
	DueDate        *time.Time          `json:"due_date,omitempty"`
	Description    string              `json:"description,omitempty"`
	CreatedBy      uuid.UUID           `json:"created_by"`
	Assignee       *UserDTO            `json:"assignee,omitempty"`
	Labels         []LabelDTO          `json:"labels"`
	ChecklistItems []ChecklistItemDTO  `json:"checklist_items"`
	HasComments    bool                `json:"has_comments"`
}

// ColumnWithTasksDTO is a column with its tasks in display order
type ColumnWithTasksDTO struct {
	ID       uuid.UUID       `json:"id"`
	BoardID  uuid.UUID       `json:"board_id"`
	Name     string          `json:"name"`
	Position float64         `json:"position"`
	Tasks    []TaskDetailDTO `json:"tasks"`
}

// BoardDetailDTO is the denormalized board view: columns sorted by
// position, each with its tasks sorted by position.
type BoardDetailDTO struct {
	ID          uuid.UUID            `json:"id"`
	WorkspaceID uuid.UUID            `json:"workspace_id"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Color       string               `json:"color,omitempty"`
	Columns     []ColumnWithTasksDTO `json:"columns"`
}

// ToLabelDTO converts a Label model to LabelDTO
func ToLabelDTO(label models.Label) LabelDTO {
	return LabelDTO{
		ID:          label.ID,
		WorkspaceID: label.WorkspaceID,
		Name:        label.Name,
		Color:       label.Color,
	}
}

// ToChecklistItemDTO converts a ChecklistItem model to ChecklistItemDTO
func ToChecklistItemDTO(item models.ChecklistItem) ChecklistItemDTO {
	return ChecklistItemDTO{
		ID:         item.ID,
		TaskID:     item.TaskID,
		Name:       item.Name,
		IsComplete: item.IsComplete,
		DueDate:    item.DueDate,
		Position:   item.Position,
	}
}
