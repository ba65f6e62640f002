package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskPriority string

const (
	PriorityLow      TaskPriority = "low"
	PriorityMedium   TaskPriority = "medium"
	PriorityHigh     TaskPriority = "high"
	PriorityCritical TaskPriority = "critical"
)

// Valid reports whether p is one of the known priority levels.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

type Task struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	ColumnID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"column_id"`
	WorkspaceID uuid.UUID    `gorm:"type:uuid;not null;index" json:"workspace_id"`
	Name        string       `gorm:"type:varchar(60);not null" json:"name"`
	Position    float64      `gorm:"not null" json:"position"`
	Priority    TaskPriority `gorm:"type:varchar(20)" json:"priority,omitempty"`
	Estimate    *float64     `json:"estimate,omitempty"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	Description string       `gorm:"type:text" json:"description,omitempty"`
	AssignedTo  *uuid.UUID   `gorm:"type:uuid" json:"assigned_to,omitempty"`
	CreatedBy   uuid.UUID    `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Relations
	Column         Column          `gorm:"foreignKey:ColumnID" json:"column,omitempty"`
	Assignee       *User           `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
	Creator        User            `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Labels         []Label         `gorm:"many2many:task_labels" json:"labels,omitempty"`
	ChecklistItems []ChecklistItem `gorm:"foreignKey:TaskID" json:"checklist_items,omitempty"`
	Comments       []Comment       `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
