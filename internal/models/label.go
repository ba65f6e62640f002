package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Label is a workspace-scoped tag. Tasks reference labels through the
// task_labels join table.
type Label struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	WorkspaceID uuid.UUID `gorm:"type:uuid;not null;index" json:"workspace_id"`
	Name        string    `gorm:"type:varchar(50);not null" json:"name"`
	Color       string    `gorm:"type:varchar(20);not null" json:"color"`

	// Relations
	Workspace Workspace `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
	Tasks     []Task    `gorm:"many2many:task_labels" json:"tasks,omitempty"`
}

func (l *Label) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TaskLabel is the task-label join row.
type TaskLabel struct {
	TaskID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"task_id"`
	LabelID uuid.UUID `gorm:"type:uuid;primaryKey" json:"label_id"`
}

func (TaskLabel) TableName() string {
	return "task_labels"
}
