package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChecklistItem struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	TaskID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"task_id"`
	WorkspaceID uuid.UUID  `gorm:"type:uuid;not null;index" json:"workspace_id"`
	Name        string     `gorm:"type:varchar(50);not null" json:"name"`
	IsComplete  bool       `gorm:"not null;default:false" json:"is_complete"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Position    float64    `gorm:"not null" json:"position"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}

func (i *ChecklistItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
