package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Column is an ordered lane within a board. Position is a fractional
// ordering key; siblings sort ascending by it.
type Column struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BoardID     uuid.UUID `gorm:"type:uuid;not null;index" json:"board_id"`
	WorkspaceID uuid.UUID `gorm:"type:uuid;not null;index" json:"workspace_id"`
	Name        string    `gorm:"type:varchar(50);not null" json:"name"`
	Position    float64   `gorm:"not null" json:"position"`

	// Relations
	Board Board  `gorm:"foreignKey:BoardID" json:"board,omitempty"`
	Tasks []Task `gorm:"foreignKey:ColumnID" json:"tasks,omitempty"`
}

func (c *Column) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
