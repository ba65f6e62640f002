package repository

import (
	"github.com/boardhub/boardhub/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormColumnRepository is a GORM implementation of ColumnRepository
type GormColumnRepository struct {
	db *gorm.DB
}

// NewColumnRepository creates a new ColumnRepository
func NewColumnRepository(db *gorm.DB) ColumnRepository {
	return &GormColumnRepository{db: db}
}

// Create creates a new column
func (r *GormColumnRepository) Create(column *models.Column) error {
	return r.db.Create(column).Error
}

// FindByID finds a column by ID
func (r *GormColumnRepository) FindByID(id uuid.UUID) (*models.Column, error) {
	var column models.Column
	if err := r.db.First(&column, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &column, nil
}

// Update updates a column
func (r *GormColumnRepository) Update(column *models.Column) error {
	return r.db.Save(column).Error
}

// Delete deletes the column row. Tasks are cascaded by the service layer
// before this is called.
func (r *GormColumnRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Column{}, "id = ?", id).Error
}

// ListByBoard returns the board's columns ascending by position
func (r *GormColumnRepository) ListByBoard(boardID uuid.UUID) ([]models.Column, error) {
	var columns []models.Column
	if err := r.db.Where("board_id = ?", boardID).
		Order("position").
		Find(&columns).Error; err != nil {
		return nil, err
	}
	return columns, nil
}
