package repository

import (
	"github.com/boardhub/boardhub/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormChecklistItemRepository is a GORM implementation of ChecklistItemRepository
type GormChecklistItemRepository struct {
	db *gorm.DB
}

// NewChecklistItemRepository creates a new ChecklistItemRepository
func NewChecklistItemRepository(db *gorm.DB) ChecklistItemRepository {
	return &GormChecklistItemRepository{db: db}
}

// Create creates a new checklist item
func (r *GormChecklistItemRepository) Create(item *models.ChecklistItem) error {
	return r.db.Create(item).Error
}

// FindByID finds a checklist item by ID
func (r *GormChecklistItemRepository) FindByID(id uuid.UUID) (*models.ChecklistItem, error) {
	var item models.ChecklistItem
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Update updates a checklist item
func (r *GormChecklistItemRepository) Update(item *models.ChecklistItem) error {
	return r.db.Save(item).Error
}

// Delete deletes a checklist item
func (r *GormChecklistItemRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.ChecklistItem{}, "id = ?", id).Error
}

// ListByTask returns the task's checklist items ascending by position
func (r *GormChecklistItemRepository) ListByTask(taskID uuid.UUID) ([]models.ChecklistItem, error) {
	var items []models.ChecklistItem
	if err := r.db.Where("task_id = ?", taskID).
		Order("position").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
