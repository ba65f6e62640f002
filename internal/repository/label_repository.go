package repository

import (
	"github.com/boardhub/boardhub/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLabelRepository is a GORM implementation of LabelRepository
type GormLabelRepository struct {
	db *gorm.DB
}

// NewLabelRepository creates a new LabelRepository
func NewLabelRepository(db *gorm.DB) LabelRepository {
	return &GormLabelRepository{db: db}
}

// Create creates a new label
func (r *GormLabelRepository) Create(label *models.Label) error {
	return r.db.Create(label).Error
}

// FindByID finds a label by ID
func (r *GormLabelRepository) FindByID(id uuid.UUID) (*models.Label, error) {
	var label models.Label
	if err := r.db.First(&label, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &label, nil
}

// Update updates a label
func (r *GormLabelRepository) Update(label *models.Label) error {
	return r.db.Save(label).Error
}

// DeleteWithLinks deletes the label and all of its task links in one
// transaction.
func (r *GormLabelRepository) DeleteWithLinks(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("label_id = ?", id).Delete(&models.TaskLabel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Label{}, "id = ?", id).Error
	})
}

// ListByWorkspace lists a workspace's labels
func (r *GormLabelRepository) ListByWorkspace(workspaceID uuid.UUID) ([]models.Label, error) {
	var labels []models.Label
	if err := r.db.Where("workspace_id = ?", workspaceID).
		Order("name").
		Find(&labels).Error; err != nil {
		return nil, err
	}
	return labels, nil
}

// ListByTask lists the labels linked to a task
func (r *GormLabelRepository) ListByTask(taskID uuid.UUID) ([]models.Label, error) {
	var labels []models.Label
	if err := r.db.
		Joins("JOIN task_labels ON task_labels.label_id = labels.id").
		Where("task_labels.task_id = ?", taskID).
		Find(&labels).Error; err != nil {
		return nil, err
	}
	return labels, nil
}

// FindLink finds a task-label link
func (r *GormLabelRepository) FindLink(taskID, labelID uuid.UUID) (*models.TaskLabel, error) {
	var link models.TaskLabel
	if err := r.db.Where("task_id = ? AND label_id = ?", taskID, labelID).
		First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// CreateLink creates a task-label link
func (r *GormLabelRepository) CreateLink(link *models.TaskLabel) error {
	return r.db.Create(link).Error
}

// DeleteLink deletes a task-label link
func (r *GormLabelRepository) DeleteLink(taskID, labelID uuid.UUID) error {
	return r.db.Where("task_id = ? AND label_id = ?", taskID, labelID).
		Delete(&models.TaskLabel{}).Error
}

// ListLinksByTask lists a task's label links
func (r *GormLabelRepository) ListLinksByTask(taskID uuid.UUID) ([]models.TaskLabel, error) {
	var links []models.TaskLabel
	if err := r.db.Where("task_id = ?", taskID).Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}
