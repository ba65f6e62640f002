package repository

import (
	"github.com/boardhub/boardhub/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBoardRepository is a GORM implementation of BoardRepository
type GormBoardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &GormBoardRepository{db: db}
}

// Create creates a new board
func (r *GormBoardRepository) Create(board *models.Board) error {
	return r.db.Create(board).Error
}

// FindByID finds a board by ID
func (r *GormBoardRepository) FindByID(id uuid.UUID) (*models.Board, error) {
	var board models.Board
	if err := r.db.First(&board, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// Update updates a board
func (r *GormBoardRepository) Update(board *models.Board) error {
	return r.db.Save(board).Error
}

// Delete deletes the board row. Columns are cascaded by the service
// layer before this is called.
func (r *GormBoardRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Board{}, "id = ?", id).Error
}

// ListByWorkspace lists a workspace's boards
func (r *GormBoardRepository) ListByWorkspace(workspaceID uuid.UUID) ([]models.Board, error) {
	var boards []models.Board
	if err := r.db.Where("workspace_id = ?", workspaceID).
		Order("created_at").
		Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}
