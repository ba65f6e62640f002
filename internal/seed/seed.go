package seed

import (
	"fmt"
	"time"

	"github.com/boardhub/boardhub/internal/models"
	"github.com/boardhub/boardhub/internal/utils"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeder wipes and repopulates the database with demo data. Demo
// deployments run it on an interval so the boards stay presentable no
// matter what visitors do to them.
type Seeder struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// NewSeeder creates a new Seeder.
func NewSeeder(db *gorm.DB, logger zerolog.Logger) *Seeder {
	return &Seeder{
		db:     db,
		logger: logger.With().Str("component", "seed").Logger(),
	}
}

// Run re-seeds on every tick until the stop channel closes.
func (s *Seeder) Run(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", interval).Msg("demo reseed loop started")
	for {
		select {
		case <-ticker.C:
			if err := s.ResetAndSeed(); err != nil {
				s.logger.Error().Err(err).Msg("demo reseed failed")
			}
		case <-stop:
			s.logger.Info().Msg("demo reseed loop stopped")
			return
		}
	}
}

// ResetAndSeed deletes every row and inserts the demo dataset in one
// transaction.
func (s *Seeder) ResetAndSeed() error {
	start := time.Now()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Children before parents.
		wiped := []interface{}{
			&models.TaskLabel{},
			&models.Comment{},
			&models.ChecklistItem{},
			&models.Task{},
			&models.Column{},
			&models.Label{},
			&models.Board{},
			&models.WorkspaceMember{},
			&models.Workspace{},
			&models.User{},
		}
		for _, model := range wiped {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to wipe table: %w", err)
			}
		}

		return s.populate(tx)
	})
	if err != nil {
		return err
	}

	s.logger.Info().Dur("took", time.Since(start)).Msg("demo data reseeded")
	return nil
}

func (s *Seeder) populate(tx *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	alice := models.User{Email: "alice@example.com", Name: "Alice", Color: "#e57373", PasswordHash: string(hash)}
	bob := models.User{Email: "bob@example.com", Name: "Bob", Color: "#64b5f6", PasswordHash: string(hash)}
	if err := tx.Create(&alice).Error; err != nil {
		return err
	}
	if err := tx.Create(&bob).Error; err != nil {
		return err
	}

	inviteCode, err := utils.GenerateInviteCode()
	if err != nil {
		return err
	}
	workspace := models.Workspace{
		Name:        "Demo Workspace",
		Description: "A playground that resets periodically",
		Color:       "#4db6ac",
		InviteCode:  inviteCode,
	}
	if err := tx.Create(&workspace).Error; err != nil {
		return err
	}

	members := []models.WorkspaceMember{
		{WorkspaceID: workspace.ID, UserID: alice.ID, Role: models.RoleOwner, JoinedAt: time.Now()},
		{WorkspaceID: workspace.ID, UserID: bob.ID, Role: models.RoleMember, JoinedAt: time.Now()},
	}
	if err := tx.Create(&members).Error; err != nil {
		return err
	}

	board := models.Board{WorkspaceID: workspace.ID, Name: "Product Launch", Color: "#7986cb"}
	if err := tx.Create(&board).Error; err != nil {
		return err
	}

	bug := models.Label{WorkspaceID: workspace.ID, Name: "Bug", Color: "#ef5350"}
	design := models.Label{WorkspaceID: workspace.ID, Name: "Design", Color: "#ab47bc"}
	if err := tx.Create(&bug).Error; err != nil {
		return err
	}
	if err := tx.Create(&design).Error; err != nil {
		return err
	}

	columns := []models.Column{
		{BoardID: board.ID, WorkspaceID: workspace.ID, Name: "To Do", Position: 1},
		{BoardID: board.ID, WorkspaceID: workspace.ID, Name: "In Progress", Position: 2},
		{BoardID: board.ID, WorkspaceID: workspace.ID, Name: "Done", Position: 3},
	}
	if err := tx.Create(&columns).Error; err != nil {
		return err
	}

	estimate := 3.0
	task := models.Task{
		ColumnID:    columns[0].ID,
		WorkspaceID: workspace.ID,
		Name:        "Draft landing page",
		Position:    1,
		Priority:    models.PriorityHigh,
		Estimate:    &estimate,
		Description: "First pass at hero copy and layout",
		AssignedTo:  &bob.ID,
		CreatedBy:   alice.ID,
	}
	if err := tx.Create(&task).Error; err != nil {
		return err
	}

	if err := tx.Create(&models.TaskLabel{TaskID: task.ID, LabelID: design.ID}).Error; err != nil {
		return err
	}
	checklist := []models.ChecklistItem{
		{TaskID: task.ID, WorkspaceID: workspace.ID, Name: "Wireframe", IsComplete: true, Position: 1},
		{TaskID: task.ID, WorkspaceID: workspace.ID, Name: "Copy review", Position: 2},
	}
	if err := tx.Create(&checklist).Error; err != nil {
		return err
	}
	comment := models.Comment{TaskID: task.ID, Text: "Let's keep the hero under 20 words.", AuthorID: alice.ID}
	return tx.Create(&comment).Error
}
