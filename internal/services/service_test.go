package services

import (
	"testing"
	"time"

	"github.com/boardhub/boardhub/internal/models"
	"github.com/boardhub/boardhub/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// serviceTestEnv wires the full service stack over an in-memory
// database so the cascade and guard paths run against real queries.
type serviceTestEnv struct {
	db *gorm.DB

	userRepo      repository.UserRepository
	workspaceRepo repository.WorkspaceRepository
	boardRepo     repository.BoardRepository
	columnRepo    repository.ColumnRepository
	taskRepo      repository.TaskRepository
	labelRepo     repository.LabelRepository
	checklistRepo repository.ChecklistItemRepository
	commentRepo   repository.CommentRepository

	guard            *Guard
	authService      *AuthService
	workspaceService *WorkspaceService
	boardService     *BoardService
	columnService    *ColumnService
	taskService      *TaskService
	labelService     *LabelService
	commentService   *CommentService
	checklistService *ChecklistService
}

func setupServiceTest(t *testing.T) *serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Workspace{},
		&models.WorkspaceMember{},
		&models.Board{},
		&models.Column{},
		&models.Task{},
		&models.Label{},
		&models.TaskLabel{},
		&models.ChecklistItem{},
		&models.Comment{},
	)
	require.NoError(t, err)

	env := &serviceTestEnv{db: db}
	env.userRepo = repository.NewUserRepository(db)
	env.workspaceRepo = repository.NewWorkspaceRepository(db)
	env.boardRepo = repository.NewBoardRepository(db)
	env.columnRepo = repository.NewColumnRepository(db)
	env.taskRepo = repository.NewTaskRepository(db)
	env.labelRepo = repository.NewLabelRepository(db)
	env.checklistRepo = repository.NewChecklistItemRepository(db)
	env.commentRepo = repository.NewCommentRepository(db)

	env.guard = NewGuard(env.workspaceRepo, env.boardRepo, env.columnRepo, env.taskRepo, env.labelRepo, env.commentRepo, env.checklistRepo, env.userRepo)
	env.authService = NewAuthService(env.userRepo, env.workspaceRepo)
	env.taskService = NewTaskService(env.guard, env.taskRepo, env.columnRepo, env.labelRepo, env.checklistRepo, env.commentRepo, env.workspaceRepo)
	env.columnService = NewColumnService(env.guard, env.columnRepo, env.taskRepo, env.taskService)
	env.boardService = NewBoardService(env.guard, env.boardRepo, env.columnRepo, env.taskRepo, env.labelRepo, env.checklistRepo, env.commentRepo, env.userRepo, env.columnService)
	env.workspaceService = NewWorkspaceService(env.guard, env.workspaceRepo, env.boardRepo, env.userRepo, env.boardService)
	env.labelService = NewLabelService(env.guard, env.labelRepo)
	env.commentService = NewCommentService(env.guard, env.commentRepo)
	env.checklistService = NewChecklistService(env.guard, env.checklistRepo)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return env
}

func (env *serviceTestEnv) createUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		Name:         email,
		Color:        "#90a4ae",
		PasswordHash: "hashed",
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env *serviceTestEnv) createWorkspace(t *testing.T, name string, owner *models.User) *models.Workspace {
	t.Helper()
	workspace := &models.Workspace{
		Name:       name,
		InviteCode: name + "-CODE",
	}
	require.NoError(t, env.db.Create(workspace).Error)
	env.addMember(t, workspace, owner, models.RoleOwner)
	return workspace
}

func (env *serviceTestEnv) addMember(t *testing.T, workspace *models.Workspace, user *models.User, role models.WorkspaceRole) {
	t.Helper()
	member := &models.WorkspaceMember{
		WorkspaceID: workspace.ID,
		UserID:      user.ID,
		Role:        role,
		JoinedAt:    time.Now(),
	}
	require.NoError(t, env.db.Create(member).Error)
}

func (env *serviceTestEnv) createBoard(t *testing.T, workspace *models.Workspace, name string) *models.Board {
	t.Helper()
	board := &models.Board{WorkspaceID: workspace.ID, Name: name}
	require.NoError(t, env.db.Create(board).Error)
	return board
}

func (env *serviceTestEnv) createColumn(t *testing.T, board *models.Board, name string, position float64) *models.Column {
	t.Helper()
	column := &models.Column{
		BoardID:     board.ID,
		WorkspaceID: board.WorkspaceID,
		Name:        name,
		Position:    position,
	}
	require.NoError(t, env.db.Create(column).Error)
	return column
}

func (env *serviceTestEnv) createTask(t *testing.T, column *models.Column, name string, position float64, creator *models.User) *models.Task {
	t.Helper()
	task := &models.Task{
		ColumnID:    column.ID,
		WorkspaceID: column.WorkspaceID,
		Name:        name,
		Position:    position,
		CreatedBy:   creator.ID,
	}
	require.NoError(t, env.db.Create(task).Error)
	return task
}

func (env *serviceTestEnv) createLabel(t *testing.T, workspace *models.Workspace, name string) *models.Label {
	t.Helper()
	label := &models.Label{WorkspaceID: workspace.ID, Name: name, Color: "#ef5350"}
	require.NoError(t, env.db.Create(label).Error)
	return label
}

func (env *serviceTestEnv) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, env.db.Model(model).Count(&n).Error)
	return n
}
