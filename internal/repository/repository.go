package repository

import (
	"github.com/boardhub/boardhub/internal/models"
	"github.com/boardhub/boardhub/internal/utils"
	"github.com/google/uuid"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// CreateWithPersonalWorkspace creates a user, their personal workspace,
	// and the owner membership within a single transaction.
	CreateWithPersonalWorkspace(user *models.User, workspace *models.Workspace, member *models.WorkspaceMember) error

	// FindByID finds a user by ID
	FindByID(id uuid.UUID) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List retrieves users with pagination
	List(params utils.PaginationParams) ([]models.User, int64, error)
}

// WorkspaceRepository defines the interface for workspace and membership data access
type WorkspaceRepository interface {
	// Create creates a new workspace
	Create(workspace *models.Workspace) error

	// FindByID finds a workspace by ID
	FindByID(id uuid.UUID) (*models.Workspace, error)

	// FindByInviteCode finds a workspace by invite code
	FindByInviteCode(code string) (*models.Workspace, error)

	// Update updates a workspace
	Update(workspace *models.Workspace) error

	// DeleteScoped deletes the workspace row together with its labels,
	// remaining label links, and memberships, in one transaction. Boards
	// must already be gone; the service layer cascades them first.
	DeleteScoped(id uuid.UUID) error

	// AddMember adds a membership row
	AddMember(member *models.WorkspaceMember) error

	// RemoveMember removes a membership row
	RemoveMember(workspaceID, userID uuid.UUID) error

	// FindMember finds a specific membership
	FindMember(workspaceID, userID uuid.UUID) (*models.WorkspaceMember, error)

	// UpdateMemberRole changes a member's role
	UpdateMemberRole(workspaceID, userID uuid.UUID, role models.WorkspaceRole) error

	// CountOwners counts owner memberships of a workspace
	CountOwners(workspaceID uuid.UUID) (int64, error)

	// ListMembers lists all members of a workspace with users preloaded
	ListMembers(workspaceID uuid.UUID) ([]models.WorkspaceMember, error)

	// ListMembersByUserID lists all workspaces a user is a member of
	ListMembersByUserID(userID uuid.UUID) ([]models.WorkspaceMember, error)
}

// BoardRepository defines the interface for board data access
type BoardRepository interface {
	Create(board *models.Board) error
	FindByID(id uuid.UUID) (*models.Board, error)
	Update(board *models.Board) error
	Delete(id uuid.UUID) error
	ListByWorkspace(workspaceID uuid.UUID) ([]models.Board, error)
}

// ColumnRepository defines the interface for column data access
type ColumnRepository interface {
	Create(column *models.Column) error
	FindByID(id uuid.UUID) (*models.Column, error)
	Update(column *models.Column) error
	Delete(id uuid.UUID) error

	// ListByBoard returns the board's columns ascending by position
	ListByBoard(boardID uuid.UUID) ([]models.Column, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uuid.UUID, preload ...string) (*models.Task, error)

	Update(task *models.Task) error

	// ListByColumn returns the column's tasks ascending by position
	ListByColumn(columnID uuid.UUID) ([]models.Task, error)

	// DeleteWithRelatedData deletes the task's comments, checklist items
	// and label links, then the task row, in one transaction.
	DeleteWithRelatedData(id uuid.UUID) error
}

// LabelRepository defines the interface for label data access
type LabelRepository interface {
	Create(label *models.Label) error
	FindByID(id uuid.UUID) (*models.Label, error)
	Update(label *models.Label) error

	// DeleteWithLinks deletes the label and all its task links in one
	// transaction.
	DeleteWithLinks(id uuid.UUID) error

	ListByWorkspace(workspaceID uuid.UUID) ([]models.Label, error)
	ListByTask(taskID uuid.UUID) ([]models.Label, error)

	FindLink(taskID, labelID uuid.UUID) (*models.TaskLabel, error)
	CreateLink(link *models.TaskLabel) error
	DeleteLink(taskID, labelID uuid.UUID) error
	ListLinksByTask(taskID uuid.UUID) ([]models.TaskLabel, error)
}

// ChecklistItemRepository defines the interface for checklist item data access
type ChecklistItemRepository interface {
	Create(item *models.ChecklistItem) error
	FindByID(id uuid.UUID) (*models.ChecklistItem, error)
	Update(item *models.ChecklistItem) error
	Delete(id uuid.UUID) error

	// ListByTask returns the task's checklist items ascending by position
	ListByTask(taskID uuid.UUID) ([]models.ChecklistItem, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(comment *models.Comment) error
	FindByID(id uuid.UUID) (*models.Comment, error)
	Update(comment *models.Comment) error
	Delete(id uuid.UUID) error

	// ListByTask returns the task's comments with authors preloaded
	ListByTask(taskID uuid.UUID) ([]models.Comment, error)

	// HasComments reports whether the task has at least one comment
	HasComments(taskID uuid.UUID) (bool, error)
}
