package services

import (
	"errors"
	"fmt"

	"github.com/boardhub/boardhub/internal/models"
	"github.com/boardhub/boardhub/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUnauthorized          = errors.New("unauthorized")
	ErrWorkspaceNotFound     = errors.New("workspace not found")
	ErrBoardNotFound         = errors.New("board not found")
	ErrColumnNotFound        = errors.New("column not found")
	ErrTaskNotFound          = errors.New("task not found")
	ErrLabelNotFound         = errors.New("label not found")
	ErrCommentNotFound       = errors.New("comment not found")
	ErrChecklistItemNotFound = errors.New("checklist item not found")
)

// Guard answers whether a caller may act on a workspace, resolving the
// workspace from any descendant reference. Mutations receive child ids
// (a task id, a column id); the permission check is always
// workspace-scoped, so the guard walks the ownership chain upward rather
// than trusting a workspace id supplied by the caller. Pure reads, never
// mutates state.
type Guard struct {
	workspaceRepo repository.WorkspaceRepository
	boardRepo     repository.BoardRepository
	columnRepo    repository.ColumnRepository
	taskRepo      repository.TaskRepository
	labelRepo     repository.LabelRepository
	commentRepo   repository.CommentRepository
	checklistRepo repository.ChecklistItemRepository
	userRepo      repository.UserRepository
}

// NewGuard creates a new Guard.
func NewGuard(
	workspaceRepo repository.WorkspaceRepository,
	boardRepo repository.BoardRepository,
	columnRepo repository.ColumnRepository,
	taskRepo repository.TaskRepository,
	labelRepo repository.LabelRepository,
	commentRepo repository.CommentRepository,
	checklistRepo repository.ChecklistItemRepository,
	userRepo repository.UserRepository,
) *Guard {
	return &Guard{
		workspaceRepo: workspaceRepo,
		boardRepo:     boardRepo,
		columnRepo:    columnRepo,
		taskRepo:      taskRepo,
		labelRepo:     labelRepo,
		commentRepo:   commentRepo,
		checklistRepo: checklistRepo,
		userRepo:      userRepo,
	}
}

// RequireMember fails with ErrUnauthorized unless a membership exists for
// (userID, workspaceID). Returns the caller's user record for attribution
// (created_by, comment author) and the membership itself.
func (g *Guard) RequireMember(userID, workspaceID uuid.UUID) (*models.User, *models.WorkspaceMember, error) {
	user, err := g.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUnauthorized
		}
		return nil, nil, fmt.Errorf("failed to resolve caller: %w", err)
	}

	member, err := g.workspaceRepo.FindMember(workspaceID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUnauthorized
		}
		return nil, nil, fmt.Errorf("failed to check membership: %w", err)
	}

	return user, member, nil
}

// RequireOwner fails with ErrUnauthorized unless the caller's membership
// role is owner.
func (g *Guard) RequireOwner(userID, workspaceID uuid.UUID) (*models.User, *models.WorkspaceMember, error) {
	user, member, err := g.RequireMember(userID, workspaceID)
	if err != nil {
		return nil, nil, err
	}
	if member.Role != models.RoleOwner {
		return nil, nil, ErrUnauthorized
	}
	return user, member, nil
}

// WorkspaceFromBoard resolves the workspace owning a board.
func (g *Guard) WorkspaceFromBoard(boardID uuid.UUID) (uuid.UUID, error) {
	board, err := g.boardRepo.FindByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrBoardNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to find board: %w", err)
	}
	return board.WorkspaceID, nil
}

// WorkspaceFromColumn resolves the workspace owning a column.
func (g *Guard) WorkspaceFromColumn(columnID uuid.UUID) (uuid.UUID, error) {
	column, err := g.columnRepo.FindByID(columnID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrColumnNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to find column: %w", err)
	}
	return column.WorkspaceID, nil
}

// WorkspaceFromTask resolves the workspace owning a task.
func (g *Guard) WorkspaceFromTask(taskID uuid.UUID) (uuid.UUID, error) {
	task, err := g.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrTaskNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task.WorkspaceID, nil
}

// WorkspaceFromLabel resolves the workspace owning a label.
func (g *Guard) WorkspaceFromLabel(labelID uuid.UUID) (uuid.UUID, error) {
	label, err := g.labelRepo.FindByID(labelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrLabelNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to find label: %w", err)
	}
	return label.WorkspaceID, nil
}

// WorkspaceFromChecklistItem resolves the workspace owning a checklist item.
func (g *Guard) WorkspaceFromChecklistItem(itemID uuid.UUID) (uuid.UUID, error) {
	item, err := g.checklistRepo.FindByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrChecklistItemNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to find checklist item: %w", err)
	}
	return item.WorkspaceID, nil
}

// WorkspaceFromComment resolves the workspace owning a comment, walking
// one hop to the task and delegating upward.
func (g *Guard) WorkspaceFromComment(commentID uuid.UUID) (uuid.UUID, error) {
	comment, err := g.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrCommentNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to find comment: %w", err)
	}
	return g.WorkspaceFromTask(comment.TaskID)
}
