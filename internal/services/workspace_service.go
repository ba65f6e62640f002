package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/boardhub/boardhub/internal/constants"
	"github.com/boardhub/boardhub/internal/dto"
	"github.com/boardhub/boardhub/internal/models"
	"github.com/boardhub/boardhub/internal/repository"
	"github.com/boardhub/boardhub/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidWorkspaceName       = errors.New("workspace name must be between 1 and 50 characters")
	ErrInviteCodeGenerationFailed = errors.New("failed to generate invite code")
	ErrInvalidInviteCode          = errors.New("invalid invite code")
	ErrAlreadyWorkspaceMember     = errors.New("user is already a member of this workspace")
	ErrWorkspaceMemberNotFound    = errors.New("workspace member not found")
	ErrLastOwner                  = errors.New("workspace must keep at least one owner")
	ErrInvalidRole                = errors.New("invalid workspace role")
	ErrDescriptionTooLong         = errors.New("description exceeds maximum length")
)

// WorkspaceService provides business logic for workspaces and
// memberships.
type WorkspaceService struct {
	guard         *Guard
	workspaceRepo repository.WorkspaceRepository
	boardRepo     repository.BoardRepository
	userRepo      repository.UserRepository
	boardService  *BoardService
}

// NewWorkspaceService creates a new WorkspaceService.
func NewWorkspaceService(
	guard *Guard,
	workspaceRepo repository.WorkspaceRepository,
	boardRepo repository.BoardRepository,
	userRepo repository.UserRepository,
	boardService *BoardService,
) *WorkspaceService {
	return &WorkspaceService{
		guard:         guard,
		workspaceRepo: workspaceRepo,
		boardRepo:     boardRepo,
		userRepo:      userRepo,
		boardService:  boardService,
	}
}

// CreateWorkspaceInput represents parameters to create a workspace.
type CreateWorkspaceInput struct {
	Name        string
	Description string
	Color       string
	CreatorID   uuid.UUID
}

// CreateWorkspace creates a workspace and makes the caller its owner.
func (s *WorkspaceService) CreateWorkspace(input CreateWorkspaceInput) (*models.Workspace, error) {
	if !nameValid(input.Name) {
		return nil, ErrInvalidWorkspaceName
	}
	if !descriptionValid(input.Description) {
		return nil, ErrDescriptionTooLong
	}

	inviteCode, err := utils.GenerateInviteCode()
	if err != nil {
		return nil, ErrInviteCodeGenerationFailed
	}

	workspace := &models.Workspace{
		Name:        input.Name,
		Description: input.Description,
		Color:       input.Color,
		InviteCode:  inviteCode,
	}
	if err := s.workspaceRepo.Create(workspace); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	member := &models.WorkspaceMember{
		WorkspaceID: workspace.ID,
		UserID:      input.CreatorID,
		Role:        models.RoleOwner,
		JoinedAt:    time.Now(),
	}
	if err := s.workspaceRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add owner to workspace: %w", err)
	}

	return workspace, nil
}

// GetWorkspace returns a workspace for a member.
func (s *WorkspaceService) GetWorkspace(actorID, workspaceID uuid.UUID) (*models.Workspace, *models.WorkspaceMember, error) {
	_, member, err := s.guard.RequireMember(actorID, workspaceID)
	if err != nil {
		return nil, nil, err
	}

	workspace, err := s.workspaceRepo.FindByID(workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrWorkspaceNotFound
		}
		return nil, nil, fmt.Errorf("failed to find workspace: %w", err)
	}

	return workspace, member, nil
}

// ListWorkspacesForUser returns every workspace the caller belongs to,
// each with its boards and members.
func (s *WorkspaceService) ListWorkspacesForUser(userID uuid.UUID) ([]dto.WorkspaceOverviewDTO, error) {
	memberships, err := s.workspaceRepo.ListMembersByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}

	overviews := make([]dto.WorkspaceOverviewDTO, 0, len(memberships))
	for _, membership := range memberships {
		boards, err := s.boardRepo.ListByWorkspace(membership.WorkspaceID)
		if err != nil {
			return nil, fmt.Errorf("failed to list boards: %w", err)
		}

		members, err := s.workspaceRepo.ListMembers(membership.WorkspaceID)
		if err != nil {
			return nil, fmt.Errorf("failed to list members: %w", err)
		}

		boardDTOs := make([]dto.BoardSummaryDTO, len(boards))
		for i, board := range boards {
			boardDTOs[i] = dto.ToBoardSummaryDTO(board)
		}
		memberDTOs := make([]dto.WorkspaceMemberDTO, len(members))
		for i, member := range members {
			memberDTOs[i] = dto.ToWorkspaceMemberDTO(member)
		}

		overviews = append(overviews, dto.WorkspaceOverviewDTO{
			Workspace: dto.ToWorkspaceDTO(membership.Workspace, membership.Role == models.RoleOwner),
			Role:      membership.Role,
			Boards:    boardDTOs,
			Members:   memberDTOs,
		})
	}

	return overviews, nil
}

// UpdateWorkspaceInput represents a partial workspace update.
type UpdateWorkspaceInput struct {
	Name        *string
	Description *string
	Color       *string
}

// UpdateWorkspace patches the supplied fields. Owner only.
func (s *WorkspaceService) UpdateWorkspace(actorID, workspaceID uuid.UUID, input UpdateWorkspaceInput) (*models.Workspace, error) {
	if _, _, err := s.guard.RequireOwner(actorID, workspaceID); err != nil {
		return nil, err
	}

	workspace, err := s.workspaceRepo.FindByID(workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("failed to find workspace: %w", err)
	}

	if input.Name != nil {
		if !nameValid(*input.Name) {
			return nil, ErrInvalidWorkspaceName
		}
		workspace.Name = *input.Name
	}
	if input.Description != nil {
		if !descriptionValid(*input.Description) {
			return nil, ErrDescriptionTooLong
		}
		workspace.Description = *input.Description
	}
	if input.Color != nil {
		workspace.Color = *input.Color
	}

	if err := s.workspaceRepo.Update(workspace); err != nil {
		return nil, fmt.Errorf("failed to update workspace: %w", err)
	}

	return workspace, nil
}

// DeleteWorkspace removes a workspace and everything in it: each board
// cascades through its columns and tasks, then labels, memberships and
// the workspace row go. Owner only; each board deletion re-checks
// authorization at its own scope.
func (s *WorkspaceService) DeleteWorkspace(actorID, workspaceID uuid.UUID) error {
	if _, _, err := s.guard.RequireOwner(actorID, workspaceID); err != nil {
		return err
	}

	if _, err := s.workspaceRepo.FindByID(workspaceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkspaceNotFound
		}
		return fmt.Errorf("failed to find workspace: %w", err)
	}

	boards, err := s.boardRepo.ListByWorkspace(workspaceID)
	if err != nil {
		return fmt.Errorf("failed to list boards: %w", err)
	}
	for _, board := range boards {
		if err := s.boardService.DeleteBoard(actorID, board.ID); err != nil {
			return err
		}
	}

	if err := s.workspaceRepo.DeleteScoped(workspaceID); err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}

	return nil
}

// InviteUser adds a user to the workspace with the given role. Owner
// only; inviting an existing member is a conflict.
func (s *WorkspaceService) InviteUser(actorID, workspaceID, invitedUserID uuid.UUID, role models.WorkspaceRole) error {
	if _, _, err := s.guard.RequireOwner(actorID, workspaceID); err != nil {
		return err
	}

	if role != models.RoleOwner && role != models.RoleMember {
		return ErrInvalidRole
	}

	if _, err := s.userRepo.FindByID(invitedUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find invited user: %w", err)
	}

	if _, err := s.workspaceRepo.FindMember(workspaceID, invitedUserID); err == nil {
		return ErrAlreadyWorkspaceMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to verify membership: %w", err)
	}

	member := &models.WorkspaceMember{
		WorkspaceID: workspaceID,
		UserID:      invitedUserID,
		Role:        role,
		JoinedAt:    time.Now(),
	}
	if err := s.workspaceRepo.AddMember(member); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	return nil
}

// JoinByInviteCode adds the caller to the workspace behind the code with
// the member role.
func (s *WorkspaceService) JoinByInviteCode(userID uuid.UUID, inviteCode string) (*models.Workspace, error) {
	workspace, err := s.workspaceRepo.FindByInviteCode(inviteCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidInviteCode
		}
		return nil, fmt.Errorf("failed to find workspace by invite code: %w", err)
	}

	if _, err := s.workspaceRepo.FindMember(workspace.ID, userID); err == nil {
		return nil, ErrAlreadyWorkspaceMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	member := &models.WorkspaceMember{
		WorkspaceID: workspace.ID,
		UserID:      userID,
		Role:        models.RoleMember,
		JoinedAt:    time.Now(),
	}
	if err := s.workspaceRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return workspace, nil
}

// RemoveMember removes a member from the workspace. Owner only. Removing
// the sole remaining owner is rejected.
func (s *WorkspaceService) RemoveMember(actorID, workspaceID, targetID uuid.UUID) error {
	if _, _, err := s.guard.RequireOwner(actorID, workspaceID); err != nil {
		return err
	}

	target, err := s.workspaceRepo.FindMember(workspaceID, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkspaceMemberNotFound
		}
		return fmt.Errorf("failed to find workspace member: %w", err)
	}

	if target.Role == models.RoleOwner {
		owners, err := s.workspaceRepo.CountOwners(workspaceID)
		if err != nil {
			return fmt.Errorf("failed to count owners: %w", err)
		}
		if owners <= 1 {
			return ErrLastOwner
		}
	}

	if err := s.workspaceRepo.RemoveMember(workspaceID, targetID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}

// UpdateMemberRole changes a member's role. Owner only. Demoting the
// sole remaining owner is rejected.
func (s *WorkspaceService) UpdateMemberRole(actorID, workspaceID, targetID uuid.UUID, role models.WorkspaceRole) error {
	if _, _, err := s.guard.RequireOwner(actorID, workspaceID); err != nil {
		return err
	}

	if role != models.RoleOwner && role != models.RoleMember {
		return ErrInvalidRole
	}

	target, err := s.workspaceRepo.FindMember(workspaceID, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkspaceMemberNotFound
		}
		return fmt.Errorf("failed to find workspace member: %w", err)
	}

	if target.Role == models.RoleOwner && role != models.RoleOwner {
		owners, err := s.workspaceRepo.CountOwners(workspaceID)
		if err != nil {
			return fmt.Errorf("failed to count owners: %w", err)
		}
		if owners <= 1 {
			return ErrLastOwner
		}
	}

	if err := s.workspaceRepo.UpdateMemberRole(workspaceID, targetID, role); err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}

	return nil
}

// nameValid enforces the shared 1..50 character name limit. Client-side
// validation catches this first; the service check is a backstop.
// Limits count runes so multibyte names are not penalized.
func nameValid(name string) bool {
	return strings.TrimSpace(name) != "" && utf8.RuneCountInString(name) <= constants.MaxNameLength
}

// descriptionValid enforces the shared 100 character description limit.
func descriptionValid(description string) bool {
	return utf8.RuneCountInString(description) <= constants.MaxDescriptionLength
}
