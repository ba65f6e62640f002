package dto

import (
	"time"

	"github.com/boardhub/boardhub/internal/models"
	"github.com/google/uuid"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
}

// WorkspaceDTO represents a workspace in API responses
type WorkspaceDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	InviteCode  string    `json:"invite_code,omitempty"`
}

// WorkspaceMemberDTO represents a member in a workspace
type WorkspaceMemberDTO struct {
	User     UserDTO              `json:"user"`
	Role     models.WorkspaceRole `json:"role"`
	JoinedAt time.Time            `json:"joined_at"`
}

// BoardSummaryDTO represents a board without its column tree
type BoardSummaryDTO struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
}

// WorkspaceOverviewDTO is one entry of the caller's workspace list:
// the workspace, its boards, and its members.
type WorkspaceOverviewDTO struct {
	Workspace WorkspaceDTO         `json:"workspace"`
	Role      models.WorkspaceRole `json:"role"`
	Boards    []BoardSummaryDTO    `json:"boards"`
	Members   []WorkspaceMemberDTO `json:"members"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Color: user.Color,
	}
}

// ToWorkspaceDTO converts a Workspace model to WorkspaceDTO
func ToWorkspaceDTO(workspace models.Workspace, includeInviteCode bool) WorkspaceDTO {
	dto := WorkspaceDTO{
		ID:          workspace.ID,
		Name:        workspace.Name,
		Description: workspace.Description,
		Color:       workspace.Color,
	}
	if includeInviteCode {
		dto.InviteCode = workspace.InviteCode
	}
	return dto
}

// ToWorkspaceMemberDTO converts a membership to DTO
func ToWorkspaceMemberDTO(member models.WorkspaceMember) WorkspaceMemberDTO {
	return WorkspaceMemberDTO{
		User:     ToUserDTO(member.User),
		Role:     member.Role,
		JoinedAt: member.JoinedAt,
	}
}

// ToBoardSummaryDTO converts a Board model to BoardSummaryDTO
func ToBoardSummaryDTO(board models.Board) BoardSummaryDTO {
	return BoardSummaryDTO{
		ID:          board.ID,
		WorkspaceID: board.WorkspaceID,
		Name:        board.Name,
		Description: board.Description,
		Color:       board.Color,
	}
}
