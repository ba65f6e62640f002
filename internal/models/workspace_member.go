package models

import (
	"time"

	"github.com/google/uuid"
)

type WorkspaceRole string

const (
	RoleOwner  WorkspaceRole = "owner"
	RoleMember WorkspaceRole = "member"
)

// WorkspaceMember links a user to a workspace with a per-workspace role.
// Every workspace must keep at least one owner membership.
type WorkspaceMember struct {
	WorkspaceID uuid.UUID     `gorm:"type:uuid;primaryKey" json:"workspace_id"`
	UserID      uuid.UUID     `gorm:"type:uuid;primaryKey" json:"user_id"`
	Role        WorkspaceRole `gorm:"type:varchar(20);not null" json:"role"`
	JoinedAt    time.Time     `json:"joined_at"`

	// Relations
	Workspace Workspace `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
