package services

import (
	"testing"

	"github.com/boardhub/boardhub/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestGuard_RequireMember(t *testing.T) {
	env := setupServiceTest(t)

	owner := env.createUser(t, "owner@example.com")
	member := env.createUser(t, "member@example.com")
	outsider := env.createUser(t, "outsider@example.com")
	workspace := env.createWorkspace(t, "Acme", owner)
	env.addMember(t, workspace, member, models.RoleMember)

	user, membership, err := env.guard.RequireMember(member.ID, workspace.ID)
	require.NoError(t, err)
	require.Equal(t, member.ID, user.ID)
	require.Equal(t, models.RoleMember, membership.Role)

	_, _, err = env.guard.RequireMember(outsider.ID, workspace.ID)
	require.ErrorIs(t, err, ErrUnauthorized)

	_, _, err = env.guard.RequireMember(uuid.New(), workspace.ID)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestGuard_RequireOwner(t *testing.T) {
	env := setupServiceTest(t)

	owner := env.createUser(t, "owner@example.com")
	member := env.createUser(t, "member@example.com")
	workspace := env.createWorkspace(t, "Acme", owner)
	env.addMember(t, workspace, member, models.RoleMember)

	_, _, err := env.guard.RequireOwner(owner.ID, workspace.ID)
	require.NoError(t, err)

	// A plain member is not enough for owner-gated operations.
	_, _, err = env.guard.RequireOwner(member.ID, workspace.ID)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestGuard_WorkspaceResolution(t *testing.T) {
	env := setupServiceTest(t)

	owner := env.createUser(t, "owner@example.com")
	workspace := env.createWorkspace(t, "Acme", owner)
	board := env.createBoard(t, workspace, "Roadmap")
	column := env.createColumn(t, board, "To Do", 1)
	task := env.createTask(t, column, "Ship it", 1, owner)
	label := env.createLabel(t, workspace, "Bug")

	item := &models.ChecklistItem{TaskID: task.ID, WorkspaceID: workspace.ID, Name: "Step", Position: 1}
	require.NoError(t, env.db.Create(item).Error)
	comment := &models.Comment{TaskID: task.ID, Text: "hi", AuthorID: owner.ID}
	require.NoError(t, env.db.Create(comment).Error)

	cases := []struct {
		name    string
		resolve func() (uuid.UUID, error)
	}{
		{"board", func() (uuid.UUID, error) { return env.guard.WorkspaceFromBoard(board.ID) }},
		{"column", func() (uuid.UUID, error) { return env.guard.WorkspaceFromColumn(column.ID) }},
		{"task", func() (uuid.UUID, error) { return env.guard.WorkspaceFromTask(task.ID) }},
		{"label", func() (uuid.UUID, error) { return env.guard.WorkspaceFromLabel(label.ID) }},
		{"checklist item", func() (uuid.UUID, error) { return env.guard.WorkspaceFromChecklistItem(item.ID) }},
		{"comment", func() (uuid.UUID, error) { return env.guard.WorkspaceFromComment(comment.ID) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.resolve()
			require.NoError(t, err)
			require.Equal(t, workspace.ID, got)
		})
	}
}

func TestGuard_WorkspaceResolutionNotFound(t *testing.T) {
	env := setupServiceTest(t)

	_, err := env.guard.WorkspaceFromBoard(uuid.New())
	require.ErrorIs(t, err, ErrBoardNotFound)

	_, err = env.guard.WorkspaceFromTask(uuid.New())
	require.ErrorIs(t, err, ErrTaskNotFound)

	_, err = env.guard.WorkspaceFromComment(uuid.New())
	require.ErrorIs(t, err, ErrCommentNotFound)
}
