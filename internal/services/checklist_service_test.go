package services

import (
	"testing"

	"github.com/boardhub/boardhub/internal/models"
	"github.com/stretchr/testify/require"
)

func TestChecklistService_MemberGatingViaTaskChain(t *testing.T) {
	env := setupServiceTest(t)
	owner := env.createUser(t, "owner@example.com")
	member := env.createUser(t, "member@example.com")
	outsider := env.createUser(t, "outsider@example.com")
	workspace := env.createWorkspace(t, "Acme", owner)
	env.addMember(t, workspace, member, models.RoleMember)
	board := env.createBoard(t, workspace, "Roadmap")
	column := env.createColumn(t, board, "To Do", 1)
	task := env.createTask(t, column, "Ship it", 1, owner)

	item, err := env.checklistService.CreateChecklistItem(CreateChecklistItemInput{
		TaskID:   task.ID,
		Name:     "Write docs",
		Position: 1,
		ActorID:  member.ID,
	})
	require.NoError(t, err)
	require.Equal(t, workspace.ID, item.WorkspaceID)

	_, err = env.checklistService.CreateChecklistItem(CreateChecklistItemInput{
		TaskID:  task.ID,
		Name:    "Nope",
		ActorID: outsider.ID,
	})
	require.ErrorIs(t, err, ErrUnauthorized)

	done := true
	updated, err := env.checklistService.UpdateChecklistItem(member.ID, item.ID, UpdateChecklistItemInput{IsComplete: &done})
	require.NoError(t, err)
	require.True(t, updated.IsComplete)

	_, err = env.checklistService.UpdateChecklistItem(outsider.ID, item.ID, UpdateChecklistItemInput{IsComplete: &done})
	require.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, env.checklistService.DeleteChecklistItem(member.ID, item.ID))
	require.Zero(t, env.count(t, &models.ChecklistItem{}))
}

func TestChecklistService_ListOrdered(t *testing.T) {
	env := setupServiceTest(t)
	owner := env.createUser(t, "owner@example.com")
	workspace := env.createWorkspace(t, "Acme", owner)
	board := env.createBoard(t, workspace, "Roadmap")
	column := env.createColumn(t, board, "To Do", 1)
	task := env.createTask(t, column, "Ship it", 1, owner)

	require.NoError(t, env.db.Create(&models.ChecklistItem{TaskID: task.ID, WorkspaceID: workspace.ID, Name: "Second", Position: 2}).Error)
	require.NoError(t, env.db.Create(&models.ChecklistItem{TaskID: task.ID, WorkspaceID: workspace.ID, Name: "First", Position: 1}).Error)

	items, err := env.checklistService.ListChecklistItems(owner.ID, task.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "First", items[0].Name)
	require.Equal(t, "Second", items[1].Name)
}
