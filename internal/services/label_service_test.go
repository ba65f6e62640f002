package services

import (
	"testing"

	"github.com/boardhub/boardhub/internal/models"
	"github.com/stretchr/testify/require"
)

func TestLabelService_OwnerGating(t *testing.T) {
	env := setupServiceTest(t)
	owner := env.createUser(t, "owner@example.com")
	member := env.createUser(t, "member@example.com")
	workspace := env.createWorkspace(t, "Acme", owner)
	env.addMember(t, workspace, member, models.RoleMember)

	// Label definitions are owner-managed.
	_, err := env.labelService.CreateLabel(member.ID, workspace.ID, "Bug", "#ef5350")
	require.ErrorIs(t, err, ErrUnauthorized)

	label, err := env.labelService.CreateLabel(owner.ID, workspace.ID, "Bug", "#ef5350")
	require.NoError(t, err)

	name := "Defect"
	_, err = env.labelService.UpdateLabel(member.ID, label.ID, UpdateLabelInput{Name: &name})
	require.ErrorIs(t, err, ErrUnauthorized)

	updated, err := env.labelService.UpdateLabel(owner.ID, label.ID, UpdateLabelInput{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Defect", updated.Name)

	// Listing is open to every member.
	labels, err := env.labelService.ListLabels(member.ID, workspace.ID)
	require.NoError(t, err)
	require.Len(t, labels, 1)
}

func TestLabelService_ToggleAlternates(t *testing.T) {
	env := setupServiceTest(t)
	owner := env.createUser(t, "owner@example.com")
	member := env.createUser(t, "member@example.com")
	workspace := env.createWorkspace(t, "Acme", owner)
	env.addMember(t, workspace, member, models.RoleMember)
	board := env.createBoard(t, workspace, "Roadmap")
	column := env.createColumn(t, board, "To Do", 1)
	task := env.createTask(t, column, "Ship it", 1, owner)
	label := env.createLabel(t, workspace, "Bug")

	attached, err := env.labelService.ToggleTaskLabel(member.ID, task.ID, label.ID)
	require.NoError(t, err)
	require.True(t, attached)
	require.EqualValues(t, 1, env.count(t, &models.TaskLabel{}))

	attached, err = env.labelService.ToggleTaskLabel(member.ID, task.ID, label.ID)
	require.NoError(t, err)
	require.False(t, attached)
	require.Zero(t, env.count(t, &models.TaskLabel{}))

	attached, err = env.labelService.ToggleTaskLabel(member.ID, task.ID, label.ID)
	require.NoError(t, err)
	require.True(t, attached)
}

func TestLabelService_ToggleRejectsForeignLabel(t *testing.T) {
	env := setupServiceTest(t)
	owner := env.createUser(t, "owner@example.com")
	workspace := env.createWorkspace(t, "Acme", owner)
	board := env.createBoard(t, workspace, "Roadmap")
	column := env.createColumn(t, board, "To Do", 1)
	task := env.createTask(t, column, "Ship it", 1, owner)

	other := env.createUser(t, "other@example.com")
	otherWorkspace := env.createWorkspace(t, "Rival", other)
	foreignLabel := env.createLabel(t, otherWorkspace, "Theirs")

	_, err := env.labelService.ToggleTaskLabel(owner.ID, task.ID, foreignLabel.ID)
	require.ErrorIs(t, err, ErrLabelNotFound)
}

func TestLabelService_DeleteDetachesEverywhere(t *testing.T) {
	env := setupServiceTest(t)
	owner := env.createUser(t, "owner@example.com")
	workspace := env.createWorkspace(t, "Acme", owner)
	board := env.createBoard(t, workspace, "Roadmap")
	column := env.createColumn(t, board, "To Do", 1)
	a := env.createTask(t, column, "A", 1, owner)
	b := env.createTask(t, column, "B", 2, owner)
	label := env.createLabel(t, workspace, "Bug")

	require.NoError(t, env.db.Create(&models.TaskLabel{TaskID: a.ID, LabelID: label.ID}).Error)
	require.NoError(t, env.db.Create(&models.TaskLabel{TaskID: b.ID, LabelID: label.ID}).Error)

	require.NoError(t, env.labelService.DeleteLabel(owner.ID, label.ID))

	require.Zero(t, env.count(t, &models.Label{}))
	require.Zero(t, env.count(t, &models.TaskLabel{}))
	// The tasks themselves are untouched.
	require.EqualValues(t, 2, env.count(t, &models.Task{}))
}
