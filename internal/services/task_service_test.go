package services

import (
	"testing"

	"github.com/boardhub/boardhub/internal/models"
	"github.com/stretchr/testify/require"
)

func TestTaskService_CreateTask(t *testing.T) {
	env := setupServiceTest(t)
	owner := env.createUser(t, "owner@example.com")
	outsider := env.createUser(t, "outsider@example.com")
	workspace := env.createWorkspace(t, "Acme", owner)
	board := env.createBoard(t, workspace, "Roadmap")
	column := env.createColumn(t, board, "To Do", 1)

	task, err := env.taskService.CreateTask(CreateTaskInput{
		ColumnID: column.ID,
		Name:     "Ship it",
		Position: 1,
		ActorID:  owner.ID,
	})
	require.NoError(t, err)
	require.Equal(t, owner.ID, task.CreatedBy)
	require.Equal(t, workspace.ID, task.WorkspaceID)

	_, err = env.taskService.CreateTask(CreateTaskInput{
		ColumnID: column.ID,
		Name:     "Nope",
		ActorID:  outsider.ID,
	})
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestTaskService_UpdateTaskPatchSemantics(t *testing.T) {
	env := setupServiceTest(t)
	owner := env.createUser(t, "owner@example.com")
	workspace := env.createWorkspace(t, "Acme", owner)
	board := env.createBoard(t, workspace, "Roadmap")
	column := env.createColumn(t, board, "To Do", 1)
	task := env.createTask(t, column, "Ship it", 1, owner)

	priority := models.PriorityHigh
	estimate := 2.5
	updated, err := env.taskService.UpdateTask(owner.ID, task.ID, UpdateTaskInput{
		Priority: &priority,
		Estimate: &estimate,
	})
	require.NoError(t, err)
	require.Equal(t, models.PriorityHigh, updated.Priority)
	require.Equal(t, 2.5, *updated.Estimate)
	// Untouched fields survive the patch.
	require.Equal(t, "Ship it", updated.Name)
	require.Equal(t, 1.0, updated.Position)

	bad := models.TaskPriority("urgent")
	_, err = env.taskService.UpdateTask(owner.ID, task.ID, UpdateTaskInput{Priority: &bad})
	require.ErrorIs(t, err, ErrInvalidPriority)
}

func TestTaskService_UpdateRejectsForeignColumn(t *testing.T) {
	env := setupServiceTest(t)
	owner := env.createUser(t, "owner@example.com")
	workspace := env.createWorkspace(t, "Acme", owner)
	board := env.createBoard(t, workspace, "Roadmap")
	column := env.createColumn(t, board, "To Do", 1)
	task := env.createTask(t, column, "Ship it", 1, owner)

	other := env.createUser(t, "other@example.com")
	otherWorkspace := env.createWorkspace(t, "Rival", other)
	otherBoard := env.createBoard(t, otherWorkspace, "Secret")
	otherColumn := env.createColumn(t, otherBoard, "Their To Do", 1)

	_, err := env.taskService.UpdateTask(owner.ID, task.ID, UpdateTaskInput{ColumnID: &otherColumn.ID})
	require.ErrorIs(t, err, ErrColumnNotFound)
}

func TestTaskService_MoveTask(t *testing.T) {
	env := setupServiceTest(t)
	owner := env.createUser(t, "owner@example.com")
	workspace := env.createWorkspace(t, "Acme", owner)
	board := env.createBoard(t, workspace, "Roadmap")
	column := env.createColumn(t, board, "To Do", 1)
	a := env.createTask(t, column, "A", 1, owner)
	b := env.createTask(t, column, "B", 2, owner)
	env.createTask(t, column, "C", 3, owner)

	// Move A between B and C: midpoint of 2 and 3.
	moved, err := env.taskService.MoveTask(owner.ID, a.ID, 1, nil)
	require.NoError(t, err)
	require.Equal(t, 2.5, moved.Position)

	// Move B to the tail: last position + 1.
	moved, err = env.taskService.MoveTask(owner.ID, b.ID, 2, nil)
	require.NoError(t, err)
	require.Equal(t, 4.0, moved.Position)
}

func TestTaskService_MoveTaskAcrossColumns(t *testing.T) {
	env := setupServiceTest(t)
	owner := env.createUser(t, "owner@example.com")
	workspace := env.createWorkspace(t, "Acme", owner)
	board := env.createBoard(t, workspace, "Roadmap")
	todo := env.createColumn(t, board, "To Do", 1)
	doing := env.createColumn(t, board, "Doing", 2)
	task := env.createTask(t, todo, "Ship it", 1, owner)
	env.createTask(t, doing, "Busy", 5, owner)

	// Head of the target column: first position - 1.
	moved, err := env.taskService.MoveTask(owner.ID, task.ID, 0, &doing.ID)
	require.NoError(t, err)
	require.Equal(t, doing.ID, moved.ColumnID)
	require.Equal(t, 4.0, moved.Position)
}

func TestTaskService_MoveTaskIntoEmptyColumn(t *testing.T) {
	env := setupServiceTest(t)
	owner := env.createUser(t, "owner@example.com")
	workspace := env.createWorkspace(t, "Acme", owner)
	board := env.createBoard(t, workspace, "Roadmap")
	todo := env.createColumn(t, board, "To Do", 1)
	done := env.createColumn(t, board, "Done", 2)
	task := env.createTask(t, todo, "Ship it", 7, owner)

	moved, err := env.taskService.MoveTask(owner.ID, task.ID, 0, &done.ID)
	require.NoError(t, err)
	require.Equal(t, 1.0, moved.Position)
}

func TestTaskService_DuplicateTask(t *testing.T) {
	env := setupServiceTest(t)
	owner := env.createUser(t, "owner@example.com")
	member := env.createUser(t, "member@example.com")
	workspace := env.createWorkspace(t, "Acme", owner)
	env.addMember(t, workspace, member, models.RoleMember)
	board := env.createBoard(t, workspace, "Roadmap")
	column := env.createColumn(t, board, "To Do", 1)
	task := env.createTask(t, column, "Ship it", 2, owner)
	label := env.createLabel(t, workspace, "Bug")

	require.NoError(t, env.db.Create(&models.TaskLabel{TaskID: task.ID, LabelID: label.ID}).Error)
	require.NoError(t, env.db.Create(&models.ChecklistItem{TaskID: task.ID, WorkspaceID: workspace.ID, Name: "Step", IsComplete: true, Position: 1}).Error)
	require.NoError(t, env.db.Create(&models.Comment{TaskID: task.ID, Text: "original note", AuthorID: owner.ID}).Error)

	clone, err := env.taskService.DuplicateTask(member.ID, task.ID)
	require.NoError(t, err)
	require.Equal(t, "Ship it (Copy)", clone.Name)
	require.Equal(t, 2.01, clone.Position)
	require.Equal(t, task.ColumnID, clone.ColumnID)
	// The duplicating user owns the copy.
	require.Equal(t, member.ID, clone.CreatedBy)

	labels, err := env.labelRepo.ListByTask(clone.ID)
	require.NoError(t, err)
	require.Len(t, labels, 1)

	items, err := env.checklistRepo.ListByTask(clone.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.True(t, items[0].IsComplete)

	comments, err := env.commentRepo.ListByTask(clone.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.Equal(t, owner.ID, comments[0].AuthorID)

	// The source is untouched.
	source, err := env.taskRepo.FindByID(task.ID)
	require.NoError(t, err)
	require.Equal(t, "Ship it", source.Name)
	require.Equal(t, 2.0, source.Position)
	sourceComments, err := env.commentRepo.ListByTask(task.ID)
	require.NoError(t, err)
	require.Len(t, sourceComments, 1)
}

func TestTaskService_DeleteTaskCascades(t *testing.T) {
	env := setupServiceTest(t)
	owner := env.createUser(t, "owner@example.com")
	workspace := env.createWorkspace(t, "Acme", owner)
	board := env.createBoard(t, workspace, "Roadmap")
	column := env.createColumn(t, board, "To Do", 1)
	task := env.createTask(t, column, "Ship it", 1, owner)
	keep := env.createTask(t, column, "Keep me", 2, owner)
	label := env.createLabel(t, workspace, "Bug")

	require.NoError(t, env.db.Create(&models.TaskLabel{TaskID: task.ID, LabelID: label.ID}).Error)
	require.NoError(t, env.db.Create(&models.ChecklistItem{TaskID: task.ID, WorkspaceID: workspace.ID, Name: "Step", Position: 1}).Error)
	require.NoError(t, env.db.Create(&models.Comment{TaskID: task.ID, Text: "hi", AuthorID: owner.ID}).Error)
	require.NoError(t, env.db.Create(&models.Comment{TaskID: keep.ID, Text: "other", AuthorID: owner.ID}).Error)

	require.NoError(t, env.taskService.DeleteTask(owner.ID, task.ID))

	require.EqualValues(t, 1, env.count(t, &models.Task{}))
	require.Zero(t, env.count(t, &models.TaskLabel{}))
	require.Zero(t, env.count(t, &models.ChecklistItem{}))
	// Only the deleted task's comments go.
	require.EqualValues(t, 1, env.count(t, &models.Comment{}))
	// Label definitions survive task deletion.
	require.EqualValues(t, 1, env.count(t, &models.Label{}))
}

func TestTaskService_AssignUser(t *testing.T) {
	env := setupServiceTest(t)
	owner := env.createUser(t, "owner@example.com")
	member := env.createUser(t, "member@example.com")
	outsider := env.createUser(t, "outsider@example.com")
	workspace := env.createWorkspace(t, "Acme", owner)
	env.addMember(t, workspace, member, models.RoleMember)
	board := env.createBoard(t, workspace, "Roadmap")
	column := env.createColumn(t, board, "To Do", 1)
	task := env.createTask(t, column, "Ship it", 1, owner)

	assigned, err := env.taskService.AssignUser(owner.ID, task.ID, member.ID)
	require.NoError(t, err)
	require.Equal(t, member.ID, *assigned.AssignedTo)

	// Assignees must belong to the workspace.
	_, err = env.taskService.AssignUser(owner.ID, task.ID, outsider.ID)
	require.ErrorIs(t, err, ErrInvalidAssignee)
}
