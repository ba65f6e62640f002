package services

import (
	"testing"

	"github.com/boardhub/boardhub/internal/models"
	"github.com/stretchr/testify/require"
)

func TestCommentService_CreateAndList(t *testing.T) {
	env := setupServiceTest(t)
	owner := env.createUser(t, "owner@example.com")
	member := env.createUser(t, "member@example.com")
	outsider := env.createUser(t, "outsider@example.com")
	workspace := env.createWorkspace(t, "Acme", owner)
	env.addMember(t, workspace, member, models.RoleMember)
	board := env.createBoard(t, workspace, "Roadmap")
	column := env.createColumn(t, board, "To Do", 1)
	task := env.createTask(t, column, "Ship it", 1, owner)

	comment, err := env.commentService.CreateComment(member.ID, task.ID, "looks good")
	require.NoError(t, err)
	require.Equal(t, member.ID, comment.AuthorID)
	// New comments carry no edit stamp.
	require.Nil(t, comment.LastModified)

	_, err = env.commentService.CreateComment(outsider.ID, task.ID, "sneaky")
	require.ErrorIs(t, err, ErrUnauthorized)

	comments, err := env.commentService.ListComments(member.ID, task.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.Equal(t, member.Email, comments[0].Author.Email)
}

func TestCommentService_AuthorOnlyEdit(t *testing.T) {
	env := setupServiceTest(t)
	owner := env.createUser(t, "owner@example.com")
	member := env.createUser(t, "member@example.com")
	workspace := env.createWorkspace(t, "Acme", owner)
	env.addMember(t, workspace, member, models.RoleMember)
	board := env.createBoard(t, workspace, "Roadmap")
	column := env.createColumn(t, board, "To Do", 1)
	task := env.createTask(t, column, "Ship it", 1, owner)

	comment, err := env.commentService.CreateComment(member.ID, task.ID, "original")
	require.NoError(t, err)

	// Even the workspace owner cannot edit someone else's comment.
	_, err = env.commentService.UpdateComment(owner.ID, comment.ID, "hijacked")
	require.ErrorIs(t, err, ErrNotCommentAuthor)

	err = env.commentService.DeleteComment(owner.ID, comment.ID)
	require.ErrorIs(t, err, ErrNotCommentAuthor)

	updated, err := env.commentService.UpdateComment(member.ID, comment.ID, "revised")
	require.NoError(t, err)
	require.Equal(t, "revised", updated.Text)
	require.NotNil(t, updated.LastModified)

	require.NoError(t, env.commentService.DeleteComment(member.ID, comment.ID))
	require.Zero(t, env.count(t, &models.Comment{}))
}

func TestCommentService_TextValidation(t *testing.T) {
	env := setupServiceTest(t)
	owner := env.createUser(t, "owner@example.com")
	workspace := env.createWorkspace(t, "Acme", owner)
	board := env.createBoard(t, workspace, "Roadmap")
	column := env.createColumn(t, board, "To Do", 1)
	task := env.createTask(t, column, "Ship it", 1, owner)

	_, err := env.commentService.CreateComment(owner.ID, task.ID, "   ")
	require.ErrorIs(t, err, ErrInvalidCommentText)
}
