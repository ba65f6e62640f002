package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/boardhub/boardhub/internal/constants"
	"github.com/boardhub/boardhub/internal/models"
	"github.com/boardhub/boardhub/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrInvalidCommentText = errors.New("comment text must be between 1 and 2000 characters")
	ErrNotCommentAuthor   = errors.New("only the comment author can modify it")
)

// CommentService provides business logic for task comments. Any member
// can comment; editing and deleting are restricted to the author.
type CommentService struct {
	guard       *Guard
	commentRepo repository.CommentRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(guard *Guard, commentRepo repository.CommentRepository) *CommentService {
	return &CommentService{
		guard:       guard,
		commentRepo: commentRepo,
	}
}

// CreateComment adds a comment to a task, attributed to the caller.
func (s *CommentService) CreateComment(actorID, taskID uuid.UUID, text string) (*models.Comment, error) {
	if !commentTextValid(text) {
		return nil, ErrInvalidCommentText
	}

	workspaceID, err := s.guard.WorkspaceFromTask(taskID)
	if err != nil {
		return nil, err
	}
	user, _, err := s.guard.RequireMember(actorID, workspaceID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		TaskID:   taskID,
		Text:     text,
		AuthorID: user.ID,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

// UpdateComment replaces the comment's text and stamps it as edited.
// Author only.
func (s *CommentService) UpdateComment(actorID, commentID uuid.UUID, text string) (*models.Comment, error) {
	if !commentTextValid(text) {
		return nil, ErrInvalidCommentText
	}

	comment, err := s.authorComment(actorID, commentID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	comment.Text = text
	comment.LastModified = &now

	if err := s.commentRepo.Update(comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return comment, nil
}

// DeleteComment removes a comment. Author only.
func (s *CommentService) DeleteComment(actorID, commentID uuid.UUID) error {
	comment, err := s.authorComment(actorID, commentID)
	if err != nil {
		return err
	}

	if err := s.commentRepo.Delete(comment.ID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}

// ListComments returns a task's comments with authors resolved. Member
// only.
func (s *CommentService) ListComments(actorID, taskID uuid.UUID) ([]models.Comment, error) {
	workspaceID, err := s.guard.WorkspaceFromTask(taskID)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.guard.RequireMember(actorID, workspaceID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}

// authorComment loads a comment and verifies the caller is a workspace
// member and the comment's author.
func (s *CommentService) authorComment(actorID, commentID uuid.UUID) (*models.Comment, error) {
	workspaceID, err := s.guard.WorkspaceFromComment(commentID)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.guard.RequireMember(actorID, workspaceID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}
	if comment.AuthorID != actorID {
		return nil, ErrNotCommentAuthor
	}

	return comment, nil
}

func commentTextValid(text string) bool {
	return strings.TrimSpace(text) != "" && utf8.RuneCountInString(text) <= constants.MaxCommentLength
}
