package dto

import (
	"time"

	"github.com/boardhub/boardhub/internal/models"
	"github.com/google/uuid"
)

// CommentDTO represents a comment with its resolved author
type CommentDTO struct {
	ID           uuid.UUID  `json:"id"`
	TaskID       uuid.UUID  `json:"task_id"`
	Text         string     `json:"text"`
	Author       UserDTO    `json:"author"`
	LastModified *time.Time `json:"last_modified,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ToCommentDTO converts a Comment model to CommentDTO. The Author
// relation must be preloaded.
func ToCommentDTO(comment models.Comment) CommentDTO {
	return CommentDTO{
		ID:           comment.ID,
		TaskID:       comment.TaskID,
		Text:         comment.Text,
		Author:       ToUserDTO(comment.Author),
		LastModified: comment.LastModified,
		CreatedAt:    comment.CreatedAt,
	}
}
