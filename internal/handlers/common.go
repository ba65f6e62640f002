package handlers

import (
	"errors"

	apierrors "github.com/boardhub/boardhub/internal/errors"
	"github.com/boardhub/boardhub/internal/middleware"
	"github.com/boardhub/boardhub/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentUser pulls the authenticated user's ID from the request
// context and writes the 401 itself when it is missing.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return uuid.Nil, false
	}
	return userID, true
}

// pathID parses the named path parameter as a UUID and writes the 400
// itself when it is malformed.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name+" parameter")
		return uuid.Nil, false
	}
	return id, true
}

// respondScopeError maps the shared guard sentinels. It returns false
// when the error is not one of them so callers can handle their own.
func respondScopeError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		apierrors.Forbidden(c, "")
	case errors.Is(err, services.ErrWorkspaceNotFound),
		errors.Is(err, services.ErrBoardNotFound),
		errors.Is(err, services.ErrColumnNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrLabelNotFound),
		errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrChecklistItemNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		return false
	}
	return true
}
