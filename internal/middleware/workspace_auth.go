package middleware

import (
	"net/http"

	"github.com/boardhub/boardhub/internal/database"
	"github.com/boardhub/boardhub/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequireWorkspaceAccess checks if the user is a member of the workspace
func RequireWorkspaceAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		workspaceID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid workspace ID",
			})
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		var workspace models.Workspace
		if err := database.GetDB().First(&workspace, "id = ?", workspaceID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Workspace not found",
			})
			c.Abort()
			return
		}

		var member models.WorkspaceMember
		err = database.GetDB().Where("workspace_id = ? AND user_id = ?", workspaceID, userID).First(&member).Error
		if err != nil {
			// Return 404 instead of 403 to avoid leaking workspace existence
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Workspace not found",
			})
			c.Abort()
			return
		}

		// Store workspace and membership in context
		c.Set("workspace", workspace)
		c.Set("workspace_member", member)
		c.Next()
	}
}

// RequireWorkspaceOwner checks if the user is an owner of the workspace
func RequireWorkspaceOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		memberInterface, exists := c.Get("workspace_member")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Workspace access required",
			})
			c.Abort()
			return
		}

		member, ok := memberInterface.(models.WorkspaceMember)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Invalid workspace member data",
			})
			c.Abort()
			return
		}

		if member.Role != models.RoleOwner {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Only workspace owners can perform this action",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
