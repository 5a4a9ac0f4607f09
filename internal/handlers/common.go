// internal/handlers/common.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sokomarket/soko-backend/internal/utils"
)

// requireUserID pulls the authenticated user's id out of the gin
// context. It writes the error response itself, so callers just bail
// on ok == false.
func requireUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return uuid.Nil, false
	}

	return userID, true
}

// parseIDParam parses a uuid path parameter, responding 400 on failure.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}
