// internal/handlers/user.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/sokomarket/soko-backend/internal/i18n"
	"github.com/sokomarket/soko-backend/internal/models"
	"github.com/sokomarket/soko-backend/internal/services"
	"github.com/sokomarket/soko-backend/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GET /users (admin)
func (h *UserHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.userService.ListUsers(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(users, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /users/:id (admin or owner)
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		utils.NotFoundResponse(c, "user")
		return
	}

	utils.SuccessResponse(c, user)
}

// PATCH /users/:id (admin or owner)
func (h *UserHandler) UpdateUser(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	roleStr, _ := utils.GetUserRoleFromContext(c)
	user, err := h.userService.UpdateUser(id, &req, models.Role(roleStr))
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserUpdated),
		"user":    user,
	})
}

// PATCH /admin/users/:id/verify (admin)
func (h *UserHandler) VerifyUser(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.VerifyUser(id)
	if err != nil {
		utils.NotFoundResponse(c, "user")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserVerified),
		"user":    user,
	})
}

// DELETE /users/:id (admin)
func (h *UserHandler) DeleteUser(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(id); err != nil {
		utils.NotFoundResponse(c, "user")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserDeleted),
	})
}
