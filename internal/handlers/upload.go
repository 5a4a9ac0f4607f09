// internal/handlers/upload.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/sokomarket/soko-backend/internal/i18n"
	"github.com/sokomarket/soko-backend/internal/services"
	"github.com/sokomarket/soko-backend/internal/utils"
)

type UploadHandler struct {
	storageService *services.StorageService
}

func NewUploadHandler(storageService *services.StorageService) *UploadHandler {
	return &UploadHandler{
		storageService: storageService,
	}
}

// POST /upload/image (authenticated)
func (h *UploadHandler) UploadImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "image"), err.Error())
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadImage(file, header)
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFileUploadSuccess),
		"file":    result,
	})
}
