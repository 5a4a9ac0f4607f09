// internal/handlers/affiliate.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sokomarket/soko-backend/internal/i18n"
	"github.com/sokomarket/soko-backend/internal/services"
	"github.com/sokomarket/soko-backend/internal/utils"
)

type AffiliateHandler struct {
	affiliateService *services.AffiliateService
}

func NewAffiliateHandler(affiliateService *services.AffiliateService) *AffiliateHandler {
	return &AffiliateHandler{
		affiliateService: affiliateService,
	}
}

// POST /affiliates/links (affiliate)
func (h *AffiliateHandler) CreateLink(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.CreateAffiliateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	link, err := h.affiliateService.CreateLink(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrProductNotPromotable) {
			utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND",
				i18n.T(lang, i18n.KeyProductNotPromotable), nil)
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAffiliateLinkCreated),
		"link":    link,
		"url":     h.affiliateService.RedirectURL(link),
	})
}

// GET /affiliates/links (affiliate)
func (h *AffiliateHandler) ListLinks(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	links, total, err := h.affiliateService.ListLinks(userID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(links, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /affiliates/links/:id/clicks (affiliate)
func (h *AffiliateHandler) GetLinkClicks(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	count, err := h.affiliateService.CountClicks(id)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"link_id": id,
		"clicks":  count,
	})
}

// GET /r/:code (public)
//
// Records the click and 302s the visitor to the storefront product page
// with attribution query params.
func (h *AffiliateHandler) Redirect(c *gin.Context) {
	code := c.Param("code")

	link, err := h.affiliateService.ResolveCode(code)
	if err != nil {
		utils.NotFoundResponse(c, "affiliate")
		return
	}

	h.affiliateService.RecordClick(link, services.ClickInfo{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Referer:   c.Request.Referer(),
	})

	c.Redirect(http.StatusFound, h.affiliateService.RedirectURL(link))
}
