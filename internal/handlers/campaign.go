// internal/handlers/campaign.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sokomarket/soko-backend/internal/i18n"
	"github.com/sokomarket/soko-backend/internal/services"
	"github.com/sokomarket/soko-backend/internal/utils"
)

type CampaignHandler struct {
	campaignService *services.CampaignService
}

func NewCampaignHandler(campaignService *services.CampaignService) *CampaignHandler {
	return &CampaignHandler{
		campaignService: campaignService,
	}
}

// POST /campaigns (vendor)
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	vendorID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	campaign, err := h.campaignService.CreateCampaign(vendorID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyCampaignCreated),
		"campaign": campaign,
	})
}

// GET /campaigns (authenticated)
func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	campaigns, total, err := h.campaignService.ListCampaigns(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(campaigns, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /campaigns/:id (authenticated)
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	campaign, err := h.campaignService.GetCampaign(id)
	if err != nil {
		utils.NotFoundResponse(c, "campaign")
		return
	}

	utils.SuccessResponse(c, campaign)
}

// POST /campaigns/:id/apply (influencer)
func (h *CampaignHandler) Apply(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	campaign, err := h.campaignService.Apply(userID, id)
	if err != nil {
		if errors.Is(err, services.ErrCampaignTaken) {
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyCampaignAlreadyTaken))
			return
		}
		utils.NotFoundResponse(c, "campaign")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyCampaignApplied),
		"campaign": campaign,
	})
}

// POST /campaigns/:id/engagements (influencer)
func (h *CampaignHandler) TrackEngagement(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.TrackEngagementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	engagement, err := h.campaignService.TrackEngagement(id, &req)
	if err != nil {
		utils.NotFoundResponse(c, "campaign")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyCampaignEngagementAdd),
		"engagement": engagement,
	})
}

// GET /campaigns/:id/engagements (authenticated)
func (h *CampaignHandler) ListEngagements(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	engagements, err := h.campaignService.ListEngagements(id)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, engagements)
}
