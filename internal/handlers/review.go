// internal/handlers/review.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sokomarket/soko-backend/internal/i18n"
	"github.com/sokomarket/soko-backend/internal/services"
	"github.com/sokomarket/soko-backend/internal/utils"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// POST /reviews (buyer)
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	review, err := h.reviewService.CreateReview(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrReviewNotEligible) {
			utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyReviewNotPurchased))
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyReviewCreated),
		"review":  review,
	})
}

// GET /products/:id/reviews (public)
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	reviews, total, err := h.reviewService.ListReviews(productID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(reviews, total, params)
	utils.PaginatedResponse(c, result)
}
