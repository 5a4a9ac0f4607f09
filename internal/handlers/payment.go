// internal/handlers/payment.go
package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sokomarket/soko-backend/internal/i18n"
	"github.com/sokomarket/soko-backend/internal/services"
	"github.com/sokomarket/soko-backend/internal/utils"
)

// Stripe webhook payloads are small; cap reads well below any real
// event size to bound memory.
const maxWebhookBodyBytes = 64 * 1024

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// POST /payments/intent (buyer)
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	response, err := h.paymentService.CreatePaymentIntent(userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, response)
}

// POST /payments/confirm (buyer)
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	order, err := h.paymentService.ConfirmPayment(userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPaymentSuccess),
		"order":   order,
	})
}

// POST /payments/stripe/webhook (public, signature-verified)
func (h *PaymentHandler) HandleWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if err := h.paymentService.HandleWebhook(payload, signature); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	c.Status(http.StatusOK)
}
