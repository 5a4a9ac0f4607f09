// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/sokomarket/soko-backend/internal/i18n"
	"github.com/sokomarket/soko-backend/internal/models"
	"github.com/sokomarket/soko-backend/internal/services"
	"github.com/sokomarket/soko-backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// POST /orders (buyer)
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	buyerID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	order, err := h.orderService.CreateOrder(buyerID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOrderCreated),
		"order":   order,
	})
}

// GET /orders (buyer)
func (h *OrderHandler) ListOrders(c *gin.Context) {
	buyerID, ok := requireUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	orders, total, err := h.orderService.ListOrders(buyerID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(orders, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /orders/:id (owner or admin)
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(id)
	if err != nil {
		utils.NotFoundResponse(c, "order")
		return
	}

	roleStr, _ := utils.GetUserRoleFromContext(c)
	if order.BuyerID != userID && !models.Role(roleStr).AtLeast(models.RoleAdmin) {
		utils.NotFoundResponse(c, "order")
		return
	}

	utils.SuccessResponse(c, order)
}

// POST /orders/:id/paid (admin)
func (h *OrderHandler) MarkPaid(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.MarkPaid(id)
	if err != nil {
		utils.NotFoundResponse(c, "order")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOrderMarkedPaid),
		"order":   order,
	})
}
