// internal/handlers/product.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sokomarket/soko-backend/internal/i18n"
	"github.com/sokomarket/soko-backend/internal/services"
	"github.com/sokomarket/soko-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// POST /products (vendor)
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	vendorID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.productService.CreateProduct(vendorID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductCreated),
		"product": product,
	})
}

// GET /products (public)
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	params := services.ProductSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
	}

	if promotableStr := c.Query("promotable"); promotableStr != "" {
		if promotable, err := strconv.ParseBool(promotableStr); err == nil {
			params.Promotable = &promotable
		}
	}

	if vendorStr := c.Query("vendor_id"); vendorStr != "" {
		if vendorID, err := uuid.Parse(vendorStr); err == nil {
			params.VendorID = &vendorID
		}
	}

	products, total, err := h.productService.SearchProducts(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(products, total, params.PaginationParams)
	utils.PaginatedResponse(c, result)
}

// GET /products/:id (public)
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(id)
	if err != nil {
		utils.NotFoundResponse(c, "product")
		return
	}

	utils.SuccessResponse(c, product)
}

// PATCH /products/:id/approve (admin)
func (h *ProductHandler) ApproveProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.ApproveProduct(id)
	if err != nil {
		utils.NotFoundResponse(c, "product")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductApproved),
		"product": product,
	})
}

// DELETE /products/:id and DELETE /admin/products/:id (admin)
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(id); err != nil {
		utils.NotFoundResponse(c, "product")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductDeleted),
	})
}
