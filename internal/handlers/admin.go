// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/sokomarket/soko-backend/internal/services"
	"github.com/sokomarket/soko-backend/internal/utils"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// GET /admin/dashboard (admin)
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, stats)
}

// GET /admin/products/pending (admin)
func (h *AdminHandler) ListPendingProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	products, total, err := h.adminService.ListPendingProducts(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(products, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /admin/audit-logs (admin)
func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	logs, total, err := h.adminService.ListAuditLogs(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(logs, total, params)
	utils.PaginatedResponse(c, result)
}
