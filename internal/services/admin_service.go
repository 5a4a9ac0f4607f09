// internal/services/admin_service.go
package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sokomarket/soko-backend/internal/models"
	"github.com/sokomarket/soko-backend/internal/utils"
)

type AdminService struct {
	db *gorm.DB
}

type AdminDashboardStats struct {
	TotalUsers           int64 `json:"total_users"`
	NewUsersThisMonth    int64 `json:"new_users_this_month"`
	TotalProducts        int64 `json:"total_products"`
	PendingProducts      int64 `json:"pending_products"`
	TotalOrders          int64 `json:"total_orders"`
	PaidOrders           int64 `json:"paid_orders"`
	TotalSalesCents      int64 `json:"total_sales_cents"`
	TotalCommissionCents int64 `json:"total_commission_cents"`
	TotalClicks          int64 `json:"total_clicks"`
	TotalCampaigns       int64 `json:"total_campaigns"`
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// GetDashboardStats aggregates the platform-wide counters shown on the
// admin dashboard. Sales totals count paid orders only.
func (s *AdminService) GetDashboardStats() (*AdminDashboardStats, error) {
	stats := &AdminDashboardStats{}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	if err := s.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if err := s.db.Model(&models.User{}).
		Where("created_at >= ?", monthStart).
		Count(&stats.NewUsersThisMonth).Error; err != nil {
		return nil, fmt.Errorf("failed to count new users: %w", err)
	}

	if err := s.db.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if err := s.db.Model(&models.Product{}).
		Where("is_approved = ?", false).
		Count(&stats.PendingProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending products: %w", err)
	}

	if err := s.db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	if err := s.db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPaid).
		Count(&stats.PaidOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count paid orders: %w", err)
	}

	var totalSales *int64
	err := s.db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPaid).
		Select("SUM(total_cents)").
		Scan(&totalSales).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum sales: %w", err)
	}
	if totalSales != nil {
		stats.TotalSalesCents = *totalSales
	}

	var totalCommission *int64
	err = s.db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPaid).
		Select("SUM(commission_cents)").
		Scan(&totalCommission).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum commissions: %w", err)
	}
	if totalCommission != nil {
		stats.TotalCommissionCents = *totalCommission
	}

	if err := s.db.Model(&models.Click{}).Count(&stats.TotalClicks).Error; err != nil {
		return nil, fmt.Errorf("failed to count clicks: %w", err)
	}
	if err := s.db.Model(&models.Campaign{}).Count(&stats.TotalCampaigns).Error; err != nil {
		return nil, fmt.Errorf("failed to count campaigns: %w", err)
	}

	return stats, nil
}

// ListPendingProducts returns products awaiting moderation, oldest first.
func (s *AdminService) ListPendingProducts(params utils.PaginationParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).Where("is_approved = ?", false)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count pending products: %w", err)
	}

	query = utils.ApplyPagination(query.Order("created_at ASC"), params)

	var products []models.Product
	if err := query.Preload("Vendor").Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch pending products: %w", err)
	}

	return products, total, nil
}

// ListAuditLogs returns recent audit entries, newest first.
func (s *AdminService) ListAuditLogs(params utils.PaginationParams) ([]models.AuditLog, int64, error) {
	query := s.db.Model(&models.AuditLog{})

	if params.Search != "" {
		query = query.Where("action LIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	query = utils.ApplyPagination(query.Order("created_at DESC"), params)

	var logs []models.AuditLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch audit logs: %w", err)
	}

	return logs, total, nil
}
