// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/sokomarket/soko-backend/internal/database"
	"github.com/sokomarket/soko-backend/internal/models"
	"github.com/sokomarket/soko-backend/internal/utils"
)

type OrderService struct {
	db *gorm.DB
}

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type CreateOrderRequest struct {
	Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	AffiliateCode string             `json:"affiliate_code,omitempty"`
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// CreateOrder prices the requested items against the current catalog
// and writes the order, its items, and the id backlinks in a single
// transaction. An unknown affiliate code is ignored rather than
// rejected; a broken referral must not block a sale.
func (s *OrderService) CreateOrder(buyerID uuid.UUID, req *CreateOrderRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var affiliateID *uuid.UUID
	if req.AffiliateCode != "" {
		var link models.AffiliateLink
		err := s.db.Where("code = ?", req.AffiliateCode).First(&link).Error
		switch {
		case err == nil:
			affiliateID = &link.AffiliateID
		case errors.Is(err, gorm.ErrRecordNotFound):
			// attribute nothing
		default:
			return nil, fmt.Errorf("database error: %w", err)
		}
	}

	var order *models.Order
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var totalCents, commissionCents int64
		items := make([]models.OrderItem, 0, len(req.Items))
		currency := ""

		for _, item := range req.Items {
			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("product %s not found", item.ProductID)
				}
				return fmt.Errorf("database error: %w", err)
			}
			if currency == "" {
				currency = product.Currency
			}
			subtotal := product.PriceCents * int64(item.Quantity)
			totalCents += subtotal
			if affiliateID != nil && product.CommissionPercent != nil {
				commissionCents += ComputeCommissionCents(subtotal, *product.CommissionPercent)
			}
			items = append(items, models.OrderItem{
				ProductID:  product.ID,
				Quantity:   item.Quantity,
				PriceCents: product.PriceCents,
			})
		}

		if currency == "" {
			currency = "RWF"
		}

		order = &models.Order{
			BuyerID:         buyerID,
			Status:          models.OrderStatusPending,
			TotalCents:      totalCents,
			Currency:        currency,
			AffiliateID:     affiliateID,
			CommissionCents: commissionCents,
		}
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		itemIDs := make([]string, 0, len(items))
		for i := range items {
			items[i].OrderID = order.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
			itemIDs = append(itemIDs, items[i].ID.String())
		}

		if err := tx.Model(order).Update("item_ids", pq.StringArray(itemIDs)).Error; err != nil {
			return fmt.Errorf("failed to link order items: %w", err)
		}
		order.ItemIDs = pq.StringArray(itemIDs)
		order.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// MarkPaid transitions an order from pending to paid. Marking an
// already-paid order again is a no-op.
func (s *OrderService) MarkPaid(orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("order not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if order.Status == models.OrderStatusPaid {
		return &order, nil
	}

	updates := map[string]interface{}{
		"status":     models.OrderStatusPaid,
		"updated_at": time.Now(),
	}
	result := s.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, models.OrderStatusPending).
		Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to mark order paid: %w", result.Error)
	}

	order.Status = models.OrderStatusPaid
	return &order, nil
}

func (s *OrderService) GetOrder(id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").Preload("Items.Product").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("order not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

// ListOrders returns the buyer's own orders, newest first.
func (s *OrderService) ListOrders(buyerID uuid.UUID, params utils.PaginationParams) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{}).Where("buyer_id = ?", buyerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query = utils.ApplyPagination(query.Order("created_at DESC"), params)

	var orders []models.Order
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, total, nil
}

// ComputeCommissionCents returns the affiliate commission owed on an
// item subtotal, rounded half up to the nearest cent.
func ComputeCommissionCents(subtotalCents int64, commissionPercent float64) int64 {
	if subtotalCents <= 0 || commissionPercent <= 0 {
		return 0
	}
	return int64(math.Floor(float64(subtotalCents)*commissionPercent/100 + 0.5))
}
