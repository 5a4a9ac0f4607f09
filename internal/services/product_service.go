// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sokomarket/soko-backend/internal/models"
	"github.com/sokomarket/soko-backend/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Title                 string   `json:"title" validate:"required,min=2,max=255"`
	Description           string   `json:"description" validate:"required,min=10"`
	PriceCents            int64    `json:"price_cents" validate:"required,min=1"`
	Currency              string   `json:"currency,omitempty" validate:"omitempty,len=3"`
	Stock                 int      `json:"stock" validate:"min=0"`
	Category              string   `json:"category" validate:"required"`
	ImageURL              string   `json:"image_url,omitempty" validate:"omitempty,url"`
	DigitalURL            string   `json:"digital_url,omitempty" validate:"omitempty,url"`
	IsAffiliatePromotable bool     `json:"is_affiliate_promotable"`
	CommissionPercent     *float64 `json:"commission_percent,omitempty" validate:"omitempty,min=0,max=100"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	Promotable *bool      `json:"promotable,omitempty"`
	VendorID   *uuid.UUID `json:"vendor_id,omitempty"`
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

func (s *ProductService) CreateProduct(vendorID uuid.UUID, req *CreateProductRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Verify vendor exists
	var vendor models.User
	if err := s.db.First(&vendor, vendorID).Error; err != nil {
		return nil, fmt.Errorf("vendor not found: %w", err)
	}

	currency := req.Currency
	if currency == "" {
		currency = "RWF"
	}

	// Commission only carries meaning on promotable products
	commission := req.CommissionPercent
	if !req.IsAffiliatePromotable {
		commission = nil
	}

	// Products enter the catalog unapproved
	product := &models.Product{
		VendorID:              vendorID,
		Title:                 req.Title,
		Description:           req.Description,
		PriceCents:            req.PriceCents,
		Currency:              currency,
		Stock:                 req.Stock,
		Category:              req.Category,
		ImageURL:              req.ImageURL,
		DigitalURL:            req.DigitalURL,
		IsApproved:            false,
		IsAffiliatePromotable: req.IsAffiliatePromotable,
		CommissionPercent:     commission,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *ProductService) GetProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Vendor").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

// SearchProducts lists approved catalog entries only; unapproved
// products are invisible to buyers.
func (s *ProductService) SearchProducts(params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).Where("is_approved = ?", true)

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(title) LIKE ?", searchTerm)
	}

	if params.Promotable != nil {
		query = query.Where("is_affiliate_promotable = ?", *params.Promotable)
	}

	if params.VendorID != nil {
		query = query.Where("vendor_id = ?", *params.VendorID)
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	// Apply sorting and pagination
	allowedSortFields := []string{"created_at", "title", "price_cents", "category"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

func (s *ProductService) ApproveProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Model(&product).Update("is_approved", true).Error; err != nil {
		return nil, fmt.Errorf("failed to approve product: %w", err)
	}

	return &product, nil
}

func (s *ProductService) DeleteProduct(id uuid.UUID) error {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("product not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	// Soft delete
	if err := s.db.Delete(&product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}
