// internal/services/review_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/sokomarket/soko-backend/internal/models"
	"github.com/sokomarket/soko-backend/internal/utils"
)

// ErrReviewNotEligible is returned when the buyer has no paid order
// containing the product they are trying to review.
var ErrReviewNotEligible = errors.New("no paid purchase of this product")

type ReviewService struct {
	db *gorm.DB
}

type CreateReviewRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
	Comment   string    `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// CreateReview stores a review after verifying the author has a paid
// order containing the product.
func (s *ReviewService) CreateReview(userID uuid.UUID, req *CreateReviewRequest) (*models.Review, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var product models.Product
	if err := s.db.First(&product, req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	eligible, err := s.hasPaidPurchase(userID, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, ErrReviewNotEligible
	}

	review := &models.Review{
		ProductID: req.ProductID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.db.Create(review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return review, nil
}

// ListReviews returns reviews for a product, newest first.
func (s *ReviewService) ListReviews(productID uuid.UUID, params utils.PaginationParams) ([]models.Review, int64, error) {
	query := s.db.Model(&models.Review{}).Where("product_id = ?", productID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	query = utils.ApplyPagination(query.Order("created_at DESC"), params)

	var reviews []models.Review
	if err := query.Preload("User").Find(&reviews).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch reviews: %w", err)
	}

	return reviews, total, nil
}

// hasPaidPurchase checks for a paid order of the buyer whose item_ids
// overlap the order items recorded for the product.
func (s *ReviewService) hasPaidPurchase(userID, productID uuid.UUID) (bool, error) {
	var itemIDs []string
	err := s.db.Model(&models.OrderItem{}).
		Where("product_id = ?", productID).
		Pluck("id", &itemIDs).Error
	if err != nil {
		return false, fmt.Errorf("failed to resolve order items: %w", err)
	}
	if len(itemIDs) == 0 {
		return false, nil
	}

	var count int64
	err = s.db.Model(&models.Order{}).
		Where("buyer_id = ? AND status = ? AND item_ids && ?",
			userID, models.OrderStatusPaid, pq.StringArray(itemIDs)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check purchases: %w", err)
	}

	return count > 0, nil
}
