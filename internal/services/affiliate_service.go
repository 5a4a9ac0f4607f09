// internal/services/affiliate_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/sokomarket/soko-backend/internal/config"
	"github.com/sokomarket/soko-backend/internal/models"
	"github.com/sokomarket/soko-backend/internal/utils"
)

// ErrProductNotPromotable is returned when a link is requested for a
// product that is missing, unapproved, or closed to affiliates. The
// three cases are deliberately indistinguishable to the caller.
var ErrProductNotPromotable = errors.New("product not available for promotion")

const maxCodeAttempts = 5

type AffiliateService struct {
	db  *gorm.DB
	cfg *config.Config
}

type CreateAffiliateLinkRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

type ClickInfo struct {
	IP        string
	UserAgent string
	Referer   string
}

func NewAffiliateService(db *gorm.DB, cfg *config.Config) *AffiliateService {
	return &AffiliateService{db: db, cfg: cfg}
}

// CreateLink mints a short code pointing an affiliate at a product.
// The affiliate profile is created on first use.
func (s *AffiliateService) CreateLink(userID uuid.UUID, req *CreateAffiliateLinkRequest) (*models.AffiliateLink, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var product models.Product
	if err := s.db.First(&product, req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotPromotable
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !product.IsApproved || !product.IsAffiliatePromotable {
		return nil, ErrProductNotPromotable
	}

	affiliate, err := s.ensureAffiliate(userID)
	if err != nil {
		return nil, err
	}

	// Code collisions are unlikely at 10 chars but the unique index is
	// the source of truth; retry a few times on conflict.
	var link *models.AffiliateLink
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, genErr := utils.GenerateAffiliateCode()
		if genErr != nil {
			return nil, fmt.Errorf("failed to generate code: %w", genErr)
		}

		candidate := &models.AffiliateLink{
			Code:        code,
			ProductID:   product.ID,
			AffiliateID: affiliate.ID,
		}
		if createErr := s.db.Create(candidate).Error; createErr != nil {
			if isUniqueViolation(createErr) {
				continue
			}
			return nil, fmt.Errorf("failed to create affiliate link: %w", createErr)
		}
		link = candidate
		break
	}
	if link == nil {
		return nil, errors.New("could not allocate a unique affiliate code")
	}

	link.Product = product
	return link, nil
}

// ResolveCode looks up an affiliate link by its short code.
func (s *AffiliateService) ResolveCode(code string) (*models.AffiliateLink, error) {
	var link models.AffiliateLink
	if err := s.db.Preload("Product").Where("code = ?", code).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("affiliate link not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &link, nil
}

// RecordClick persists a click event. Failures are logged and swallowed;
// a broken analytics write must never block the redirect.
func (s *AffiliateService) RecordClick(link *models.AffiliateLink, info ClickInfo) {
	click := &models.Click{
		ID:              uuid.New(),
		AffiliateLinkID: link.ID,
		AffiliateID:     link.AffiliateID,
		IP:              info.IP,
		UserAgent:       info.UserAgent,
		Referer:         info.Referer,
	}
	if err := s.db.Create(click).Error; err != nil {
		logrus.WithFields(logrus.Fields{
			"code":  link.Code,
			"error": err.Error(),
		}).Warn("Failed to record affiliate click")
	}
}

// RedirectURL builds the storefront destination carrying UTM attribution.
func (s *AffiliateService) RedirectURL(link *models.AffiliateLink) string {
	return fmt.Sprintf("%s/product/%s?utm_source=affiliate&utm_medium=link&utm_campaign=%s",
		s.cfg.Client.BaseURL, link.ProductID, link.Code)
}

// ListLinks returns the caller's links with per-link click counts.
func (s *AffiliateService) ListLinks(userID uuid.UUID, params utils.PaginationParams) ([]models.AffiliateLink, int64, error) {
	affiliate, err := s.findAffiliate(userID)
	if err != nil {
		return nil, 0, err
	}
	if affiliate == nil {
		return []models.AffiliateLink{}, 0, nil
	}

	query := s.db.Model(&models.AffiliateLink{}).Where("affiliate_id = ?", affiliate.ID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count affiliate links: %w", err)
	}

	query = utils.ApplyPagination(query.Order("created_at DESC"), params)

	var links []models.AffiliateLink
	if err := query.Preload("Product").Find(&links).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch affiliate links: %w", err)
	}

	return links, total, nil
}

// CountClicks returns the number of recorded clicks for a link.
func (s *AffiliateService) CountClicks(linkID uuid.UUID) (int64, error) {
	var count int64
	if err := s.db.Model(&models.Click{}).Where("affiliate_link_id = ?", linkID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count clicks: %w", err)
	}
	return count, nil
}

func (s *AffiliateService) ensureAffiliate(userID uuid.UUID) (*models.Affiliate, error) {
	affiliate, err := s.findAffiliate(userID)
	if err != nil {
		return nil, err
	}
	if affiliate != nil {
		return affiliate, nil
	}

	created := &models.Affiliate{UserID: userID}
	if err := s.db.Create(created).Error; err != nil {
		// Lost a race with a concurrent first link; reload.
		if isUniqueViolation(err) {
			return s.findAffiliate(userID)
		}
		return nil, fmt.Errorf("failed to create affiliate profile: %w", err)
	}
	return created, nil
}

func (s *AffiliateService) findAffiliate(userID uuid.UUID) (*models.Affiliate, error) {
	var affiliate models.Affiliate
	err := s.db.Where("user_id = ?", userID).First(&affiliate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &affiliate, nil
}
