// internal/services/campaign_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sokomarket/soko-backend/internal/models"
	"github.com/sokomarket/soko-backend/internal/utils"
)

// ErrCampaignTaken is returned when an influencer applies to a campaign
// that is already assigned.
var ErrCampaignTaken = errors.New("campaign already assigned")

type CampaignService struct {
	db *gorm.DB
}

type CreateCampaignRequest struct {
	Title       string `json:"title" validate:"required,min=2,max=255"`
	Description string `json:"description,omitempty" validate:"omitempty,max=5000"`
	BudgetCents int64  `json:"budget_cents" validate:"required,min=1"`
	Target      string `json:"target,omitempty" validate:"omitempty,max=255"`
}

type TrackEngagementRequest struct {
	Metric string  `json:"metric" validate:"required,min=1,max=50"`
	Value  float64 `json:"value" validate:"required"`
}

func NewCampaignService(db *gorm.DB) *CampaignService {
	return &CampaignService{db: db}
}

func (s *CampaignService) CreateCampaign(vendorID uuid.UUID, req *CreateCampaignRequest) (*models.Campaign, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	campaign := &models.Campaign{
		VendorID:    vendorID,
		Title:       req.Title,
		Description: req.Description,
		BudgetCents: req.BudgetCents,
		Target:      req.Target,
		Status:      models.CampaignStatusCreated,
	}
	if err := s.db.Create(campaign).Error; err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	return campaign, nil
}

func (s *CampaignService) GetCampaign(id uuid.UUID) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := s.db.Preload("Influencer").First(&campaign, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("campaign not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &campaign, nil
}

func (s *CampaignService) ListCampaigns(params utils.PaginationParams) ([]models.Campaign, int64, error) {
	query := s.db.Model(&models.Campaign{})

	if params.Search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count campaigns: %w", err)
	}

	query = utils.ApplyPagination(query.Order("created_at DESC"), params)

	var campaigns []models.Campaign
	if err := query.Find(&campaigns).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch campaigns: %w", err)
	}

	return campaigns, total, nil
}

// Apply claims a campaign for the calling influencer. The claim is a
// conditional update on influencer_id being unset, so exactly one of
// two racing applicants wins.
func (s *CampaignService) Apply(userID, campaignID uuid.UUID) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := s.db.First(&campaign, campaignID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("campaign not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	influencer, err := s.ensureInfluencer(userID)
	if err != nil {
		return nil, err
	}

	result := s.db.Model(&models.Campaign{}).
		Where("id = ? AND influencer_id IS NULL", campaignID).
		Updates(map[string]interface{}{
			"influencer_id": influencer.ID,
			"status":        models.CampaignStatusAssigned,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to claim campaign: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrCampaignTaken
	}

	campaign.InfluencerID = &influencer.ID
	campaign.Status = models.CampaignStatusAssigned
	return &campaign, nil
}

// TrackEngagement appends a metric reading against a campaign.
func (s *CampaignService) TrackEngagement(campaignID uuid.UUID, req *TrackEngagementRequest) (*models.Engagement, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var campaign models.Campaign
	if err := s.db.First(&campaign, campaignID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("campaign not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	engagement := &models.Engagement{
		ID:         uuid.New(),
		CampaignID: campaignID,
		Metric:     req.Metric,
		Value:      req.Value,
	}
	if err := s.db.Create(engagement).Error; err != nil {
		return nil, fmt.Errorf("failed to record engagement: %w", err)
	}

	return engagement, nil
}

// ListEngagements returns a campaign's engagement history, newest first.
func (s *CampaignService) ListEngagements(campaignID uuid.UUID) ([]models.Engagement, error) {
	var engagements []models.Engagement
	err := s.db.Where("campaign_id = ?", campaignID).
		Order("created_at DESC").
		Find(&engagements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch engagements: %w", err)
	}
	return engagements, nil
}

func (s *CampaignService) ensureInfluencer(userID uuid.UUID) (*models.Influencer, error) {
	var influencer models.Influencer
	err := s.db.Where("user_id = ?", userID).First(&influencer).Error
	if err == nil {
		return &influencer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	created := &models.Influencer{UserID: userID}
	if err := s.db.Create(created).Error; err != nil {
		if isUniqueViolation(err) {
			var existing models.Influencer
			if findErr := s.db.Where("user_id = ?", userID).First(&existing).Error; findErr == nil {
				return &existing, nil
			}
		}
		return nil, fmt.Errorf("failed to create influencer profile: %w", err)
	}
	return created, nil
}
