//go:build integration
// +build integration

// internal/services/integration_test.go
package services_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sokomarket/soko-backend/internal/config"
	"github.com/sokomarket/soko-backend/internal/database"
	"github.com/sokomarket/soko-backend/internal/handlers"
	"github.com/sokomarket/soko-backend/internal/models"
	"github.com/sokomarket/soko-backend/internal/services"
	"github.com/sokomarket/soko-backend/internal/utils"
)

// ServiceSuite runs the DB-backed service paths against a throwaway
// PostgreSQL container. The container is shared across the suite;
// tables are truncated between tests.
type ServiceSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	cfg       *config.Config
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:alpine",
		tcpostgres.WithDatabase("sokotest"),
		tcpostgres.WithUsername("soko"),
		tcpostgres.WithPassword("soko"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.db = db

	s.Require().NoError(database.RunMigrations(db))

	s.cfg = &config.Config{
		Client: config.ClientConfig{BaseURL: "http://localhost:3000"},
		JWT: config.JWTConfig{
			AccessSecret:    "test-access-secret",
			RefreshSecret:   "test-refresh-secret",
			AccessTokenTTL:  15,
			RefreshTokenTTL: 168,
		},
	}
	utils.SetJWTSecrets(s.cfg.JWT.AccessSecret, s.cfg.JWT.RefreshSecret)
	gin.SetMode(gin.TestMode)
}

func (s *ServiceSuite) TearDownSuite() {
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *ServiceSuite) SetupTest() {
	err := s.db.Exec(`TRUNCATE users, products, affiliates, affiliate_links, clicks,
		orders, order_items, influencers, campaigns, engagements, reviews, audit_logs CASCADE`).Error
	s.Require().NoError(err)
}

func (s *ServiceSuite) createUser(role models.Role) *models.User {
	user := &models.User{
		Email:      fmt.Sprintf("%s-%s@example.com", role, uuid.New().String()[:8]),
		Name:       "Test User",
		Role:       role,
		IsVerified: true,
	}
	s.Require().NoError(user.SetPassword("Str0ngPass1"))
	s.Require().NoError(s.db.Create(user).Error)
	return user
}

func (s *ServiceSuite) createApprovedProduct(vendorID uuid.UUID, priceCents int64, promotable bool, commissionPercent *float64) *models.Product {
	product := &models.Product{
		VendorID:              vendorID,
		Title:                 "Test Product",
		Description:           "A product used in tests only",
		PriceCents:            priceCents,
		Currency:              "RWF",
		Stock:                 100,
		Category:              "electronics",
		IsApproved:            true,
		IsAffiliatePromotable: promotable,
		CommissionPercent:     commissionPercent,
	}
	s.Require().NoError(s.db.Create(product).Error)
	return product
}

func (s *ServiceSuite) TestRegisterRejectsDuplicateEmail() {
	authService := services.NewAuthService(s.db, s.cfg)

	r := gin.New()
	r.POST("/api/auth/register", handlers.NewAuthHandler(authService).Register)

	body := `{"email":"dup@example.com","password":"Str0ngPass1","name":"First Buyer","role":"buyer"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	s.Require().Equal(http.StatusCreated, w.Code)

	body = `{"email":"dup@example.com","password":"0therPass2x","name":"Second Buyer","role":"vendor"}`
	w = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/api/auth/register", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	s.Equal(http.StatusConflict, w.Code)

	var count int64
	s.Require().NoError(s.db.Model(&models.User{}).Where("email = ?", "dup@example.com").Count(&count).Error)
	s.Equal(int64(1), count)
}

func (s *ServiceSuite) TestLoginStampsLastLogin() {
	authService := services.NewAuthService(s.db, s.cfg)
	user := s.createUser(models.RoleBuyer)

	resp, err := authService.Login(&services.LoginRequest{
		Email:    user.Email,
		Password: "Str0ngPass1",
	})
	s.Require().NoError(err)
	s.NotEmpty(resp.AccessToken)

	var reloaded models.User
	s.Require().NoError(s.db.First(&reloaded, user.ID).Error)
	s.Require().NotNil(reloaded.LastLoginAt)
	s.WithinDuration(time.Now(), *reloaded.LastLoginAt, time.Minute)
}

func (s *ServiceSuite) TestCreateOrderTotalsAndLinksItems() {
	orderService := services.NewOrderService(s.db)
	vendor := s.createUser(models.RoleVendor)
	buyer := s.createUser(models.RoleBuyer)

	phone := s.createApprovedProduct(vendor.ID, 150000, false, nil)
	cable := s.createApprovedProduct(vendor.ID, 2500, false, nil)

	order, err := orderService.CreateOrder(buyer.ID, &services.CreateOrderRequest{
		Items: []services.OrderItemRequest{
			{ProductID: phone.ID, Quantity: 2},
			{ProductID: cable.ID, Quantity: 3},
		},
	})
	s.Require().NoError(err)

	s.Equal(int64(2*150000+3*2500), order.TotalCents)
	s.Equal(models.OrderStatusPending, order.Status)
	s.Nil(order.AffiliateID)
	s.Zero(order.CommissionCents)
	s.Len(order.ItemIDs, 2)

	reloaded, err := orderService.GetOrder(order.ID)
	s.Require().NoError(err)
	s.Len(reloaded.Items, 2)
	s.Len(reloaded.ItemIDs, 2)
	for _, item := range reloaded.Items {
		s.Contains([]string(reloaded.ItemIDs), item.ID.String())
	}
}

func (s *ServiceSuite) TestCreateOrderRolledBackOnUnknownProduct() {
	orderService := services.NewOrderService(s.db)
	vendor := s.createUser(models.RoleVendor)
	buyer := s.createUser(models.RoleBuyer)
	product := s.createApprovedProduct(vendor.ID, 5000, false, nil)

	_, err := orderService.CreateOrder(buyer.ID, &services.CreateOrderRequest{
		Items: []services.OrderItemRequest{
			{ProductID: product.ID, Quantity: 1},
			{ProductID: uuid.New(), Quantity: 1},
		},
	})
	s.Require().Error(err)

	var orders, items int64
	s.Require().NoError(s.db.Model(&models.Order{}).Count(&orders).Error)
	s.Require().NoError(s.db.Model(&models.OrderItem{}).Count(&items).Error)
	s.Zero(orders)
	s.Zero(items)
}

func (s *ServiceSuite) TestOrderAttributionAndCommission() {
	affiliateService := services.NewAffiliateService(s.db, s.cfg)
	orderService := services.NewOrderService(s.db)
	vendor := s.createUser(models.RoleVendor)
	buyer := s.createUser(models.RoleBuyer)
	promoter := s.createUser(models.RoleAffiliate)

	commission := 5.0
	product := s.createApprovedProduct(vendor.ID, 10000, true, &commission)

	link, err := affiliateService.CreateLink(promoter.ID, &services.CreateAffiliateLinkRequest{
		ProductID: product.ID,
	})
	s.Require().NoError(err)

	order, err := orderService.CreateOrder(buyer.ID, &services.CreateOrderRequest{
		Items:         []services.OrderItemRequest{{ProductID: product.ID, Quantity: 2}},
		AffiliateCode: link.Code,
	})
	s.Require().NoError(err)
	s.Require().NotNil(order.AffiliateID)
	s.Equal(link.AffiliateID, *order.AffiliateID)
	s.Equal(int64(1000), order.CommissionCents) // 5% of 20000

	// An unknown code attributes nothing but never blocks the sale
	unattributed, err := orderService.CreateOrder(buyer.ID, &services.CreateOrderRequest{
		Items:         []services.OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
		AffiliateCode: "nosuchcode",
	})
	s.Require().NoError(err)
	s.Nil(unattributed.AffiliateID)
	s.Zero(unattributed.CommissionCents)
}

func (s *ServiceSuite) TestMarkPaidIsIdempotent() {
	orderService := services.NewOrderService(s.db)
	vendor := s.createUser(models.RoleVendor)
	buyer := s.createUser(models.RoleBuyer)
	product := s.createApprovedProduct(vendor.ID, 5000, false, nil)

	order, err := orderService.CreateOrder(buyer.ID, &services.CreateOrderRequest{
		Items: []services.OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
	})
	s.Require().NoError(err)

	paid, err := orderService.MarkPaid(order.ID)
	s.Require().NoError(err)
	s.Equal(models.OrderStatusPaid, paid.Status)

	again, err := orderService.MarkPaid(order.ID)
	s.Require().NoError(err)
	s.Equal(models.OrderStatusPaid, again.Status)

	var count int64
	s.Require().NoError(s.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, models.OrderStatusPaid).
		Count(&count).Error)
	s.Equal(int64(1), count)
}

func (s *ServiceSuite) TestReviewRequiresPaidPurchase() {
	orderService := services.NewOrderService(s.db)
	reviewService := services.NewReviewService(s.db)
	vendor := s.createUser(models.RoleVendor)
	buyer := s.createUser(models.RoleBuyer)
	product := s.createApprovedProduct(vendor.ID, 5000, false, nil)

	req := &services.CreateReviewRequest{
		ProductID: product.ID,
		Rating:    5,
		Comment:   "Great product",
	}

	// No order at all
	_, err := reviewService.CreateReview(buyer.ID, req)
	s.Require().ErrorIs(err, services.ErrReviewNotEligible)

	// Pending order is not enough
	order, err := orderService.CreateOrder(buyer.ID, &services.CreateOrderRequest{
		Items: []services.OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
	})
	s.Require().NoError(err)
	_, err = reviewService.CreateReview(buyer.ID, req)
	s.Require().ErrorIs(err, services.ErrReviewNotEligible)

	// Paid order unlocks the review
	_, err = orderService.MarkPaid(order.ID)
	s.Require().NoError(err)
	review, err := reviewService.CreateReview(buyer.ID, req)
	s.Require().NoError(err)
	s.Equal(5, review.Rating)

	// A different buyer still cannot review
	stranger := s.createUser(models.RoleBuyer)
	_, err = reviewService.CreateReview(stranger.ID, req)
	s.Require().ErrorIs(err, services.ErrReviewNotEligible)
}

func (s *ServiceSuite) TestRedirectRecordsExactlyOneClick() {
	affiliateService := services.NewAffiliateService(s.db, s.cfg)
	vendor := s.createUser(models.RoleVendor)
	promoter := s.createUser(models.RoleAffiliate)

	commission := 10.0
	product := s.createApprovedProduct(vendor.ID, 8000, true, &commission)
	link, err := affiliateService.CreateLink(promoter.ID, &services.CreateAffiliateLinkRequest{
		ProductID: product.ID,
	})
	s.Require().NoError(err)

	r := gin.New()
	r.GET("/r/:code", handlers.NewAffiliateHandler(affiliateService).Redirect)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/r/"+link.Code, nil))

	s.Require().Equal(http.StatusFound, w.Code)
	s.Equal(affiliateService.RedirectURL(link), w.Header().Get("Location"))

	var clicks int64
	s.Require().NoError(s.db.Model(&models.Click{}).
		Where("affiliate_link_id = ?", link.ID).
		Count(&clicks).Error)
	s.Equal(int64(1), clicks)

	// An unknown code 404s and records nothing
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/r/nosuchcode", nil))
	s.Equal(http.StatusNotFound, w.Code)

	s.Require().NoError(s.db.Model(&models.Click{}).Count(&clicks).Error)
	s.Equal(int64(1), clicks)
}

func (s *ServiceSuite) TestCreateLinkRejectsUnpromotableProduct() {
	affiliateService := services.NewAffiliateService(s.db, s.cfg)
	vendor := s.createUser(models.RoleVendor)
	promoter := s.createUser(models.RoleAffiliate)
	product := s.createApprovedProduct(vendor.ID, 8000, false, nil)

	_, err := affiliateService.CreateLink(promoter.ID, &services.CreateAffiliateLinkRequest{
		ProductID: product.ID,
	})
	s.Require().ErrorIs(err, services.ErrProductNotPromotable)

	_, err = affiliateService.CreateLink(promoter.ID, &services.CreateAffiliateLinkRequest{
		ProductID: uuid.New(),
	})
	s.Require().ErrorIs(err, services.ErrProductNotPromotable)
}

func (s *ServiceSuite) TestCampaignClaimIsExclusive() {
	campaignService := services.NewCampaignService(s.db)
	vendor := s.createUser(models.RoleVendor)
	first := s.createUser(models.RoleInfluencer)
	second := s.createUser(models.RoleInfluencer)

	campaign, err := campaignService.CreateCampaign(vendor.ID, &services.CreateCampaignRequest{
		Title:       "Spring push",
		BudgetCents: 500000,
	})
	s.Require().NoError(err)

	claimed, err := campaignService.Apply(first.ID, campaign.ID)
	s.Require().NoError(err)
	s.Equal(models.CampaignStatusAssigned, claimed.Status)
	s.Require().NotNil(claimed.InfluencerID)

	_, err = campaignService.Apply(second.ID, campaign.ID)
	s.Require().ErrorIs(err, services.ErrCampaignTaken)

	var reloaded models.Campaign
	s.Require().NoError(s.db.First(&reloaded, campaign.ID).Error)
	s.Require().NotNil(reloaded.InfluencerID)
	s.Equal(*claimed.InfluencerID, *reloaded.InfluencerID)
	s.Equal(models.CampaignStatusAssigned, reloaded.Status)
}
