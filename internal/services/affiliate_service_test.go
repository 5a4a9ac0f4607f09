// internal/services/affiliate_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/sokomarket/soko-backend/internal/config"
	"github.com/sokomarket/soko-backend/internal/models"
)

func TestRedirectURLFormat(t *testing.T) {
	cfg := &config.Config{
		Client: config.ClientConfig{BaseURL: "https://shop.example.com"},
	}
	svc := NewAffiliateService(nil, cfg)

	productID := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	link := &models.AffiliateLink{
		Code:      "aB3xY9kLm2",
		ProductID: productID,
	}

	url := svc.RedirectURL(link)
	assert.Equal(t,
		"https://shop.example.com/product/6ba7b810-9dad-11d1-80b4-00c04fd430c8?utm_source=affiliate&utm_medium=link&utm_campaign=aB3xY9kLm2",
		url)
}
