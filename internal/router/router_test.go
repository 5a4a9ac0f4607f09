// internal/router/router_test.go
package router

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/sokomarket/soko-backend/internal/config"
)

func routeSet(r *gin.Engine) map[string]bool {
	routes := make(map[string]bool)
	for _, route := range r.Routes() {
		routes[route.Method+" "+route.Path] = true
	}
	return routes
}

func TestRouteTable(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "localhost", Port: "8080"},
		JWT: config.JWTConfig{
			AccessSecret:  "test-access-secret",
			RefreshSecret: "test-refresh-secret",
		},
		Upload: config.UploadConfig{MaxSizeMB: 2},
	}

	r := Initialize(nil, cfg)
	routes := routeSet(r)

	expected := []string{
		"GET /health",
		"GET /r/:code",
		"POST /api/payments/stripe/webhook",
		"POST /api/auth/register",
		"POST /api/auth/login",
		"POST /api/auth/logout",
		"POST /api/auth/refresh",
		"GET /api/auth/me",
		"GET /api/products",
		"GET /api/products/:id",
		"GET /api/products/:id/reviews",
		"POST /api/products",
		"PATCH /api/products/:id/approve",
		"DELETE /api/products/:id",
		"POST /api/affiliates/links",
		"GET /api/affiliates/links",
		"GET /api/affiliates/links/:id/clicks",
		"POST /api/orders",
		"GET /api/orders",
		"GET /api/orders/:id",
		"POST /api/orders/:id/paid",
		"POST /api/reviews",
		"GET /api/campaigns",
		"GET /api/campaigns/:id",
		"POST /api/campaigns",
		"POST /api/campaigns/:id/apply",
		"GET /api/campaigns/:id/engagements",
		"POST /api/campaigns/:id/engagements",
		"POST /api/payments/intent",
		"POST /api/payments/confirm",
		"POST /api/upload/image",
		"GET /api/admin/dashboard",
		"GET /api/admin/audit-logs",
		"GET /api/admin/products/pending",
		"DELETE /api/admin/products/:id",
		"PATCH /api/admin/users/:id/verify",
	}
	for _, route := range expected {
		assert.True(t, routes[route], "missing route %s", route)
	}
}
