// internal/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokomarket/soko-backend/internal/models"
	"github.com/sokomarket/soko-backend/internal/utils"
)

func authTestRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append(mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/protected", chain...)
	return r
}

func tokenForRole(t *testing.T, role models.Role) string {
	t.Helper()
	utils.SetJWTSecrets("test-access-secret", "test-refresh-secret")
	token, err := utils.GenerateAccessToken(uuid.New(), "Test User", string(role), 15)
	require.NoError(t, err)
	return token
}

func TestAuthRequiredRejectsMissingHeader(t *testing.T) {
	r := authTestRouter(AuthRequired())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredRejectsMalformedHeader(t *testing.T) {
	r := authTestRouter(AuthRequired())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredRejectsInvalidToken(t *testing.T) {
	r := authTestRouter(AuthRequired())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredAcceptsValidToken(t *testing.T) {
	token := tokenForRole(t, models.RoleBuyer)
	r := authTestRouter(AuthRequired())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleRequiredHierarchy(t *testing.T) {
	tests := []struct {
		name     string
		role     models.Role
		required models.Role
		status   int
	}{
		{"buyer blocked from vendor route", models.RoleBuyer, models.RoleVendor, http.StatusForbidden},
		{"vendor allowed on vendor route", models.RoleVendor, models.RoleVendor, http.StatusOK},
		{"admin allowed on vendor route", models.RoleAdmin, models.RoleVendor, http.StatusOK},
		{"influencer allowed on affiliate route", models.RoleInfluencer, models.RoleAffiliate, http.StatusOK},
		{"buyer blocked from affiliate route", models.RoleBuyer, models.RoleAffiliate, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := tokenForRole(t, tt.role)
			r := authTestRouter(AuthRequired(), RoleRequired(tt.required))

			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRoleOnlyIgnoresHierarchy(t *testing.T) {
	// A vendor outranks an influencer but RoleOnly requires an exact match.
	token := tokenForRole(t, models.RoleVendor)
	r := authTestRouter(AuthRequired(), RoleOnly(models.RoleInfluencer))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRoleOrOwner(t *testing.T) {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecrets("test-access-secret", "test-refresh-secret")

	ownerID := uuid.New()
	ownerToken, err := utils.GenerateAccessToken(ownerID, "Owner", "buyer", 15)
	require.NoError(t, err)
	strangerToken, err := utils.GenerateAccessToken(uuid.New(), "Stranger", "buyer", 15)
	require.NoError(t, err)
	adminToken, err := utils.GenerateAccessToken(uuid.New(), "Admin", "admin", 15)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/users/:id", AuthRequired(), RoleOrOwner("id", models.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"owner allowed", ownerToken, http.StatusOK},
		{"stranger forbidden", strangerToken, http.StatusForbidden},
		{"admin allowed", adminToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/users/"+ownerID.String(), nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}
