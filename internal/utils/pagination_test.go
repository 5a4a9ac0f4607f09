// internal/utils/pagination_test.go
package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paginationContext(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestGetPaginationParamsDefaults(t *testing.T) {
	params := GetPaginationParams(paginationContext(""))

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 20, params.Limit)
	assert.Equal(t, "created_at", params.Sort)
	assert.Equal(t, "desc", params.Order)
}

func TestGetPaginationParamsFromQuery(t *testing.T) {
	params := GetPaginationParams(paginationContext("page=3&limit=50&sort=title&order=asc&q=phone&category=electronics"))

	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 50, params.Limit)
	assert.Equal(t, "title", params.Sort)
	assert.Equal(t, "asc", params.Order)
	assert.Equal(t, "phone", params.Search)
	assert.Equal(t, "electronics", params.Category)
}

func TestGetPaginationParamsClampsInvalidValues(t *testing.T) {
	params := GetPaginationParams(paginationContext("page=-5&limit=5000&order=sideways"))

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 20, params.Limit)
	assert.Equal(t, "desc", params.Order)
}

func TestCreatePaginationResult(t *testing.T) {
	params := PaginationParams{Page: 2, Limit: 10}
	result := CreatePaginationResult([]string{"a", "b"}, 25, params)

	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 10, result.Limit)
	assert.Equal(t, int64(25), result.Total)
	assert.Equal(t, 3, result.TotalPages)
}

func TestSetPaginationHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SetPaginationHeaders(c, PaginationResult{Page: 1, Limit: 20, Total: 41, TotalPages: 3})

	assert.Equal(t, "41", w.Header().Get("X-Total-Count"))
	assert.Equal(t, "1", w.Header().Get("X-Page"))
	assert.Equal(t, "20", w.Header().Get("X-Per-Page"))
	assert.Equal(t, "3", w.Header().Get("X-Total-Pages"))
}
