// internal/utils/response_test.go
package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordResponse(fn func(c *gin.Context)) (*httptest.ResponseRecorder, APIResponse) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)

	var resp APIResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestSuccessResponseEnvelope(t *testing.T) {
	w, resp := recordResponse(func(c *gin.Context) {
		SuccessResponse(c, gin.H{"value": 42})
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
	require.NotNil(t, resp.Data)
}

func TestCreatedResponseEnvelope(t *testing.T) {
	w, resp := recordResponse(func(c *gin.Context) {
		CreatedResponse(c, gin.H{"id": "abc"})
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, resp.Success)
}

func TestErrorResponseEnvelope(t *testing.T) {
	w, resp := recordResponse(func(c *gin.Context) {
		ErrorResponse(c, http.StatusConflict, "CONFLICT", "already exists", nil)
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "CONFLICT", resp.Error.Code)
	assert.Equal(t, "already exists", resp.Error.Message)
}

func TestValidationErrorResponseCarriesDetails(t *testing.T) {
	w, resp := recordResponse(func(c *gin.Context) {
		ValidationErrorResponse(c, []ValidationError{
			{Field: "email", Tag: "email", Message: "Invalid email format"},
		})
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.NotNil(t, resp.Error.Details)
}

func TestGetLangFromContextDefaults(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	assert.Equal(t, "en", GetLangFromContext(c))

	c.Set("lang", "fr")
	assert.Equal(t, "fr", GetLangFromContext(c))
}
