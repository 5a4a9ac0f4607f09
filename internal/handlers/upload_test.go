// internal/handlers/upload_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokomarket/soko-backend/internal/config"
	"github.com/sokomarket/soko-backend/internal/services"
)

// Minimal valid PNG: signature plus IHDR chunk header, enough for
// content-type sniffing.
var pngBytes = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
	0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
}

func uploadRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "localhost", Port: "8080"},
		Upload: config.UploadConfig{Dir: t.TempDir(), MaxSizeMB: 2},
	}
	storageService, err := services.NewStorageService(cfg)
	require.NoError(t, err)

	r := gin.New()
	r.POST("/api/upload/image", NewUploadHandler(storageService).UploadImage)
	return r
}

func multipartUploadRequest(t *testing.T, field string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, "photo.png")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/upload/image", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadImageReadsImageField(t *testing.T) {
	r := uploadRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartUploadRequest(t, "image", pngBytes))

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			File struct {
				URL      string `json:"url"`
				MimeType string `json:"mime_type"`
			} `json:"file"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "image/png", resp.Data.File.MimeType)
	assert.Contains(t, resp.Data.File.URL, "/uploads/products/")
}

func TestUploadImageRejectsWrongFieldName(t *testing.T) {
	r := uploadRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartUploadRequest(t, "file", pngBytes))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
