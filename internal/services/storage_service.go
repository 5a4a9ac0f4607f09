// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"github.com/sokomarket/soko-backend/internal/config"
)

// imageMimeTypes is the allow-list for product images, checked against
// the sniffed content type, not the filename.
var imageMimeTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

func NewStorageService(config *config.Config) (*StorageService, error) {
	if config.AWS.AccessKeyID == "" {
		// No S3 credentials; fall back to local disk storage.
		return &StorageService{config: config}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(config.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AWS.AccessKeyID,
			config.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   config,
	}, nil
}

// UploadImage validates and stores a product image, returning its
// public URL. Size and content type are enforced here regardless of
// what the multipart headers claim.
func (s *StorageService) UploadImage(file multipart.File, header *multipart.FileHeader) (*UploadResult, error) {
	maxSize := int64(s.config.Upload.MaxSizeMB) * 1024 * 1024
	if header.Size > maxSize {
		return nil, fmt.Errorf("file size %d bytes exceeds maximum of %dMB", header.Size, s.config.Upload.MaxSizeMB)
	}

	fileBytes, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(fileBytes)) > maxSize {
		return nil, fmt.Errorf("file exceeds maximum of %dMB", s.config.Upload.MaxSizeMB)
	}

	contentType := http.DetectContentType(fileBytes)
	ext, ok := imageMimeTypes[contentType]
	if !ok {
		return nil, fmt.Errorf("unsupported image type %s", contentType)
	}

	key := s.generateFileName(ext, "products")

	if s.s3Client != nil {
		return s.uploadToS3(fileBytes, key, contentType)
	}
	return s.uploadToLocal(fileBytes, key, contentType)
}

func (s *StorageService) uploadToS3(fileBytes []byte, key, contentType string) (*UploadResult, error) {
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
		ACL:           aws.String("public-read"),
	}

	if _, err := s.s3Client.PutObject(params); err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &UploadResult{
		URL:      s.getS3URL(key),
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) uploadToLocal(fileBytes []byte, key, contentType string) (*UploadResult, error) {
	path := filepath.Join(s.config.Upload.Dir, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(path, fileBytes, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	url := fmt.Sprintf("http://%s:%s/uploads/%s",
		s.config.Server.Host, s.config.Server.Port, key)

	return &UploadResult{
		URL:      url,
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) DeleteFile(key string) error {
	if s.s3Client == nil {
		path := filepath.Join(s.config.Upload.Dir, key)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete file: %w", err)
		}
		return nil
	}

	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

func (s *StorageService) getS3URL(key string) string {
	if s.config.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(s.config.AWS.CloudFrontURL, "/"), key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.AWS.S3Bucket, s.config.AWS.Region, key)
}

func (s *StorageService) generateFileName(ext, folder string) string {
	id := uuid.New()
	timestamp := time.Now().Format("20060102")
	filename := fmt.Sprintf("%s_%s%s", timestamp, id.String()[:8], ext)
	if folder != "" {
		return fmt.Sprintf("%s/%s", folder, filename)
	}
	return filename
}
