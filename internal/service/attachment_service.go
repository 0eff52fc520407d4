package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"path/filepath"
	"strings"
	"time"

	"github.com/credipyme/credipyme-backend/internal/repository/storage"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	MaxAttachmentSize = 10 * 1024 * 1024 // 10MB
	ThumbnailWidth    = 200
	JPEGQuality       = 85

	presignExpiry = 15 * time.Minute
)

var (
	ErrAttachmentTooLarge        = errors.New("file too large. Maximum size is 10MB")
	ErrInvalidAttachmentFormat   = errors.New("invalid format. Supported: JPEG, PNG, WebP, PDF")
	ErrInvalidImageData          = errors.New("invalid image data")
	ErrAttachmentStorageDisabled = errors.New("attachment storage not configured")
)

// allowedAttachmentExtensions maps extensions to content types.
var allowedAttachmentExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".pdf":  "application/pdf",
}

// AttachmentMetadata describes a stored statement attachment.
type AttachmentMetadata struct {
	ID            string `json:"id"`
	ObjectPath    string `json:"objectPath"`
	ThumbnailPath string `json:"thumbnailPath,omitempty"`
	ContentType   string `json:"contentType"`
}

// AttachmentService stores customers' financial-statement scans. Images get a
// thumbnail variant; PDFs are stored as-is.
type AttachmentService struct {
	storage storage.AttachmentRepository
}

// NewAttachmentService creates a new AttachmentService
func NewAttachmentService(storage storage.AttachmentRepository) *AttachmentService {
	return &AttachmentService{storage: storage}
}

// IsEnabled indicates whether uploads are supported (storage configured).
func (s *AttachmentService) IsEnabled() bool {
	return s != nil && s.storage != nil
}

// Upload validates and stores an attachment under the customer's prefix.
func (s *AttachmentService) Upload(ctx context.Context, companyID, customerID uuid.UUID, data []byte, filename string) (*AttachmentMetadata, error) {
	if !s.IsEnabled() {
		return nil, ErrAttachmentStorageDisabled
	}
	if len(data) > MaxAttachmentSize {
		return nil, ErrAttachmentTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := allowedAttachmentExtensions[ext]
	if !ok {
		return nil, ErrInvalidAttachmentFormat
	}

	attachmentID := uuid.New().String()
	basePath := fmt.Sprintf("%s/customers/%s/%s", companyID, customerID, attachmentID)

	meta := &AttachmentMetadata{
		ID:          attachmentID,
		ContentType: contentType,
	}

	if contentType == "application/pdf" {
		objectPath := basePath + ".pdf"
		if _, err := s.storage.Upload(ctx, objectPath, bytes.NewReader(data), contentType, int64(len(data))); err != nil {
			return nil, fmt.Errorf("uploading attachment: %w", err)
		}
		meta.ObjectPath = objectPath
		return meta, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrInvalidImageData
	}

	objectPath := basePath + "_original.jpg"
	thumbPath := basePath + "_thumb.jpg"

	if err := s.uploadJPEG(ctx, objectPath, img); err != nil {
		return nil, err
	}

	thumb := img
	if img.Bounds().Dx() > ThumbnailWidth {
		thumb = imaging.Resize(img, ThumbnailWidth, 0, imaging.Lanczos)
	}
	if err := s.uploadJPEG(ctx, thumbPath, thumb); err != nil {
		// best-effort cleanup of the original
		_ = s.storage.Delete(ctx, objectPath)
		return nil, err
	}

	meta.ObjectPath = objectPath
	meta.ThumbnailPath = thumbPath
	meta.ContentType = "image/jpeg"
	return meta, nil
}

func (s *AttachmentService) uploadJPEG(ctx context.Context, objectPath string, img image.Image) error {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return fmt.Errorf("encoding image: %w", err)
	}
	if _, err := s.storage.Upload(ctx, objectPath, bytes.NewReader(buf.Bytes()), "image/jpeg", int64(buf.Len())); err != nil {
		return fmt.Errorf("uploading %s: %w", objectPath, err)
	}
	return nil
}

// PresignedURL returns a temporary download URL for an attachment. The object
// path must be company-prefixed; the handler enforces the prefix matches the
// caller's company.
func (s *AttachmentService) PresignedURL(ctx context.Context, objectPath string) (string, error) {
	if !s.IsEnabled() {
		return "", ErrAttachmentStorageDisabled
	}
	return s.storage.PresignURL(ctx, objectPath, presignExpiry)
}

// Delete removes an attachment and its thumbnail variant if present.
func (s *AttachmentService) Delete(ctx context.Context, objectPath string) error {
	if !s.IsEnabled() {
		return ErrAttachmentStorageDisabled
	}
	if err := s.storage.Delete(ctx, objectPath); err != nil {
		return err
	}
	if strings.HasSuffix(objectPath, "_original.jpg") {
		thumb := strings.TrimSuffix(objectPath, "_original.jpg") + "_thumb.jpg"
		_ = s.storage.Delete(ctx, thumb)
	}
	return nil
}
