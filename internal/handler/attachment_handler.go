package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/credipyme/credipyme-backend/internal/middleware"
	"github.com/credipyme/credipyme-backend/internal/service"
)

// AttachmentHandler handles statement-attachment HTTP requests
type AttachmentHandler struct {
	attachmentService *service.AttachmentService
}

// NewAttachmentHandler creates a new AttachmentHandler
func NewAttachmentHandler(attachmentService *service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

// AttachmentURLResponse carries a presigned download URL
type AttachmentURLResponse struct {
	URL string `json:"url"`
}

// UploadAttachment handles POST /api/v1/customers/:id/attachments
func (h *AttachmentHandler) UploadAttachment(c echo.Context) error {
	companyID := middleware.GetCompanyID(c)
	if companyID == uuid.Nil {
		return NewUnauthorizedError(c, "Company required")
	}

	if h.attachmentService == nil || !h.attachmentService.IsEnabled() {
		return NewServiceUnavailableError(c, "Attachment uploads are disabled (storage not configured)")
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid customer ID", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "No file provided", []ValidationError{
			{Field: "file", Message: "File is required"},
		})
	}

	src, err := file.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		return NewInternalError(c, "Failed to process file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		return NewInternalError(c, "Failed to read file")
	}

	metadata, err := h.attachmentService.Upload(c.Request().Context(), companyID, customerID, data, file.Filename)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAttachmentTooLarge):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "File too large. Maximum size is 10MB"},
			})
		case errors.Is(err, service.ErrInvalidAttachmentFormat):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "Invalid format. Supported: JPEG, PNG, WebP, PDF"},
			})
		case errors.Is(err, service.ErrInvalidImageData):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "Invalid image data"},
			})
		default:
			log.Error().Err(err).Str("company_id", companyID.String()).Msg("Failed to upload attachment")
			return NewInternalError(c, "Failed to upload attachment")
		}
	}

	log.Info().
		Str("company_id", companyID.String()).
		Str("customer_id", customerID.String()).
		Str("attachment_id", metadata.ID).
		Msg("Attachment uploaded")

	return c.JSON(http.StatusCreated, metadata)
}

// GetAttachmentURL handles GET /api/v1/attachments/url. The object path must
// carry the caller's company prefix; anything else is a cross-tenant probe.
func (h *AttachmentHandler) GetAttachmentURL(c echo.Context) error {
	companyID := middleware.GetCompanyID(c)
	if companyID == uuid.Nil {
		return NewUnauthorizedError(c, "Company required")
	}

	if h.attachmentService == nil || !h.attachmentService.IsEnabled() {
		return NewServiceUnavailableError(c, "Attachments are disabled (storage not configured)")
	}

	objectPath := c.QueryParam("path")
	if objectPath == "" {
		return NewValidationError(c, "Object path required", []ValidationError{
			{Field: "path", Message: "Path is required"},
		})
	}

	if !strings.HasPrefix(objectPath, companyID.String()+"/") {
		log.Warn().
			Str("company_id", companyID.String()).
			Str("path", objectPath).
			Msg("Attempted to access attachment from another company")
		return NewForbiddenError(c, "Cannot access attachments from another company")
	}

	url, err := h.attachmentService.PresignedURL(c.Request().Context(), objectPath)
	if err != nil {
		log.Error().Err(err).Str("company_id", companyID.String()).Str("path", objectPath).Msg("Failed to presign attachment URL")
		return NewInternalError(c, "Failed to generate URL")
	}

	return c.JSON(http.StatusOK, AttachmentURLResponse{URL: url})
}

// DeleteAttachment handles DELETE /api/v1/attachments
func (h *AttachmentHandler) DeleteAttachment(c echo.Context) error {
	companyID := middleware.GetCompanyID(c)
	if companyID == uuid.Nil {
		return NewUnauthorizedError(c, "Company required")
	}

	if h.attachmentService == nil || !h.attachmentService.IsEnabled() {
		return NewServiceUnavailableError(c, "Attachments are disabled (storage not configured)")
	}

	objectPath := c.QueryParam("path")
	if objectPath == "" {
		return NewValidationError(c, "Object path required", []ValidationError{
			{Field: "path", Message: "Path is required"},
		})
	}

	if !strings.HasPrefix(objectPath, companyID.String()+"/") {
		log.Warn().
			Str("company_id", companyID.String()).
			Str("path", objectPath).
			Msg("Attempted to delete attachment from another company")
		return NewForbiddenError(c, "Cannot delete attachments from another company")
	}

	if err := h.attachmentService.Delete(c.Request().Context(), objectPath); err != nil {
		log.Error().Err(err).Str("company_id", companyID.String()).Str("path", objectPath).Msg("Failed to delete attachment")
		return NewInternalError(c, "Failed to delete attachment")
	}

	log.Info().Str("company_id", companyID.String()).Str("path", objectPath).Msg("Attachment deleted")
	return c.NoContent(http.StatusNoContent)
}
