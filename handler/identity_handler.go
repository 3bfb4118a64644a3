package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/janseva-labs/aadhaar-form-assist/dto"
	"github.com/janseva-labs/aadhaar-form-assist/service"
	"github.com/janseva-labs/aadhaar-form-assist/utils"
)

// retakeHint is shown when no usable name could be read from the card.
const retakeHint = "Could not read a name from the card. Please retake the photo and ensure it is clear and fully visible."

// IdentityHandler handles card upload and identity extraction requests.
type IdentityHandler struct {
	identityService *service.IdentityService
	maxFileSize     int64
}

func NewIdentityHandler(identityService *service.IdentityService, maxFileSize int64) *IdentityHandler {
	return &IdentityHandler{
		identityService: identityService,
		maxFileSize:     maxFileSize,
	}
}

// Extract handles the POST /identity/extract endpoint. It accepts one card
// file (image or e-Aadhaar PDF) or several card images under "file".
func (h *IdentityHandler) Extract(c *gin.Context) {
	log.Info().Msg("received identity extraction request")

	form, err := c.MultipartForm()
	var files []*multipart.FileHeader

	if err == nil && form != nil && len(form.File["file"]) > 1 {
		files = form.File["file"]
	} else {
		f, err := c.FormFile("file")
		if err != nil {
			h.sendError(c, http.StatusBadRequest, "At least one file is required", err)
			return
		}
		files = []*multipart.FileHeader{f}
	}

	password := c.PostForm("password")

	if len(files) > 1 {
		h.extractFromImages(c, files)
		return
	}

	file := files[0]
	log.Info().Str("filename", file.Filename).Msg("processing single card file")

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = inferMimeType(file.Filename)
	}
	if !isValidMimeType(mimeType) {
		h.sendError(c, http.StatusBadRequest, "Invalid file type. Supported: PDF, PNG, JPEG", nil)
		return
	}
	if file.Size > h.maxFileSize {
		h.sendError(c, http.StatusRequestEntityTooLarge, "File exceeds the maximum allowed size", nil)
		return
	}

	fileData, err := readUpload(file)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to read uploaded file", err)
		return
	}

	record, err := h.identityService.ExtractFromFile(c.Request.Context(), fileData, mimeType, password)
	if err != nil {
		h.sendExtractionError(c, err)
		return
	}

	log.Info().Msg("identity extraction completed")
	c.JSON(http.StatusOK, record)
}

// extractFromImages handles the multi-image case (front and back side).
func (h *IdentityHandler) extractFromImages(c *gin.Context, files []*multipart.FileHeader) {
	log.Info().Int("count", len(files)).Msg("processing multiple card images")

	var imagesData [][]byte
	var mimeTypes []string

	for _, file := range files {
		mimeType := file.Header.Get("Content-Type")
		if mimeType == "" {
			mimeType = inferMimeType(file.Filename)
		}
		if !isValidMimeType(mimeType) {
			h.sendError(c, http.StatusBadRequest, "Invalid file type. Supported: PDF, PNG, JPEG", nil)
			return
		}
		if file.Size > h.maxFileSize {
			h.sendError(c, http.StatusRequestEntityTooLarge, "File exceeds the maximum allowed size", nil)
			return
		}

		data, err := readUpload(file)
		if err != nil {
			h.sendError(c, http.StatusInternalServerError, "Failed to read uploaded image", err)
			return
		}
		imagesData = append(imagesData, data)
		mimeTypes = append(mimeTypes, mimeType)
	}

	record, err := h.identityService.ExtractFromImages(c.Request.Context(), imagesData, mimeTypes)
	if err != nil {
		h.sendExtractionError(c, err)
		return
	}

	log.Info().Msg("identity extraction completed (multi-image)")
	c.JSON(http.StatusOK, record)
}

// sendExtractionError distinguishes the unreadable-name case, which the user
// can fix by retaking the photo, from internal failures.
func (h *IdentityHandler) sendExtractionError(c *gin.Context, err error) {
	if errors.Is(err, utils.ErrNameNotFound) {
		h.sendError(c, http.StatusUnprocessableEntity, retakeHint, err)
		return
	}
	if strings.Contains(err.Error(), "decrypt") {
		h.sendError(c, http.StatusBadRequest, "Failed to decrypt PDF. Check password.", err)
		return
	}
	h.sendError(c, http.StatusInternalServerError, "Failed to extract identity data", err)
}

// sendError sends a structured error response
func (h *IdentityHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	if err != nil {
		log.Error().Err(err).Msg(message)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "IDENTITY_EXTRACTION_FAILED",
		Message: message,
		Code:    statusCode,
	})
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	reader, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}

// isValidMimeType checks if the MIME type is supported
func isValidMimeType(mimeType string) bool {
	validTypes := []string{
		"application/pdf",
		"image/png",
		"image/jpeg",
		"image/jpg",
	}

	mimeType = strings.ToLower(mimeType)
	for _, valid := range validTypes {
		if strings.Contains(mimeType, valid) {
			return true
		}
	}
	return false
}

// inferMimeType infers MIME type from file extension
func inferMimeType(filename string) string {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		return "image/jpeg"
	}
	return ""
}
