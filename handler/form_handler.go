package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/janseva-labs/aadhaar-form-assist/dto"
	"github.com/janseva-labs/aadhaar-form-assist/service"
)

// FormHandler serves form templates and auto-fill requests.
type FormHandler struct {
	formService *service.FormService
}

func NewFormHandler(formService *service.FormService) *FormHandler {
	return &FormHandler{formService: formService}
}

// ListTemplates handles GET /forms.
func (h *FormHandler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": h.formService.Templates()})
}

// Autofill handles POST /forms/:id/autofill: seed a template's fields from
// an extracted identity record.
func (h *FormHandler) Autofill(c *gin.Context) {
	templateID := c.Param("id")

	var req dto.AutofillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "identity record is required",
			Code:    http.StatusBadRequest,
		})
		return
	}

	resp, err := h.formService.Autofill(templateID, req.Record)
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error:   "TEMPLATE_NOT_FOUND",
				Message: "unknown form template: " + templateID,
				Code:    http.StatusNotFound,
			})
			return
		}
		log.Error().Err(err).Str("template", templateID).Msg("autofill failed")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "AUTOFILL_FAILED",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}
