package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/janseva-labs/aadhaar-form-assist/dto"
	"github.com/janseva-labs/aadhaar-form-assist/utils/fieldmatch"
)

// FieldHandler exposes label-to-canonical-field matching.
type FieldHandler struct {
	matcher *fieldmatch.Matcher
}

func NewFieldHandler(matcher *fieldmatch.Matcher) *FieldHandler {
	return &FieldHandler{matcher: matcher}
}

// Match handles POST /fields/match: the best-guess canonical field for one
// label. A zero-confidence result is a legitimate outcome, not an error.
func (h *FieldHandler) Match(c *gin.Context) {
	var req dto.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "label is required",
			Code:    http.StatusBadRequest,
		})
		return
	}

	c.JSON(http.StatusOK, h.matcher.Match(req.Label))
}

// AllMatches handles POST /fields/matches: every candidate above the fuzzy
// threshold, best first.
func (h *FieldHandler) AllMatches(c *gin.Context) {
	var req dto.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "label is required",
			Code:    http.StatusBadRequest,
		})
		return
	}

	matches := h.matcher.AllMatches(req.Label)
	if matches == nil {
		matches = []dto.FieldMatch{}
	}
	c.JSON(http.StatusOK, gin.H{"label": req.Label, "matches": matches})
}
