package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yashovardan8harit/caption-backend/internal/api/middleware"
	"github.com/yashovardan8harit/caption-backend/internal/domain"
	"github.com/yashovardan8harit/caption-backend/internal/logger"
	"github.com/yashovardan8harit/caption-backend/internal/service"
)

// CaptionHandler handles caption generation endpoints.
type CaptionHandler struct {
	captionService *service.CaptionService
}

// NewCaptionHandler creates a new caption handler.
// Parameters:
//   - captionService: caption orchestrator instance.
// Returns:
//   - *CaptionHandler: initialized handler.
func NewCaptionHandler(captionService *service.CaptionService) *CaptionHandler {
	return &CaptionHandler{
		captionService: captionService,
	}
}

// Generate handles POST /generate-caption.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *CaptionHandler) Generate(c *gin.Context) {
	var req service.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	userID := middleware.UserID(c)
	record, err := h.captionService.Generate(c.Request.Context(), userID, &req)
	if err != nil {
		var inputErr *domain.InputError
		switch {
		case errors.As(err, &inputErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": inputErr.Reason})
		default:
			// Fetch and inference failures surface as one generic reason;
			// upstream error text stays in the logs.
			logger.CtxError(c.Request.Context(), "Caption generation failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate caption"})
		}
		return
	}

	response := gin.H{
		"success":          true,
		"image_url":        record.ImageURL,
		"basic_caption":    record.BasicCaption,
		"enhanced_caption": record.EnhancedCaption,
		"style":            record.Style,
	}
	if record.Style == domain.StyleCustom && record.CustomDescription != "" {
		response["custom_description"] = record.CustomDescription
	}

	c.JSON(http.StatusOK, response)
}

// Styles handles GET /caption-styles.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *CaptionHandler) Styles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"styles": domain.Styles(),
	})
}

// testCustomRequest is the typed body of POST /test-custom-caption.
type testCustomRequest struct {
	BasicCaption      string `json:"basic_caption"`
	CustomDescription string `json:"custom_description"`
}

// TestCustom handles POST /test-custom-caption, exercising the enhancement
// step against a caller-supplied description without the image pipeline.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *CaptionHandler) TestCustom(c *gin.Context) {
	req := testCustomRequest{
		BasicCaption: "a person in a photo",
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	enhanced, err := h.captionService.EnhanceOnly(c.Request.Context(), req.BasicCaption, req.CustomDescription)
	if err != nil {
		var inputErr *domain.InputError
		if errors.As(err, &inputErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": inputErr.Reason})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Test failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"basic_caption":      req.BasicCaption,
		"custom_description": req.CustomDescription,
		"enhanced_caption":   enhanced,
	})
}
