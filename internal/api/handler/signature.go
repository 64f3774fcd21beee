package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yashovardan8harit/caption-backend/internal/config"
	"github.com/yashovardan8harit/caption-backend/internal/service"
)

// SignatureHandler handles upload signature and environment diagnostics
// endpoints.
type SignatureHandler struct {
	signatureService *service.SignatureService
	cfg              *config.Config
}

// NewSignatureHandler creates a new signature handler.
// Parameters:
//   - signatureService: upload signature issuer.
//   - cfg: application configuration for the diagnostics endpoint.
// Returns:
//   - *SignatureHandler: initialized handler.
func NewSignatureHandler(signatureService *service.SignatureService, cfg *config.Config) *SignatureHandler {
	return &SignatureHandler{
		signatureService: signatureService,
		cfg:              cfg,
	}
}

// Generate handles GET /generate-signature.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *SignatureHandler) Generate(c *gin.Context) {
	sig, err := h.signatureService.Issue()
	if err != nil {
		if errors.Is(err, service.ErrSignatureNotConfigured) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Missing Cloudinary credentials in environment variables.",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate signature"})
		return
	}

	c.JSON(http.StatusOK, sig)
}

// TestEnv handles GET /test-env, reporting which secrets are configured
// without revealing them.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *SignatureHandler) TestEnv(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"cloudinary_configured": h.cfg.Cloudinary.APIKey != "",
		"cloud_name_exists":     h.cfg.Cloudinary.CloudName != "",
		"api_secret_exists":     h.cfg.Cloudinary.APISecret != "",
		"groq_configured":       h.cfg.Enhance.APIKey != "",
	})
}
