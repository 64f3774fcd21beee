package api

import (
	"github.com/gin-gonic/gin"
	"github.com/yashovardan8harit/caption-backend/internal/api/handler"
	"github.com/yashovardan8harit/caption-backend/internal/api/middleware"
	"github.com/yashovardan8harit/caption-backend/internal/auth"
	"github.com/yashovardan8harit/caption-backend/internal/config"
	"github.com/yashovardan8harit/caption-backend/internal/service"
)

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	captionService *service.CaptionService,
	historyService *service.HistoryService,
	signatureService *service.SignatureService,
	verifier auth.Verifier,
	cfg *config.Config,
) *gin.Engine {
	// Set Gin mode
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
	}))

	// Create handlers
	healthHandler := handler.NewHealthHandler()
	captionHandler := handler.NewCaptionHandler(captionService)
	historyHandler := handler.NewHistoryHandler(historyService)
	signatureHandler := handler.NewSignatureHandler(signatureService, cfg)

	// Public routes
	r.GET("/", healthHandler.Root)
	r.GET("/generate-signature", signatureHandler.Generate)
	r.GET("/caption-styles", captionHandler.Styles)
	r.GET("/test-env", signatureHandler.TestEnv)
	r.POST("/test-custom-caption", captionHandler.TestCustom)

	// Authenticated routes
	authed := r.Group("", middleware.RequireAuth(verifier))
	{
		authed.POST("/generate-caption", captionHandler.Generate)
		authed.GET("/user/history", historyHandler.List)
		authed.DELETE("/user/history/:id", historyHandler.DeleteOne)
		authed.DELETE("/user/history", historyHandler.Clear)
	}

	return r
}
