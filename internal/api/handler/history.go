package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yashovardan8harit/caption-backend/internal/api/middleware"
	"github.com/yashovardan8harit/caption-backend/internal/domain"
	"github.com/yashovardan8harit/caption-backend/internal/logger"
	"github.com/yashovardan8harit/caption-backend/internal/service"
)

// HistoryHandler handles caption history endpoints.
type HistoryHandler struct {
	historyService *service.HistoryService
}

// NewHistoryHandler creates a new history handler.
// Parameters:
//   - historyService: history service instance.
// Returns:
//   - *HistoryHandler: initialized handler.
func NewHistoryHandler(historyService *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{
		historyService: historyService,
	}
}

// List handles GET /user/history.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *HistoryHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	history := h.historyService.List(c.Request.Context(), userID, limit)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"history": history,
		"total":   len(history),
	})
}

// DeleteOne handles DELETE /user/history/:id.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *HistoryHandler) DeleteOne(c *gin.Context) {
	userID := middleware.UserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid history item ID"})
		return
	}

	if err := h.historyService.DeleteOne(c.Request.Context(), uint(id), userID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "History item not found"})
		case errors.Is(err, domain.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to delete this item"})
		default:
			logger.CtxError(c.Request.Context(), "Failed to delete history item: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete history item"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "History item deleted successfully",
	})
}

// Clear handles DELETE /user/history.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *HistoryHandler) Clear(c *gin.Context) {
	userID := middleware.UserID(c)

	deleted, err := h.historyService.Clear(c.Request.Context(), userID)
	if err != nil {
		logger.CtxError(c.Request.Context(), "Failed to clear history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       fmt.Sprintf("Deleted %d history items", deleted),
		"deleted_count": deleted,
	})
}
