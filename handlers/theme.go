package handlers

import (
	"net/http"
	"strconv"

	"mightymoves/middleware"
	"mightymoves/services/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ThemeHandler struct {
	Themes *session.ThemeService
}

func NewThemeHandler(themes *session.ThemeService) *ThemeHandler {
	return &ThemeHandler{Themes: themes}
}

// GetTheme handles GET /api/theme?prefersDark=bool.
// The client's saved choice wins over the OS preference.
func (h *ThemeHandler) GetTheme(c *gin.Context) {
	prefersDark, _ := strconv.ParseBool(c.Query("prefersDark"))
	view, err := h.Themes.Init(c.Request.Context(), middleware.ClientID(c), prefersDark)
	if err != nil {
		getLogger(c).Error("Failed to resolve theme", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load theme"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// Toggle handles POST /api/theme/toggle.
func (h *ThemeHandler) Toggle(c *gin.Context) {
	view, err := h.Themes.Toggle(c.Request.Context(), middleware.ClientID(c))
	if err != nil {
		getLogger(c).Error("Failed to toggle theme", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save theme"})
		return
	}
	c.JSON(http.StatusOK, view)
}
