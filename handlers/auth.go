package handlers

import (
	"errors"
	"net/http"

	"mightymoves/middleware"
	"mightymoves/models"
	"mightymoves/services/backend"
	"mightymoves/services/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	Auth *session.AuthService
	// OnLogout runs after a client's session is cleared.
	OnLogout func(clientID string)
}

func NewAuthHandler(auth *session.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

// authStatus maps a backend rejection to the status the portal returns.
func authStatus(err error) int {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		return apiErr.Status
	}
	return http.StatusBadGateway
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	logger := getLogger(c)

	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	user, err := h.Auth.Register(c.Request.Context(), middleware.ClientID(c), req)
	if err != nil {
		logger.Error("User registration failed", zap.Error(err))
		c.JSON(authStatus(err), gin.H{"error": backend.Message(err, "Registration failed")})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	logger := getLogger(c)

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	user, err := h.Auth.Login(c.Request.Context(), middleware.ClientID(c), req)
	if err != nil {
		logger.Error("Login failed", zap.Error(err))
		c.JSON(authStatus(err), gin.H{"error": backend.Message(err, "Login failed")})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Auth.Logout(c.Request.Context(), middleware.ClientID(c)); err != nil {
		getLogger(c).Error("Logout failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}
	if h.OnLogout != nil {
		h.OnLogout(middleware.ClientID(c))
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me handles GET /api/auth/me. A client without a session gets a null user.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.Auth.CurrentUser(c.Request.Context(), middleware.ClientID(c))
	if err != nil {
		getLogger(c).Warn("Session lookup failed", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "authenticated": user != nil})
}
