package handlers

import (
	"errors"
	"net/http"

	"mightymoves/middleware"
	"mightymoves/models"
	"mightymoves/services/session"
	"mightymoves/services/tracking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TrackingHandler struct {
	Tracker  *tracking.Tracker
	Sessions session.Store
}

func NewTrackingHandler(tracker *tracking.Tracker, sessions session.Store) *TrackingHandler {
	return &TrackingHandler{Tracker: tracker, Sessions: sessions}
}

func trackingStatus(err error) int {
	switch {
	case errors.Is(err, tracking.ErrEmptyTrackingID), errors.Is(err, tracking.ErrInvalidLocation):
		return http.StatusBadRequest
	case errors.Is(err, tracking.ErrLocationNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

// Track handles GET /api/track/:trackingID.
func (h *TrackingHandler) Track(c *gin.Context) {
	trackingID := c.Param("trackingID")
	loc, err := h.Tracker.Lookup(c.Request.Context(), trackingID)
	if err != nil {
		getLogger(c).Info("Tracking lookup failed", zap.String("trackingID", trackingID), zap.Error(err))
		c.JSON(trackingStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trackingId": trackingID, "location": loc})
}

// UpdateLocation handles PUT /api/admin/tracking/:trackingID/location.
func (h *TrackingHandler) UpdateLocation(c *gin.Context) {
	var loc models.Location
	if err := c.ShouldBindJSON(&loc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	ctx := c.Request.Context()
	token, err := h.Sessions.Token(ctx, middleware.ClientID(c))
	if err != nil {
		getLogger(c).Error("Failed to read session token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update location"})
		return
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin must be logged in"})
		return
	}
	if err := h.Tracker.UpdateLocation(ctx, token, c.Param("trackingID"), loc); err != nil {
		c.JSON(trackingStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trackingId": c.Param("trackingID"), "location": loc})
}
