package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"mightymoves/middleware"
	"mightymoves/models"
	"mightymoves/services/admin"
	"mightymoves/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// approvingLabel is shown on a booking's approve button while the call is outstanding.
const approvingLabel = "Approving..."

// AdminHandler serves the admin triage console.
type AdminHandler struct {
	Triage   *admin.Triage
	InFlight *utils.InFlight
	now      func() time.Time
}

func NewAdminHandler(triage *admin.Triage) *AdminHandler {
	return &AdminHandler{Triage: triage, InFlight: utils.NewInFlight(), now: time.Now}
}

func (h *AdminHandler) fail(c *gin.Context, err error) {
	var actErr *admin.ActionError
	switch {
	case errors.Is(err, admin.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin must be logged in"})
	case errors.Is(err, admin.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
	case errors.Is(err, admin.ErrNotificationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
	case errors.Is(err, admin.ErrNotPending):
		c.JSON(http.StatusConflict, gin.H{"error": "Only pending bookings can be approved"})
	case errors.As(err, &actErr):
		status := http.StatusBadGateway
		if actErr.Err == nil || actErr.Code == "invalidStatus" {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": actErr.Message, "code": actErr.Code, "toast": actErr.Toast()})
	default:
		zap.L().Error("Admin request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Admin request failed"})
	}
}

// ListBookings handles GET /api/admin/bookings?search=&status=&service=&refresh=bool.
func (h *AdminHandler) ListBookings(c *gin.Context) {
	var filter models.BookingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	refresh, _ := strconv.ParseBool(c.Query("refresh"))

	list, err := h.Triage.Bookings(c.Request.Context(), middleware.ClientID(c), filter, refresh)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list, "count": len(list), "filtered": filter.Active()})
}

// History handles GET /api/admin/bookings/history?all=bool.
func (h *AdminHandler) History(c *gin.Context) {
	all, _ := strconv.ParseBool(c.Query("all"))
	list, err := h.Triage.History(c.Request.Context(), middleware.ClientID(c), all)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list, "all": all})
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.Triage.Stats(c.Request.Context(), middleware.ClientID(c), h.now())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// OpenModal handles GET /api/admin/bookings/:id/modal/:kind.
func (h *AdminHandler) OpenModal(c *gin.Context) {
	kind, ok := models.ParseModalKind(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown modal"})
		return
	}
	modal, err := h.Triage.OpenModal(c.Request.Context(), middleware.ClientID(c), models.BookingID(c.Param("id")), kind)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, modal)
}

// Confirm returns the handler for POST /api/admin/bookings/:id/{status,worker,notes}.
func (h *AdminHandler) Confirm(kind models.ModalKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Value string `json:"value"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		clientID := middleware.ClientID(c)
		id := models.BookingID(c.Param("id"))

		res, err := h.Triage.Confirm(c.Request.Context(), clientID, id, kind, body.Value)
		if err != nil {
			h.fail(c, err)
			return
		}
		getLogger(c).Info("Admin updated booking",
			zap.String("bookingID", id.String()),
			zap.String("field", string(kind)),
		)
		c.JSON(http.StatusOK, res)
	}
}

// Approve handles POST /api/admin/bookings/:id/approve. Only one approve per
// booking can be outstanding for an admin client.
func (h *AdminHandler) Approve(c *gin.Context) {
	clientID := middleware.ClientID(c)
	id := models.BookingID(c.Param("id"))
	key := clientID + ":approve:" + id.String()

	if !h.InFlight.Acquire(key) {
		c.JSON(http.StatusConflict, gin.H{"error": "Approval already in progress", "label": approvingLabel})
		return
	}
	defer h.InFlight.Release(key)

	res, err := h.Triage.Approve(c.Request.Context(), clientID, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	getLogger(c).Info("Admin approved booking", zap.String("bookingID", id.String()))
	c.JSON(http.StatusOK, res)
}

// Notifications handles GET /api/admin/notifications?all=bool.
func (h *AdminHandler) Notifications(c *gin.Context) {
	all, _ := strconv.ParseBool(c.Query("all"))
	list, unread, err := h.Triage.Notifications(c.Request.Context(), middleware.ClientID(c), all)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list, "unread": unread})
}

func notificationIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification index"})
		return 0, false
	}
	return index, true
}

// OpenNotification handles POST /api/admin/notifications/:index/open.
func (h *AdminHandler) OpenNotification(c *gin.Context) {
	index, ok := notificationIndex(c)
	if !ok {
		return
	}
	view, err := h.Triage.OpenNotification(c.Request.Context(), middleware.ClientID(c), index)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// MarkRead handles POST /api/admin/notifications/:index/read.
func (h *AdminHandler) MarkRead(c *gin.Context) {
	index, ok := notificationIndex(c)
	if !ok {
		return
	}
	if err := h.Triage.MarkRead(c.Request.Context(), middleware.ClientID(c), index); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearNotifications handles DELETE /api/admin/notifications.
func (h *AdminHandler) ClearNotifications(c *gin.Context) {
	if err := h.Triage.ClearNotifications(c.Request.Context(), middleware.ClientID(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
