package handlers

import (
	"context"
	"errors"
	"hash/fnv"
	"net/http"
	"sync"
	"time"

	"mightymoves/middleware"
	"mightymoves/models"
	"mightymoves/services/backend"
	"mightymoves/services/booking"
	"mightymoves/services/form"
	"mightymoves/services/session"
	"mightymoves/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// submittingLabel replaces the submit label while a booking is in flight.
const submittingLabel = "Booking..."

// formLockStripes bounds the number of form mutexes regardless of how many clients visit.
const formLockStripes = 64

// BookingHandler serves the customer booking forms and dashboard.
type BookingHandler struct {
	Forms      form.StateStore
	Workflow   *booking.Workflow
	Backend    backend.Client
	Sessions   session.Store
	InFlight   *utils.InFlight
	SuccessTTL time.Duration

	locks [formLockStripes]sync.Mutex
}

func NewBookingHandler(forms form.StateStore, workflow *booking.Workflow, client backend.Client, sessions session.Store, successTTL time.Duration) *BookingHandler {
	return &BookingHandler{
		Forms:      forms,
		Workflow:   workflow,
		Backend:    client,
		Sessions:   sessions,
		InFlight:   utils.NewInFlight(),
		SuccessTTL: successTTL,
	}
}

func formKey(clientID, service string) string {
	return clientID + ":" + service
}

// lock serialises edits to one client's form. Forms share a fixed set of
// mutexes, so two forms may contend but the set never grows.
func (h *BookingHandler) lock(key string) func() {
	hash := fnv.New32a()
	hash.Write([]byte(key))
	mu := &h.locks[hash.Sum32()%formLockStripes]
	mu.Lock()
	return mu.Unlock
}

func (h *BookingHandler) controller(ctx context.Context, clientID string, def booking.Definition) (*form.Controller, error) {
	state, err := h.Forms.Load(ctx, clientID, def.Service)
	if err != nil {
		return nil, err
	}
	return form.NewController(def.Schema, state, form.WithSuccessTTL(h.SuccessTTL)), nil
}

// view renders the form, reflecting an outstanding submission.
func (h *BookingHandler) view(clientID string, ctrl *form.Controller) models.FormView {
	v := ctrl.View()
	if h.InFlight.Busy(formKey(clientID, v.Service)) {
		v.Submitting = true
		v.SubmitLabel = submittingLabel
	}
	return v
}

// withForm loads the client's form, applies fn, and persists the result even when fn fails,
// so inline errors survive to the next read.
func (h *BookingHandler) withForm(c *gin.Context, fn func(def booking.Definition, ctrl *form.Controller) error) (*form.Controller, error) {
	def, ok := booking.Lookup(c.Param("service"))
	if !ok {
		return nil, form.ErrUnknownForm
	}
	clientID := middleware.ClientID(c)
	defer h.lock(formKey(clientID, def.Service))()

	ctx := c.Request.Context()
	ctrl, err := h.controller(ctx, clientID, def)
	if err != nil {
		return nil, err
	}
	fnErr := fn(def, ctrl)
	if err := h.Forms.Save(ctx, clientID, def.Service, ctrl.State()); err != nil {
		return nil, err
	}
	return ctrl, fnErr
}

// respondForm writes the form view, or maps err to a status and body.
func (h *BookingHandler) respondForm(c *gin.Context, status int, ctrl *form.Controller, err error) {
	if err == nil {
		c.JSON(status, gin.H{"form": h.view(middleware.ClientID(c), ctrl)})
		return
	}

	body := gin.H{}
	if ctrl != nil {
		body["form"] = h.view(middleware.ClientID(c), ctrl)
	}

	var wfErr *booking.WorkflowError
	var verr *form.ValidationError
	switch {
	case errors.Is(err, form.ErrUnknownForm):
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown service"})
		return
	case errors.As(err, &wfErr):
		body["error"] = wfErr.Message
		body["code"] = wfErr.Code
		switch wfErr.Code {
		case booking.CodeValidation:
			status = http.StatusUnprocessableEntity
		case booking.CodeNotAuthenticated:
			body["toast"] = wfErr.Toast()
			status = http.StatusUnauthorized
		default:
			body["toast"] = wfErr.Toast()
			status = http.StatusBadGateway
		}
	case errors.As(err, &verr):
		body["error"] = verr.Message
		body["reason"] = verr.Reason
		body["field"] = verr.Field
		status = http.StatusUnprocessableEntity
	case errors.Is(err, form.ErrModalNotOpen):
		body["error"] = err.Error()
		status = http.StatusConflict
	default:
		getLogger(c).Error("Booking form request failed", zap.String("service", c.Param("service")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process booking form"})
		return
	}
	c.JSON(status, body)
}

// GetForm handles GET /api/forms/:service. Reads take no lock, so they answer
// while a submission is outstanding. A missing draft renders empty.
func (h *BookingHandler) GetForm(c *gin.Context) {
	def, ok := booking.Lookup(c.Param("service"))
	if !ok {
		h.respondForm(c, http.StatusOK, nil, form.ErrUnknownForm)
		return
	}
	ctrl, err := h.controller(c.Request.Context(), middleware.ClientID(c), def)
	h.respondForm(c, http.StatusOK, ctrl, err)
}

// DiscardForm handles DELETE /api/forms/:service.
func (h *BookingHandler) DiscardForm(c *gin.Context) {
	def, ok := booking.Lookup(c.Param("service"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown service"})
		return
	}
	clientID := middleware.ClientID(c)
	defer h.lock(formKey(clientID, def.Service))()

	if err := h.Forms.Delete(c.Request.Context(), clientID, def.Service); err != nil {
		getLogger(c).Error("Failed to discard form", zap.String("service", def.Service), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to discard form"})
		return
	}
	c.Status(http.StatusNoContent)
}

// SetField handles PUT /api/forms/:service/fields/:name.
func (h *BookingHandler) SetField(c *gin.Context) {
	var body struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	ctrl, err := h.withForm(c, func(_ booking.Definition, ctrl *form.Controller) error {
		return ctrl.SetValue(c.Param("name"), body.Value)
	})
	h.respondForm(c, http.StatusOK, ctrl, err)
}

// SelectPayment handles POST /api/forms/:service/payment and opens the instructions modal.
func (h *BookingHandler) SelectPayment(c *gin.Context) {
	var body struct {
		Method string `json:"method"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	ctrl, err := h.withForm(c, func(_ booking.Definition, ctrl *form.Controller) error {
		return ctrl.SelectPaymentMethod(body.Method)
	})
	h.respondForm(c, http.StatusOK, ctrl, err)
}

// ClosePayment handles POST /api/forms/:service/payment/close ("Continue" in the modal).
func (h *BookingHandler) ClosePayment(c *gin.Context) {
	ctrl, err := h.withForm(c, func(_ booking.Definition, ctrl *form.Controller) error {
		return ctrl.ClosePaymentModal()
	})
	h.respondForm(c, http.StatusOK, ctrl, err)
}

// SetTerms handles POST /api/forms/:service/terms.
func (h *BookingHandler) SetTerms(c *gin.Context) {
	var body struct {
		Accepted bool `json:"accepted"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	ctrl, err := h.withForm(c, func(_ booking.Definition, ctrl *form.Controller) error {
		ctrl.SetTermsAccepted(body.Accepted)
		return nil
	})
	h.respondForm(c, http.StatusOK, ctrl, err)
}

// Reset handles POST /api/forms/:service/reset.
func (h *BookingHandler) Reset(c *gin.Context) {
	ctrl, err := h.withForm(c, func(_ booking.Definition, ctrl *form.Controller) error {
		ctrl.Reset()
		return nil
	})
	h.respondForm(c, http.StatusOK, ctrl, err)
}

// Submit handles POST /api/forms/:service/submit. A second submit while the
// first is outstanding is refused without touching the backend. The form lock
// is held to check the gates and again to reset the form, never across the
// backend call.
func (h *BookingHandler) Submit(c *gin.Context) {
	def, ok := booking.Lookup(c.Param("service"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown service"})
		return
	}
	ctx := c.Request.Context()
	clientID := middleware.ClientID(c)
	key := formKey(clientID, def.Service)

	if !h.InFlight.Acquire(key) {
		body := gin.H{"error": "A booking is already being submitted"}
		if ctrl, err := h.controller(ctx, clientID, def); err == nil {
			body["form"] = h.view(clientID, ctrl)
		}
		c.JSON(http.StatusConflict, body)
		return
	}
	released := false
	release := func() {
		if !released {
			h.InFlight.Release(key)
			released = true
		}
	}
	defer release()

	var values map[string]string
	ctrl, err := h.withForm(c, func(_ booking.Definition, ctrl *form.Controller) error {
		var err error
		values, err = h.Workflow.Check(ctrl)
		return err
	})
	if err != nil {
		release()
		h.respondForm(c, http.StatusOK, ctrl, err)
		return
	}

	created, err := h.Workflow.Create(ctx, clientID, def, values)
	if err != nil {
		release()
		ctrl, _ = h.controller(ctx, clientID, def)
		h.respondForm(c, http.StatusOK, ctrl, err)
		return
	}

	var outcome *booking.Outcome
	ctrl, err = h.withForm(c, func(def booking.Definition, ctrl *form.Controller) error {
		outcome = h.Workflow.Finish(def, ctrl, created)
		return nil
	})
	release()
	h.Workflow.Notify(ctx, *created)
	if err != nil {
		// The booking exists; only the draft could not be reset.
		getLogger(c).Error("Failed to reset form after booking", zap.String("service", def.Service), zap.Error(err))
		c.JSON(http.StatusCreated, gin.H{
			"booking":  created,
			"toast":    models.SuccessToast(def.SuccessToast),
			"redirect": utils.HomePath,
		})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"form":     h.view(clientID, ctrl),
		"booking":  outcome.Booking,
		"toast":    outcome.Toast,
		"redirect": outcome.Redirect,
	})
}

// MyBookings handles GET /api/bookings: the signed-in customer's ongoing and past bookings.
func (h *BookingHandler) MyBookings(c *gin.Context) {
	logger := getLogger(c)
	ctx := c.Request.Context()

	token, err := h.Sessions.Token(ctx, middleware.ClientID(c))
	if err != nil {
		logger.Error("Failed to read session token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load bookings"})
		return
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": booking.MsgNotAuthenticated})
		return
	}

	list, err := h.Backend.UserBookings(ctx, token)
	if err != nil {
		logger.Error("Failed to fetch user bookings", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": backend.Message(err, "Failed to load bookings")})
		return
	}
	c.JSON(http.StatusOK, booking.SplitUserBookings(list))
}
