package booking

import (
	"context"
	"time"

	"mightymoves/models"
	"mightymoves/services/backend"
	"mightymoves/services/form"
	"mightymoves/services/notification"
	"mightymoves/services/session"
	"mightymoves/utils"

	"go.uber.org/zap"
)

// Outcome is what the client does after a successful submission.
type Outcome struct {
	Booking  *models.Booking `json:"booking,omitempty"`
	Toast    *models.Toast   `json:"toast"`
	Redirect string          `json:"redirect"`
}

// Workflow turns a completed booking form into a backend booking.
type Workflow struct {
	Backend  backend.Client
	Sessions session.Store
	Notifier notification.Notifier
	Logger   *zap.Logger
	now      func() time.Time
}

func NewWorkflow(client backend.Client, sessions session.Store, notifier notification.Notifier, logger *zap.Logger) *Workflow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workflow{
		Backend:  client,
		Sessions: sessions,
		Notifier: notifier,
		Logger:   logger,
		now:      time.Now,
	}
}

// Submit runs the form's gates and, when they pass, creates the booking.
// On success the form is reset and its success indicator set. On failure the
// form keeps its values so the user can retry.
func (w *Workflow) Submit(ctx context.Context, clientID string, def Definition, ctrl *form.Controller) (*Outcome, error) {
	values, err := w.Check(ctrl)
	if err != nil {
		return nil, err
	}
	created, err := w.Create(ctx, clientID, def, values)
	if err != nil {
		return nil, err
	}
	out := w.Finish(def, ctrl, created)
	w.Notify(ctx, *created)
	return out, nil
}

// Check runs the form's gates, reporting a failure as a validation error.
func (w *Workflow) Check(ctrl *form.Controller) (map[string]string, error) {
	values, err := ctrl.Check()
	if err != nil {
		if verr, ok := form.AsValidation(err); ok {
			return nil, &WorkflowError{Code: CodeValidation, Message: verr.Message, Err: verr}
		}
		return nil, err
	}
	return values, nil
}

// Create sends a checked value map to the backend. It does not touch the
// form, so callers can run it without holding the form.
func (w *Workflow) Create(ctx context.Context, clientID string, def Definition, values map[string]string) (*models.Booking, error) {
	token, err := w.Sessions.Token(ctx, clientID)
	if err != nil {
		return nil, NewNetworkError(MsgSubmitFailed, err)
	}
	if token == "" {
		return nil, NewNotAuthenticatedError()
	}

	req := def.Build(values, w.now())
	b, err := w.Backend.CreateBooking(ctx, token, req)
	if err != nil {
		w.Logger.Error("Failed to create booking",
			zap.String("service", def.Service),
			zap.String("clientID", clientID),
			zap.Error(err),
		)
		return nil, NewNetworkError(backend.Message(err, MsgSubmitFailed), err)
	}
	if b == nil {
		b = snapshot(req)
	}
	return b, nil
}

// Finish resets the form after a created booking and shows the success indicator.
func (w *Workflow) Finish(def Definition, ctrl *form.Controller, created *models.Booking) *Outcome {
	ctrl.MarkSubmitted()
	ctrl.Reset()
	w.Logger.Info("Booking created",
		zap.String("service", def.Service),
		zap.String("bookingID", created.ID.String()),
		zap.Float64("price", created.Price),
	)
	return &Outcome{
		Booking:  created,
		Toast:    models.SuccessToast(def.SuccessToast),
		Redirect: utils.HomePath,
	}
}

// Notify tells the admin feed about a new booking. Delivery failures are logged only.
func (w *Workflow) Notify(ctx context.Context, created models.Booking) {
	if w.Notifier == nil {
		return
	}
	if err := w.Notifier.BookingCreated(ctx, created); err != nil {
		w.Logger.Warn("Admin notification not delivered", zap.String("bookingID", created.ID.String()), zap.Error(err))
	}
}

// snapshot stands in for the created booking when the backend echoes nothing back.
func snapshot(req models.CreateBookingRequest) *models.Booking {
	details := make(models.BookingDetails, len(req.Details))
	for k, v := range req.Details {
		details[k] = v
	}
	return &models.Booking{
		ServiceType:   string(req.ServiceType),
		Status:        models.StatusPending,
		Date:          req.Date,
		Address:       req.Address,
		Price:         float64(req.Price),
		PaymentMethod: req.PaymentMethod,
		Details:       details,
	}
}
