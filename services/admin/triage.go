package admin

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"mightymoves/models"
	"mightymoves/services/backend"
	"mightymoves/services/notification"
	"mightymoves/services/session"

	"go.uber.org/zap"
)

// NotificationPreview is how many notifications show before "Show All".
const NotificationPreview = 2

// BoardIdleTTL is how long an unused admin board is kept before it is dropped.
const BoardIdleTTL = 12 * time.Hour

// boards are swept for idle entries at most this often.
const sweepInterval = time.Minute

// Result is a successful admin command: the patched booking and its toast.
type Result struct {
	Booking models.Booking `json:"booking"`
	Toast   *models.Toast  `json:"toast"`
}

// Triage holds every admin client's board and issues admin commands to the backend.
// Local state only changes after the backend accepts a command.
type Triage struct {
	Backend  backend.Client
	Sessions session.Store
	Feed     notification.Feed
	Logger   *zap.Logger

	// IdleTTL bounds how long an unused board is kept.
	IdleTTL time.Duration

	mu        sync.Mutex
	boards    map[string]*Board
	lastSweep time.Time
	now       func() time.Time
}

func NewTriage(client backend.Client, sessions session.Store, feed notification.Feed, logger *zap.Logger) *Triage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Triage{
		Backend:  client,
		Sessions: sessions,
		Feed:     feed,
		Logger:   logger,
		IdleTTL:  BoardIdleTTL,
		boards:   make(map[string]*Board),
		now:      time.Now,
	}
}

// board returns the client's board, creating it. Callers hold t.mu and must
// only create boards for authenticated admin actions.
func (t *Triage) board(clientID string) *Board {
	t.sweep()
	b, ok := t.boards[clientID]
	if !ok {
		b = newBoard()
		t.boards[clientID] = b
	}
	b.touched = t.now()
	return b
}

// peek returns the client's board without creating one. Callers hold t.mu.
func (t *Triage) peek(clientID string) (*Board, bool) {
	t.sweep()
	b, ok := t.boards[clientID]
	if ok {
		b.touched = t.now()
	}
	return b, ok
}

// sweep drops boards left idle longer than IdleTTL. Callers hold t.mu.
func (t *Triage) sweep() {
	now := t.now()
	if now.Sub(t.lastSweep) < sweepInterval {
		return
	}
	t.lastSweep = now
	for id, b := range t.boards {
		if now.Sub(b.touched) > t.IdleTTL {
			delete(t.boards, id)
		}
	}
}

// Forget drops the client's board, e.g. when its session ends.
func (t *Triage) Forget(clientID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.boards, clientID)
}

func (t *Triage) token(ctx context.Context, clientID string) (string, error) {
	token, err := t.Sessions.Token(ctx, clientID)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", ErrNotAuthenticated
	}
	return token, nil
}

// Load replaces the board's booking list with a fresh copy from the backend.
func (t *Triage) Load(ctx context.Context, clientID string) ([]models.Booking, error) {
	token, err := t.token(ctx, clientID)
	if err != nil {
		return nil, err
	}
	list, err := t.Backend.AllBookings(ctx, token)
	if err != nil {
		t.Logger.Error("Failed to load admin bookings", zap.String("clientID", clientID), zap.Error(err))
		return nil, actionError("loadFailed", "Failed to load dashboard data", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	b := t.board(clientID)
	b.Bookings = list
	b.Loaded = true
	return copyBookings(list), nil
}

func (t *Triage) snapshot(ctx context.Context, clientID string, refresh bool) ([]models.Booking, error) {
	t.mu.Lock()
	if b, ok := t.peek(clientID); ok && b.Loaded && !refresh {
		list := copyBookings(b.Bookings)
		t.mu.Unlock()
		return list, nil
	}
	t.mu.Unlock()
	return t.Load(ctx, clientID)
}

// Bookings returns the filtered board list, loading it on first use or when refresh is set.
func (t *Triage) Bookings(ctx context.Context, clientID string, f models.BookingFilter, refresh bool) ([]models.Booking, error) {
	list, err := t.snapshot(ctx, clientID, refresh)
	if err != nil {
		return nil, err
	}
	return Filter(list, f), nil
}

func (t *Triage) Stats(ctx context.Context, clientID string, now time.Time) (models.BookingStats, error) {
	list, err := t.snapshot(ctx, clientID, false)
	if err != nil {
		return models.BookingStats{}, err
	}
	return ComputeStats(list, now), nil
}

func (t *Triage) History(ctx context.Context, clientID string, all bool) ([]models.Booking, error) {
	list, err := t.snapshot(ctx, clientID, false)
	if err != nil {
		return nil, err
	}
	return History(list, all), nil
}

func (t *Triage) lookup(ctx context.Context, clientID string, id models.BookingID) (models.Booking, error) {
	list, err := t.snapshot(ctx, clientID, false)
	if err != nil {
		return models.Booking{}, err
	}
	for _, b := range list {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Booking{}, ErrBookingNotFound
}

// OpenModal builds the edit dialog for one field, prefilled with the booking's current value.
func (t *Triage) OpenModal(ctx context.Context, clientID string, id models.BookingID, kind models.ModalKind) (*models.AdminModal, error) {
	b, err := t.lookup(ctx, clientID, id)
	if err != nil {
		return nil, err
	}
	m := &models.AdminModal{Kind: kind, Title: kind.Title(), BookingID: b.ID, Booking: b}
	switch kind {
	case models.ModalStatus:
		m.Value = string(b.Status)
		for _, s := range models.BookingStatuses {
			m.Options = append(m.Options, string(s))
		}
		m.Suggested = b.Status.Next()
	case models.ModalWorker:
		m.Value = b.Worker()
	case models.ModalNotes:
		m.Value = b.NoteText()
	default:
		return nil, fmt.Errorf("unknown modal kind %q", kind)
	}
	return m, nil
}

// Confirm sends the modal's value to the backend and patches the board on success.
func (t *Triage) Confirm(ctx context.Context, clientID string, id models.BookingID, kind models.ModalKind, value string) (*Result, error) {
	b, err := t.lookup(ctx, clientID, id)
	if err != nil {
		return nil, err
	}
	token, err := t.token(ctx, clientID)
	if err != nil {
		return nil, err
	}

	patch := Patch{ID: id}
	var msg string
	switch kind {
	case models.ModalStatus:
		status, perr := models.ParseBookingStatus(value)
		if perr != nil {
			return nil, actionError("invalidStatus", "Please select a valid status.", perr)
		}
		if err := t.Backend.UpdateBookingStatus(ctx, token, id, status); err != nil {
			return nil, t.failed(clientID, id, "statusUpdateFailed", "Failed to update status", err)
		}
		patch.Status = &status
		msg = fmt.Sprintf("Booking #%s status updated to %s", id, status)
	case models.ModalWorker:
		worker := strings.TrimSpace(value)
		if worker == "" {
			return nil, actionError("invalidWorker", "Please enter a worker name.", nil)
		}
		if err := t.Backend.AssignWorker(ctx, token, id, worker); err != nil {
			return nil, t.failed(clientID, id, "assignFailed", "Failed to assign worker", err)
		}
		patch.AssignedWorker = &worker
		msg = fmt.Sprintf("Worker %s assigned to booking #%s", worker, id)
	case models.ModalNotes:
		if err := t.Backend.UpdateNotes(ctx, token, id, value); err != nil {
			return nil, t.failed(clientID, id, "notesFailed", "Failed to update notes", err)
		}
		patch.Notes = &value
		msg = fmt.Sprintf("Notes updated for booking #%s", id)
	default:
		return nil, fmt.Errorf("unknown modal kind %q", kind)
	}

	updated := t.apply(clientID, b, patch)
	return &Result{Booking: updated, Toast: models.SuccessToast(msg)}, nil
}

// Approve moves a Pending booking forward and merges the backend's tracking number.
func (t *Triage) Approve(ctx context.Context, clientID string, id models.BookingID) (*Result, error) {
	b, err := t.lookup(ctx, clientID, id)
	if err != nil {
		return nil, err
	}
	if b.Status != models.StatusPending {
		return nil, ErrNotPending
	}
	token, err := t.token(ctx, clientID)
	if err != nil {
		return nil, err
	}
	res, err := t.Backend.ApproveBooking(ctx, token, id)
	if err != nil {
		return nil, t.failed(clientID, id, "approveFailed", "Failed to approve booking", err)
	}

	patch := Patch{ID: id, Status: &res.Status}
	if res.TrackingNumber != "" {
		patch.TrackingNumber = &res.TrackingNumber
	}
	updated := t.apply(clientID, b, patch)
	return &Result{Booking: updated, Toast: models.SuccessToast(fmt.Sprintf("Booking #%s approved!", id))}, nil
}

// apply patches the board after the backend accepted a command. If a reload
// dropped the booking meanwhile, the patch is applied to base, the copy the
// command was issued against.
func (t *Triage) apply(clientID string, base models.Booking, p Patch) models.Booking {
	t.mu.Lock()
	defer t.mu.Unlock()
	b := t.board(clientID)
	b.Bookings = Reduce(b.Bookings, p)
	if updated, ok := b.find(p.ID); ok {
		return updated
	}
	return Reduce([]models.Booking{base}, p)[0]
}

func (t *Triage) failed(clientID string, id models.BookingID, code, msg string, err error) error {
	t.Logger.Warn("Admin command failed",
		zap.String("clientID", clientID),
		zap.String("bookingID", id.String()),
		zap.String("code", code),
		zap.Error(err),
	)
	return actionError(code, backend.Message(err, msg), err)
}

// Notifications lists the admin feed with this client's read state.
func (t *Triage) Notifications(ctx context.Context, clientID string, all bool) ([]models.NotificationView, int, error) {
	list, err := t.Feed.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	t.mu.Lock()
	var read map[string]bool
	if b, ok := t.peek(clientID); ok {
		read = b.Read
	}
	views := make([]models.NotificationView, 0, len(list))
	unread := 0
	for i, n := range list {
		v := models.NotificationView{Index: i, Notification: n, Read: read[n.ID]}
		if !v.Read {
			unread++
		}
		views = append(views, v)
	}
	t.mu.Unlock()

	if !all && len(views) > NotificationPreview {
		views = views[:NotificationPreview]
	}
	return views, unread, nil
}

func (t *Triage) notificationAt(ctx context.Context, index int) (models.Notification, error) {
	list, err := t.Feed.List(ctx)
	if err != nil {
		return models.Notification{}, err
	}
	if index < 0 || index >= len(list) {
		return models.Notification{}, ErrNotificationNotFound
	}
	return list[index], nil
}

// OpenNotification returns the notification at index and marks it read.
func (t *Triage) OpenNotification(ctx context.Context, clientID string, index int) (*models.NotificationView, error) {
	n, err := t.notificationAt(ctx, index)
	if err != nil {
		return nil, err
	}
	t.markRead(clientID, n.ID)
	return &models.NotificationView{Index: index, Notification: n, Read: true}, nil
}

// MarkRead marks the notification at index read without opening it.
func (t *Triage) MarkRead(ctx context.Context, clientID string, index int) error {
	n, err := t.notificationAt(ctx, index)
	if err != nil {
		return err
	}
	t.markRead(clientID, n.ID)
	return nil
}

func (t *Triage) markRead(clientID, id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.board(clientID).Read[id] = true
}

// ClearNotifications empties the shared feed and this client's read set.
func (t *Triage) ClearNotifications(ctx context.Context, clientID string) error {
	if err := t.Feed.Clear(ctx); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if b, ok := t.peek(clientID); ok {
		b.Read = make(map[string]bool)
	}
	return nil
}

func copyBookings(in []models.Booking) []models.Booking {
	out := make([]models.Booking, len(in))
	copy(out, in)
	return out
}
