package tracking

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"mightymoves/models"
	"mightymoves/services/backend"

	"go.uber.org/zap"
)

const (
	MsgNotFound    = "No location found for this tracking ID."
	MsgFetchFailed = "Failed to fetch tracking info."
	MsgEmptyID     = "Please enter a tracking ID."
	msgBadLocation = "Latitude must be within ±90 and longitude within ±180."
)

var (
	ErrLocationNotFound = errors.New(MsgNotFound)
	ErrEmptyTrackingID  = errors.New(MsgEmptyID)
	ErrInvalidLocation  = errors.New(msgBadLocation)
)

// LookupError is a failed tracking call; Message is safe to show the user.
type LookupError struct {
	Message string
	Err     error
}

func (e *LookupError) Error() string { return e.Message }

func (e *LookupError) Unwrap() error { return e.Err }

// Locator resolves a tracking id to its last known position. A nil location means unknown.
type Locator interface {
	TrackBooking(ctx context.Context, trackingID string) (*models.Location, error)
}

// LocationUpdater records a new position for a tracking id.
type LocationUpdater interface {
	UpdateLocation(ctx context.Context, token, trackingID string, loc models.Location) error
}

type Tracker struct {
	Locator Locator
	Updater LocationUpdater
	Logger  *zap.Logger
}

func NewTracker(locator Locator, updater LocationUpdater, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{Locator: locator, Updater: updater, Logger: logger}
}

// Lookup makes a single backend call for the trimmed id.
func (t *Tracker) Lookup(ctx context.Context, trackingID string) (*models.Location, error) {
	id := strings.TrimSpace(trackingID)
	if id == "" {
		return nil, ErrEmptyTrackingID
	}
	loc, err := t.Locator.TrackBooking(ctx, id)
	if err != nil {
		if backend.IsStatus(err, http.StatusNotFound) && backend.Message(err, "") == "" {
			return nil, ErrLocationNotFound
		}
		t.Logger.Warn("Tracking lookup failed", zap.String("trackingID", id), zap.Error(err))
		return nil, &LookupError{Message: backend.Message(err, MsgFetchFailed), Err: err}
	}
	if loc == nil {
		return nil, ErrLocationNotFound
	}
	return loc, nil
}

// UpdateLocation validates and forwards a position report.
func (t *Tracker) UpdateLocation(ctx context.Context, token, trackingID string, loc models.Location) error {
	id := strings.TrimSpace(trackingID)
	if id == "" {
		return ErrEmptyTrackingID
	}
	if loc.Lat < -90 || loc.Lat > 90 || loc.Lng < -180 || loc.Lng > 180 {
		return ErrInvalidLocation
	}
	if err := t.Updater.UpdateLocation(ctx, token, id, loc); err != nil {
		t.Logger.Warn("Location update failed", zap.String("trackingID", id), zap.Error(err))
		return &LookupError{Message: backend.Message(err, "Failed to update location."), Err: err}
	}
	return nil
}

// RandomLocator places every tracking id somewhere random near Centre.
// It stands in for the backend in demos and tests.
type RandomLocator struct {
	Centre models.Location
	// Spread is the maximum offset in degrees on each axis.
	Spread float64

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandomLocator(centre models.Location, spread float64, seed int64) *RandomLocator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomLocator{Centre: centre, Spread: spread, rnd: rand.New(rand.NewSource(seed))}
}

func (r *RandomLocator) TrackBooking(_ context.Context, trackingID string) (*models.Location, error) {
	if strings.TrimSpace(trackingID) == "" {
		return nil, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return &models.Location{
		Lat: r.Centre.Lat + (r.rnd.Float64()*2-1)*r.Spread,
		Lng: r.Centre.Lng + (r.rnd.Float64()*2-1)*r.Spread,
	}, nil
}
