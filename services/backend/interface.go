package backend

import (
	"context"

	"mightymoves/models"
)

// Client is the typed surface of the external booking backend.
// It owns no state; every call is a single request/response.
type Client interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	UserInfo(ctx context.Context, token string) (*models.User, error)

	CreateBooking(ctx context.Context, token string, req models.CreateBookingRequest) (*models.Booking, error)
	UserBookings(ctx context.Context, token string) ([]models.Booking, error)
	AllBookings(ctx context.Context, token string) ([]models.Booking, error)
	ApproveBooking(ctx context.Context, token string, id models.BookingID) (*models.ApproveResponse, error)
	UpdateBookingStatus(ctx context.Context, token string, id models.BookingID, status models.BookingStatus) error
	AssignWorker(ctx context.Context, token string, id models.BookingID, worker string) error
	UpdateNotes(ctx context.Context, token string, id models.BookingID, notes string) error

	TrackBooking(ctx context.Context, trackingID string) (*models.Location, error)
	UpdateLocation(ctx context.Context, token, trackingID string, loc models.Location) error

	Ping(ctx context.Context) error
}
