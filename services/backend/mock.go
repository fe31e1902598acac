package backend

import (
	"context"
	"sync"

	"mightymoves/models"
)

// MockClient is a Client test double. Unset funcs return zero values.
type MockClient struct {
	RegisterFunc            func(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	LoginFunc               func(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	UserInfoFunc            func(ctx context.Context, token string) (*models.User, error)
	CreateBookingFunc       func(ctx context.Context, token string, req models.CreateBookingRequest) (*models.Booking, error)
	UserBookingsFunc        func(ctx context.Context, token string) ([]models.Booking, error)
	AllBookingsFunc         func(ctx context.Context, token string) ([]models.Booking, error)
	ApproveBookingFunc      func(ctx context.Context, token string, id models.BookingID) (*models.ApproveResponse, error)
	UpdateBookingStatusFunc func(ctx context.Context, token string, id models.BookingID, status models.BookingStatus) error
	AssignWorkerFunc        func(ctx context.Context, token string, id models.BookingID, worker string) error
	UpdateNotesFunc         func(ctx context.Context, token string, id models.BookingID, notes string) error
	TrackBookingFunc        func(ctx context.Context, trackingID string) (*models.Location, error)
	UpdateLocationFunc      func(ctx context.Context, token, trackingID string, loc models.Location) error
	PingFunc                func(ctx context.Context) error

	mu    sync.Mutex
	calls map[string]int
}

var _ Client = (*MockClient)(nil)

func (m *MockClient) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[name]++
}

// Calls returns how many times the named operation was invoked.
func (m *MockClient) Calls(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

// TotalCalls returns the number of invocations across all operations.
func (m *MockClient) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

func (m *MockClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	m.record("Register")
	if m.RegisterFunc == nil {
		return &models.AuthResponse{}, nil
	}
	return m.RegisterFunc(ctx, req)
}

func (m *MockClient) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	m.record("Login")
	if m.LoginFunc == nil {
		return &models.AuthResponse{}, nil
	}
	return m.LoginFunc(ctx, req)
}

func (m *MockClient) UserInfo(ctx context.Context, token string) (*models.User, error) {
	m.record("UserInfo")
	if m.UserInfoFunc == nil {
		return &models.User{}, nil
	}
	return m.UserInfoFunc(ctx, token)
}

func (m *MockClient) CreateBooking(ctx context.Context, token string, req models.CreateBookingRequest) (*models.Booking, error) {
	m.record("CreateBooking")
	if m.CreateBookingFunc == nil {
		return nil, nil
	}
	return m.CreateBookingFunc(ctx, token, req)
}

func (m *MockClient) UserBookings(ctx context.Context, token string) ([]models.Booking, error) {
	m.record("UserBookings")
	if m.UserBookingsFunc == nil {
		return nil, nil
	}
	return m.UserBookingsFunc(ctx, token)
}

func (m *MockClient) AllBookings(ctx context.Context, token string) ([]models.Booking, error) {
	m.record("AllBookings")
	if m.AllBookingsFunc == nil {
		return nil, nil
	}
	return m.AllBookingsFunc(ctx, token)
}

func (m *MockClient) ApproveBooking(ctx context.Context, token string, id models.BookingID) (*models.ApproveResponse, error) {
	m.record("ApproveBooking")
	if m.ApproveBookingFunc == nil {
		return &models.ApproveResponse{Status: models.StatusInProgress}, nil
	}
	return m.ApproveBookingFunc(ctx, token, id)
}

func (m *MockClient) UpdateBookingStatus(ctx context.Context, token string, id models.BookingID, status models.BookingStatus) error {
	m.record("UpdateBookingStatus")
	if m.UpdateBookingStatusFunc == nil {
		return nil
	}
	return m.UpdateBookingStatusFunc(ctx, token, id, status)
}

func (m *MockClient) AssignWorker(ctx context.Context, token string, id models.BookingID, worker string) error {
	m.record("AssignWorker")
	if m.AssignWorkerFunc == nil {
		return nil
	}
	return m.AssignWorkerFunc(ctx, token, id, worker)
}

func (m *MockClient) UpdateNotes(ctx context.Context, token string, id models.BookingID, notes string) error {
	m.record("UpdateNotes")
	if m.UpdateNotesFunc == nil {
		return nil
	}
	return m.UpdateNotesFunc(ctx, token, id, notes)
}

func (m *MockClient) TrackBooking(ctx context.Context, trackingID string) (*models.Location, error) {
	m.record("TrackBooking")
	if m.TrackBookingFunc == nil {
		return nil, nil
	}
	return m.TrackBookingFunc(ctx, trackingID)
}

func (m *MockClient) UpdateLocation(ctx context.Context, token, trackingID string, loc models.Location) error {
	m.record("UpdateLocation")
	if m.UpdateLocationFunc == nil {
		return nil
	}
	return m.UpdateLocationFunc(ctx, token, trackingID, loc)
}

func (m *MockClient) Ping(ctx context.Context) error {
	m.record("Ping")
	if m.PingFunc == nil {
		return nil
	}
	return m.PingFunc(ctx)
}
