package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mightymoves/models"

	"go.uber.org/zap"
)

const maxResponseBytes = 1 << 20

// Backend routes consumed by the portal.
const (
	pathRegister      = "/users/register"
	pathLogin         = "/users/login"
	pathUserInfo      = "/users/me"
	pathBookings      = "/bookings"
	pathUserBookings  = "/bookings/user"
	pathTrack         = "/bookings/track/"
	pathHealth        = "/health"
	suffixApprove     = "/approve"
	suffixStatus      = "/status"
	suffixAssign      = "/assign"
	suffixNotes       = "/notes"
	suffixLocation    = "/location"
	authorizationHead = "Authorization"
)

// HTTPClient talks to the booking backend over REST.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewHTTPClient builds a client for baseURL. timeout bounds each request.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func bookingPath(id models.BookingID, suffix string) string {
	return pathBookings + "/" + url.PathEscape(id.String()) + suffix
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(authorizationHead, "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return &APIError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &APIError{Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}
	c.logger.Debug("backend request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: serverMessage(raw)}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{Status: resp.StatusCode, Err: fmt.Errorf("decode %s %s: %w", method, path, err)}
	}
	return nil
}

// serverMessage extracts {"error": "..."} or {"message": "..."} from an error body.
func serverMessage(raw []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Message
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.do(ctx, http.MethodPost, pathRegister, "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.do(ctx, http.MethodPost, pathLogin, "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UserInfo(ctx context.Context, token string) (*models.User, error) {
	var out struct {
		models.User
		Wrapped *models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, pathUserInfo, token, nil, &out); err != nil {
		return nil, err
	}
	if out.Wrapped != nil {
		return out.Wrapped, nil
	}
	return &out.User, nil
}

func (c *HTTPClient) CreateBooking(ctx context.Context, token string, req models.CreateBookingRequest) (*models.Booking, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, pathBookings, token, req, &raw); err != nil {
		return nil, err
	}
	return decodeBooking(raw)
}

func (c *HTTPClient) UserBookings(ctx context.Context, token string) ([]models.Booking, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, pathUserBookings, token, nil, &raw); err != nil {
		return nil, err
	}
	return decodeBookings(raw)
}

func (c *HTTPClient) AllBookings(ctx context.Context, token string) ([]models.Booking, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, pathBookings, token, nil, &raw); err != nil {
		return nil, err
	}
	return decodeBookings(raw)
}

func (c *HTTPClient) ApproveBooking(ctx context.Context, token string, id models.BookingID) (*models.ApproveResponse, error) {
	var out models.ApproveResponse
	if err := c.do(ctx, http.MethodPost, bookingPath(id, suffixApprove), token, nil, &out); err != nil {
		return nil, err
	}
	if out.Status == "" {
		out.Status = models.StatusInProgress
	}
	return &out, nil
}

func (c *HTTPClient) UpdateBookingStatus(ctx context.Context, token string, id models.BookingID, status models.BookingStatus) error {
	body := map[string]string{"status": string(status)}
	return c.do(ctx, http.MethodPut, bookingPath(id, suffixStatus), token, body, nil)
}

func (c *HTTPClient) AssignWorker(ctx context.Context, token string, id models.BookingID, worker string) error {
	body := map[string]string{"assigned_worker": worker}
	return c.do(ctx, http.MethodPut, bookingPath(id, suffixAssign), token, body, nil)
}

func (c *HTTPClient) UpdateNotes(ctx context.Context, token string, id models.BookingID, notes string) error {
	body := map[string]string{"notes": notes}
	return c.do(ctx, http.MethodPut, bookingPath(id, suffixNotes), token, body, nil)
}

func (c *HTTPClient) TrackBooking(ctx context.Context, trackingID string) (*models.Location, error) {
	var out models.TrackingResponse
	if err := c.do(ctx, http.MethodGet, pathTrack+url.PathEscape(trackingID), "", nil, &out); err != nil {
		return nil, err
	}
	return out.Location, nil
}

func (c *HTTPClient) UpdateLocation(ctx context.Context, token, trackingID string, loc models.Location) error {
	return c.do(ctx, http.MethodPut, pathTrack+url.PathEscape(trackingID)+suffixLocation, token, loc, nil)
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, pathHealth, "", nil, nil)
}

// decodeBooking accepts a bare booking or {"booking": {...}}. An empty body yields nil.
func decodeBooking(raw json.RawMessage) (*models.Booking, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	var envelope struct {
		Booking *models.Booking `json:"booking"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Booking != nil {
		return envelope.Booking, nil
	}
	var b models.Booking
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, &APIError{Status: http.StatusOK, Err: fmt.Errorf("decode booking: %w", err)}
	}
	return &b, nil
}

// decodeBookings accepts a bare array or {"bookings": [...]}.
func decodeBookings(raw json.RawMessage) ([]models.Booking, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []models.Booking{}, nil
	}
	if trimmed[0] == '[' {
		var list []models.Booking
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, &APIError{Status: http.StatusOK, Err: fmt.Errorf("decode bookings: %w", err)}
		}
		return list, nil
	}
	var envelope struct {
		Bookings []models.Booking `json:"bookings"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, &APIError{Status: http.StatusOK, Err: fmt.Errorf("decode bookings: %w", err)}
	}
	if envelope.Bookings == nil {
		return []models.Booking{}, nil
	}
	return envelope.Bookings, nil
}
