package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ServiceType is the canonical service line of a booking.
type ServiceType string

const (
	ServiceMoving    ServiceType = "Moving"
	ServiceWaste     ServiceType = "Waste"
	ServiceLogistics ServiceType = "Logistics"
)

// BookingStatus is the backend-owned lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending    BookingStatus = "Pending"
	StatusInProgress BookingStatus = "In Progress"
	StatusCompleted  BookingStatus = "Completed"
	StatusCancelled  BookingStatus = "Cancelled"
)

// BookingStatuses lists every status in display order.
var BookingStatuses = []BookingStatus{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

// ParseBookingStatus validates a status string.
func ParseBookingStatus(s string) (BookingStatus, error) {
	for _, st := range BookingStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown booking status %q", s)
}

// Next returns the transitions the backend normally accepts from s.
// The portal only uses them as hints; the backend decides.
func (s BookingStatus) Next() []BookingStatus {
	switch s {
	case StatusPending:
		return []BookingStatus{StatusInProgress, StatusCancelled}
	case StatusInProgress:
		return []BookingStatus{StatusCompleted, StatusCancelled}
	default:
		return nil
	}
}

// Ongoing reports whether the booking still needs work.
func (s BookingStatus) Ongoing() bool {
	return s == StatusPending || s == StatusInProgress
}

// BookingID accepts both numeric and string ids from the backend.
type BookingID string

func (id *BookingID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = BookingID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("booking id: %w", err)
	}
	*id = BookingID(n.String())
	return nil
}

func (id BookingID) String() string { return string(id) }

// BookingDetails is the service-specific payload. The backend sometimes stores
// it as a JSON-encoded string; both forms decode to the same map.
type BookingDetails map[string]any

func (d *BookingDetails) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		if raw == "" {
			*d = nil
			return nil
		}
		data = []byte(raw)
	}
	m := map[string]any{}
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("booking details: %w", err)
	}
	*d = m
	return nil
}

// Booking is a server-owned booking record mirrored locally after a fetch.
type Booking struct {
	ID             BookingID      `json:"id"`
	ServiceType    string         `json:"service_type"`
	Status         BookingStatus  `json:"status"`
	Date           string         `json:"date"`
	Customer       string         `json:"user"`
	Address        string         `json:"address"`
	Phone          string         `json:"phone,omitempty"`
	Price          float64        `json:"price"`
	AssignedWorker *string        `json:"assigned_worker"`
	Notes          *string        `json:"notes"`
	TrackingNumber *string        `json:"tracking_id"`
	PaymentMethod  string         `json:"payment_method,omitempty"`
	Details        BookingDetails `json:"details,omitempty"`
}

// Worker returns the assigned worker or "".
func (b Booking) Worker() string {
	if b.AssignedWorker == nil {
		return ""
	}
	return *b.AssignedWorker
}

// NoteText returns the notes or "".
func (b Booking) NoteText() string {
	if b.Notes == nil {
		return ""
	}
	return *b.Notes
}

// Tracking returns the tracking number or "".
func (b Booking) Tracking() string {
	if b.TrackingNumber == nil {
		return ""
	}
	return *b.TrackingNumber
}

// CreateBookingRequest is the payload sent to the backend's create-booking endpoint.
type CreateBookingRequest struct {
	ServiceType   ServiceType       `json:"service_type"`
	Address       string            `json:"address"`
	Date          string            `json:"date"`
	Price         int               `json:"price"`
	PaymentMethod string            `json:"payment_method,omitempty"`
	Details       map[string]string `json:"details"`
}

// ApproveResponse is what the backend returns when a booking is approved.
type ApproveResponse struct {
	Status         BookingStatus `json:"status"`
	TrackingNumber string        `json:"tracking_id"`
}

// UserBookings is the customer dashboard split.
type UserBookings struct {
	Ongoing []Booking `json:"ongoing"`
	History []Booking `json:"history"`
}
