package models

import "time"

// Notification is an admin-facing message, optionally carrying a booking snapshot.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Booking   *Booking  `json:"booking,omitempty"`
}

// NotificationView pairs a notification with its local read state.
type NotificationView struct {
	Index int `json:"index"`
	Notification
	Read bool `json:"read"`
}
