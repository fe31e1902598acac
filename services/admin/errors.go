package admin

import (
	"errors"
	"fmt"

	"mightymoves/models"
)

var (
	ErrNotAuthenticated     = errors.New("admin session has no backend token")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrNotPending           = errors.New("only pending bookings can be approved")
	ErrNotificationNotFound = errors.New("notification not found")
)

// ActionError is a failed admin command. Message is the toast shown to the admin.
type ActionError struct {
	Code    string
	Message string
	Err     error
}

func (e *ActionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ActionError) Unwrap() error { return e.Err }

func (e *ActionError) Toast() *models.Toast { return models.ErrorToast(e.Message) }

func actionError(code, msg string, err error) error {
	return &ActionError{Code: code, Message: msg, Err: err}
}
