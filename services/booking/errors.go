package booking

import (
	"errors"
	"fmt"

	"mightymoves/models"
)

// Workflow error codes.
const (
	CodeNotAuthenticated     = "notAuthenticated"
	CodeNetworkOrServerError = "networkOrServerError"
	CodeValidation           = "validationError"
)

const (
	MsgNotAuthenticated = "You must be logged in to book a service."
	MsgSubmitFailed     = "Failed to submit booking. Please try again."
)

type WorkflowError struct {
	Code    string
	Message string
	Err     error
}

func (e *WorkflowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *WorkflowError) Unwrap() error { return e.Err }

// Toast is the user-facing message for the failure.
func (e *WorkflowError) Toast() *models.Toast {
	return models.ErrorToast(e.Message)
}

func NewNotAuthenticatedError() error {
	return &WorkflowError{
		Code:    CodeNotAuthenticated,
		Message: MsgNotAuthenticated,
	}
}

func NewNetworkError(msg string, err error) error {
	return &WorkflowError{
		Code:    CodeNetworkOrServerError,
		Message: msg,
		Err:     err,
	}
}

// IsCode reports whether err is a WorkflowError with the given code.
func IsCode(err error, code string) bool {
	var wfErr *WorkflowError
	return errors.As(err, &wfErr) && wfErr.Code == code
}
