package form

import (
	"errors"
	"fmt"
)

// Reason classifies a rejected form action.
type Reason string

const (
	ReasonMissingField    Reason = "missingField"
	ReasonMissingPayment  Reason = "missingPaymentMethod"
	ReasonUnacknowledged  Reason = "paymentNotAcknowledged"
	ReasonTermsNotChecked Reason = "termsNotAccepted"
	ReasonUnknownField    Reason = "unknownField"
	ReasonInvalidOption   Reason = "invalidOption"
	ReasonInvalidDateTime Reason = "invalidDateTime"
	ReasonInvalidPayment  Reason = "invalidPaymentMethod"
)

// Inline messages shown above the submit button.
const (
	MsgFillAllFields   = "Please fill in all fields."
	MsgSelectPayment   = "Please select a payment method."
	MsgReviewPayment   = "Please review payment instructions and click Continue."
	MsgTermsRequired   = "You must agree to the Terms and Conditions."
	msgUnknownField    = "Unknown field."
	msgInvalidOption   = "Please choose one of the listed options."
	msgInvalidDateTime = "Please enter a valid date and time."
	msgInvalidPayment  = "Unsupported payment method."
)

// ValidationError is a rejected input or a failed submit gate.
type ValidationError struct {
	Reason  Reason `json:"reason"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s (%s): %s", e.Reason, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

// ErrModalNotOpen is returned when closing a payment modal that is not showing.
var ErrModalNotOpen = errors.New("payment modal is not open")

// ErrUnknownForm is returned for a service without a form.
var ErrUnknownForm = errors.New("unknown booking form")

// AsValidation unwraps a ValidationError from err.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
