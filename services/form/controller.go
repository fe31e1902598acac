package form

import (
	"context"
	"strings"
	"time"

	"mightymoves/models"
)

// PaymentMethodKey is the value-map key carrying the chosen payment method.
const PaymentMethodKey = "paymentMethod"

// DefaultSuccessTTL is how long the success indicator shows after a submit.
const DefaultSuccessTTL = 2 * time.Second

// Schema describes one booking form.
type Schema struct {
	Service      string
	Title        string
	SubmitLabel  string
	Fields       []models.FormField
	RequireTerms bool
}

// Field looks up a declared field by name.
func (s Schema) Field(name string) (models.FormField, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return models.FormField{}, false
}

// State is the persisted part of a form.
type State struct {
	Values        map[string]string    `json:"values"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod,omitempty"`
	ModalOpen     bool                 `json:"modalOpen"`
	Acknowledged  bool                 `json:"acknowledged"`
	TermsAccepted bool                 `json:"termsAccepted"`
	Error         string               `json:"error,omitempty"`
	SuccessUntil  time.Time            `json:"successUntil,omitempty"`
}

// SubmitHandler receives the complete value map, payment method included.
type SubmitHandler func(ctx context.Context, values map[string]string) error

// Controller drives a single booking form. It is not safe for concurrent use;
// callers serialise access per client.
type Controller struct {
	schema     Schema
	state      State
	now        func() time.Time
	successTTL time.Duration
}

type Option func(*Controller)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithSuccessTTL sets how long the success indicator stays visible.
func WithSuccessTTL(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.successTTL = d
		}
	}
}

// NewController resumes a form from state, or starts empty when state is nil.
func NewController(schema Schema, state *State, opts ...Option) *Controller {
	c := &Controller{schema: schema, now: time.Now, successTTL: DefaultSuccessTTL}
	if state != nil {
		c.state = *state
	}
	if c.state.Values == nil {
		c.state.Values = make(map[string]string, len(schema.Fields))
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Schema() Schema { return c.schema }

// State returns a copy of the persisted state.
func (c *Controller) State() State {
	s := c.state
	s.Values = copyValues(c.state.Values)
	return s
}

// Value returns the current value of a field ("" when unset).
func (c *Controller) Value(name string) string {
	if name == PaymentMethodKey {
		return string(c.state.PaymentMethod)
	}
	return c.state.Values[name]
}

// SetValue updates one field. The payment method key is routed to SelectPaymentMethod.
func (c *Controller) SetValue(name, value string) error {
	if name == PaymentMethodKey {
		return c.SelectPaymentMethod(value)
	}
	field, ok := c.schema.Field(name)
	if !ok {
		return &ValidationError{Reason: ReasonUnknownField, Field: name, Message: msgUnknownField}
	}
	if value != "" {
		switch field.Kind {
		case models.FieldSelect:
			if !field.HasOption(value) {
				return &ValidationError{Reason: ReasonInvalidOption, Field: name, Message: msgInvalidOption}
			}
		case models.FieldDateTime:
			if _, err := time.Parse(models.DateTimeLayout, value); err != nil {
				return &ValidationError{Reason: ReasonInvalidDateTime, Field: name, Message: msgInvalidDateTime}
			}
		}
	}
	c.state.Values[name] = value
	c.state.Error = ""
	return nil
}

// SelectPaymentMethod records the method and opens its instructions modal.
// Every selection re-arms the acknowledgement gate.
func (c *Controller) SelectPaymentMethod(method string) error {
	if method == "" {
		c.state.PaymentMethod = ""
		c.state.ModalOpen = false
		c.state.Acknowledged = false
		c.state.Error = ""
		return nil
	}
	m, err := models.ParsePaymentMethod(method)
	if err != nil {
		return &ValidationError{Reason: ReasonInvalidPayment, Field: PaymentMethodKey, Message: msgInvalidPayment}
	}
	c.state.PaymentMethod = m
	c.state.ModalOpen = true
	c.state.Acknowledged = false
	c.state.Error = ""
	return nil
}

// ClosePaymentModal dismisses the instructions and acknowledges the current method.
func (c *Controller) ClosePaymentModal() error {
	if !c.state.ModalOpen {
		return ErrModalNotOpen
	}
	c.state.ModalOpen = false
	c.state.Acknowledged = true
	c.state.Error = ""
	return nil
}

// SetTermsAccepted records the terms checkbox. Like every accepted edit it
// clears a stale inline error.
func (c *Controller) SetTermsAccepted(accepted bool) {
	c.state.TermsAccepted = accepted
	c.state.Error = ""
}

// Submit checks the gates in order and, when all pass, calls handler with the
// full value map. A gate failure sets the inline error and never calls handler.
// The success indicator is only shown when handler returns nil.
func (c *Controller) Submit(ctx context.Context, handler SubmitHandler) error {
	values, err := c.Check()
	if err != nil {
		return err
	}
	if err := handler(ctx, values); err != nil {
		return err
	}
	c.MarkSubmitted()
	return nil
}

// Check runs the submit gates. On failure it sets the inline error and returns
// the *ValidationError; otherwise it clears the error and returns the full
// value map including the payment method.
func (c *Controller) Check() (map[string]string, error) {
	if verr := c.check(); verr != nil {
		c.state.Error = verr.Message
		return nil, verr
	}
	c.state.Error = ""

	values := copyValues(c.state.Values)
	values[PaymentMethodKey] = string(c.state.PaymentMethod)
	return values, nil
}

// MarkSubmitted shows the success indicator for the configured window.
func (c *Controller) MarkSubmitted() {
	c.state.SuccessUntil = c.now().Add(c.successTTL)
}

func (c *Controller) check() *ValidationError {
	for _, f := range c.schema.Fields {
		if strings.TrimSpace(c.state.Values[f.Name]) == "" {
			return &ValidationError{Reason: ReasonMissingField, Field: f.Name, Message: MsgFillAllFields}
		}
	}
	if c.state.PaymentMethod == "" {
		return &ValidationError{Reason: ReasonMissingPayment, Field: PaymentMethodKey, Message: MsgSelectPayment}
	}
	if !c.state.Acknowledged {
		return &ValidationError{Reason: ReasonUnacknowledged, Field: PaymentMethodKey, Message: MsgReviewPayment}
	}
	if c.schema.RequireTerms && !c.state.TermsAccepted {
		return &ValidationError{Reason: ReasonTermsNotChecked, Message: MsgTermsRequired}
	}
	return nil
}

// Reset clears values, the payment selection and the terms flag.
// A pending success indicator is left alone.
func (c *Controller) Reset() {
	c.state.Values = make(map[string]string, len(c.schema.Fields))
	c.state.PaymentMethod = ""
	c.state.ModalOpen = false
	c.state.Acknowledged = false
	c.state.TermsAccepted = false
	c.state.Error = ""
}

// Success reports whether the success indicator is currently visible.
func (c *Controller) Success() bool {
	return !c.state.SuccessUntil.IsZero() && c.now().Before(c.state.SuccessUntil)
}

// View renders the form for a client.
func (c *Controller) View() models.FormView {
	values := make(map[string]string, len(c.schema.Fields))
	for _, f := range c.schema.Fields {
		values[f.Name] = c.state.Values[f.Name]
	}
	v := models.FormView{
		Service:        c.schema.Service,
		Title:          c.schema.Title,
		SubmitLabel:    c.schema.SubmitLabel,
		Fields:         c.schema.Fields,
		Values:         values,
		PaymentOptions: models.PaymentMethods,
		PaymentMethod:  c.state.PaymentMethod,
		Acknowledged:   c.state.Acknowledged,
		RequireTerms:   c.schema.RequireTerms,
		TermsAccepted:  c.state.TermsAccepted,
		Error:          c.state.Error,
		Success:        c.Success(),
	}
	if c.state.ModalOpen && c.state.PaymentMethod != "" {
		v.PaymentModal = &models.PaymentModalView{
			Method:       c.state.PaymentMethod,
			Instructions: models.InstructionsFor(c.state.PaymentMethod),
		}
	}
	return v
}

func copyValues(in map[string]string) map[string]string {
	out := make(map[string]string, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}
