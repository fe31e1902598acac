package models

// FieldKind discriminates how a form field is rendered and validated.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldSelect   FieldKind = "select"
	FieldDateTime FieldKind = "datetime"
)

// DateTimeLayout is the wire format of datetime fields (HTML datetime-local).
const DateTimeLayout = "2006-01-02T15:04"

// FormField describes one input of a booking form.
type FormField struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Kind        FieldKind `json:"kind"`
	Options     []string  `json:"options,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
}

// TextField builds a free-text field.
func TextField(name, label, placeholder string) FormField {
	return FormField{Name: name, Label: label, Kind: FieldText, Placeholder: placeholder}
}

// SelectField builds a field restricted to a fixed option set.
func SelectField(name, label string, options ...string) FormField {
	return FormField{Name: name, Label: label, Kind: FieldSelect, Options: options}
}

// DateTimeField builds a date and time field.
func DateTimeField(name, label string) FormField {
	return FormField{Name: name, Label: label, Kind: FieldDateTime}
}

// HasOption reports whether v is one of the field's options.
func (f FormField) HasOption(v string) bool {
	for _, o := range f.Options {
		if o == v {
			return true
		}
	}
	return false
}

// PaymentModalView is the instructions modal shown after choosing a payment method.
type PaymentModalView struct {
	Method       PaymentMethod       `json:"method"`
	Instructions PaymentInstructions `json:"instructions"`
}

// FormView is everything a client needs to render a booking form.
type FormView struct {
	Service        string            `json:"service"`
	Title          string            `json:"title"`
	SubmitLabel    string            `json:"submitLabel"`
	Fields         []FormField       `json:"fields"`
	Values         map[string]string `json:"values"`
	PaymentOptions []PaymentMethod   `json:"paymentOptions"`
	PaymentMethod  PaymentMethod     `json:"paymentMethod,omitempty"`
	PaymentModal   *PaymentModalView `json:"paymentModal,omitempty"`
	Acknowledged   bool              `json:"paymentAcknowledged"`
	RequireTerms   bool              `json:"requireTerms"`
	TermsAccepted  bool              `json:"termsAccepted"`
	Error          string            `json:"error,omitempty"`
	Success        bool              `json:"success"`
	Submitting     bool              `json:"submitting"`
}
