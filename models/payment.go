package models

import "fmt"

// PaymentMethod is one of the fixed set of offline payment methods.
type PaymentMethod string

const (
	PaymentBankTransfer PaymentMethod = "Bank Transfer"
	PaymentApplePay     PaymentMethod = "Apple Pay"
	PaymentPayPal       PaymentMethod = "PayPal"
)

// PaymentMethods lists the methods in the order they are offered.
var PaymentMethods = []PaymentMethod{PaymentBankTransfer, PaymentApplePay, PaymentPayPal}

// ParsePaymentMethod validates a payment method name.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for _, m := range PaymentMethods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unsupported payment method: %s", s)
}

// PaymentInstructions is the static text shown in the payment modal.
type PaymentInstructions struct {
	Title  string   `json:"title"`
	Lines  []string `json:"lines"`
	Footer string   `json:"footer,omitempty"`
}

var paymentInstructions = map[PaymentMethod]PaymentInstructions{
	PaymentBankTransfer: {
		Title: "Bank Transfer Details:",
		Lines: []string{
			"Bank: Example Bank",
			"Account Name: Mighty Moves Ltd",
			"Account Number: 1234567890",
			"Sort Code: 00-00-00",
		},
		Footer: "Please use your booking reference as the payment reference.",
	},
	PaymentApplePay: {
		Title: "Apple Pay Instructions:",
		Lines: []string{
			"Send payment to: applepay@mighty-moves.com",
			"Or scan the QR code in your Apple Pay app.",
		},
	},
	PaymentPayPal: {
		Title: "PayPal Instructions:",
		Lines: []string{
			"Pay to: paypal.me/mightymoves",
			"Or send to: paypal@mighty-moves.com",
		},
	},
}

// InstructionsFor returns the modal text for m.
func InstructionsFor(m PaymentMethod) PaymentInstructions {
	return paymentInstructions[m]
}
