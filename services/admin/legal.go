package admin

import (
	"mightymoves/models"
)

const legalVersion = "v1.0"

// LegalSections returns the documents a customer agrees to when ticking the terms box.
func LegalSections() []models.LegalSection {
	return []models.LegalSection{
		{
			ID:       "terms",
			Title:    "Terms and Conditions",
			Summary:  "By using Mighty Moves, you agree to our terms and conditions.",
			Content:  termsAndConditions(),
			Category: models.AudienceCustomer,
			Version:  legalVersion,
		},
		{
			ID:       "payments",
			Title:    "Payment Policy",
			Summary:  "How payments for moves, waste pickups and deliveries are made.",
			Content:  paymentPolicy(),
			Category: models.AudienceCustomer,
			Version:  legalVersion,
		},
		{
			ID:       "admin-conduct",
			Title:    "Operator Guidelines",
			Summary:  "Rules for staff updating bookings on behalf of customers.",
			Content:  operatorGuidelines(),
			Category: models.AudienceAdmin,
			Version:  legalVersion,
		},
	}
}

// LegalSectionsFor returns the documents relevant to audience.
func LegalSectionsFor(audience string) []models.LegalSection {
	var filtered []models.LegalSection
	for _, section := range LegalSections() {
		if section.Category == models.AudienceAll || section.Category == audience {
			filtered = append(filtered, section)
		}
	}
	return filtered
}

// LegalSection looks up one document by id.
func LegalSection(id string) (models.LegalSection, bool) {
	for _, section := range LegalSections() {
		if section.ID == id {
			return section, true
		}
	}
	return models.LegalSection{}, false
}

func termsAndConditions() string {
	return `By using Mighty Moves, you agree to our terms and conditions.

1. All bookings are subject to availability and confirmation.
2. Payment must be completed before service is rendered.
3. Cancellations may be subject to fees.
4. We are not liable for delays due to unforeseen circumstances.
5. By booking, you agree to our privacy policy and service terms.

Contact support for any questions or disputes.`
}

func paymentPolicy() string {
	return `1. All payments are processed securely via your selected method.
2. Bank transfer details will be provided after booking.
3. Apple Pay and PayPal are supported for instant payment.
4. Quote your booking reference with every payment.`
}

func operatorGuidelines() string {
	return `1. Only approve bookings you have checked against availability.
2. Record the reason for every cancellation in the booking notes.
3. Assign workers by full name.`
}
