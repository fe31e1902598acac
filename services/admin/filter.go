package admin

import (
	"strings"

	"mightymoves/models"
)

// Filter applies the search box and the two dropdowns. Search is a
// case-insensitive substring match on customer, service type and address;
// status and service must match exactly.
func Filter(list []models.Booking, f models.BookingFilter) []models.Booking {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]models.Booking, 0, len(list))
	for _, b := range list {
		if term != "" &&
			!strings.Contains(strings.ToLower(b.Customer), term) &&
			!strings.Contains(strings.ToLower(b.ServiceType), term) &&
			!strings.Contains(strings.ToLower(b.Address), term) {
			continue
		}
		if f.Status != "" && string(b.Status) != f.Status {
			continue
		}
		if f.Service != "" && b.ServiceType != f.Service {
			continue
		}
		out = append(out, b)
	}
	return out
}
