package booking

import "mightymoves/models"

// SplitUserBookings separates a customer's bookings into ongoing work and history,
// keeping backend order within each group.
func SplitUserBookings(list []models.Booking) models.UserBookings {
	out := models.UserBookings{
		Ongoing: []models.Booking{},
		History: []models.Booking{},
	}
	for _, b := range list {
		if b.Status.Ongoing() {
			out.Ongoing = append(out.Ongoing, b)
		} else {
			out.History = append(out.History, b)
		}
	}
	return out
}
