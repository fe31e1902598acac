package admin

import (
	"sort"
	"time"

	"mightymoves/models"

	"github.com/dustin/go-humanize"
)

// HistoryPreview is how many history entries show before "Show All".
const HistoryPreview = 2

var dateLayouts = []string{time.RFC3339, models.DateTimeLayout, "2006-01-02"}

func parseBookingDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatGBP renders an amount the way the dashboard shows revenue.
func FormatGBP(amount float64) string {
	return "£" + humanize.FormatFloat("#,###.##", amount)
}

// ComputeStats summarises list relative to now.
func ComputeStats(list []models.Booking, now time.Time) models.BookingStats {
	var s models.BookingStats
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonth := thisMonth.AddDate(0, -1, 0)
	nextMonth := thisMonth.AddDate(0, 1, 0)

	for _, b := range list {
		s.Total++
		s.Revenue += b.Price
		switch b.Status {
		case models.StatusPending:
			s.Pending++
		case models.StatusInProgress:
			s.InProgress++
		case models.StatusCompleted:
			s.Completed++
		case models.StatusCancelled:
			s.Cancelled++
		}
		if d, ok := parseBookingDate(b.Date); ok {
			d = d.In(now.Location())
			switch {
			case !d.Before(thisMonth) && d.Before(nextMonth):
				s.ThisMonth++
			case !d.Before(lastMonth) && d.Before(thisMonth):
				s.LastMonth++
			}
		}
	}
	s.RevenueDisplay = FormatGBP(s.Revenue)
	return s
}

// History returns non-pending bookings, newest first. Only the first
// HistoryPreview entries are returned unless all is set.
func History(list []models.Booking, all bool) []models.Booking {
	out := make([]models.Booking, 0, len(list))
	for _, b := range list {
		if b.Status != models.StatusPending {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if !all && len(out) > HistoryPreview {
		out = out[:HistoryPreview]
	}
	return out
}
