package admin

import (
	"time"

	"mightymoves/models"
)

// Patch is a partial update of one booking. Nil fields are left alone.
type Patch struct {
	ID             models.BookingID
	Status         *models.BookingStatus
	AssignedWorker *string
	Notes          *string
	TrackingNumber *string
}

// Reduce returns a copy of list with p applied to the entry whose ID matches.
// The input slice is never modified.
func Reduce(list []models.Booking, p Patch) []models.Booking {
	out := make([]models.Booking, len(list))
	copy(out, list)
	for i := range out {
		if out[i].ID != p.ID {
			continue
		}
		if p.Status != nil {
			out[i].Status = *p.Status
		}
		if p.AssignedWorker != nil {
			w := *p.AssignedWorker
			out[i].AssignedWorker = &w
		}
		if p.Notes != nil {
			n := *p.Notes
			out[i].Notes = &n
		}
		if p.TrackingNumber != nil {
			tn := *p.TrackingNumber
			out[i].TrackingNumber = &tn
		}
	}
	return out
}

// Board is one admin client's view state.
type Board struct {
	Bookings []models.Booking
	Loaded   bool
	// read notification ids
	Read map[string]bool
	// last time the owning client used the board
	touched time.Time
}

func newBoard() *Board {
	return &Board{Read: make(map[string]bool)}
}

func (b *Board) find(id models.BookingID) (models.Booking, bool) {
	for _, bk := range b.Bookings {
		if bk.ID == id {
			return bk, true
		}
	}
	return models.Booking{}, false
}
