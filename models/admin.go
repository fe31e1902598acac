package models

// ModalKind selects which admin edit modal is open.
type ModalKind string

const (
	ModalStatus ModalKind = "status"
	ModalWorker ModalKind = "worker"
	ModalNotes  ModalKind = "notes"
)

// ParseModalKind validates a modal kind.
func ParseModalKind(s string) (ModalKind, bool) {
	switch k := ModalKind(s); k {
	case ModalStatus, ModalWorker, ModalNotes:
		return k, true
	}
	return "", false
}

// Title is the modal heading.
func (k ModalKind) Title() string {
	switch k {
	case ModalStatus:
		return "Update Booking Status"
	case ModalWorker:
		return "Assign Worker"
	case ModalNotes:
		return "Add Notes"
	default:
		return "Admin Action"
	}
}

// AdminModal is a small edit dialog prefilled from the selected booking.
type AdminModal struct {
	Kind      ModalKind       `json:"kind"`
	Title     string          `json:"title"`
	BookingID BookingID       `json:"bookingId"`
	Value     string          `json:"value"`
	Options   []string        `json:"options,omitempty"`
	Suggested []BookingStatus `json:"suggested,omitempty"`
	Booking   Booking         `json:"booking"`
}

// BookingFilter narrows the admin booking list.
type BookingFilter struct {
	Search  string `form:"search"`
	Status  string `form:"status"`
	Service string `form:"service"`
}

// Active reports whether any filter is set.
func (f BookingFilter) Active() bool {
	return f.Search != "" || f.Status != "" || f.Service != ""
}

// BookingStats summarises the admin booking list.
type BookingStats struct {
	Total          int     `json:"total"`
	Pending        int     `json:"pending"`
	InProgress     int     `json:"inProgress"`
	Completed      int     `json:"completed"`
	Cancelled      int     `json:"cancelled"`
	Revenue        float64 `json:"revenue"`
	RevenueDisplay string  `json:"revenueDisplay"`
	ThisMonth      int     `json:"thisMonth"`
	LastMonth      int     `json:"lastMonth"`
}

// LegalSection is one legal document served to clients.
type LegalSection struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Version  string `json:"version"`
}

// Legal document audiences.
const (
	AudienceCustomer = "Customer"
	AudienceAdmin    = "Admin"
	AudienceAll      = "All"
)
