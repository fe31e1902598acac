package models

// Location is a latitude/longitude pair.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// TrackingResponse is the backend's track-by-id payload; Location is absent when unknown.
type TrackingResponse struct {
	Location *Location `json:"location"`
	Error    string    `json:"error,omitempty"`
}
