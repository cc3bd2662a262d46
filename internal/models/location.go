package models

import "time"

// Location is a normalized autocomplete result. City and state are
// derived heuristically from the provider's secondary text and may be
// wrong for unusual formatting; callers must not treat them as exact.
type Location struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	City  string `json:"city"`
	State string `json:"state"`
}

// DriverLocation is the last reported position of a driver on a
// booking. Records expire from the tracking store after a fixed TTL;
// a stale record reads the same as a missing one.
type DriverLocation struct {
	BookingID string    `json:"booking_id"`
	DriverID  string    `json:"driver_id,omitempty"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Bearing   float64   `json:"bearing,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
