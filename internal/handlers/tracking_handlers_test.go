package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/top4/calldrivers/internal/models"
)

type fakeTrackingStore struct {
	locations map[string]models.DriverLocation
}

func newFakeTrackingStore() *fakeTrackingStore {
	return &fakeTrackingStore{locations: make(map[string]models.DriverLocation)}
}

func (f *fakeTrackingStore) Set(ctx context.Context, loc models.DriverLocation) error {
	f.locations[loc.BookingID] = loc
	return nil
}

func (f *fakeTrackingStore) Get(ctx context.Context, bookingID string) (*models.DriverLocation, error) {
	loc, ok := f.locations[bookingID]
	if !ok {
		return nil, nil
	}
	return &loc, nil
}

func TestTrackingHandlers_GetDriverLocation(t *testing.T) {
	store := newFakeTrackingStore()
	store.Set(context.Background(), models.DriverLocation{
		BookingID: "bk-1", DriverID: "drv-9", Lat: 13.0827, Lng: 80.2707, Bearing: 45,
	})
	h := NewTrackingHandlers(store, testLogger())

	w := getJSON(h.GetDriverLocation, "/api/tracking/driver?bookingId=bk-1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", w.Code, w.Body.String())
	}

	var body struct {
		Data models.DriverLocation `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.DriverID != "drv-9" || body.Data.Lat != 13.0827 {
		t.Errorf("location = %+v, want drv-9 at 13.0827", body.Data)
	}
}

func TestTrackingHandlers_GetDriverLocation_MissingBookingID(t *testing.T) {
	h := NewTrackingHandlers(newFakeTrackingStore(), testLogger())

	w := getJSON(h.GetDriverLocation, "/api/tracking/driver")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestTrackingHandlers_GetDriverLocation_Unknown(t *testing.T) {
	h := NewTrackingHandlers(newFakeTrackingStore(), testLogger())

	w := getJSON(h.GetDriverLocation, "/api/tracking/driver?bookingId=nope")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestTrackingHandlers_UpdateDriverLocation(t *testing.T) {
	store := newFakeTrackingStore()
	h := NewTrackingHandlers(store, testLogger())

	w := postJSON(h.UpdateDriverLocation, "/api/tracking/driver",
		`{"bookingId":"bk-1","driverId":"drv-9","lat":13.0827,"lng":80.2707,"bearing":270}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", w.Code, w.Body.String())
	}

	stored, _ := store.Get(context.Background(), "bk-1")
	if stored == nil || stored.Bearing != 270 {
		t.Errorf("stored = %+v, want bearing 270", stored)
	}
}

func TestTrackingHandlers_UpdateDriverLocation_BadInput(t *testing.T) {
	h := NewTrackingHandlers(newFakeTrackingStore(), testLogger())

	tests := []struct {
		name string
		body string
	}{
		{"missing bookingId", `{"lat":13.0,"lng":80.0}`},
		{"latitude out of range", `{"bookingId":"bk-1","lat":99.0,"lng":80.0}`},
		{"longitude out of range", `{"bookingId":"bk-1","lat":13.0,"lng":181.0}`},
		{"bearing out of range", `{"bookingId":"bk-1","lat":13.0,"lng":80.0,"bearing":360}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(h.UpdateDriverLocation, "/api/tracking/driver", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400\n%s", w.Code, w.Body.String())
			}
		})
	}
}
