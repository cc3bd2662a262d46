package handlers

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/top4/calldrivers/internal/models"
)

// TrackingStore is the slice of the tracking repository the handlers
// need. *repository.TrackingRepository satisfies it.
type TrackingStore interface {
	Set(ctx context.Context, loc models.DriverLocation) error
	Get(ctx context.Context, bookingID string) (*models.DriverLocation, error)
}

type TrackingHandlers struct {
	tracking TrackingStore
	logger   *logrus.Logger
}

func NewTrackingHandlers(tracking TrackingStore, logger *logrus.Logger) *TrackingHandlers {
	return &TrackingHandlers{tracking: tracking, logger: logger}
}

func (h *TrackingHandlers) GetDriverLocation(w http.ResponseWriter, r *http.Request) {
	bookingID := r.URL.Query().Get("bookingId")
	if bookingID == "" {
		respondWithError(w, http.StatusBadRequest, "bookingId is required")
		return
	}

	loc, err := h.tracking.Get(r.Context(), bookingID)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	if loc == nil {
		respondWithServiceError(w, h.logger, &models.NotFoundError{Resource: "driver location"})
		return
	}

	respondWithData(w, http.StatusOK, loc)
}

type updateLocationRequest struct {
	BookingID string  `json:"bookingId" validate:"required"`
	DriverID  string  `json:"driverId" validate:"omitempty"`
	Lat       float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng       float64 `json:"lng" validate:"required,gte=-180,lte=180"`
	Bearing   float64 `json:"bearing" validate:"omitempty,gte=0,lt=360"`
}

func (h *TrackingHandlers) UpdateDriverLocation(w http.ResponseWriter, r *http.Request) {
	var req updateLocationRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	loc := models.DriverLocation{
		BookingID: req.BookingID,
		DriverID:  req.DriverID,
		Lat:       req.Lat,
		Lng:       req.Lng,
		Bearing:   req.Bearing,
	}

	if err := h.tracking.Set(r.Context(), loc); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	stored, err := h.tracking.Get(r.Context(), req.BookingID)
	if err != nil || stored == nil {
		respondWithData(w, http.StatusOK, loc)
		return
	}

	respondWithData(w, http.StatusOK, stored)
}
