package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/top4/calldrivers/internal/middleware"
	"github.com/top4/calldrivers/internal/models"
	"github.com/top4/calldrivers/internal/service"
)

// BookingStore is the slice of the booking repository the handlers
// need. *repository.BookingRepository satisfies it.
type BookingStore interface {
	Create(ctx context.Context, booking *models.Booking) error
	ListByMobile(ctx context.Context, mobile string) ([]models.Booking, error)
}

type BookingHandlers struct {
	bookings BookingStore
	fares    *service.FareService
	logger   *logrus.Logger
}

func NewBookingHandlers(bookings BookingStore, fares *service.FareService, logger *logrus.Logger) *BookingHandlers {
	return &BookingHandlers{bookings: bookings, fares: fares, logger: logger}
}

type createBookingRequest struct {
	PickupPlace string  `json:"pickupPlace" validate:"required"`
	DropPlace   string  `json:"dropPlace" validate:"omitempty"`
	VehicleType string  `json:"vehicleType" validate:"required"`
	TripType    string  `json:"tripType" validate:"required"`
	Distance    float64 `json:"distance" validate:"gte=0"`
	Duration    float64 `json:"duration" validate:"gte=0"`
	CityID      int     `json:"cityId" validate:"omitempty,gte=0"`
}

func (h *BookingHandlers) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createBookingRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	// The quote is recomputed server-side; clients cannot submit their
	// own fare.
	breakdown, err := h.fares.Calculate(service.FareRequest{
		TripType:    req.TripType,
		VehicleType: req.VehicleType,
		DistanceKm:  req.Distance,
		Hours:       req.Duration,
		CityID:      req.CityID,
	})
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	booking := &models.Booking{
		ID:          uuid.New().String(),
		Mobile:      user.Mobile,
		PickupPlace: req.PickupPlace,
		DropPlace:   req.DropPlace,
		TripType:    req.TripType,
		VehicleType: req.VehicleType,
		DistanceKm:  req.Distance,
		Hours:       req.Duration,
		Fare:        breakdown.Total,
		Status:      models.BookingStatusRequested,
		CreatedAt:   time.Now(),
	}

	if err := h.bookings.Create(r.Context(), booking); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondWithData(w, http.StatusCreated, booking)
}

type historyResponse struct {
	Status  string           `json:"status"`
	History []models.Booking `json:"history"`
}

func (h *BookingHandlers) History(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	bookings, err := h.bookings.ListByMobile(r.Context(), user.Mobile)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, historyResponse{
		Status:  "success",
		History: bookings,
	})
}
