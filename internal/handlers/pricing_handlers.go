package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/top4/calldrivers/internal/service"
)

type PricingHandlers struct {
	fares  *service.FareService
	logger *logrus.Logger
}

func NewPricingHandlers(fares *service.FareService, logger *logrus.Logger) *PricingHandlers {
	return &PricingHandlers{fares: fares, logger: logger}
}

type calculateFareRequest struct {
	PickupPlace string  `json:"pickupPlace" validate:"required"`
	DropPlace   string  `json:"dropPlace" validate:"omitempty"`
	VehicleType string  `json:"vehicleType" validate:"required"`
	TripType    string  `json:"tripType" validate:"required"`
	Distance    float64 `json:"distance" validate:"gte=0"`
	Duration    float64 `json:"duration" validate:"gte=0"`
	CityID      int     `json:"cityId" validate:"omitempty,gte=0"`
}

func (h *PricingHandlers) Calculate(w http.ResponseWriter, r *http.Request) {
	var req calculateFareRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

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

	respondWithData(w, http.StatusOK, breakdown)
}
