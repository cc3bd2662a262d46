package service

import (
	"errors"
	"math"

	"github.com/top4/calldrivers/internal/catalog"
	"github.com/top4/calldrivers/internal/models"
)

// ErrInvalidFareInput reports an unknown trip/vehicle combination or
// out-of-range numbers. It is a client error; the calculator never
// falls back to a zero quote.
var ErrInvalidFareInput = errors.New("invalid fare input")

type FareService struct {
	catalog *catalog.Catalog
}

func NewFareService(c *catalog.Catalog) *FareService {
	return &FareService{catalog: c}
}

type FareRequest struct {
	TripType    string
	VehicleType string
	DistanceKm  float64
	Hours       float64
	// CityID optionally overrides the one-way base fare with the
	// city's listed base price.
	CityID int
}

// Calculate produces a quote from the static rate tables. Distance
// scales outstation and one-way trips; duration scales hourly and
// daily packages. All amounts stay fractional until the breakdown is
// assembled, then round once to whole rupees.
func (s *FareService) Calculate(req FareRequest) (*models.FareBreakdown, error) {
	if req.DistanceKm < 0 || req.Hours < 0 {
		return nil, ErrInvalidFareInput
	}

	rate, ok := s.catalog.RateFor(req.TripType, req.VehicleType)
	if !ok {
		return nil, ErrInvalidFareInput
	}

	baseFare := float64(rate.BaseFare)
	if req.TripType == catalog.TripOneWay && req.CityID != 0 {
		if city, ok := s.catalog.CityByID(req.CityID); ok && city.BasePrice > 0 {
			baseFare = float64(city.BasePrice)
		}
	}

	var distanceCharge, timeCharge float64
	switch req.TripType {
	case catalog.TripOneWay:
		distanceCharge = rate.PerKm * excess(req.DistanceKm, rate.IncludedKm)
	case catalog.TripOutstation:
		distanceCharge = rate.PerKm * excess(req.DistanceKm, rate.IncludedKm)
		timeCharge = rate.PerHour * req.Hours
	case catalog.TripHourly, catalog.TripDaily:
		timeCharge = rate.PerHour * excess(req.Hours, rate.IncludedHours)
	default:
		return nil, ErrInvalidFareInput
	}

	base := round(baseFare)
	distance := round(distanceCharge)
	duration := round(timeCharge)

	return &models.FareBreakdown{
		TripType:       req.TripType,
		VehicleType:    req.VehicleType,
		BaseFare:       base,
		DistanceCharge: distance,
		TimeCharge:     duration,
		Total:          base + distance + duration,
		Currency:       "INR",
	}, nil
}

func excess(value, included float64) float64 {
	if value <= included {
		return 0
	}
	return value - included
}

func round(x float64) int64 {
	return int64(math.Round(x))
}
