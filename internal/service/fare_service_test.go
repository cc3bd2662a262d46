package service

import (
	"errors"
	"testing"

	"github.com/top4/calldrivers/internal/catalog"
)

func TestFareService_Calculate(t *testing.T) {
	s := NewFareService(catalog.Default())

	tests := []struct {
		name      string
		req       FareRequest
		wantBase  int64
		wantDist  int64
		wantTime  int64
		wantTotal int64
	}{
		{
			name: "outstation sedan charges per km beyond included",
			// base 499, 14/km beyond 25 included km
			req:       FareRequest{TripType: "outstation", VehicleType: "sedan", DistanceKm: 100},
			wantBase:  499,
			wantDist:  1050,
			wantTotal: 1549,
		},
		{
			name:      "outstation sedan with driver hours",
			req:       FareRequest{TripType: "outstation", VehicleType: "sedan", DistanceKm: 100, Hours: 2},
			wantBase:  499,
			wantDist:  1050,
			wantTime:  118,
			wantTotal: 1667,
		},
		{
			name: "hourly sedan charges per hour beyond included",
			// base 249, 119/hr beyond 2 included hours
			req:       FareRequest{TripType: "hourly", VehicleType: "sedan", Hours: 5},
			wantBase:  249,
			wantTime:  357,
			wantTotal: 606,
		},
		{
			name: "hourly within included hours is base only",
			req:       FareRequest{TripType: "hourly", VehicleType: "sedan", Hours: 2, DistanceKm: 40},
			wantBase:  249,
			wantTotal: 249,
		},
		{
			name: "daily sedan",
			// base 999, 89/hr beyond 8 included hours
			req:       FareRequest{TripType: "daily", VehicleType: "sedan", Hours: 10},
			wantBase:  999,
			wantTime:  178,
			wantTotal: 1177,
		},
		{
			name: "oneway sedan",
			// base 299, 12/km beyond 5 included km
			req:       FareRequest{TripType: "oneway", VehicleType: "sedan", DistanceKm: 8},
			wantBase:  299,
			wantDist:  36,
			wantTotal: 335,
		},
		{
			name: "oneway city base price override",
			// Chennai lists 349
			req:       FareRequest{TripType: "oneway", VehicleType: "sedan", DistanceKm: 8, CityID: 1},
			wantBase:  349,
			wantDist:  36,
			wantTotal: 385,
		},
		{
			name: "suv rates rounded once at return",
			// base 299*1.2 -> 358, 14.4/km * 2km = 28.8 -> 29
			req:       FareRequest{TripType: "oneway", VehicleType: "suv", DistanceKm: 7},
			wantBase:  358,
			wantDist:  29,
			wantTotal: 387,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Calculate(tt.req)
			if err != nil {
				t.Fatalf("Calculate() error = %v", err)
			}
			if got.BaseFare != tt.wantBase {
				t.Errorf("BaseFare = %d, want %d", got.BaseFare, tt.wantBase)
			}
			if got.DistanceCharge != tt.wantDist {
				t.Errorf("DistanceCharge = %d, want %d", got.DistanceCharge, tt.wantDist)
			}
			if got.TimeCharge != tt.wantTime {
				t.Errorf("TimeCharge = %d, want %d", got.TimeCharge, tt.wantTime)
			}
			if got.Total != tt.wantTotal {
				t.Errorf("Total = %d, want %d", got.Total, tt.wantTotal)
			}
			if got.Total != got.BaseFare+got.DistanceCharge+got.TimeCharge {
				t.Errorf("Total %d does not equal sum of components", got.Total)
			}
		})
	}
}

func TestFareService_Calculate_MonotonicInDistance(t *testing.T) {
	s := NewFareService(catalog.Default())

	prev := int64(0)
	for _, km := range []float64{50, 100, 200, 400} {
		got, err := s.Calculate(FareRequest{TripType: "outstation", VehicleType: "sedan", DistanceKm: km})
		if err != nil {
			t.Fatalf("Calculate(%v km) error = %v", km, err)
		}
		if got.Total <= prev {
			t.Errorf("fare(%v km) = %d, want > %d", km, got.Total, prev)
		}
		prev = got.Total
	}
}

func TestFareService_Calculate_InvalidInput(t *testing.T) {
	s := NewFareService(catalog.Default())

	tests := []struct {
		name string
		req  FareRequest
	}{
		{"unknown vehicle type", FareRequest{TripType: "outstation", VehicleType: "bike", DistanceKm: 10}},
		{"unknown trip type", FareRequest{TripType: "teleport", VehicleType: "sedan", DistanceKm: 10}},
		{"negative distance", FareRequest{TripType: "outstation", VehicleType: "sedan", DistanceKm: -1}},
		{"negative hours", FareRequest{TripType: "hourly", VehicleType: "sedan", Hours: -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Calculate(tt.req)
			if !errors.Is(err, ErrInvalidFareInput) {
				t.Fatalf("Calculate() error = %v, want ErrInvalidFareInput", err)
			}
			if got != nil {
				t.Errorf("Calculate() = %+v, want nil quote on invalid input", got)
			}
		})
	}
}
