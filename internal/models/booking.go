package models

import "time"

type Booking struct {
	ID          string    `json:"id" dynamodbav:"id"`
	Mobile      string    `json:"mobile" dynamodbav:"mobile"`
	PickupPlace string    `json:"pickup_place" dynamodbav:"pickup_place"`
	DropPlace   string    `json:"drop_place,omitempty" dynamodbav:"drop_place,omitempty"`
	TripType    string    `json:"trip_type" dynamodbav:"trip_type"`
	VehicleType string    `json:"vehicle_type" dynamodbav:"vehicle_type"`
	DistanceKm  float64   `json:"distance_km" dynamodbav:"distance_km"`
	Hours       float64   `json:"hours" dynamodbav:"hours"`
	Fare        int64     `json:"fare" dynamodbav:"fare"`
	Status      string    `json:"status" dynamodbav:"status"`
	CreatedAt   time.Time `json:"created_at" dynamodbav:"created_at"`
}

const (
	BookingStatusRequested = "requested"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

func (b *Booking) GetPK() string {
	return "USER!" + b.Mobile
}

func (b *Booking) GetSK() string {
	return "BOOKING#" + b.ID
}
