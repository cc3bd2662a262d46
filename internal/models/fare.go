package models

// FareBreakdown is a price quote in whole rupees. Components are
// rounded once, when the breakdown is built, never mid-calculation.
type FareBreakdown struct {
	TripType       string `json:"trip_type"`
	VehicleType    string `json:"vehicle_type"`
	BaseFare       int64  `json:"base_fare"`
	DistanceCharge int64  `json:"distance_charge"`
	TimeCharge     int64  `json:"time_charge"`
	Total          int64  `json:"total"`
	Currency       string `json:"currency"`
}
