package catalog

// Static reference data for the booking site: serviced states and
// cities, vehicle and trip types, and the fare rate tables. Read-only
// at runtime. An optional YAML file can replace the built-ins for
// staging or per-deployment pricing (see loader.go).

type State struct {
	ID   int    `json:"id" yaml:"id" validate:"gt=0"`
	Name string `json:"name" yaml:"name" validate:"required"`
}

type City struct {
	ID      int    `json:"id" yaml:"id" validate:"gt=0"`
	Name    string `json:"name" yaml:"name" validate:"required"`
	StateID int    `json:"state_id" yaml:"state_id" validate:"gt=0"`
	// BasePrice overrides the rate-table base fare for one-way trips
	// starting in this city. Zero means no override.
	BasePrice int64 `json:"base_price" yaml:"base_price" validate:"gte=0"`
}

type VehicleType struct {
	ID   string `json:"id" yaml:"id" validate:"required"`
	Name string `json:"name" yaml:"name" validate:"required"`
}

type TripType struct {
	ID   string `json:"id" yaml:"id" validate:"required"`
	Name string `json:"name" yaml:"name" validate:"required"`
}

// Rate is the fare table entry for one (trip type, vehicle type) pair.
// Amounts are whole rupees.
type Rate struct {
	TripType      string  `json:"trip_type" yaml:"trip_type" validate:"required"`
	VehicleType   string  `json:"vehicle_type" yaml:"vehicle_type" validate:"required"`
	BaseFare      int64   `json:"base_fare" yaml:"base_fare" validate:"gt=0"`
	PerKm         float64 `json:"per_km" yaml:"per_km" validate:"gte=0"`
	PerHour       float64 `json:"per_hour" yaml:"per_hour" validate:"gte=0"`
	IncludedKm    float64 `json:"included_km" yaml:"included_km" validate:"gte=0"`
	IncludedHours float64 `json:"included_hours" yaml:"included_hours" validate:"gte=0"`
}

type Catalog struct {
	States       []State       `yaml:"states" validate:"required,dive"`
	Cities       []City        `yaml:"cities" validate:"required,dive"`
	VehicleTypes []VehicleType `yaml:"vehicle_types" validate:"required,dive"`
	TripTypes    []TripType    `yaml:"trip_types" validate:"required,dive"`
	Rates        []Rate        `yaml:"rates" validate:"required,dive"`
}

const (
	TripOneWay     = "oneway"
	TripHourly     = "hourly"
	TripDaily      = "daily"
	TripOutstation = "outstation"
)

// Default returns the built-in tables. TOP4 operates out of Tamil Nadu
// with partner cities in the neighbouring states.
func Default() *Catalog {
	return &Catalog{
		States: []State{
			{ID: 1, Name: "Tamil Nadu"},
			{ID: 2, Name: "Karnataka"},
			{ID: 3, Name: "Telangana"},
			{ID: 4, Name: "Kerala"},
		},
		Cities: []City{
			{ID: 1, Name: "Chennai", StateID: 1, BasePrice: 349},
			{ID: 2, Name: "Coimbatore", StateID: 1, BasePrice: 299},
			{ID: 3, Name: "Madurai", StateID: 1, BasePrice: 279},
			{ID: 4, Name: "Tiruchirappalli", StateID: 1, BasePrice: 279},
			{ID: 5, Name: "Salem", StateID: 1, BasePrice: 259},
			{ID: 6, Name: "Bengaluru", StateID: 2, BasePrice: 399},
			{ID: 7, Name: "Mysuru", StateID: 2, BasePrice: 299},
			{ID: 8, Name: "Hyderabad", StateID: 3, BasePrice: 379},
			{ID: 9, Name: "Kochi", StateID: 4, BasePrice: 329},
			{ID: 10, Name: "Thiruvananthapuram", StateID: 4, BasePrice: 299},
		},
		VehicleTypes: []VehicleType{
			{ID: "hatchback", Name: "Hatchback"},
			{ID: "sedan", Name: "Sedan"},
			{ID: "suv", Name: "SUV"},
			{ID: "luxury", Name: "Luxury"},
		},
		TripTypes: []TripType{
			{ID: TripOneWay, Name: "One Way (In City)"},
			{ID: TripHourly, Name: "Round Trip (Hourly)"},
			{ID: TripDaily, Name: "Full Day"},
			{ID: TripOutstation, Name: "Outstation"},
		},
		Rates: defaultRates(),
	}
}

func defaultRates() []Rate {
	var rates []Rate
	// Per-vehicle multipliers over the sedan baseline.
	type base struct {
		vehicle string
		factor  float64
	}
	vehicles := []base{
		{"hatchback", 0.9},
		{"sedan", 1.0},
		{"suv", 1.2},
		{"luxury", 1.6},
	}
	for _, v := range vehicles {
		rates = append(rates,
			Rate{TripType: TripOneWay, VehicleType: v.vehicle,
				BaseFare: scale(299, v.factor), PerKm: 12 * v.factor, IncludedKm: 5},
			Rate{TripType: TripHourly, VehicleType: v.vehicle,
				BaseFare: scale(249, v.factor), PerHour: 119 * v.factor, IncludedHours: 2},
			Rate{TripType: TripDaily, VehicleType: v.vehicle,
				BaseFare: scale(999, v.factor), PerHour: 89 * v.factor, IncludedHours: 8},
			Rate{TripType: TripOutstation, VehicleType: v.vehicle,
				BaseFare: scale(499, v.factor), PerKm: 14 * v.factor, PerHour: 59 * v.factor, IncludedKm: 25},
		)
	}
	return rates
}

func scale(base int64, factor float64) int64 {
	return int64(float64(base) * factor)
}

// CitiesByState returns cities in the given state, or all cities when
// stateID is zero.
func (c *Catalog) CitiesByState(stateID int) []City {
	if stateID == 0 {
		return c.Cities
	}
	var out []City
	for _, city := range c.Cities {
		if city.StateID == stateID {
			out = append(out, city)
		}
	}
	return out
}

func (c *Catalog) CityByID(id int) (City, bool) {
	for _, city := range c.Cities {
		if city.ID == id {
			return city, true
		}
	}
	return City{}, false
}

func (c *Catalog) RateFor(tripType, vehicleType string) (Rate, bool) {
	for _, r := range c.Rates {
		if r.TripType == tripType && r.VehicleType == vehicleType {
			return r, true
		}
	}
	return Rate{}, false
}

func (c *Catalog) HasTripType(id string) bool {
	for _, t := range c.TripTypes {
		if t.ID == id {
			return true
		}
	}
	return false
}

func (c *Catalog) HasVehicleType(id string) bool {
	for _, v := range c.VehicleTypes {
		if v.ID == id {
			return true
		}
	}
	return false
}
