package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_RateTableIsComplete(t *testing.T) {
	c := Default()

	for _, trip := range c.TripTypes {
		for _, vehicle := range c.VehicleTypes {
			rate, ok := c.RateFor(trip.ID, vehicle.ID)
			if !ok {
				t.Errorf("no rate for %s/%s", trip.ID, vehicle.ID)
				continue
			}
			if rate.BaseFare <= 0 {
				t.Errorf("rate %s/%s has base fare %d", trip.ID, vehicle.ID, rate.BaseFare)
			}
		}
	}
}

func TestDefault_CitiesReferenceKnownStates(t *testing.T) {
	c := Default()

	states := make(map[int]bool)
	for _, s := range c.States {
		states[s.ID] = true
	}
	for _, city := range c.Cities {
		if !states[city.StateID] {
			t.Errorf("city %q references unknown state %d", city.Name, city.StateID)
		}
	}
}

func TestCitiesByState(t *testing.T) {
	c := Default()

	if got := c.CitiesByState(0); len(got) != len(c.Cities) {
		t.Errorf("CitiesByState(0) = %d cities, want all %d", len(got), len(c.Cities))
	}

	for _, city := range c.CitiesByState(1) {
		if city.StateID != 1 {
			t.Errorf("city %q has state %d, want 1", city.Name, city.StateID)
		}
	}

	if got := c.CitiesByState(999); got != nil {
		t.Errorf("CitiesByState(999) = %v, want nil", got)
	}
}

func TestCityByID(t *testing.T) {
	c := Default()

	city, ok := c.CityByID(1)
	if !ok || city.Name != "Chennai" {
		t.Errorf("CityByID(1) = %+v, %v, want Chennai", city, ok)
	}
	if _, ok := c.CityByID(999); ok {
		t.Error("CityByID(999) found a city")
	}
}

func TestVehicleFactorsOrderRates(t *testing.T) {
	c := Default()

	hatch, _ := c.RateFor(TripOutstation, "hatchback")
	sedan, _ := c.RateFor(TripOutstation, "sedan")
	suv, _ := c.RateFor(TripOutstation, "suv")
	luxury, _ := c.RateFor(TripOutstation, "luxury")

	if !(hatch.PerKm < sedan.PerKm && sedan.PerKm < suv.PerKm && suv.PerKm < luxury.PerKm) {
		t.Errorf("per-km rates not ordered by vehicle class: %v %v %v %v",
			hatch.PerKm, sedan.PerKm, suv.PerKm, luxury.PerKm)
	}
}

func TestLoad_EmptyPathReturnsBuiltins(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if len(c.Rates) == 0 {
		t.Error("built-in catalog has no rates")
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `
states:
  - id: 1
    name: Tamil Nadu
cities:
  - id: 1
    name: Chennai
    state_id: 1
    base_price: 400
vehicle_types:
  - id: sedan
    name: Sedan
trip_types:
  - id: oneway
    name: One Way
rates:
  - trip_type: oneway
    vehicle_type: sedan
    base_fare: 300
    per_km: 10
    included_km: 5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(c.Cities) != 1 || c.Cities[0].BasePrice != 400 {
		t.Errorf("cities = %+v, want single Chennai with base price 400", c.Cities)
	}
	rate, ok := c.RateFor("oneway", "sedan")
	if !ok || rate.PerKm != 10 {
		t.Errorf("RateFor(oneway, sedan) = %+v, %v, want per-km 10", rate, ok)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("states: [{id: 0, name: \"\"}]"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() accepted a catalog that fails validation")
	}

	notYAML := filepath.Join(dir, "not.yaml")
	if err := os.WriteFile(notYAML, []byte("{{{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(notYAML); err == nil {
		t.Error("Load() accepted malformed YAML")
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() accepted a missing file")
	}
}
