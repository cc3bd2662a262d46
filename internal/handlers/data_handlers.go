package handlers

import (
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/top4/calldrivers/internal/catalog"
)

// DataHandlers serves the static reference tables the booking form is
// built from.
type DataHandlers struct {
	catalog *catalog.Catalog
	logger  *logrus.Logger
}

func NewDataHandlers(c *catalog.Catalog, logger *logrus.Logger) *DataHandlers {
	return &DataHandlers{catalog: c, logger: logger}
}

func (h *DataHandlers) States(w http.ResponseWriter, r *http.Request) {
	respondWithData(w, http.StatusOK, h.catalog.States)
}

func (h *DataHandlers) Cities(w http.ResponseWriter, r *http.Request) {
	stateID := 0
	if raw := r.URL.Query().Get("stateId"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "stateId must be a number")
			return
		}
		stateID = parsed
	}

	cities := h.catalog.CitiesByState(stateID)
	if cities == nil {
		cities = []catalog.City{}
	}
	respondWithData(w, http.StatusOK, cities)
}

type vehicleData struct {
	VehicleTypes []catalog.VehicleType `json:"vehicleTypes"`
	TripTypes    []catalog.TripType    `json:"tripTypes"`
}

func (h *DataHandlers) Vehicles(w http.ResponseWriter, r *http.Request) {
	respondWithData(w, http.StatusOK, vehicleData{
		VehicleTypes: h.catalog.VehicleTypes,
		TripTypes:    h.catalog.TripTypes,
	})
}
