package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/top4/calldrivers/internal/service"
)

type LocationHandlers struct {
	places *service.PlacesService
	logger *logrus.Logger
}

func NewLocationHandlers(places *service.PlacesService, logger *logrus.Logger) *LocationHandlers {
	return &LocationHandlers{places: places, logger: logger}
}

func (h *LocationHandlers) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	result := h.places.Search(r.Context(), query)
	if result.TooShort {
		respondWithJSON(w, http.StatusOK, envelope{
			Status:  "success",
			Message: "query too short",
			Data:    result.Locations,
		})
		return
	}

	respondWithData(w, http.StatusOK, result.Locations)
}
