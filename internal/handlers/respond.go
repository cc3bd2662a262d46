package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/top4/calldrivers/internal/models"
	"github.com/top4/calldrivers/internal/service"
)

// All routes answer with the site envelope: {status, message?, data?}
// or a route-specific shape that still carries status/message.

type envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondWithData(w http.ResponseWriter, status int, data interface{}) {
	respondWithJSON(w, status, envelope{Status: "success", Data: data})
}

func respondWithError(w http.ResponseWriter, status int, message string) {
	respondWithJSON(w, status, envelope{Status: "error", Message: message})
}

// respondWithServiceError maps the error taxonomy to HTTP statuses.
// Anything unrecognized becomes a generic 500 with a safe message; no
// internal detail leaks to the client.
func respondWithServiceError(w http.ResponseWriter, logger *logrus.Logger, err error) {
	var validationErr *models.ValidationError
	var authErr *models.AuthError
	var notFoundErr *models.NotFoundError
	var upstreamErr *models.UpstreamError

	switch {
	case errors.As(err, &validationErr):
		respondWithError(w, http.StatusBadRequest, validationErr.Message)
	case errors.As(err, &authErr):
		respondWithError(w, http.StatusUnauthorized, authErr.Message)
	case errors.As(err, &notFoundErr):
		respondWithError(w, http.StatusNotFound, notFoundErr.Error())
	case errors.As(err, &upstreamErr):
		status := upstreamErr.StatusCode
		if status < 400 {
			status = http.StatusInternalServerError
		}
		logger.WithError(err).Error("Upstream provider failure")
		respondWithError(w, status, "upstream provider error")
	case errors.Is(err, service.ErrInvalidFareInput):
		respondWithError(w, http.StatusBadRequest, "unknown trip type or vehicle type")
	default:
		logger.WithError(err).Error("Unhandled error")
		respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
