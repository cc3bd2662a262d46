package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/top4/calldrivers/internal/models"
	"googlemaps.github.io/maps"
)

// minQueryLen gates outbound autocomplete calls so the UI can type
// ahead without hammering the provider.
const minQueryLen = 3

// autocompleteTimeout bounds each provider call; a slow upstream must
// not hold the request open.
const autocompleteTimeout = 5 * time.Second

// AutocompleteClient is the slice of the Google Maps client the places
// service needs. *maps.Client satisfies it.
type AutocompleteClient interface {
	PlaceAutocomplete(ctx context.Context, r *maps.PlaceAutocompleteRequest) (maps.AutocompleteResponse, error)
}

type PlacesService struct {
	client AutocompleteClient
	logger *logrus.Logger
}

func NewPlacesService(apiKey string, logger *logrus.Logger) (*PlacesService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client, logger: logger}, nil
}

// NewPlacesServiceWithClient injects a client directly; tests use it to
// count provider calls.
func NewPlacesServiceWithClient(client AutocompleteClient, logger *logrus.Logger) *PlacesService {
	return &PlacesService{client: client, logger: logger}
}

type SearchResult struct {
	// TooShort marks a query below the minimum length; no provider
	// call was made. Not an error: the UI suppresses these silently.
	TooShort  bool
	Locations []models.Location
}

// Search forwards the query to the autocomplete provider and
// normalizes predictions. Provider failures degrade to an empty list
// because autocomplete is non-critical.
func (s *PlacesService) Search(ctx context.Context, query string) SearchResult {
	query = strings.TrimSpace(query)
	if len(query) < minQueryLen {
		return SearchResult{TooShort: true, Locations: []models.Location{}}
	}

	ctx, cancel := context.WithTimeout(ctx, autocompleteTimeout)
	defer cancel()

	resp, err := s.client.PlaceAutocomplete(ctx, &maps.PlaceAutocompleteRequest{
		Input: query,
		Components: map[maps.Component][]string{
			maps.ComponentCountry: {"in"},
		},
	})
	if err != nil {
		s.logger.WithError(err).Warn("Places autocomplete failed, returning empty results")
		return SearchResult{Locations: []models.Location{}}
	}

	locations := make([]models.Location, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		locations = append(locations, normalizePrediction(p))
	}

	return SearchResult{Locations: locations}
}

// normalizePrediction derives city/state by splitting the secondary
// text on its first comma. Known limitation: unusual formatting can
// misassign the two fields.
func normalizePrediction(p maps.AutocompletePrediction) models.Location {
	name := p.StructuredFormatting.MainText
	if name == "" {
		name = p.Description
	}

	var city, state string
	secondary := strings.TrimSuffix(p.StructuredFormatting.SecondaryText, ", India")
	if secondary != "" {
		parts := strings.SplitN(secondary, ",", 2)
		city = strings.TrimSpace(parts[0])
		if len(parts) == 2 {
			state = strings.TrimSpace(parts[1])
		}
	}

	return models.Location{
		ID:    p.PlaceID,
		Name:  name,
		City:  city,
		State: state,
	}
}
