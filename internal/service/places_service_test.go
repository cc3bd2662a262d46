package service

import (
	"context"
	"errors"
	"testing"

	"googlemaps.github.io/maps"
)

type fakeAutocompleteClient struct {
	calls     int
	lastInput string
	resp      maps.AutocompleteResponse
	err       error
}

func (f *fakeAutocompleteClient) PlaceAutocomplete(ctx context.Context, r *maps.PlaceAutocompleteRequest) (maps.AutocompleteResponse, error) {
	f.calls++
	f.lastInput = r.Input
	return f.resp, f.err
}

func TestPlacesService_Search_ShortQuerySkipsProvider(t *testing.T) {
	client := &fakeAutocompleteClient{}
	s := NewPlacesServiceWithClient(client, testLogger())

	for _, query := range []string{"", "ab", "  a  ", "\tch "} {
		result := s.Search(context.Background(), query)
		if !result.TooShort {
			t.Errorf("Search(%q).TooShort = false, want true", query)
		}
		if len(result.Locations) != 0 {
			t.Errorf("Search(%q) returned %d locations, want 0", query, len(result.Locations))
		}
	}

	if client.calls != 0 {
		t.Errorf("provider called %d times for short queries, want 0", client.calls)
	}
}

func TestPlacesService_Search_NormalizesPredictions(t *testing.T) {
	client := &fakeAutocompleteClient{
		resp: maps.AutocompleteResponse{
			Predictions: []maps.AutocompletePrediction{
				{
					PlaceID:     "ChIJplaceone",
					Description: "T Nagar, Chennai, Tamil Nadu, India",
					StructuredFormatting: maps.AutocompleteStructuredFormatting{
						MainText:      "T Nagar",
						SecondaryText: "Chennai, Tamil Nadu, India",
					},
				},
				{
					PlaceID:     "ChIJplacetwo",
					Description: "Coimbatore, Tamil Nadu, India",
					StructuredFormatting: maps.AutocompleteStructuredFormatting{
						SecondaryText: "Tamil Nadu, India",
					},
				},
			},
		},
	}
	s := NewPlacesServiceWithClient(client, testLogger())

	result := s.Search(context.Background(), "  chennai ")
	if result.TooShort {
		t.Fatal("Search() flagged a valid query as too short")
	}
	if client.calls != 1 {
		t.Fatalf("provider called %d times, want 1", client.calls)
	}
	if client.lastInput != "chennai" {
		t.Errorf("provider input = %q, want trimmed query", client.lastInput)
	}
	if len(result.Locations) != 2 {
		t.Fatalf("got %d locations, want 2", len(result.Locations))
	}

	first := result.Locations[0]
	if first.ID != "ChIJplaceone" || first.Name != "T Nagar" {
		t.Errorf("first = %+v, want ID ChIJplaceone and name T Nagar", first)
	}
	if first.City != "Chennai" || first.State != "Tamil Nadu" {
		t.Errorf("first city/state = %q/%q, want Chennai/Tamil Nadu", first.City, first.State)
	}

	second := result.Locations[1]
	if second.Name != "Coimbatore, Tamil Nadu, India" {
		t.Errorf("second name = %q, want fallback to description", second.Name)
	}
	if second.City != "Tamil Nadu" {
		t.Errorf("second city = %q, want Tamil Nadu", second.City)
	}
}

func TestPlacesService_Search_ProviderFailureDegrades(t *testing.T) {
	client := &fakeAutocompleteClient{err: errors.New("quota exceeded")}
	s := NewPlacesServiceWithClient(client, testLogger())

	result := s.Search(context.Background(), "chennai")
	if result.TooShort {
		t.Error("provider failure reported as too-short query")
	}
	if result.Locations == nil || len(result.Locations) != 0 {
		t.Errorf("Locations = %v, want empty non-nil slice", result.Locations)
	}
}
