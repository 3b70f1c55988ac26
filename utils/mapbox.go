package utils

import (
	"barhop/config"
	"barhop/models"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/go-resty/resty/v2"
)

var mapboxClient = resty.New().SetTimeout(10 * time.Second)

// nearbyCategories are tried in order; the first category returning results
// wins. Precise categories first, widening to the generic one.
var nearbyCategories = []string{"bar", "pub", "brewery", "beer_garden", "food_and_drink"}

type searchBoxResponse struct {
	Features []struct {
		ID         string `json:"id"`
		Geometry   struct {
			Coordinates []float64 `json:"coordinates"` // lon, lat
		} `json:"geometry"`
		Properties struct {
			Name           string `json:"name"`
			FullAddress    string `json:"full_address"`
			Address        string `json:"address"`
			PlaceFormatted string `json:"place_formatted"`
			MapboxID       string `json:"mapbox_id"`
		} `json:"properties"`
	} `json:"features"`
}

// searchBoxCategory queries the Mapbox Search Box category endpoint and
// normalizes features into Bar rows (without IDs).
func searchBoxCategory(category string, lat, lng float64, limit int) ([]models.Bar, error) {
	resp, err := mapboxClient.R().
		SetQueryParams(map[string]string{
			"proximity":    fmt.Sprintf("%f,%f", lng, lat), // lon,lat
			"limit":        fmt.Sprintf("%d", limit),
			"language":     "en",
			"access_token": config.AppConfig.MapboxToken,
		}).
		Get("https://api.mapbox.com/search/searchbox/v1/category/" + category)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %v", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("search API error %d: %s", resp.StatusCode(), resp.String())
	}

	var data searchBoxResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %v", err)
	}

	log.Printf("[nearby] category=%q features=%d", category, len(data.Features))

	var rows []models.Bar
	for _, f := range data.Features {
		if len(f.Geometry.Coordinates) < 2 {
			continue
		}
		placeID := f.Properties.MapboxID
		if placeID == "" {
			placeID = f.ID
		}
		if placeID == "" {
			continue
		}

		name := f.Properties.Name
		if name == "" {
			name = "Unnamed"
		}
		address := f.Properties.FullAddress
		if address == "" {
			address = f.Properties.Address
		}
		if address == "" {
			address = f.Properties.PlaceFormatted
		}

		rows = append(rows, models.Bar{
			Name:            name,
			Address:         address,
			Lat:             f.Geometry.Coordinates[1],
			Lng:             f.Geometry.Coordinates[0],
			Provider:        "mapbox_searchbox",
			ProviderPlaceID: placeID,
		})
	}
	return rows, nil
}

// SearchNearbyBars walks the category list around a coordinate and returns
// the first non-empty normalized result set.
func SearchNearbyBars(lat, lng float64, limit int) []models.Bar {
	for _, category := range nearbyCategories {
		rows, err := searchBoxCategory(category, lat, lng, limit)
		if err != nil {
			log.Printf("[nearby] SearchBox error for %q: %v", category, err)
			continue
		}
		if len(rows) > 0 {
			return rows
		}
	}
	return nil
}

// GenerateMockBars fabricates bars scattered around a coordinate so the map
// stays usable without a Mapbox token or search results.
func GenerateMockBars(lat, lng float64, n int) []models.Bar {
	out := make([]models.Bar, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.Bar{
			Name:            fmt.Sprintf("Test Bar %d", i+1),
			Address:         fmt.Sprintf("#%d Demo St", 100+i),
			Lat:             lat + (rand.Float64()-0.5)*0.01,
			Lng:             lng + (rand.Float64()-0.5)*0.01,
			Provider:        "mock",
			ProviderPlaceID: fmt.Sprintf("mock-%d", i+1),
		})
	}
	return out
}
