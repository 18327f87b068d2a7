package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/odesa-navmannia/walkbot/internal/config"
	"github.com/odesa-navmannia/walkbot/internal/domain"
)

// Provider is the external point-of-interest search API. Implementations
// return raw candidates in provider rank order; filtering and shuffling is
// the client's job.
type Provider interface {
	Search(ctx context.Context, center domain.Coord, radiusM int, category string) ([]domain.Place, error)
}

const placesBaseURL = "https://maps.googleapis.com/maps/api/place"

// GooglePlaces queries the Google Places Nearby Search API.
type GooglePlaces struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewGooglePlaces(apiKey string) *GooglePlaces {
	return &GooglePlaces{
		apiKey:     apiKey,
		baseURL:    placesBaseURL,
		httpClient: &http.Client{Timeout: config.CatalogTimeout},
	}
}

// NewGooglePlacesWithBaseURL is used by tests to point the provider at a
// local server.
func NewGooglePlacesWithBaseURL(apiKey, baseURL string) *GooglePlaces {
	p := NewGooglePlaces(apiKey)
	p.baseURL = baseURL
	return p
}

type nearbyResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID  string `json:"place_id"`
		Name     string `json:"name"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		Rating           float64 `json:"rating"`
		UserRatingsTotal int     `json:"user_ratings_total"`
		Vicinity         string  `json:"vicinity"`
		Photos           []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
	} `json:"results"`
}

func (g *GooglePlaces) Search(ctx context.Context, center domain.Coord, radiusM int, category string) ([]domain.Place, error) {
	q := url.Values{}
	q.Set("location", fmt.Sprintf("%f,%f", center.Lat, center.Lon))
	q.Set("radius", strconv.Itoa(radiusM))
	q.Set("type", category)
	q.Set("key", g.apiKey)

	reqURL := g.baseURL + "/nearbysearch/json?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nearby search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nearby search: unexpected status %d", resp.StatusCode)
	}

	var body nearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode nearby search response: %w", err)
	}

	places := make([]domain.Place, 0, len(body.Results))
	for _, item := range body.Results {
		coord := domain.Coord{Lat: item.Geometry.Location.Lat, Lon: item.Geometry.Location.Lng}
		p := domain.Place{
			ID:       item.PlaceID,
			Name:     item.Name,
			Coord:    coord,
			Category: category,
			Address:  item.Vicinity,
			Rating:   item.Rating,
			Reviews:  item.UserRatingsTotal,
			MapURL:   coord.MapURL(),
		}
		if len(item.Photos) > 0 && item.Photos[0].PhotoReference != "" {
			p.PhotoURL = g.photoURL(item.Photos[0].PhotoReference)
		}
		places = append(places, p)
	}
	return places, nil
}

func (g *GooglePlaces) photoURL(photoReference string) string {
	q := url.Values{}
	q.Set("maxwidth", "800")
	q.Set("photoreference", photoReference)
	q.Set("key", g.apiKey)
	return g.baseURL + "/photo?" + q.Encode()
}
