package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odesa-navmannia/walkbot/internal/domain"
)

const nearbyFixture = `{
	"status": "OK",
	"results": [
		{
			"place_id": "pl-1",
			"name": "Одеський археологічний музей",
			"geometry": {"location": {"lat": 46.4843, "lng": 30.7418}},
			"rating": 4.6,
			"user_ratings_total": 812,
			"vicinity": "вулиця Ланжеронівська, 4",
			"photos": [{"photo_reference": "ref-abc"}]
		},
		{
			"place_id": "pl-2",
			"name": "Міський сад",
			"geometry": {"location": {"lat": 46.4851, "lng": 30.7385}},
			"rating": 0,
			"user_ratings_total": 0,
			"vicinity": "вулиця Дерибасівська"
		}
	]
}`

func TestGooglePlacesSearch(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/nearbysearch/json", r.URL.Path)
		gotQuery = map[string]string{
			"location": r.URL.Query().Get("location"),
			"radius":   r.URL.Query().Get("radius"),
			"type":     r.URL.Query().Get("type"),
			"key":      r.URL.Query().Get("key"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(nearbyFixture))
	}))
	defer srv.Close()

	p := NewGooglePlacesWithBaseURL("test-key", srv.URL)
	places, err := p.Search(context.Background(), domain.Coord{Lat: 46.4825, Lon: 30.7233}, 1500, "museum")

	require.NoError(t, err)
	require.Len(t, places, 2)

	assert.Equal(t, "46.482500,30.723300", gotQuery["location"])
	assert.Equal(t, "1500", gotQuery["radius"])
	assert.Equal(t, "museum", gotQuery["type"])
	assert.Equal(t, "test-key", gotQuery["key"])

	first := places[0]
	assert.Equal(t, "pl-1", first.ID)
	assert.Equal(t, "Одеський археологічний музей", first.Name)
	assert.Equal(t, "museum", first.Category)
	assert.Equal(t, 4.6, first.Rating)
	assert.Equal(t, 812, first.Reviews)
	assert.Equal(t, "вулиця Ланжеронівська, 4", first.Address)
	assert.Contains(t, first.PhotoURL, "photoreference=ref-abc")
	assert.Contains(t, first.MapURL, "46.484300")

	second := places[1]
	assert.Equal(t, 0, second.Reviews)
	assert.Empty(t, second.PhotoURL)
}

func TestGooglePlacesSearchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewGooglePlacesWithBaseURL("test-key", srv.URL)
	_, err := p.Search(context.Background(), domain.Coord{Lat: 46.4825, Lon: 30.7233}, 1500, "park")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 502")
}
