package maproute

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/odesa-navmannia/walkbot/internal/domain"
)

func route(n int) []domain.Place {
	out := make([]domain.Place, n)
	for i := range out {
		out[i] = domain.Place{
			ID:    fmt.Sprintf("pl-%d", i+1),
			Coord: domain.Coord{Lat: 46.48 + float64(i)/100, Lon: 30.72},
		}
	}
	return out
}

func TestDirectionsLink(t *testing.T) {
	link := DirectionsLink(route(3))
	assert.Equal(t,
		"https://www.google.com/maps/dir/46.480000,30.720000/46.490000,30.720000/46.500000,30.720000",
		link)
}

func TestDirectionsLinkNeedsTwoStops(t *testing.T) {
	assert.Empty(t, DirectionsLink(nil))
	assert.Empty(t, DirectionsLink(route(1)))
}

func TestStaticMapURL(t *testing.T) {
	u := StaticMapURL(route(2), "test-key")

	assert.Contains(t, u, "https://maps.googleapis.com/maps/api/staticmap?")
	assert.Contains(t, u, "center=46.480000%2C30.720000")
	assert.Contains(t, u, "zoom=14")
	assert.Contains(t, u, "size=600x400")
	assert.Contains(t, u, "key=test-key")
	assert.Contains(t, u, "markers=color:red%7Clabel:1%7C46.480000,30.720000")
	assert.Contains(t, u, "markers=color:red%7Clabel:2%7C46.490000,30.720000")
}

func TestStaticMapURLEmptyRoute(t *testing.T) {
	assert.Empty(t, StaticMapURL(nil, "test-key"))
}
