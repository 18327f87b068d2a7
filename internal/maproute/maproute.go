// Package maproute formats Google Maps links for a picked route. Pure
// string assembly, no network calls.
package maproute

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/odesa-navmannia/walkbot/internal/domain"
)

// DirectionsLink builds a walking directions link through every stop in
// order. Empty for fewer than two stops.
func DirectionsLink(route []domain.Place) string {
	if len(route) < 2 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("https://www.google.com/maps/dir")
	for _, p := range route {
		fmt.Fprintf(&sb, "/%f,%f", p.Coord.Lat, p.Coord.Lon)
	}
	return sb.String()
}

// StaticMapURL builds a Static Maps image URL with numbered markers,
// centered on the first stop. Empty for an empty route.
func StaticMapURL(route []domain.Place, apiKey string) string {
	if len(route) == 0 {
		return ""
	}

	q := url.Values{}
	q.Set("center", fmt.Sprintf("%f,%f", route[0].Coord.Lat, route[0].Coord.Lon))
	q.Set("zoom", "14")
	q.Set("size", "600x400")
	q.Set("maptype", "roadmap")
	q.Set("key", apiKey)

	var markers []string
	for i, p := range route {
		markers = append(markers,
			fmt.Sprintf("markers=color:red%%7Clabel:%d%%7C%f,%f", i+1, p.Coord.Lat, p.Coord.Lon))
	}

	return "https://maps.googleapis.com/maps/api/staticmap?" +
		q.Encode() + "&" + strings.Join(markers, "&")
}
