package domain

import "fmt"

// Coord is a WGS84 coordinate pair.
type Coord struct {
	Lat float64
	Lon float64
}

func (c Coord) MapURL() string {
	return fmt.Sprintf("https://maps.google.com/?q=%f,%f", c.Lat, c.Lon)
}

// Place is a point of interest returned by the catalog. Fetched fresh on
// every query and never mutated; optional provider fields stay zero-valued
// when absent.
type Place struct {
	ID       string
	Name     string
	Coord    Coord
	Category string
	Address  string
	Rating   float64
	Reviews  int
	PhotoURL string
	MapURL   string
}

// HasRating reports whether the provider returned rating data for the venue.
func (p *Place) HasRating() bool {
	return p.Rating > 0 && p.Reviews > 0
}
