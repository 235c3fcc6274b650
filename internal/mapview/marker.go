// Package mapview turns a business collection into map markers for the
// map widget on the listing pages. The actual tile rendering happens in
// the browser; this package only decides what gets a pin and what the
// popup says.
package mapview

import (
	"fmt"
	"math"
	"net/url"

	"github.com/grensregio/directory-ui/internal/directory"
)

// Marker is one map pin with its popup content.
type Marker struct {
	BusinessID int64   `json:"business_id"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Address    string  `json:"address"`
	City       string  `json:"city"`
	Phone      string  `json:"phone,omitempty"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	MapsURL    string  `json:"maps_url"`
}

// Markers converts businesses to markers. Entries without usable
// coordinates are skipped rather than pinned at null island.
func Markers(businesses []directory.Business) []Marker {
	out := make([]Marker, 0, len(businesses))
	for _, b := range businesses {
		if !plottable(b) {
			continue
		}
		out = append(out, Marker{
			BusinessID: b.ID,
			Name:       b.Name,
			Category:   b.Category,
			Address:    b.Address,
			City:       b.City,
			Phone:      b.Phone,
			Latitude:   b.Latitude,
			Longitude:  b.Longitude,
			MapsURL:    MapsURL(b),
		})
	}
	return out
}

// MapsURL returns a Google Maps search link for the business location,
// preferring the street address over raw coordinates.
func MapsURL(b directory.Business) string {
	query := b.Address
	if query != "" && b.City != "" {
		query += ", " + b.City
	} else if query == "" {
		query = fmt.Sprintf("%f,%f", b.Latitude, b.Longitude)
	}
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(query)
}

func plottable(b directory.Business) bool {
	if !b.HasCoordinates() {
		return false
	}
	if math.IsNaN(b.Latitude) || math.IsNaN(b.Longitude) {
		return false
	}
	return b.Latitude >= -90 && b.Latitude <= 90 && b.Longitude >= -180 && b.Longitude <= 180
}
