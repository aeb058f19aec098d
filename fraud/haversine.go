package fraud

import (
	"math"

	"github.com/citypulse/citypoints-api/schema"
)

const earthRadiusKm = 6371.0

// HaversineKm computes the great-circle distance between two coordinates
// in kilometers.
func HaversineKm(a, b schema.Location) float64 {
	latA := a.Latitude * math.Pi / 180
	latB := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// Round3 rounds a distance to 3 decimal places for persistence.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
