package fraud

import (
	"github.com/citypulse/citypoints-api/schema"
)

// Bound is a latitude/longitude bounding box.
type Bound struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

func (b Bound) Contains(loc schema.Location) bool {
	return loc.Latitude >= b.MinLat && loc.Latitude <= b.MaxLat &&
		loc.Longitude >= b.MinLng && loc.Longitude <= b.MaxLng
}

// BonamoussadiBound is the coverage area non-admin submissions must fall
// within.
var BonamoussadiBound = Bound{
	MinLat: 4.03,
	MaxLat: 4.13,
	MinLng: 9.69,
	MaxLng: 9.80,
}

// CameroonBound covers the whole country, used for read-side scoping.
var CameroonBound = Bound{
	MinLat: 1.65,
	MaxLat: 13.10,
	MinLng: 8.45,
	MaxLng: 16.20,
}
