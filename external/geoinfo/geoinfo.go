package geoinfo

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"googlemaps.github.io/maps"

	"github.com/citypulse/citypoints-api/schema"
)

const (
	logPrefix      = "geoinfo"
	defaultTimeout = 5 * time.Second
)

// GeoInfo - interface to reverse geocode a point location
type GeoInfo interface {
	PoliticalInfo(schema.Location) (schema.Location, error)
}

type geoInfo struct {
	client *maps.Client
}

// New - new GeoInfo interface
func New(apiKey string) (GeoInfo, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"error":  err,
		}).Error("new map client")

		return nil, err
	}

	return &geoInfo{
		client: client,
	}, nil
}

// PoliticalInfo annotates a location with its formatted address, county
// and country. Callers treat failures as "no annotation", never as a
// submission error.
func (g *geoInfo) PoliticalInfo(loc schema.Location) (schema.Location, error) {
	if loc.Country != "" {
		return loc, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	geos, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{
			Lat: loc.Latitude,
			Lng: loc.Longitude,
		},
		Language: "en",
	})
	if err != nil {
		return loc, err
	}

	if len(geos) == 0 {
		return loc, nil
	}

	loc.Address = geos[0].FormattedAddress
	for _, a := range geos[0].AddressComponents {
		if len(a.Types) == 0 {
			continue
		}
		switch a.Types[0] {
		case "administrative_area_level_2":
			loc.County = a.LongName
		case "country":
			loc.Country = a.LongName
		}
	}

	return loc, nil
}
