package ipgeo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/citypulse/citypoints-api/schema"
)

const (
	logPrefix      = "ipgeo"
	defaultBaseURL = "http://ip-api.com/json"
)

var ErrLookupFailed = fmt.Errorf("ip geolocation lookup failed")

// IPGeo - interface to resolve a request IP into a coarse location
type IPGeo interface {
	Lookup(ip string) (*schema.Location, error)
}

type client struct {
	httpClient *http.Client
	baseURL    string
}

// New - new IPGeo client with a bounded request timeout. Lookups that time
// out surface an error for the caller to degrade to "unavailable".
func New(timeout time.Duration) IPGeo {
	return &client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: defaultBaseURL,
	}
}

func (c *client) Lookup(ip string) (*schema.Location, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.httpClient.Timeout)
	defer cancel()

	url := fmt.Sprintf("%s/%s?fields=status,lat,lon,country", c.baseURL, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"ip":     ip,
			"error":  err,
		}).Warn("ip lookup request failed")
		return nil, err
	}
	defer resp.Body.Close()

	var body struct {
		Status  string  `json:"status"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
		Country string  `json:"country"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	if body.Status != "success" {
		return nil, ErrLookupFailed
	}

	return &schema.Location{
		Latitude:  body.Lat,
		Longitude: body.Lon,
		Country:   body.Country,
	}, nil
}
