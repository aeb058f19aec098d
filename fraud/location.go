package fraud

import (
	"fmt"

	"github.com/citypulse/citypoints-api/schema"
)

var (
	ErrNoLocationSignal    = fmt.Errorf("no location signal in photo, device or ip")
	ErrPhotoDeviceMismatch = fmt.Errorf("photo gps does not match the submitted location")
	ErrPhotoIPMismatch     = fmt.Errorf("photo gps does not match the network location")
	ErrOutsideCoverage     = fmt.Errorf("location is outside the coverage area")
)

// Thresholds are the distance limits applied when reconciling location
// signals.
type Thresholds struct {
	SubmissionKm float64
	IPKm         float64
}

// DefaultThresholds mirrors the configuration defaults.
var DefaultThresholds = Thresholds{
	SubmissionKm: 1,
	IPKm:         50,
}

// ResolveEffectiveLocation applies the location precedence policy. Photo
// GPS wins when present but must agree with the submitted device location
// and the IP-derived location within the thresholds. Without photo GPS the
// device location is used, falling back to the IP location. No signal at
// all rejects the submission. Non-admin submissions must additionally fall
// inside the coverage geofence; admins bypass the fence but not the
// distance checks.
func ResolveEffectiveLocation(photoGPS, submissionLoc, ipLoc *schema.Location, isAdmin bool, t Thresholds) (*schema.Location, error) {
	var effective *schema.Location

	switch {
	case photoGPS != nil:
		if submissionLoc != nil && HaversineKm(*photoGPS, *submissionLoc) > t.SubmissionKm {
			return nil, ErrPhotoDeviceMismatch
		}
		if ipLoc != nil && HaversineKm(*photoGPS, *ipLoc) > t.IPKm {
			return nil, ErrPhotoIPMismatch
		}
		effective = photoGPS
	case submissionLoc != nil:
		effective = submissionLoc
	case ipLoc != nil:
		effective = ipLoc
	default:
		return nil, ErrNoLocationSignal
	}

	if !isAdmin && !BonamoussadiBound.Contains(*effective) {
		return nil, ErrOutsideCoverage
	}

	return effective, nil
}
