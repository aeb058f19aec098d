package schema

import "time"

// SubmissionPhotoMetadata is the fraud report for a single photo. Nil
// distances and match flags mean the comparison was unavailable, which is
// deliberately distinct from a failed match.
type SubmissionPhotoMetadata struct {
	GPS                  *Location  `bson:"gps,omitempty" json:"gps,omitempty"`
	CapturedAt           *time.Time `bson:"captured_at,omitempty" json:"capturedAt,omitempty"`
	DeviceMake           string     `bson:"device_make,omitempty" json:"deviceMake,omitempty"`
	DeviceModel          string     `bson:"device_model,omitempty" json:"deviceModel,omitempty"`
	SubmissionDistanceKm *float64   `bson:"submission_distance_km,omitempty" json:"submissionDistanceKm,omitempty"`
	IPDistanceKm         *float64   `bson:"ip_distance_km,omitempty" json:"ipDistanceKm,omitempty"`
	SubmissionGPSMatch   *bool      `bson:"submission_gps_match,omitempty" json:"submissionGpsMatch,omitempty"`
	IPGPSMatch           *bool      `bson:"ip_gps_match,omitempty" json:"ipGpsMatch,omitempty"`
}

// SubmissionFraudCheck records every location signal and the thresholds
// applied at decision time, so past decisions stay auditable even after the
// configured thresholds change.
type SubmissionFraudCheck struct {
	SubmissionLocation    *Location                `bson:"submission_location,omitempty" json:"submissionLocation,omitempty"`
	EffectiveLocation     *Location                `bson:"effective_location,omitempty" json:"effectiveLocation,omitempty"`
	IPLocation            *Location                `bson:"ip_location,omitempty" json:"ipLocation,omitempty"`
	PrimaryPhoto          *SubmissionPhotoMetadata `bson:"primary_photo,omitempty" json:"primaryPhoto,omitempty"`
	SecondaryPhoto        *SubmissionPhotoMetadata `bson:"secondary_photo,omitempty" json:"secondaryPhoto,omitempty"`
	SubmissionThresholdKm float64                  `bson:"submission_threshold_km" json:"submissionThresholdKm"`
	IPThresholdKm         float64                  `bson:"ip_threshold_km" json:"ipThresholdKm"`
}
