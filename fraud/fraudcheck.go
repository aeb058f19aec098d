package fraud

import (
	"github.com/citypulse/citypoints-api/schema"
)

// BuildPhotoFraudMetadata turns an extracted photo report into the
// persisted per-photo fraud record. It returns nil only when nothing at all
// was extracted. A distance is nil whenever either side of the comparison
// is missing, and its match flag stays nil with it: "unavailable" is a
// different answer than "mismatch".
func BuildPhotoFraudMetadata(meta PhotoMetadata, submissionLoc, ipLoc *schema.Location, submissionThresholdKm, ipThresholdKm float64) *schema.SubmissionPhotoMetadata {
	if meta.Empty() {
		return nil
	}

	out := &schema.SubmissionPhotoMetadata{
		GPS:         meta.GPS,
		CapturedAt:  meta.CapturedAt,
		DeviceMake:  meta.DeviceMake,
		DeviceModel: meta.DeviceModel,
	}

	if meta.GPS != nil && submissionLoc != nil {
		d := Round3(HaversineKm(*meta.GPS, *submissionLoc))
		match := d <= submissionThresholdKm
		out.SubmissionDistanceKm = &d
		out.SubmissionGPSMatch = &match
	}

	if meta.GPS != nil && ipLoc != nil {
		d := Round3(HaversineKm(*meta.GPS, *ipLoc))
		match := d <= ipThresholdKm
		out.IPDistanceKm = &d
		out.IPGPSMatch = &match
	}

	return out
}

// BuildSubmissionFraudCheck packages both photo reports with every location
// signal and the thresholds that were actually applied.
func BuildSubmissionFraudCheck(primary, secondary *schema.SubmissionPhotoMetadata, submission, ip, effective *schema.Location, submissionThresholdKm, ipThresholdKm float64) *schema.SubmissionFraudCheck {
	return &schema.SubmissionFraudCheck{
		SubmissionLocation:    submission,
		EffectiveLocation:     effective,
		IPLocation:            ip,
		PrimaryPhoto:          primary,
		SecondaryPhoto:        secondary,
		SubmissionThresholdKm: submissionThresholdKm,
		IPThresholdKm:         ipThresholdKm,
	}
}
