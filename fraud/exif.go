package fraud

import (
	"bytes"
	"time"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/citypulse/citypoints-api/schema"
)

// PhotoMetadata is what could be recovered from a photo's EXIF block. Any
// field may be absent; absence is a reportable state, not an error.
type PhotoMetadata struct {
	GPS         *schema.Location
	CapturedAt  *time.Time
	DeviceMake  string
	DeviceModel string
}

func (m PhotoMetadata) Empty() bool {
	return m.GPS == nil && m.CapturedAt == nil && m.DeviceMake == "" && m.DeviceModel == ""
}

// ExtractPhotoMetadata reads GPS, capture time and device identity from
// image bytes. Unreadable or unsupported metadata degrades to an empty
// report rather than failing the submission.
func ExtractPhotoMetadata(data []byte) PhotoMetadata {
	var meta PhotoMetadata

	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return meta
	}

	if lat, lng, err := x.LatLong(); err == nil {
		meta.GPS = &schema.Location{
			Latitude:  lat,
			Longitude: lng,
		}
	}

	if capturedAt, err := x.DateTime(); err == nil {
		meta.CapturedAt = &capturedAt
	}

	if tag, err := x.Get(exif.Make); err == nil {
		if make, err := tag.StringVal(); err == nil {
			meta.DeviceMake = make
		}
	}

	if tag, err := x.Get(exif.Model); err == nil {
		if model, err := tag.StringVal(); err == nil {
			meta.DeviceModel = model
		}
	}

	return meta
}
