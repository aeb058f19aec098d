package projection

import (
	"github.com/citypulse/citypoints-api/category"
	"github.com/citypulse/citypoints-api/schema"
)

const legacySource = "legacy_import"

// MergeLegacy converts historical flat submissions into CREATE events and
// prepends them to the stream, preserving their original timestamps so the
// chronological fold stays correct. Rows with an unknown category are
// skipped; a backfill cannot reject data that was already accepted once.
func MergeLegacy(legacy []schema.LegacySubmission, events []schema.PointEvent) []schema.PointEvent {
	merged := make([]schema.PointEvent, 0, len(legacy)+len(events))

	for _, ls := range legacy {
		details, _, err := category.NormalizeDetails(ls.Category, ls.Fields)
		if err != nil {
			continue
		}

		merged = append(merged, schema.PointEvent{
			ID:        "legacy-" + ls.ID,
			PointID:   "legacy-" + ls.ID,
			EventType: schema.EventTypeCreate,
			UserID:    ls.UserID,
			Category:  ls.Category,
			Location: schema.Location{
				Latitude:  ls.Latitude,
				Longitude: ls.Longitude,
			},
			Details:    details,
			PhotoURL:   ls.PhotoURL,
			Source:     legacySource,
			ExternalID: ls.ID,
			IsImported: true,
			CreatedAt:  ls.CreatedAt,
		})
	}

	return append(merged, events...)
}
