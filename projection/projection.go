// Package projection folds the append-only point event stream into
// current per-point state. Projection is a pure function of the event set:
// replaying the same events always yields identical output.
package projection

import (
	"sort"

	"github.com/citypulse/citypoints-api/category"
	"github.com/citypulse/citypoints-api/schema"
)

// ProjectPoints folds events into projected points. Events are processed
// in createdAt order with their original relative order as the tie-break;
// the result is sorted by updatedAt descending, most recently touched
// first.
func ProjectPoints(events []schema.PointEvent) []schema.ProjectedPoint {
	ordered := make([]schema.PointEvent, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	byID := map[string]*schema.ProjectedPoint{}
	pointOrder := []string{}

	for _, ev := range ordered {
		point, ok := byID[ev.PointID]
		if !ok {
			point = seedPoint(ev)
			byID[ev.PointID] = point
			pointOrder = append(pointOrder, ev.PointID)
		} else {
			foldEvent(point, ev)
		}
		// gaps are recomputed from the merged details after every fold
		// step, never carried over
		point.Gaps = category.ListMissingFields(point.Category, point.Details)
	}

	points := make([]schema.ProjectedPoint, 0, len(pointOrder))
	for _, id := range pointOrder {
		points = append(points, *byID[id])
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].UpdatedAt.After(points[j].UpdatedAt)
	})

	return points
}

// ProjectPointByID projects a single point from the event stream.
func ProjectPointByID(events []schema.PointEvent, pointID string) *schema.ProjectedPoint {
	filtered := make([]schema.PointEvent, 0, len(events))
	for _, ev := range events {
		if ev.PointID == pointID {
			filtered = append(filtered, ev)
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	points := ProjectPoints(filtered)
	return &points[0]
}

func seedPoint(ev schema.PointEvent) *schema.ProjectedPoint {
	return &schema.ProjectedPoint{
		PointID:     ev.PointID,
		Category:    ev.Category,
		Location:    ev.Location,
		Details:     cloneDetails(ev.Details),
		EventsCount: 1,
		EventIDs:    []string{ev.ID},
		PhotoURL:    ev.PhotoURL,
		Source:      ev.Source,
		ExternalID:  ev.ExternalID,
		CreatedAt:   ev.CreatedAt,
		UpdatedAt:   ev.CreatedAt,
	}
}

// foldEvent merges one subsequent event into a point. Category and
// location follow the latest event wholesale; details merge field by
// field; provenance fields only move to non-empty values.
func foldEvent(point *schema.ProjectedPoint, ev schema.PointEvent) {
	point.Category = ev.Category
	point.Location = ev.Location
	point.Details = mergeDetails(point.Details, ev.Details)

	if ev.PhotoURL != "" {
		point.PhotoURL = ev.PhotoURL
	}
	if ev.Source != "" {
		point.Source = ev.Source
	}
	if ev.ExternalID != "" {
		point.ExternalID = ev.ExternalID
	}

	point.EventsCount++
	point.EventIDs = append(point.EventIDs, ev.ID)
	point.UpdatedAt = ev.CreatedAt
}
