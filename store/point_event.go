package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/citypulse/citypoints-api/schema"
)

var (
	ErrPointNotFound = fmt.Errorf("point not found")
)

type PointEventStore interface {
	GetPointEvents() ([]schema.PointEvent, error)
	GetPointEventsByPointID(pointID string) ([]schema.PointEvent, error)
	GetUserPointEvents(userID string) ([]schema.PointEvent, error)
	InsertPointEvent(event schema.PointEvent) (*schema.PointEvent, error)
}

// GetPointEvents returns the full event stream in chronological order.
func (m *mongoDB) GetPointEvents() ([]schema.PointEvent, error) {
	return m.findPointEvents(bson.M{})
}

// GetPointEventsByPointID returns the events of a single point. An empty
// result means the point does not exist.
func (m *mongoDB) GetPointEventsByPointID(pointID string) ([]schema.PointEvent, error) {
	return m.findPointEvents(bson.M{"point_id": pointID})
}

// GetUserPointEvents returns the events submitted by one contributor.
func (m *mongoDB) GetUserPointEvents(userID string) ([]schema.PointEvent, error) {
	return m.findPointEvents(bson.M{"user_id": userID})
}

func (m *mongoDB) findPointEvents(query bson.M) ([]schema.PointEvent, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.PointEventCollection)

	cursor, err := c.Find(ctx, query, options.Find().SetSort(bson.M{"created_at": 1}))
	if err != nil {
		return nil, err
	}

	events := []schema.PointEvent{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// InsertPointEvent appends one immutable event. A retried delivery with a
// known idempotency key does not append again; the previously stored event
// is returned instead.
func (m *mongoDB) InsertPointEvent(event schema.PointEvent) (*schema.PointEvent, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.PointEventCollection)

	if _, err := c.InsertOne(ctx, event); err != nil {
		if isDuplicateKeyError(err) && event.IdempotencyKey != "" {
			var existing schema.PointEvent
			if ferr := c.FindOne(ctx, bson.M{"idempotency_key": event.IdempotencyKey}).Decode(&existing); ferr == nil {
				return &existing, nil
			}
		}
		return nil, err
	}

	return &event, nil
}

func isDuplicateKeyError(err error) bool {
	if we, ok := err.(mongo.WriteException); ok {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	return false
}
