package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/citypulse/citypoints-api/schema"
)

type LegacySubmissionStore interface {
	GetLegacySubmissions() ([]schema.LegacySubmission, error)
}

// GetLegacySubmissions returns the imported pre-event-log rows, oldest
// first, for the read-time merge into the event stream.
func (m *mongoDB) GetLegacySubmissions() ([]schema.LegacySubmission, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.LegacySubmissionCollection)

	cursor, err := c.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"created_at": 1}))
	if err != nil {
		return nil, err
	}

	submissions := []schema.LegacySubmission{}
	if err := cursor.All(ctx, &submissions); err != nil {
		return nil, err
	}
	return submissions, nil
}
