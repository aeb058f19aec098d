package schema

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBIndexer struct {
	ctx      context.Context
	dbName   string
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoDBIndexer(connectionString, dbName string) *MongoDBIndexer {
	ctx := context.Background()
	opts := options.Client().ApplyURI(connectionString)
	client, err := mongo.NewClient(opts)
	if err != nil {
		panic(err)
	}
	if err := client.Connect(ctx); err != nil {
		panic(err)
	}

	return &MongoDBIndexer{
		ctx:      ctx,
		dbName:   dbName,
		Client:   client,
		Database: client.Database(dbName),
	}
}

func (m *MongoDBIndexer) createIndex(collection string, index mongo.IndexModel) error {
	c := m.Database.Collection(collection)
	_, err := c.Indexes().CreateOne(m.ctx, index)
	return err
}

// IndexAll creates the indexes the event store relies on. The unique sparse
// index on idempotency_key is what makes retried deliveries deduplicate.
func (m *MongoDBIndexer) IndexAll() error {
	if err := m.createIndex(PointEventCollection, mongo.IndexModel{
		Keys: bson.D{
			{Key: "point_id", Value: 1},
			{Key: "created_at", Value: 1},
		},
	}); err != nil {
		return err
	}

	if err := m.createIndex(PointEventCollection, mongo.IndexModel{
		Keys:    bson.M{"idempotency_key": 1},
		Options: options.Index().SetUnique(true).SetSparse(true),
	}); err != nil {
		return err
	}

	if err := m.createIndex(PointEventCollection, mongo.IndexModel{
		Keys: bson.M{"user_id": 1},
	}); err != nil {
		return err
	}

	return m.createIndex(LegacySubmissionCollection, mongo.IndexModel{
		Keys: bson.M{"created_at": 1},
	})
}
