package store

import (
	"github.com/jinzhu/gorm"

	"github.com/citypulse/citypoints-api/schema"
)

// CityPoints is the storage contract consumed by the api layer.
type CityPoints interface {
	Ping() error

	// Events
	GetPointEvents() ([]schema.PointEvent, error)
	GetPointEventsByPointID(pointID string) ([]schema.PointEvent, error)
	GetUserPointEvents(userID string) ([]schema.PointEvent, error)
	InsertPointEvent(event schema.PointEvent) (*schema.PointEvent, error)
	GetLegacySubmissions() ([]schema.LegacySubmission, error)

	// Profiles
	GetUserProfile(id string) (*schema.UserProfile, error)
	UpsertUserProfile(id string, points int) (*schema.UserProfile, error)
}

// CityPointsStore is an implementation of CityPoints backed by a postgres
// profile store and a mongodb event store.
type CityPointsStore struct {
	ormDB *gorm.DB
	mongo MongoStore
}

func NewCityPointsStore(ormDB *gorm.DB, mongo MongoStore) *CityPointsStore {
	return &CityPointsStore{
		ormDB: ormDB,
		mongo: mongo,
	}
}

// Ping is to check the storage health status
func (s *CityPointsStore) Ping() error {
	if err := s.ormDB.DB().Ping(); err != nil {
		return err
	}
	return s.mongo.Ping()
}

func (s *CityPointsStore) GetPointEvents() ([]schema.PointEvent, error) {
	return s.mongo.GetPointEvents()
}

func (s *CityPointsStore) GetPointEventsByPointID(pointID string) ([]schema.PointEvent, error) {
	return s.mongo.GetPointEventsByPointID(pointID)
}

func (s *CityPointsStore) GetUserPointEvents(userID string) ([]schema.PointEvent, error) {
	return s.mongo.GetUserPointEvents(userID)
}

func (s *CityPointsStore) InsertPointEvent(event schema.PointEvent) (*schema.PointEvent, error) {
	return s.mongo.InsertPointEvent(event)
}

func (s *CityPointsStore) GetLegacySubmissions() ([]schema.LegacySubmission, error) {
	return s.mongo.GetLegacySubmissions()
}
