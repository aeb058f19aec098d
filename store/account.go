package store

import (
	"time"

	"github.com/jinzhu/gorm"
	"github.com/lib/pq"

	"github.com/citypulse/citypoints-api/schema"
)

// GetUserProfile returns a contributor's profile, or nil when none exists
// yet.
func (s *CityPointsStore) GetUserProfile(id string) (*schema.UserProfile, error) {
	var profile schema.UserProfile
	if err := s.ormDB.Where("id = ?", id).First(&profile).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// UpsertUserProfile adds points to a contributor's XP counter, creating the
// profile on first contact. This is a plain read-modify-write; occasional
// drift under concurrent requests is accepted.
func (s *CityPointsStore) UpsertUserProfile(id string, points int) (*schema.UserProfile, error) {
	var profile schema.UserProfile
	err := s.ormDB.Where("id = ?", id).First(&profile).Error
	if gorm.IsRecordNotFoundError(err) {
		profile = schema.UserProfile{
			ID:               id,
			Points:           points,
			SubmissionsCount: 1,
			CreatedAt:        time.Now().UTC(),
			UpdatedAt:        time.Now().UTC(),
		}
		if err := s.ormDB.Create(&profile).Error; err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
				// lost the first-contact race; add to the row that won
				return s.addToProfile(id, points)
			}
			return nil, err
		}
		return &profile, nil
	} else if err != nil {
		return nil, err
	}

	profile.Points += points
	profile.SubmissionsCount++
	profile.UpdatedAt = time.Now().UTC()
	if err := s.ormDB.Save(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *CityPointsStore) addToProfile(id string, points int) (*schema.UserProfile, error) {
	var profile schema.UserProfile
	if err := s.ormDB.Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, err
	}

	profile.Points += points
	profile.SubmissionsCount++
	profile.UpdatedAt = time.Now().UTC()
	if err := s.ormDB.Save(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}
