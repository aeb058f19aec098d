package schema

import "time"

// UserProfile keeps per-contributor counters. The XP upsert is a plain
// read-modify-write; cross-request drift is accepted and reconciled by the
// storage collaborator, not this core.
type UserProfile struct {
	ID               string    `json:"id" gorm:"primary_key"`
	Points           int       `json:"points"`
	SubmissionsCount int       `json:"submissions_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
