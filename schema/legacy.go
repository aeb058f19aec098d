package schema

import "time"

// LegacySubmission is a flat historical row imported before the event log
// existed. It is merged into the event stream as a CREATE event at read
// time; the original rows are never rewritten.
type LegacySubmission struct {
	ID        string                 `bson:"_id" json:"id"`
	UserID    string                 `bson:"user_id" json:"userId"`
	Category  Category               `bson:"category" json:"category"`
	Latitude  float64                `bson:"latitude" json:"latitude"`
	Longitude float64                `bson:"longitude" json:"longitude"`
	Fields    map[string]interface{} `bson:"fields,omitempty" json:"fields,omitempty"`
	PhotoURL  string                 `bson:"photo_url,omitempty" json:"photoUrl,omitempty"`
	CreatedAt time.Time              `bson:"created_at" json:"createdAt"`
}
