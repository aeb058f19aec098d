package schema

import (
	"time"
)

const (
	PointEventCollection       = "point_events"
	LegacySubmissionCollection = "legacy_submissions"
)

type EventType string

const (
	EventTypeCreate EventType = "CREATE"
	EventTypeEnrich EventType = "ENRICH"
)

type Category string

const (
	CategoryPharmacy    Category = "pharmacy"
	CategoryFuelStation Category = "fuel_station"
	CategoryMobileMoney Category = "mobile_money"
)

var Categories = []Category{
	CategoryPharmacy,
	CategoryFuelStation,
	CategoryMobileMoney,
}

func (c Category) Valid() bool {
	switch c {
	case CategoryPharmacy, CategoryFuelStation, CategoryMobileMoney:
		return true
	}
	return false
}

type PharmacyDetails struct {
	Name         *string `bson:"name,omitempty" json:"name,omitempty"`
	IsOpenNow    *bool   `bson:"is_open_now,omitempty" json:"isOpenNow,omitempty"`
	OpeningHours *string `bson:"opening_hours,omitempty" json:"openingHours,omitempty"`
	PhoneNumber  *string `bson:"phone_number,omitempty" json:"phoneNumber,omitempty"`
}

type FuelStationDetails struct {
	Name             *string            `bson:"name,omitempty" json:"name,omitempty"`
	HasFuelAvailable *bool              `bson:"has_fuel_available,omitempty" json:"hasFuelAvailable,omitempty"`
	FuelTypes        []string           `bson:"fuel_types,omitempty" json:"fuelTypes,omitempty"`
	PricesByFuel     map[string]float64 `bson:"prices_by_fuel,omitempty" json:"pricesByFuel,omitempty"`
	OpeningHours     *string            `bson:"opening_hours,omitempty" json:"openingHours,omitempty"`
}

type MobileMoneyDetails struct {
	Providers               []string          `bson:"providers,omitempty" json:"providers,omitempty"`
	MerchantIDByProvider    map[string]string `bson:"merchant_id_by_provider,omitempty" json:"merchantIdByProvider,omitempty"`
	HasMin50000XafAvailable *bool             `bson:"has_min_50000_xaf_available,omitempty" json:"hasMin50000XafAvailable,omitempty"`
	OpeningHours            *string           `bson:"opening_hours,omitempty" json:"openingHours,omitempty"`
}

// PointDetails holds at most one category variant. The fraud check is
// attached once at event creation and never rewritten afterwards.
type PointDetails struct {
	Pharmacy    *PharmacyDetails      `bson:"pharmacy,omitempty" json:"pharmacy,omitempty"`
	FuelStation *FuelStationDetails   `bson:"fuel_station,omitempty" json:"fuelStation,omitempty"`
	MobileMoney *MobileMoneyDetails   `bson:"mobile_money,omitempty" json:"mobileMoney,omitempty"`
	FraudCheck  *SubmissionFraudCheck `bson:"fraud_check,omitempty" json:"fraudCheck,omitempty"`
}

// PointEvent is an immutable record of one contributor's observation.
// Corrections are new ENRICH events, never in-place updates.
type PointEvent struct {
	ID             string       `bson:"_id" json:"id"`
	PointID        string       `bson:"point_id" json:"pointId"`
	EventType      EventType    `bson:"event_type" json:"eventType"`
	UserID         string       `bson:"user_id" json:"userId"`
	Category       Category     `bson:"category" json:"category"`
	Location       Location     `bson:"location" json:"location"`
	Details        PointDetails `bson:"details" json:"details"`
	PhotoURL       string       `bson:"photo_url,omitempty" json:"photoUrl,omitempty"`
	IdempotencyKey string       `bson:"idempotency_key,omitempty" json:"-"`
	Source         string       `bson:"source,omitempty" json:"source,omitempty"`
	ExternalID     string       `bson:"external_id,omitempty" json:"externalId,omitempty"`
	IsImported     bool         `bson:"is_imported,omitempty" json:"isImported,omitempty"`
	CreatedAt      time.Time    `bson:"created_at" json:"createdAt"`
}

// ProjectedPoint is the current-state view of a point. It is recomputed
// from the event stream on every read and is never persisted.
type ProjectedPoint struct {
	PointID     string       `json:"pointId"`
	Category    Category     `json:"category"`
	Location    Location     `json:"location"`
	Details     PointDetails `json:"details"`
	Gaps        []string     `json:"gaps"`
	EventsCount int          `json:"eventsCount"`
	EventIDs    []string     `json:"eventIds"`
	PhotoURL    string       `json:"photoUrl,omitempty"`
	Source      string       `json:"source,omitempty"`
	ExternalID  string       `json:"externalId,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// SubmissionPayload is the wire shape of a submission, shared between the
// HTTP handler and the offline queue.
type SubmissionPayload struct {
	EventType         EventType              `json:"eventType,omitempty"`
	PointID           string                 `json:"pointId,omitempty"`
	Category          Category               `json:"category"`
	Location          *Location              `json:"location,omitempty"`
	Details           map[string]interface{} `json:"details,omitempty"`
	ImageBase64       string                 `json:"imageBase64,omitempty"`
	SecondImageBase64 string                 `json:"secondImageBase64,omitempty"`
}
