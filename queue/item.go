package queue

import (
	"time"

	"github.com/citypulse/citypoints-api/schema"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusSyncing Status = "syncing"
	StatusFailed  Status = "failed"
	StatusSynced  Status = "synced"
)

// QueueItem is one submission attempt waiting on the client. It is removed
// on confirmed delivery or, after archiving, on permanent failure.
type QueueItem struct {
	ID             string                   `json:"id"`
	IdempotencyKey string                   `json:"idempotency_key"`
	Payload        schema.SubmissionPayload `json:"payload"`
	Status         Status                   `json:"status"`
	Attempts       int                      `json:"attempts"`
	RetryCount     int                      `json:"retry_count"`
	NextRetryAt    time.Time                `json:"next_retry_at"`
	LastError      string                   `json:"last_error,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
}

// PayloadSummary is the redacted view of a failed payload kept in the
// error archive. Image bytes and detail fields never reach it.
type PayloadSummary struct {
	EventType schema.EventType `json:"event_type,omitempty"`
	Category  schema.Category  `json:"category"`
	PointID   string           `json:"point_id,omitempty"`
	Location  *schema.Location `json:"location,omitempty"`
}

// SyncErrorRecord archives a permanently failed submission so the user can
// inspect and dismiss it without the queue staying blocked.
type SyncErrorRecord struct {
	ID          string         `json:"id"`
	QueueItemID string         `json:"queue_item_id"`
	Message     string         `json:"message"`
	Summary     PayloadSummary `json:"summary"`
	CreatedAt   time.Time      `json:"created_at"`
}

func summarize(item QueueItem) PayloadSummary {
	return PayloadSummary{
		EventType: item.Payload.EventType,
		Category:  item.Payload.Category,
		PointID:   item.Payload.PointID,
		Location:  item.Payload.Location,
	}
}
