// Package queue implements the offline submission queue: a durable,
// client-resident store of submission attempts flushed sequentially with
// capped exponential backoff. A flush may be interrupted at any point;
// every item's state transition is persisted independently, so the next
// flush simply picks up where the last one stopped.
package queue

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/citypulse/citypoints-api/schema"
)

const logPrefix = "queue"

const (
	baseBackoff = time.Second
	maxBackoff  = 30 * time.Second
	maxJitter   = time.Second
)

var ErrFlushInProgress = fmt.Errorf("a flush is already in progress")

// SendOptions accompany a delivery attempt.
type SendOptions struct {
	IdempotencyKey string
}

// SendFunc delivers one payload. Returning an error wrapped with
// Permanent drops the item into the error archive; any other error
// schedules a retry.
type SendFunc func(ctx context.Context, payload schema.SubmissionPayload, opts SendOptions) error

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks an error as non-retryable.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether an error was marked with Permanent.
func IsPermanent(err error) bool {
	var pe *permanentError
	return errors.As(err, &pe)
}

// FlushSummary reports what a flush did, for UI banners and logs.
type FlushSummary struct {
	Synced    int `json:"synced"`
	Failed    int `json:"failed"`
	Permanent int `json:"permanent"`
	Remaining int `json:"remaining"`
}

// Queue owns the submission queue lifecycle on the client.
type Queue struct {
	store Store

	mu       sync.Mutex
	flushing bool

	// injectable for tests
	now    func() time.Time
	jitter func() time.Duration
}

func New(store Store) *Queue {
	return &Queue{
		store: store,
		now:   time.Now,
		jitter: func() time.Duration {
			return time.Duration(rand.Int63n(int64(maxJitter)))
		},
	}
}

// Enqueue stores a submission attempt with a fresh id and idempotency key.
func (q *Queue) Enqueue(ctx context.Context, payload schema.SubmissionPayload) (*QueueItem, error) {
	now := q.now()
	item := QueueItem{
		ID:             uuid.New().String(),
		IdempotencyKey: uuid.New().String(),
		Payload:        payload,
		Status:         StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := q.store.Insert(ctx, item); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"prefix":   logPrefix,
		"item":     item.ID,
		"category": payload.Category,
	}).Info("queued submission")

	return &item, nil
}

// Flush walks the queue in creation order and attempts delivery of every
// item whose backoff has elapsed. Only one flush runs at a time; a
// concurrent call returns ErrFlushInProgress instead of double-claiming
// items.
func (q *Queue) Flush(ctx context.Context, send SendFunc) (FlushSummary, error) {
	q.mu.Lock()
	if q.flushing {
		q.mu.Unlock()
		return FlushSummary{}, ErrFlushInProgress
	}
	q.flushing = true
	q.mu.Unlock()

	defer func() {
		q.mu.Lock()
		q.flushing = false
		q.mu.Unlock()
	}()

	items, err := q.store.List(ctx)
	if err != nil {
		return FlushSummary{}, err
	}

	var summary FlushSummary
	for _, item := range items {
		now := q.now()
		if item.NextRetryAt.After(now) {
			summary.Remaining++
			continue
		}

		item.Status = StatusSyncing
		item.Attempts++
		item.UpdatedAt = now
		if err := q.store.Update(ctx, item); err != nil {
			return summary, err
		}

		sendErr := send(ctx, item.Payload, SendOptions{IdempotencyKey: item.IdempotencyKey})
		if sendErr == nil {
			if err := q.store.Delete(ctx, item.ID); err != nil {
				return summary, err
			}
			summary.Synced++
			continue
		}

		if IsPermanent(sendErr) {
			record := SyncErrorRecord{
				ID:          uuid.New().String(),
				QueueItemID: item.ID,
				Message:     sendErr.Error(),
				Summary:     summarize(item),
				CreatedAt:   q.now(),
			}
			if err := q.store.ArchiveError(ctx, record); err != nil {
				return summary, err
			}
			if err := q.store.Delete(ctx, item.ID); err != nil {
				return summary, err
			}
			log.WithFields(log.Fields{
				"prefix": logPrefix,
				"item":   item.ID,
				"error":  sendErr.Error(),
			}).Warn("submission permanently failed")
			summary.Permanent++
			continue
		}

		item.RetryCount++
		item.Status = StatusFailed
		item.LastError = sendErr.Error()
		item.NextRetryAt = q.now().Add(backoffDelay(item.RetryCount) + q.jitter())
		item.UpdatedAt = q.now()
		if err := q.store.Update(ctx, item); err != nil {
			return summary, err
		}
		summary.Failed++
		summary.Remaining++
	}

	return summary, nil
}

// SyncErrors lists the archived permanent failures.
func (q *Queue) SyncErrors(ctx context.Context) ([]SyncErrorRecord, error) {
	return q.store.ListErrors(ctx)
}

// DismissSyncError removes one archived failure.
func (q *Queue) DismissSyncError(ctx context.Context, id string) error {
	return q.store.DeleteError(ctx, id)
}

// backoffDelay is capped exponential backoff: 2s, 4s, 8s, ... up to 30s.
func backoffDelay(retryCount int) time.Duration {
	if retryCount > 5 {
		return maxBackoff
	}
	d := baseBackoff << uint(retryCount)
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}
