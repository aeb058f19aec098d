package queue

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/citypulse/citypoints-api/schema"
)

func newTestQueue(t *testing.T) (*Queue, *SQLiteStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "queue.db")
	store, err := OpenSQLiteStore(path)
	assert.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	q := New(store)
	q.jitter = func() time.Duration { return 0 }
	return q, store, path
}

func testPayload() schema.SubmissionPayload {
	return schema.SubmissionPayload{
		EventType: schema.EventTypeCreate,
		Category:  schema.CategoryPharmacy,
		Location:  &schema.Location{Latitude: 4.0866, Longitude: 9.7403},
		Details: map[string]interface{}{
			"name":      "Pharmacie du Rond-Point",
			"isOpenNow": true,
		},
		ImageBase64: "aGVsbG8=",
	}
}

func TestEnqueuePersists(t *testing.T) {
	q, store, _ := newTestQueue(t)
	ctx := context.Background()

	item, err := q.Enqueue(ctx, testPayload())
	assert.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.NotEmpty(t, item.IdempotencyKey)
	assert.Equal(t, StatusPending, item.Status)

	items, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)
	assert.Equal(t, "Pharmacie du Rond-Point", items[0].Payload.Details["name"])
}

func TestFlushDeliversInCreationOrder(t *testing.T) {
	q, store, _ := newTestQueue(t)
	ctx := context.Background()

	first := testPayload()
	second := testPayload()
	second.Category = schema.CategoryFuelStation
	_, err := q.Enqueue(ctx, first)
	assert.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = q.Enqueue(ctx, second)
	assert.NoError(t, err)

	var delivered []schema.Category
	summary, err := q.Flush(ctx, func(ctx context.Context, p schema.SubmissionPayload, opts SendOptions) error {
		assert.NotEmpty(t, opts.IdempotencyKey)
		delivered = append(delivered, p.Category)
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, FlushSummary{Synced: 2}, summary)
	assert.Equal(t, []schema.Category{schema.CategoryPharmacy, schema.CategoryFuelStation}, delivered)

	items, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestFlushRetryableFailureKeepsItem(t *testing.T) {
	q, store, _ := newTestQueue(t)
	ctx := context.Background()

	_, err := q.Enqueue(ctx, testPayload())
	assert.NoError(t, err)

	sendErr := errors.New("connection refused")
	summary, err := q.Flush(ctx, func(context.Context, schema.SubmissionPayload, SendOptions) error {
		return sendErr
	})
	assert.NoError(t, err)
	assert.Equal(t, FlushSummary{Failed: 1, Remaining: 1}, summary)

	items, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, StatusFailed, items[0].Status)
	assert.Equal(t, 1, items[0].RetryCount)
	assert.Equal(t, 1, items[0].Attempts)
	assert.Equal(t, "connection refused", items[0].LastError)
	assert.True(t, items[0].NextRetryAt.After(q.now()))
}

func TestFlushBackoffGrowsBetweenAttempts(t *testing.T) {
	q, store, _ := newTestQueue(t)
	ctx := context.Background()

	_, err := q.Enqueue(ctx, testPayload())
	assert.NoError(t, err)

	// advance the clock past each scheduled retry so every flush attempts
	// the item again
	base := time.Now()
	clock := base
	q.now = func() time.Time { return clock }

	var retryTimes []time.Time
	for i := 0; i < 3; i++ {
		_, err := q.Flush(ctx, func(context.Context, schema.SubmissionPayload, SendOptions) error {
			return errors.New("still down")
		})
		assert.NoError(t, err)

		items, err := store.List(ctx)
		assert.NoError(t, err)
		assert.Len(t, items, 1)
		retryTimes = append(retryTimes, items[0].NextRetryAt)
		clock = items[0].NextRetryAt.Add(time.Millisecond)
	}

	assert.Equal(t, base.Add(2*time.Second).UnixNano(), retryTimes[0].UnixNano())
	assert.True(t, retryTimes[1].After(retryTimes[0]))
	assert.True(t, retryTimes[2].After(retryTimes[1]))
}

func TestFlushSkipsItemsStillBackingOff(t *testing.T) {
	q, _, _ := newTestQueue(t)
	ctx := context.Background()

	_, err := q.Enqueue(ctx, testPayload())
	assert.NoError(t, err)

	_, err = q.Flush(ctx, func(context.Context, schema.SubmissionPayload, SendOptions) error {
		return errors.New("timeout")
	})
	assert.NoError(t, err)

	calls := 0
	summary, err := q.Flush(ctx, func(context.Context, schema.SubmissionPayload, SendOptions) error {
		calls++
		return nil
	})
	assert.NoError(t, err)
	assert.Zero(t, calls)
	assert.Equal(t, FlushSummary{Remaining: 1}, summary)
}

func TestFlushPermanentFailureArchives(t *testing.T) {
	q, store, _ := newTestQueue(t)
	ctx := context.Background()

	item, err := q.Enqueue(ctx, testPayload())
	assert.NoError(t, err)

	summary, err := q.Flush(ctx, func(context.Context, schema.SubmissionPayload, SendOptions) error {
		return Permanent(errors.New("server rejected submission: missing required fields"))
	})
	assert.NoError(t, err)
	assert.Equal(t, FlushSummary{Permanent: 1}, summary)

	items, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, items)

	records, err := q.SyncErrors(ctx)
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, item.ID, records[0].QueueItemID)
	assert.Contains(t, records[0].Message, "missing required fields")

	// the archive keeps a summary, never the raw payload
	assert.Equal(t, schema.CategoryPharmacy, records[0].Summary.Category)
	assert.Equal(t, 4.0866, records[0].Summary.Location.Latitude)
}

func TestDismissSyncError(t *testing.T) {
	q, _, _ := newTestQueue(t)
	ctx := context.Background()

	_, err := q.Enqueue(ctx, testPayload())
	assert.NoError(t, err)
	_, err = q.Flush(ctx, func(context.Context, schema.SubmissionPayload, SendOptions) error {
		return Permanent(errors.New("bad category"))
	})
	assert.NoError(t, err)

	records, err := q.SyncErrors(ctx)
	assert.NoError(t, err)
	assert.Len(t, records, 1)

	assert.NoError(t, q.DismissSyncError(ctx, records[0].ID))

	records, err = q.SyncErrors(ctx)
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestFlushSingleFlight(t *testing.T) {
	q, _, _ := newTestQueue(t)
	ctx := context.Background()

	_, err := q.Enqueue(ctx, testPayload())
	assert.NoError(t, err)

	started := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := q.Flush(ctx, func(context.Context, schema.SubmissionPayload, SendOptions) error {
			close(started)
			<-release
			return nil
		})
		assert.NoError(t, err)
	}()

	<-started
	_, err = q.Flush(ctx, func(context.Context, schema.SubmissionPayload, SendOptions) error {
		return nil
	})
	assert.Equal(t, ErrFlushInProgress, err)

	close(release)
	wg.Wait()

	// a finished flush releases the guard
	_, err = q.Flush(ctx, func(context.Context, schema.SubmissionPayload, SendOptions) error {
		return nil
	})
	assert.NoError(t, err)
}

func TestQueueSurvivesReopen(t *testing.T) {
	q, store, path := newTestQueue(t)
	ctx := context.Background()

	item, err := q.Enqueue(ctx, testPayload())
	assert.NoError(t, err)
	assert.NoError(t, store.Close())

	reopened, err := OpenSQLiteStore(path)
	assert.NoError(t, err)
	defer reopened.Close()

	items, err := reopened.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)
	assert.Equal(t, item.IdempotencyKey, items[0].IdempotencyKey)
}

func TestStoreOpensInWALMode(t *testing.T) {
	_, store, _ := newTestQueue(t)

	var mode string
	err := store.db.QueryRow("PRAGMA journal_mode").Scan(&mode)
	assert.NoError(t, err)
	assert.Equal(t, "wal", mode)
}

func TestBackoffDelayCapped(t *testing.T) {
	assert.Equal(t, 2*time.Second, backoffDelay(1))
	assert.Equal(t, 4*time.Second, backoffDelay(2))
	assert.Equal(t, 8*time.Second, backoffDelay(3))
	assert.Equal(t, 16*time.Second, backoffDelay(4))
	assert.Equal(t, 30*time.Second, backoffDelay(5))
	assert.Equal(t, 30*time.Second, backoffDelay(6))
	assert.Equal(t, 30*time.Second, backoffDelay(40))
}
