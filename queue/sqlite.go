package queue

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/citypulse/citypoints-api/schema"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS queue_items (
	id TEXT PRIMARY KEY,
	idempotency_key TEXT NOT NULL,
	payload TEXT NOT NULL,
	status TEXT NOT NULL,
	attempts INTEGER NOT NULL DEFAULT 0,
	retry_count INTEGER NOT NULL DEFAULT 0,
	next_retry_at INTEGER NOT NULL DEFAULT 0,
	last_error TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS sync_errors (
	id TEXT PRIMARY KEY,
	queue_item_id TEXT NOT NULL,
	message TEXT NOT NULL,
	summary TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
`

// SQLiteStore keeps the queue and the error archive in a local sqlite
// file so both survive app restarts.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open queue database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping queue database: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("create queue schema: %w (close: %v)", err, cerr)
		}
		return nil, fmt.Errorf("create queue schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Insert(ctx context.Context, item QueueItem) error {
	payload, err := json.Marshal(item.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO queue_items
			(id, idempotency_key, payload, status, attempts, retry_count, next_retry_at, last_error, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, item.ID, item.IdempotencyKey, string(payload), string(item.Status),
		item.Attempts, item.RetryCount, item.NextRetryAt.UnixNano(),
		item.LastError, item.CreatedAt.UnixNano(), item.UpdatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("insert queue item: %w", err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]QueueItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, idempotency_key, payload, status, attempts, retry_count, next_retry_at, last_error, created_at, updated_at
		FROM queue_items ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list queue items: %w", err)
	}
	defer rows.Close()

	items := []QueueItem{}
	for rows.Next() {
		var (
			item                             QueueItem
			payload, status                  string
			nextRetryAt, createdAt, updatedAt int64
		)
		if err := rows.Scan(&item.ID, &item.IdempotencyKey, &payload, &status,
			&item.Attempts, &item.RetryCount, &nextRetryAt, &item.LastError,
			&createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan queue item: %w", err)
		}

		var body schema.SubmissionPayload
		if err := json.Unmarshal([]byte(payload), &body); err != nil {
			return nil, fmt.Errorf("unmarshal payload of %s: %w", item.ID, err)
		}
		item.Payload = body
		item.Status = Status(status)
		item.NextRetryAt = time.Unix(0, nextRetryAt)
		item.CreatedAt = time.Unix(0, createdAt)
		item.UpdatedAt = time.Unix(0, updatedAt)
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *SQLiteStore) Update(ctx context.Context, item QueueItem) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE queue_items
		SET status = ?, attempts = ?, retry_count = ?, next_retry_at = ?, last_error = ?, updated_at = ?
		WHERE id = ?
	`, string(item.Status), item.Attempts, item.RetryCount,
		item.NextRetryAt.UnixNano(), item.LastError, item.UpdatedAt.UnixNano(), item.ID)
	if err != nil {
		return fmt.Errorf("update queue item %s: %w", item.ID, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM queue_items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete queue item %s: %w", id, err)
	}
	return nil
}

func (s *SQLiteStore) ArchiveError(ctx context.Context, record SyncErrorRecord) error {
	summary, err := json.Marshal(record.Summary)
	if err != nil {
		return fmt.Errorf("marshal error summary: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sync_errors (id, queue_item_id, message, summary, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, record.ID, record.QueueItemID, record.Message, string(summary), record.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("archive sync error: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListErrors(ctx context.Context) ([]SyncErrorRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, queue_item_id, message, summary, created_at
		FROM sync_errors ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list sync errors: %w", err)
	}
	defer rows.Close()

	records := []SyncErrorRecord{}
	for rows.Next() {
		var (
			record    SyncErrorRecord
			summary   string
			createdAt int64
		)
		if err := rows.Scan(&record.ID, &record.QueueItemID, &record.Message, &summary, &createdAt); err != nil {
			return nil, fmt.Errorf("scan sync error: %w", err)
		}
		if err := json.Unmarshal([]byte(summary), &record.Summary); err != nil {
			return nil, fmt.Errorf("unmarshal summary of %s: %w", record.ID, err)
		}
		record.CreatedAt = time.Unix(0, createdAt)
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) DeleteError(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sync_errors WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete sync error %s: %w", id, err)
	}
	return nil
}
