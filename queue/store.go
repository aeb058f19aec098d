package queue

import "context"

// Store is the durable client-resident backing of the queue. Items come
// back from List in creation order. Implementations must survive process
// restarts; flushing relies on every state transition being persisted
// independently.
type Store interface {
	Insert(ctx context.Context, item QueueItem) error
	List(ctx context.Context) ([]QueueItem, error)
	Update(ctx context.Context, item QueueItem) error
	Delete(ctx context.Context, id string) error

	ArchiveError(ctx context.Context, record SyncErrorRecord) error
	ListErrors(ctx context.Context) ([]SyncErrorRecord, error)
	DeleteError(ctx context.Context, id string) error

	Close() error
}
