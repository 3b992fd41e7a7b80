package contract

import (
	"context"
	"time"

	"github.com/diegoclair/advice-rotation-bot/internal/domain/entity"
)

// DataManager aggregates all repository interfaces
type DataManager interface {
	WithTransaction(ctx context.Context, fn func(dm DataManager) error) error
	KV() KVStore
	Notification() NotificationRepo
}

// KVStore is the string key-value persistence used for preferences
type KVStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// NotificationRepo stores pending notification jobs
type NotificationRepo interface {
	Upsert(ctx context.Context, job *entity.NotificationJob) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*entity.NotificationJob, error)
	List(ctx context.Context) ([]*entity.NotificationJob, error)
	ListDue(ctx context.Context, now time.Time) ([]*entity.NotificationJob, error)
	Reschedule(ctx context.Context, id int64, at time.Time) error
	IncrementAttempts(ctx context.Context, id int64) (int, error)
}
