package contract

import (
	"context"

	"github.com/diegoclair/advice-rotation-bot/internal/domain"
	"github.com/diegoclair/advice-rotation-bot/internal/domain/entity"
)

// Notifier schedules and cancels local notifications
type Notifier interface {
	Schedule(ctx context.Context, job *entity.NotificationJob) error
	Cancel(ctx context.Context, id int64) error
	ListPending(ctx context.Context) ([]*entity.NotificationJob, error)
	Send(ctx context.Context, job *entity.NotificationJob) error
	CheckPermission(ctx context.Context) (domain.PermissionStatus, error)
	RequestPermission(ctx context.Context) (domain.PermissionStatus, error)
}

// Catalog is the read-only content source
type Catalog interface {
	Sections(country string) ([]entity.Section, error)
	Countries() []entity.Country
}
