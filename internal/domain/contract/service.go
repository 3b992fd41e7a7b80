package contract

import (
	"context"

	"github.com/diegoclair/advice-rotation-bot/internal/domain"
	"github.com/diegoclair/advice-rotation-bot/internal/domain/entity"
)

type RotationService interface {
	GetToday(ctx context.Context) (*entity.ContentItem, error)
	ToggleDisabled(ctx context.Context, itemID string) (bool, error)
	SetDisabled(ctx context.Context, itemID string, disabled bool) error
	IsDisabled(ctx context.Context, itemID string) (bool, error)
	Stats(ctx context.Context) (entity.Stats, error)
	ResetCycle(ctx context.Context) error
	Sections(ctx context.Context) ([]entity.Section, error)
	SectionItems(ctx context.Context, sectionID string) ([]entity.ContentItem, error)
	Item(ctx context.Context, itemID string) (*entity.ContentItem, error)
	Countries() []entity.Country
}

type QueueService interface {
	Reconcile(ctx context.Context) (*entity.ReconcileResult, error)
	CancelAll(ctx context.Context) (int, error)
	Pending(ctx context.Context) ([]*entity.NotificationJob, error)
	EnsurePermission(ctx context.Context) (domain.PermissionStatus, error)
	SendTest(ctx context.Context) error
}

type SettingsService interface {
	Preferences(ctx context.Context) (entity.Preferences, error)
	IsFirstLaunch(ctx context.Context) (bool, error)
	SetNotificationsEnabled(ctx context.Context, enabled bool) (*entity.ReconcileResult, error)
	UpdateNotificationTime(ctx context.Context, mode, first, second string) (*entity.ReconcileResult, error)
	SetCountry(ctx context.Context, code string) (*entity.ReconcileResult, error)
	SetTimezone(ctx context.Context, zone string) (*entity.ReconcileResult, error)
}
