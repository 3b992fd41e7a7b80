package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/diegoclair/advice-rotation-bot/internal/domain"
	"github.com/diegoclair/advice-rotation-bot/internal/domain/contract"
	"github.com/diegoclair/advice-rotation-bot/internal/domain/entity"
	"github.com/sirupsen/logrus"
)

type settingsService struct {
	prefs   *preferenceStore
	dm      contract.DataManager
	catalog contract.Catalog
	queue   contract.QueueService
	log     logrus.FieldLogger
}

func newSettings(prefs *preferenceStore, dm contract.DataManager, catalog contract.Catalog, queue contract.QueueService, log logrus.FieldLogger) *settingsService {
	return &settingsService{
		prefs:   prefs,
		dm:      dm,
		catalog: catalog,
		queue:   queue,
		log:     log.WithField("component", "settings"),
	}
}

func (s *settingsService) Preferences(ctx context.Context) (entity.Preferences, error) {
	return s.prefs.Load(ctx)
}

// IsFirstLaunch reports whether a country has never been chosen
func (s *settingsService) IsFirstLaunch(ctx context.Context) (bool, error) {
	value, found, err := s.dm.KV().Get(ctx, domain.SetupCompleteKey)
	if err != nil {
		return false, fmt.Errorf("failed to read setup flag: %w: %w", domain.ErrCollaboratorUnavailable, err)
	}
	return !found || value != "true", nil
}

func (s *settingsService) SetNotificationsEnabled(ctx context.Context, enabled bool) (*entity.ReconcileResult, error) {
	return s.save(ctx, func(prefs *entity.Preferences) error {
		prefs.NotificationsEnabled = enabled
		return nil
	})
}

// UpdateNotificationTime switches the delivery mode. Fixed mode takes one
// HH:MM value, random mode takes a start and an end with start before end.
func (s *settingsService) UpdateNotificationTime(ctx context.Context, mode, first, second string) (*entity.ReconcileResult, error) {
	switch mode {
	case domain.TimeModeFixed:
		clock, err := parseClock(first)
		if err != nil {
			return nil, err
		}
		return s.save(ctx, func(prefs *entity.Preferences) error {
			prefs.NotificationTime.Type = domain.TimeModeFixed
			prefs.NotificationTime.FixedTime = clock.String()
			return nil
		})

	case domain.TimeModeRandom:
		start, err := parseClock(first)
		if err != nil {
			return nil, err
		}
		end, err := parseClock(second)
		if err != nil {
			return nil, err
		}
		if start.minutes() >= end.minutes() {
			return nil, fmt.Errorf("%w: start %s must be before end %s", domain.ErrInvalidTime, start, end)
		}
		return s.save(ctx, func(prefs *entity.Preferences) error {
			prefs.NotificationTime.Type = domain.TimeModeRandom
			prefs.NotificationTime.RandomStart = start.String()
			prefs.NotificationTime.RandomEnd = end.String()
			return nil
		})
	}

	return nil, fmt.Errorf("%w: unknown mode %q", domain.ErrInvalidTime, mode)
}

// SetCountry switches the catalog. Today's pick belongs to the old catalog
// and is dropped. The preferences and the setup flag are written in one
// transaction.
func (s *settingsService) SetCountry(ctx context.Context, code string) (*entity.ReconcileResult, error) {
	code = strings.ToLower(strings.TrimSpace(code))

	known := false
	for _, country := range s.catalog.Countries() {
		if country.Code == code {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCountry, code)
	}

	s.prefs.mu.Lock()
	err := s.dm.WithTransaction(ctx, func(tx contract.DataManager) error {
		_, err := s.prefs.withKV(tx.KV()).Update(ctx, func(prefs *entity.Preferences) error {
			prefs.SelectedCountry = code
			prefs.DailyPick = nil
			return nil
		})
		if err != nil {
			return err
		}

		if err := tx.KV().Set(ctx, domain.SetupCompleteKey, "true"); err != nil {
			return fmt.Errorf("failed to mark setup as complete: %w: %w", domain.ErrCollaboratorUnavailable, err)
		}
		return nil
	})
	s.prefs.mu.Unlock()
	if err != nil {
		s.log.WithError(err).WithField("country", code).Error("Failed to switch country")
		return nil, err
	}

	return s.queue.Reconcile(ctx)
}

func (s *settingsService) SetTimezone(ctx context.Context, zone string) (*entity.ReconcileResult, error) {
	loc, err := loadLocation(zone)
	if err != nil {
		return nil, err
	}

	return s.save(ctx, func(prefs *entity.Preferences) error {
		prefs.Timezone = loc.String()
		return nil
	})
}

// save persists the change and then reconciles the queue against it
func (s *settingsService) save(ctx context.Context, fn func(prefs *entity.Preferences) error) (*entity.ReconcileResult, error) {
	s.prefs.mu.Lock()
	_, err := s.prefs.Update(ctx, fn)
	s.prefs.mu.Unlock()
	if err != nil {
		return nil, err
	}

	return s.queue.Reconcile(ctx)
}
