package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/diegoclair/advice-rotation-bot/internal/domain"
	"github.com/diegoclair/advice-rotation-bot/internal/domain/contract"
	"github.com/diegoclair/advice-rotation-bot/internal/domain/entity"
	"github.com/sirupsen/logrus"
)

// DefaultPreferences is the profile used on first run
func DefaultPreferences(timezone string) entity.Preferences {
	if timezone == "" {
		timezone = domain.DefaultTimezone
	}

	return entity.Preferences{
		SelectedCountry:      domain.DefaultCountry,
		NotificationsEnabled: false,
		NotificationTime: entity.NotificationTime{
			Type:        domain.TimeModeFixed,
			FixedTime:   domain.DefaultFixedTime,
			RandomStart: domain.DefaultRandomStart,
			RandomEnd:   domain.DefaultRandomEnd,
		},
		RotationState: entity.RotationState{
			ShownIDs:    []string{},
			DisabledIDs: []string{},
			Timezone:    timezone,
		},
	}
}

// preferenceStore reads and writes the preferences blob as a whole.
// Callers hold mu around a read-modify-write.
type preferenceStore struct {
	mu sync.Mutex

	kv              contract.KVStore
	defaultTimezone string
	log             logrus.FieldLogger
}

func newPreferenceStore(kv contract.KVStore, defaultTimezone string, log logrus.FieldLogger) *preferenceStore {
	return &preferenceStore{
		kv:              kv,
		defaultTimezone: defaultTimezone,
		log:             log.WithField("component", "preferences"),
	}
}

// withKV returns a store over another KV, used inside a transaction.
// Callers still lock the original store.
func (s *preferenceStore) withKV(kv contract.KVStore) *preferenceStore {
	return &preferenceStore{kv: kv, defaultTimezone: s.defaultTimezone, log: s.log}
}

// Load decodes the stored blob over the defaults so older shapes keep loading
func (s *preferenceStore) Load(ctx context.Context) (entity.Preferences, error) {
	prefs := DefaultPreferences(s.defaultTimezone)

	raw, found, err := s.kv.Get(ctx, domain.PreferencesKey)
	if err != nil {
		return prefs, fmt.Errorf("failed to load preferences: %w: %w", domain.ErrCollaboratorUnavailable, err)
	}
	if !found || raw == "" {
		return prefs, nil
	}

	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		s.log.WithError(err).Warn("Stored preferences are unreadable, using defaults")
		return DefaultPreferences(s.defaultTimezone), nil
	}

	s.normalize(&prefs)
	return prefs, nil
}

func (s *preferenceStore) Save(ctx context.Context, prefs entity.Preferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	if err := s.kv.Set(ctx, domain.PreferencesKey, string(raw)); err != nil {
		return fmt.Errorf("failed to save preferences: %w: %w", domain.ErrCollaboratorUnavailable, err)
	}
	return nil
}

// Update is a read-merge-write of the whole blob
func (s *preferenceStore) Update(ctx context.Context, fn func(prefs *entity.Preferences) error) (entity.Preferences, error) {
	prefs, err := s.Load(ctx)
	if err != nil {
		return prefs, err
	}

	if err := fn(&prefs); err != nil {
		return prefs, err
	}

	return prefs, s.Save(ctx, prefs)
}

func (s *preferenceStore) normalize(prefs *entity.Preferences) {
	defaults := DefaultPreferences(s.defaultTimezone)

	if prefs.SelectedCountry == "" {
		prefs.SelectedCountry = defaults.SelectedCountry
	}
	if prefs.NotificationTime.Type != domain.TimeModeFixed && prefs.NotificationTime.Type != domain.TimeModeRandom {
		prefs.NotificationTime.Type = defaults.NotificationTime.Type
	}
	nt := &prefs.NotificationTime
	nt.FixedTime = s.validClock("fixedTime", nt.FixedTime, defaults.NotificationTime.FixedTime)
	nt.RandomStart = s.validClock("randomStart", nt.RandomStart, defaults.NotificationTime.RandomStart)
	nt.RandomEnd = s.validClock("randomEnd", nt.RandomEnd, defaults.NotificationTime.RandomEnd)
	if prefs.ShownIDs == nil {
		prefs.ShownIDs = []string{}
	}
	if prefs.DisabledIDs == nil {
		prefs.DisabledIDs = []string{}
	}
	if prefs.Timezone == "" {
		prefs.Timezone = defaults.Timezone
	}
}

// validClock returns value as HH:MM, or fallback when it does not parse
func (s *preferenceStore) validClock(field, value, fallback string) string {
	clock, err := parseClock(value)
	if err != nil {
		s.log.WithField("field", field).WithError(err).Warn("Stored time is invalid, using default")
		return fallback
	}
	return clock.String()
}

// location returns the zone for the stored preferences, falling back to UTC
func (s *preferenceStore) location(prefs entity.Preferences) *time.Location {
	loc, err := loadLocation(prefs.Timezone)
	if err != nil {
		s.log.WithError(err).Warn("Stored timezone is invalid, using UTC")
		return time.UTC
	}
	return loc
}
