package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/diegoclair/advice-rotation-bot/internal/domain"
	"github.com/diegoclair/advice-rotation-bot/internal/domain/contract"
	"github.com/diegoclair/advice-rotation-bot/internal/domain/entity"
	"github.com/diegoclair/advice-rotation-bot/internal/metrics"
	"github.com/sirupsen/logrus"
)

type rotationService struct {
	prefs   *preferenceStore
	catalog contract.Catalog
	metrics metrics.MetricsCollector
	log     logrus.FieldLogger
	now     func() time.Time
	intn    func(n int) int
}

func newRotation(prefs *preferenceStore, catalog contract.Catalog, m metrics.MetricsCollector, log logrus.FieldLogger, now func() time.Time, intn func(n int) int) *rotationService {
	return &rotationService{
		prefs:   prefs,
		catalog: catalog,
		metrics: m,
		log:     log.WithField("component", "rotation"),
		now:     now,
		intn:    intn,
	}
}

// GetToday returns the item of the day, choosing and persisting a new one
// when the cached pick belongs to another day or is no longer available.
// A nil item with a nil error means every item is disabled.
func (s *rotationService) GetToday(ctx context.Context) (*entity.ContentItem, error) {
	s.prefs.mu.Lock()
	defer s.prefs.mu.Unlock()

	prefs, err := s.prefs.Load(ctx)
	if err != nil {
		return nil, err
	}

	all, err := s.allItems(prefs.SelectedCountry)
	if err != nil {
		return nil, err
	}

	available := availableItems(all, prefs.DisabledIDs)
	if len(available) == 0 {
		return nil, nil
	}

	today := dateKey(s.now(), s.prefs.location(prefs))

	if pick := prefs.DailyPick; pick != nil && pick.DateKey == today {
		if item, ok := findItem(available, pick.ItemID); ok {
			return item, nil
		}
		s.log.WithField("item_id", pick.ItemID).Debug("Cached daily pick is no longer available, choosing again")
	}
	prefs.DailyPick = nil

	if countShown(prefs.ShownIDs, available) >= len(available) {
		s.log.WithField("available", len(available)).Info("All available items shown, starting a new cycle")
		prefs.ShownIDs = []string{}
		s.metrics.RecordCycleReset()
	}

	candidates := make([]entity.ContentItem, 0, len(available))
	for _, item := range available {
		if !slices.Contains(prefs.ShownIDs, item.ID) {
			candidates = append(candidates, item)
		}
	}
	if len(candidates) == 0 {
		candidates = available
	}

	chosen := candidates[s.intn(len(candidates))]

	prefs.ShownIDs = appendUnique(prefs.ShownIDs, chosen.ID)
	prefs.DailyPick = &entity.DailyPick{ItemID: chosen.ID, DateKey: today}
	prefs.LastViewedDate = today

	if err := s.prefs.Save(ctx, prefs); err != nil {
		s.log.WithError(err).WithField("item_id", chosen.ID).Warn("Failed to persist daily pick")
	}
	s.metrics.RecordDailyPick()

	s.log.WithFields(logrus.Fields{
		"item_id":  chosen.ID,
		"date_key": today,
	}).Debug("New daily pick")

	return &chosen, nil
}

// ToggleDisabled flips the disabled flag of an item and returns the new state
func (s *rotationService) ToggleDisabled(ctx context.Context, itemID string) (bool, error) {
	s.prefs.mu.Lock()
	defer s.prefs.mu.Unlock()

	var disabled bool
	_, err := s.prefs.Update(ctx, func(prefs *entity.Preferences) error {
		if err := s.ensureItem(prefs.SelectedCountry, itemID); err != nil {
			return err
		}
		disabled = !slices.Contains(prefs.DisabledIDs, itemID)
		applyDisabled(prefs, itemID, disabled)
		return nil
	})
	if err != nil {
		return false, err
	}

	return disabled, nil
}

func (s *rotationService) SetDisabled(ctx context.Context, itemID string, disabled bool) error {
	s.prefs.mu.Lock()
	defer s.prefs.mu.Unlock()

	_, err := s.prefs.Update(ctx, func(prefs *entity.Preferences) error {
		if err := s.ensureItem(prefs.SelectedCountry, itemID); err != nil {
			return err
		}
		applyDisabled(prefs, itemID, disabled)
		return nil
	})
	return err
}

func (s *rotationService) IsDisabled(ctx context.Context, itemID string) (bool, error) {
	prefs, err := s.prefs.Load(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(prefs.DisabledIDs, itemID), nil
}

func (s *rotationService) Stats(ctx context.Context) (entity.Stats, error) {
	prefs, err := s.prefs.Load(ctx)
	if err != nil {
		return entity.Stats{}, err
	}

	all, err := s.allItems(prefs.SelectedCountry)
	if err != nil {
		return entity.Stats{}, err
	}

	available := availableItems(all, prefs.DisabledIDs)

	return entity.Stats{
		Total:     len(all),
		Disabled:  len(all) - len(available),
		Available: len(available),
		Shown:     countShown(prefs.ShownIDs, available),
	}, nil
}

// ResetCycle forgets which items were shown in the current cycle
func (s *rotationService) ResetCycle(ctx context.Context) error {
	s.prefs.mu.Lock()
	defer s.prefs.mu.Unlock()

	_, err := s.prefs.Update(ctx, func(prefs *entity.Preferences) error {
		prefs.ShownIDs = []string{}
		return nil
	})
	if err == nil {
		s.metrics.RecordCycleReset()
	}
	return err
}

func (s *rotationService) Sections(ctx context.Context) ([]entity.Section, error) {
	prefs, err := s.prefs.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.catalog.Sections(prefs.SelectedCountry)
}

// SectionItems returns the items of one section of the active country
func (s *rotationService) SectionItems(ctx context.Context, sectionID string) ([]entity.ContentItem, error) {
	sections, err := s.Sections(ctx)
	if err != nil {
		return nil, err
	}

	for _, section := range sections {
		if strings.EqualFold(section.ID, sectionID) {
			return section.Items, nil
		}
	}
	return nil, fmt.Errorf("%w: section %s", domain.ErrItemNotFound, sectionID)
}

func (s *rotationService) Item(ctx context.Context, itemID string) (*entity.ContentItem, error) {
	prefs, err := s.prefs.Load(ctx)
	if err != nil {
		return nil, err
	}

	all, err := s.allItems(prefs.SelectedCountry)
	if err != nil {
		return nil, err
	}

	item, ok := findItem(all, itemID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	return item, nil
}

func (s *rotationService) Countries() []entity.Country {
	return s.catalog.Countries()
}

func (s *rotationService) allItems(country string) ([]entity.ContentItem, error) {
	sections, err := s.catalog.Sections(country)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog for %s: %w", country, err)
	}

	var items []entity.ContentItem
	for _, section := range sections {
		items = append(items, section.Items...)
	}
	return items, nil
}

func (s *rotationService) ensureItem(country, itemID string) error {
	all, err := s.allItems(country)
	if err != nil {
		return err
	}
	if _, ok := findItem(all, itemID); !ok {
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	return nil
}

// applyDisabled never touches ShownIDs so re-enabling does not cause an immediate repeat
func applyDisabled(prefs *entity.Preferences, itemID string, disabled bool) {
	if disabled {
		prefs.DisabledIDs = appendUnique(prefs.DisabledIDs, itemID)
		if prefs.DailyPick != nil && prefs.DailyPick.ItemID == itemID {
			prefs.DailyPick = nil
		}
		return
	}
	prefs.DisabledIDs = remove(prefs.DisabledIDs, itemID)
}

func availableItems(all []entity.ContentItem, disabled []string) []entity.ContentItem {
	available := make([]entity.ContentItem, 0, len(all))
	for _, item := range all {
		if !slices.Contains(disabled, item.ID) {
			available = append(available, item)
		}
	}
	return available
}

func findItem(items []entity.ContentItem, id string) (*entity.ContentItem, bool) {
	for i := range items {
		if items[i].ID == id {
			item := items[i]
			return &item, true
		}
	}
	return nil, false
}

// countShown counts shown ids that are still available
func countShown(shown []string, available []entity.ContentItem) int {
	n := 0
	for _, item := range available {
		if slices.Contains(shown, item.ID) {
			n++
		}
	}
	return n
}

func appendUnique(ids []string, id string) []string {
	if slices.Contains(ids, id) {
		return ids
	}
	return append(ids, id)
}

func remove(ids []string, id string) []string {
	return slices.DeleteFunc(slices.Clone(ids), func(v string) bool { return v == id })
}
