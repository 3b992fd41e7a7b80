package service

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/diegoclair/advice-rotation-bot/internal/domain"
	"github.com/diegoclair/advice-rotation-bot/internal/domain/contract"
	"github.com/diegoclair/advice-rotation-bot/internal/domain/entity"
	"github.com/diegoclair/advice-rotation-bot/internal/metrics"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type queueService struct {
	prefs    *preferenceStore
	rotation contract.RotationService
	notifier contract.Notifier
	metrics  metrics.MetricsCollector
	log      logrus.FieldLogger
	now      func() time.Time
	intn     func(n int) int
	depth    int

	mu sync.Mutex
}

func newQueue(prefs *preferenceStore, rotation contract.RotationService, notifier contract.Notifier, m metrics.MetricsCollector, log logrus.FieldLogger, now func() time.Time, intn func(n int) int, depth int) *queueService {
	if depth <= 0 {
		depth = domain.DefaultQueueDepth
	}

	return &queueService{
		prefs:    prefs,
		rotation: rotation,
		notifier: notifier,
		metrics:  m,
		log:      log.WithField("component", "queue"),
		now:      now,
		intn:     intn,
		depth:    depth,
	}
}

// Reconcile converges the pending notifications to the stored preferences.
// Calling it again with nothing changed does not add or remove jobs.
func (s *queueService) Reconcile(ctx context.Context) (*entity.ReconcileResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	started := time.Now()
	result := &entity.ReconcileResult{RunID: uuid.NewString(), Action: entity.ActionNone}
	log := s.log.WithField("run_id", result.RunID)

	defer func() {
		s.metrics.RecordReconcile(string(result.State), string(result.Action), time.Since(started))
		log.WithFields(logrus.Fields{
			"state":     result.State,
			"action":    result.Action,
			"scheduled": result.Scheduled,
			"cancelled": result.Cancelled,
			"failed":    result.Failed,
		}).Info("Reconcile finished")
	}()

	prefs, err := s.prefs.Load(ctx)
	if err != nil {
		return result, err
	}

	if !prefs.NotificationsEnabled {
		cancelled, failed, err := s.cancelAll(ctx, log)
		result.Cancelled, result.Failed = cancelled, failed
		result.Action = entity.ActionCancel
		result.State = entity.QueueEmpty
		return result, err
	}

	if _, err := s.EnsurePermission(ctx); err != nil {
		return result, err
	}

	pending, err := s.notifier.ListPending(ctx)
	if err != nil {
		s.metrics.RecordCollaboratorFailure("list_pending")
		return result, fmt.Errorf("failed to list pending notifications: %w: %w", domain.ErrCollaboratorUnavailable, err)
	}
	result.State = observeState(pending, s.depth)

	loc := s.prefs.location(prefs)
	now := s.now()

	if prefs.NotificationTime.Type == domain.TimeModeFixed {
		return result, s.reconcileFixed(ctx, log, prefs, pending, loc, now, result)
	}
	return result, s.reconcileRandom(ctx, log, prefs, pending, loc, now, result)
}

func (s *queueService) reconcileFixed(ctx context.Context, log logrus.FieldLogger, prefs entity.Preferences, pending []*entity.NotificationJob, loc *time.Location, now time.Time, result *entity.ReconcileResult) error {
	clock, err := parseClock(prefs.NotificationTime.FixedTime)
	if err != nil {
		return err
	}

	id := fixedJobID(clock)
	if len(pending) == 1 {
		job := pending[0]
		if job.ID == id && job.Repeats && job.Tag == domain.TagDaily && job.Timezone == loc.String() {
			return nil
		}
	}

	cancelled, failed, err := s.cancelAll(ctx, log)
	result.Cancelled += cancelled
	result.Failed += failed
	if err != nil {
		return err
	}

	item, err := s.rotation.GetToday(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve notification body: %w", err)
	}
	if item == nil {
		result.Action = entity.ActionNoContent
		log.Info("No available content, nothing scheduled")
		return nil
	}

	result.Action = entity.ActionFixed
	s.schedule(ctx, log, result, &entity.NotificationJob{
		ID:       id,
		At:       nextOccurrence(now, loc, clock),
		Repeats:  true,
		Tag:      domain.TagDaily,
		Title:    domain.DailyTitle,
		Body:     item.Text,
		ItemID:   item.ID,
		Timezone: loc.String(),
	})
	return nil
}

func (s *queueService) reconcileRandom(ctx context.Context, log logrus.FieldLogger, prefs entity.Preferences, pending []*entity.NotificationJob, loc *time.Location, now time.Time, result *entity.ReconcileResult) error {
	start, err := parseClock(prefs.NotificationTime.RandomStart)
	if err != nil {
		return err
	}
	end, err := parseClock(prefs.NotificationTime.RandomEnd)
	if err != nil {
		return err
	}

	state := result.State
	if slices.ContainsFunc(pending, func(job *entity.NotificationJob) bool { return job.Repeats }) {
		// a repeating job is left over from fixed mode
		state = entity.QueueStale
	}

	switch state {
	case entity.QueueFull:
		return nil

	case entity.QueueStale:
		cancelled, failed, err := s.cancelAll(ctx, log)
		result.Cancelled += cancelled
		result.Failed += failed
		if err != nil {
			return err
		}
		result.Action = entity.ActionRefill
		s.fill(ctx, log, result, loc, now, 0, s.depth, start, end)

	case entity.QueueEmpty:
		result.Action = entity.ActionRefill
		s.fill(ctx, log, result, loc, now, 0, s.depth, start, end)

	case entity.QueuePartial:
		daily := 0
		lastOffset := 0
		today := epochDay(now, loc)
		for _, job := range pending {
			if job.Tag != domain.TagDaily {
				continue
			}
			daily++
			if offset := int(epochDay(job.At, loc) - today); offset > lastOffset {
				lastOffset = offset
			}
		}

		// the warning moves past the new horizon, the remaining daily jobs stay
		for _, job := range pending {
			if job.Tag != domain.TagWarning {
				continue
			}
			if err := s.notifier.Cancel(ctx, job.ID); err != nil {
				result.Failed++
				s.metrics.RecordCollaboratorFailure("cancel")
				log.WithError(err).WithField("job_id", job.ID).Warn("Failed to cancel warning notification")
				continue
			}
			result.Cancelled++
			s.metrics.RecordCancelled(1)
		}

		result.Action = entity.ActionTopUp
		s.fill(ctx, log, result, loc, now, lastOffset, s.depth-daily, start, end)
	}

	return nil
}

// fill schedules k one-shot daily jobs on the days after fromOffset and a
// warning job one day past the last of them
func (s *queueService) fill(ctx context.Context, log logrus.FieldLogger, result *entity.ReconcileResult, loc *time.Location, now time.Time, fromOffset, k int, start, end clockTime) {
	for i := 1; i <= k; i++ {
		at := atLocalDay(now, loc, fromOffset+i, s.randomClock(start, end))
		s.schedule(ctx, log, result, &entity.NotificationJob{
			ID:       dailyJobID(at, loc),
			At:       at,
			Tag:      domain.TagDaily,
			Title:    domain.DailyTitle,
			Body:     domain.RandomDailyBody,
			Timezone: loc.String(),
		})
	}

	at := atLocalDay(now, loc, fromOffset+k+1, start)
	s.schedule(ctx, log, result, &entity.NotificationJob{
		ID:       warningJobID(at, loc),
		At:       at,
		Tag:      domain.TagWarning,
		Title:    domain.WarningTitle,
		Body:     domain.WarningBody,
		Timezone: loc.String(),
	})
}

// randomClock picks a uniform minute in [start, end), or start when the range is empty
func (s *queueService) randomClock(start, end clockTime) clockTime {
	span := end.minutes() - start.minutes()
	if span <= 0 {
		return start
	}
	return clockFromMinutes(start.minutes() + s.intn(span))
}

func (s *queueService) schedule(ctx context.Context, log logrus.FieldLogger, result *entity.ReconcileResult, job *entity.NotificationJob) {
	jobLog := log.WithFields(logrus.Fields{
		"job_id": job.ID,
		"tag":    job.Tag,
		"at":     job.At.Format(time.RFC3339),
	})

	if err := s.notifier.Schedule(ctx, job); err != nil {
		result.Failed++
		s.metrics.RecordCollaboratorFailure("schedule")
		jobLog.WithError(err).Warn("Failed to schedule notification, will retry on next reconcile")
		return
	}

	result.Scheduled++
	s.metrics.RecordScheduled(1)
	jobLog.Debug("Notification scheduled")
}

// CancelAll cancels every pending job one by one. A job that fails to cancel
// is logged and skipped.
func (s *queueService) CancelAll(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cancelled, _, err := s.cancelAll(ctx, s.log)
	return cancelled, err
}

func (s *queueService) cancelAll(ctx context.Context, log logrus.FieldLogger) (cancelled, failed int, err error) {
	pending, err := s.notifier.ListPending(ctx)
	if err != nil {
		s.metrics.RecordCollaboratorFailure("list_pending")
		return 0, 0, fmt.Errorf("failed to list pending notifications: %w: %w", domain.ErrCollaboratorUnavailable, err)
	}

	for _, job := range pending {
		if err := s.notifier.Cancel(ctx, job.ID); err != nil {
			failed++
			s.metrics.RecordCollaboratorFailure("cancel")
			log.WithError(err).WithField("job_id", job.ID).Warn("Failed to cancel notification")
			continue
		}
		cancelled++
	}

	s.metrics.RecordCancelled(cancelled)
	return cancelled, failed, nil
}

// EnsurePermission checks the notification permission and asks for it once
// when the collaborator allows asking again
func (s *queueService) EnsurePermission(ctx context.Context) (domain.PermissionStatus, error) {
	status, err := s.notifier.CheckPermission(ctx)
	if err != nil {
		s.metrics.RecordCollaboratorFailure("check_permission")
		return status, fmt.Errorf("failed to check notification permission: %w: %w", domain.ErrCollaboratorUnavailable, err)
	}

	switch status {
	case domain.PermissionGranted:
		return status, nil
	case domain.PermissionPrompt, domain.PermissionPromptWithRationale:
		status, err = s.notifier.RequestPermission(ctx)
		if err != nil {
			s.metrics.RecordCollaboratorFailure("request_permission")
			return status, fmt.Errorf("failed to request notification permission: %w: %w", domain.ErrCollaboratorUnavailable, err)
		}
		if status == domain.PermissionGranted {
			return status, nil
		}
	}

	s.log.WithField("status", status).Warn("Notification permission not granted")
	return status, &domain.PermissionError{Status: status}
}

// SendTest posts one notification right away so the user can check delivery
func (s *queueService) SendTest(ctx context.Context) error {
	if _, err := s.EnsurePermission(ctx); err != nil {
		return err
	}

	err := s.notifier.Send(ctx, &entity.NotificationJob{
		Tag:   domain.TagTest,
		Title: domain.TestTitle,
		Body:  domain.TestBody,
	})
	s.metrics.RecordDelivery(domain.TagTest, err == nil)
	if err != nil {
		s.metrics.RecordCollaboratorFailure("send")
		return fmt.Errorf("failed to send test notification: %w: %w", domain.ErrCollaboratorUnavailable, err)
	}

	s.log.Info("Test notification sent")
	return nil
}

// Pending returns the pending jobs ordered by time
func (s *queueService) Pending(ctx context.Context) ([]*entity.NotificationJob, error) {
	pending, err := s.notifier.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending notifications: %w: %w", domain.ErrCollaboratorUnavailable, err)
	}

	sort.Slice(pending, func(i, j int) bool {
		return pending[i].At.Before(pending[j].At)
	})
	return pending, nil
}

// observeState classifies the pending jobs. The queue is stale only when the
// warning is the next job to fire, meaning every daily job before it went out
// without the queue being refreshed.
func observeState(pending []*entity.NotificationJob, target int) entity.QueueState {
	daily := 0
	var earliest *entity.NotificationJob
	for _, job := range pending {
		if earliest == nil || job.At.Before(earliest.At) || (job.At.Equal(earliest.At) && job.Tag == domain.TagDaily) {
			earliest = job
		}
		if job.Tag == domain.TagDaily {
			daily++
		}
	}
	if earliest != nil && earliest.Tag == domain.TagWarning {
		return entity.QueueStale
	}

	switch {
	case daily == 0:
		return entity.QueueEmpty
	case daily < target:
		return entity.QueuePartial
	default:
		return entity.QueueFull
	}
}
