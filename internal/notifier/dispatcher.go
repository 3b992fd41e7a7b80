package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/diegoclair/advice-rotation-bot/internal/domain"
	"github.com/diegoclair/advice-rotation-bot/internal/domain/contract"
	"github.com/diegoclair/advice-rotation-bot/internal/domain/entity"
	"github.com/diegoclair/advice-rotation-bot/internal/metrics"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
	"golang.org/x/time/rate"
)

// Dispatcher delivers due jobs on a cron schedule
type Dispatcher struct {
	repo      contract.NotificationRepo
	slack     contract.SlackClient
	channelID string
	limiter   *rate.Limiter
	metrics   metrics.MetricsCollector
	log       logrus.FieldLogger
	now       func() time.Time
	cron      *cron.Cron
}

func NewDispatcher(repo contract.NotificationRepo, slackClient contract.SlackClient, channelID string, limiter *rate.Limiter, m metrics.MetricsCollector, log logrus.FieldLogger, now func() time.Time) *Dispatcher {
	if now == nil {
		now = time.Now
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}

	return &Dispatcher{
		repo:      repo,
		slack:     slackClient,
		channelID: channelID,
		limiter:   limiter,
		metrics:   m,
		log:       log.WithField("component", "dispatcher"),
		now:       now,
		cron:      cron.New(cron.WithLocation(time.UTC)),
	}
}

// Start registers the delivery job with the given cron spec and starts the engine
func (d *Dispatcher) Start(spec string) error {
	_, err := d.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if _, err := d.DispatchDue(ctx); err != nil {
			d.log.WithError(err).Error("Delivery run failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add dispatch job %q: %w", spec, err)
	}

	d.cron.Start()
	d.log.WithField("spec", spec).Info("Dispatcher started")
	return nil
}

// Stop waits for a running delivery to finish
func (d *Dispatcher) Stop() {
	<-d.cron.Stop().Done()
	d.log.Info("Dispatcher stopped")
}

// DispatchDue delivers every job scheduled at or before now and returns how
// many were delivered
func (d *Dispatcher) DispatchDue(ctx context.Context) (int, error) {
	now := d.now()

	due, err := d.repo.ListDue(ctx, now)
	if err != nil {
		return 0, err
	}

	delivered := 0
	for _, job := range due {
		if err := d.limiter.Wait(ctx); err != nil {
			return delivered, fmt.Errorf("delivery interrupted: %w", err)
		}

		jobLog := d.log.WithFields(logrus.Fields{"job_id": job.ID, "tag": job.Tag})

		// a reconcile may have cancelled or replaced the job since ListDue
		current, err := d.repo.GetByID(ctx, job.ID)
		if err != nil {
			jobLog.WithError(err).Warn("Failed to re-read notification, will retry on next run")
			continue
		}
		if current == nil || current.At.After(now) {
			jobLog.Debug("Notification was cancelled or moved, skipping")
			continue
		}
		job = current

		if err := d.deliver(ctx, job); err != nil {
			d.metrics.RecordDelivery(job.Tag, false)
			jobLog.WithError(err).Warn("Failed to deliver notification")
			d.handleFailure(ctx, jobLog, job, now)
			continue
		}

		d.metrics.RecordDelivery(job.Tag, true)
		delivered++

		if err := d.advance(ctx, job, now); err != nil {
			jobLog.WithError(err).Error("Failed to advance delivered notification")
		}
	}

	return delivered, nil
}

func (d *Dispatcher) deliver(ctx context.Context, job *entity.NotificationJob) error {
	_, _, err := d.slack.PostMessageContext(ctx, d.channelID, slack.MsgOptionText(messageText(job), false))
	return err
}

// advance moves a repeating job to its next local day and drops one-shot jobs
func (d *Dispatcher) advance(ctx context.Context, job *entity.NotificationJob, now time.Time) error {
	if !job.Repeats {
		return d.repo.Delete(ctx, job.ID)
	}
	return d.repo.Reschedule(ctx, job.ID, nextDaily(job, now))
}

func (d *Dispatcher) handleFailure(ctx context.Context, log logrus.FieldLogger, job *entity.NotificationJob, now time.Time) {
	attempts, err := d.repo.IncrementAttempts(ctx, job.ID)
	if err != nil {
		log.WithError(err).Error("Failed to record delivery attempt")
		return
	}
	if attempts < domain.MaxDeliveryTries {
		return
	}

	log.WithField("attempts", attempts).Error("Giving up on notification")
	if err := d.advance(ctx, job, now); err != nil {
		log.WithError(err).Error("Failed to drop undeliverable notification")
	}
}

// nextDaily keeps the local wall clock time of the job across DST changes
func nextDaily(job *entity.NotificationJob, now time.Time) time.Time {
	loc, err := time.LoadLocation(job.Timezone)
	if err != nil {
		loc = time.UTC
	}

	local := job.At.In(loc)
	next := local
	for days := 1; !next.After(now); days++ {
		next = time.Date(local.Year(), local.Month(), local.Day()+days, local.Hour(), local.Minute(), 0, 0, loc)
	}
	return next
}
