package service

import (
	"math/rand/v2"
	"time"

	"github.com/diegoclair/advice-rotation-bot/internal/domain/contract"
	"github.com/diegoclair/advice-rotation-bot/internal/metrics"
	"github.com/sirupsen/logrus"
)

// Options tune the services. Zero values fall back to the real clock,
// a process-wide random source and the default queue depth.
type Options struct {
	Now             func() time.Time
	Intn            func(n int) int
	QueueDepth      int
	DefaultTimezone string
}

type Instance struct {
	Rotation contract.RotationService
	Queue    contract.QueueService
	Settings contract.SettingsService
}

func NewInstance(dm contract.DataManager, catalog contract.Catalog, notifier contract.Notifier, m metrics.MetricsCollector, log logrus.FieldLogger, opts Options) *Instance {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Intn == nil {
		opts.Intn = rand.IntN
	}

	prefs := newPreferenceStore(dm.KV(), opts.DefaultTimezone, log)
	rotation := newRotation(prefs, catalog, m, log, opts.Now, opts.Intn)
	queue := newQueue(prefs, rotation, notifier, m, log, opts.Now, opts.Intn, opts.QueueDepth)

	return &Instance{
		Rotation: rotation,
		Queue:    queue,
		Settings: newSettings(prefs, dm, catalog, queue, log),
	}
}
