package entity

import "time"

// NotificationJob is a single pending local notification
type NotificationJob struct {
	ID        int64
	At        time.Time
	Repeats   bool
	Tag       string
	Title     string
	Body      string
	ItemID    string
	Timezone  string
	Attempts  int
	CreatedAt time.Time
}

// QueueState is the observed shape of the pending notification list
type QueueState string

const (
	QueueEmpty   QueueState = "EMPTY"
	QueuePartial QueueState = "PARTIAL"
	QueueFull    QueueState = "FULL"
	QueueStale   QueueState = "STALE"
)

// ReconcileAction names what a reconcile pass did
type ReconcileAction string

const (
	ActionNone      ReconcileAction = "none"
	ActionCancel    ReconcileAction = "cancel_all"
	ActionFixed     ReconcileAction = "schedule_fixed"
	ActionRefill    ReconcileAction = "refill"
	ActionTopUp     ReconcileAction = "top_up"
	ActionNoContent ReconcileAction = "no_content"
)

// ReconcileResult summarizes one reconcile pass
type ReconcileResult struct {
	RunID     string
	State     QueueState
	Action    ReconcileAction
	Scheduled int
	Cancelled int
	Failed    int
}
