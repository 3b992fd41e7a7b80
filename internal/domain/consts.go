package domain

// Persistence keys
const (
	PreferencesKey   = "userPreferences"
	SetupCompleteKey = "hasCompletedSetup"
)

// Notification time modes
const (
	TimeModeFixed  = "fixed"
	TimeModeRandom = "random"
)

// Notification job tags
const (
	TagDaily   = "daily"
	TagWarning = "warning"
	TagTest    = "test"
)

// Job id bases. Daily ids live below FixedJobIDBase, fixed ids below WarningJobIDBase.
const (
	FixedJobIDBase   int64 = 1_000_000_000
	WarningJobIDBase int64 = 2_000_000_000
)

// Defaults applied to a fresh preferences profile
const (
	DefaultCountry     = "nz"
	DefaultFixedTime   = "08:00"
	DefaultRandomStart = "07:00"
	DefaultRandomEnd   = "09:00"
	DefaultQueueDepth  = 3
	DefaultTimezone    = "UTC"
)

// DateKeyLayout is the calendar date layout used for daily picks
const DateKeyLayout = "2006-01-02"

// Notification copy
const (
	DailyTitle       = "Daily advice"
	RandomDailyBody  = "Today's advice is waiting. Run /advice today to read it."
	WarningTitle     = "Still there?"
	WarningBody      = "Notifications paused, run /advice to resume."
	TestTitle        = "Test notification"
	TestBody         = "This is a test notification from the advice bot."
	MaxDeliveryTries = 5
)
