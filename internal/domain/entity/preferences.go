package entity

// DailyPick caches the item chosen for a calendar date
type DailyPick struct {
	ItemID  string `json:"itemId"`
	DateKey string `json:"dateKey"`
}

// RotationState is the rotation portion of the persisted preferences
type RotationState struct {
	ShownIDs       []string   `json:"shownIds"`
	DisabledIDs    []string   `json:"disabledIds"`
	DailyPick      *DailyPick `json:"dailyAdvice"`
	Timezone       string     `json:"timezone"`
	LastViewedDate string     `json:"lastViewedDate,omitempty"`
}

// NotificationTime holds the delivery mode and its HH:MM values
type NotificationTime struct {
	Type        string `json:"type"`
	FixedTime   string `json:"fixedTime"`
	RandomStart string `json:"randomStart"`
	RandomEnd   string `json:"randomEnd"`
}

// Preferences is the whole persisted profile
type Preferences struct {
	SelectedCountry      string           `json:"selectedCountry"`
	NotificationsEnabled bool             `json:"notificationsEnabled"`
	NotificationTime     NotificationTime `json:"notificationTime"`
	RotationState
}
