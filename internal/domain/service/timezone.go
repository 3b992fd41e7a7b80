package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/diegoclair/advice-rotation-bot/internal/domain"
)

const secondsPerDay = 24 * 60 * 60

// clockTime is a validated HH:MM time of day
type clockTime struct {
	Hour   int
	Minute int
}

func (c clockTime) minutes() int {
	return c.Hour*60 + c.Minute
}

func (c clockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func clockFromMinutes(m int) clockTime {
	return clockTime{Hour: m / 60, Minute: m % 60}
}

// parseClock parses a 24h HH:MM string
func parseClock(value string) (clockTime, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 || len(parts[1]) != 2 {
		return clockTime{}, fmt.Errorf("%w: %q is not HH:MM", domain.ErrInvalidTime, value)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return clockTime{}, fmt.Errorf("%w: invalid hour in %q", domain.ErrInvalidTime, value)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return clockTime{}, fmt.Errorf("%w: invalid minute in %q", domain.ErrInvalidTime, value)
	}

	return clockTime{Hour: hour, Minute: minute}, nil
}

// loadLocation resolves an IANA zone name
func loadLocation(name string) (*time.Location, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: empty zone", domain.ErrInvalidTimezone)
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidTimezone, name)
	}
	return loc, nil
}

// dateKey is the calendar date of now in loc. The same instant maps to the
// same key for the whole local day and flips at local midnight.
func dateKey(now time.Time, loc *time.Location) string {
	return now.In(loc).Format(domain.DateKeyLayout)
}

// epochDay counts local calendar days since 1970-01-01
func epochDay(t time.Time, loc *time.Location) int64 {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay
}

// atLocalDay returns the instant for clock on the local date of now shifted by days
func atLocalDay(now time.Time, loc *time.Location, days int, clock clockTime) time.Time {
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d+days, clock.Hour, clock.Minute, 0, 0, loc)
}

// nextOccurrence is today at clock when that is still ahead of now, otherwise tomorrow
func nextOccurrence(now time.Time, loc *time.Location, clock clockTime) time.Time {
	candidate := atLocalDay(now, loc, 0, clock)
	if !candidate.After(now) {
		candidate = atLocalDay(now, loc, 1, clock)
	}
	return candidate
}

func dailyJobID(at time.Time, loc *time.Location) int64 {
	local := at.In(loc)
	return epochDay(at, loc)*10000 + int64(local.Hour()*100+local.Minute())
}

func fixedJobID(clock clockTime) int64 {
	return domain.FixedJobIDBase + int64(clock.Hour*100+clock.Minute)
}

func warningJobID(at time.Time, loc *time.Location) int64 {
	return domain.WarningJobIDBase + epochDay(at, loc)%100000
}
