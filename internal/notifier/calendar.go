package notifier

import (
	"fmt"
	"io"
	"time"

	"github.com/diegoclair/advice-rotation-bot/internal/domain/entity"
	"github.com/emersion/go-ical"
)

const calendarProductID = "-//advice-rotation-bot//pending notifications//EN"

// WriteCalendar encodes the pending jobs as an iCalendar feed
func WriteCalendar(w io.Writer, jobs []*entity.NotificationJob, now time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, calendarProductID)

	for _, job := range jobs {
		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, fmt.Sprintf("%d@advice-rotation-bot", job.ID))
		event.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
		event.Props.SetDateTime(ical.PropDateTimeStart, job.At.UTC())
		event.Props.SetText(ical.PropSummary, job.Title)
		event.Props.SetText(ical.PropDescription, job.Body)
		event.Props.SetText(ical.PropCategories, job.Tag)
		if job.Repeats {
			event.Props.SetText(ical.PropRecurrenceRule, "FREQ=DAILY")
		}
		cal.Children = append(cal.Children, event.Component)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return nil
}
