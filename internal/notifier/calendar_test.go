package notifier

import (
	"bytes"
	"testing"
	"time"

	"github.com/diegoclair/advice-rotation-bot/internal/domain"
	"github.com/diegoclair/advice-rotation-bot/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCalendar(t *testing.T) {
	jobs := []*entity.NotificationJob{
		{ID: 1000000800, At: time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC), Repeats: true, Tag: domain.TagDaily, Title: "Daily advice", Body: "Drink a glass of water"},
		{ID: 2000019727, At: time.Date(2024, 1, 5, 7, 0, 0, 0, time.UTC), Tag: domain.TagWarning, Title: "Still there?", Body: "Notifications paused"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCalendar(&buf, jobs, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)))

	out := buf.String()
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("BEGIN:VEVENT")))
	assert.Contains(t, out, "UID:1000000800@advice-rotation-bot")
	assert.Contains(t, out, "DTSTART:20240102T080000Z")
	assert.Contains(t, out, "RRULE:FREQ=DAILY")
	assert.Contains(t, out, "SUMMARY:Still there?")
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("RRULE")))
}
