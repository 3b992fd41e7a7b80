package service

import (
	"testing"
	"time"

	"github.com/diegoclair/advice-rotation-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseClock(t *testing.T) {
	tests := []struct {
		value   string
		want    clockTime
		wantErr bool
	}{
		{value: "08:00", want: clockTime{Hour: 8}},
		{value: "7:05", want: clockTime{Hour: 7, Minute: 5}},
		{value: " 23:59 ", want: clockTime{Hour: 23, Minute: 59}},
		{value: "24:00", wantErr: true},
		{value: "12:60", wantErr: true},
		{value: "12:5", wantErr: true},
		{value: "noon", wantErr: true},
		{value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := parseClock(tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidTime)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_dateKey_UsesZoneNotUTC(t *testing.T) {
	auckland, err := loadLocation("Pacific/Auckland")
	require.NoError(t, err)
	honolulu, err := loadLocation("Pacific/Honolulu")
	require.NoError(t, err)

	instant := time.Date(2024, 3, 10, 11, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-03-11", dateKey(instant, auckland))
	assert.Equal(t, "2024-03-10", dateKey(instant, time.UTC))
	assert.Equal(t, "2024-03-10", dateKey(instant, honolulu))

	_, err = loadLocation("Not/AZone")
	assert.ErrorIs(t, err, domain.ErrInvalidTimezone)
}

func Test_nextOccurrence(t *testing.T) {
	eight := clockTime{Hour: 8}

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "Should return today if time hasn't passed",
			now:  time.Date(2024, 1, 1, 7, 0, 0, 0, time.UTC),
			want: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			name: "Should return next day if time has passed",
			now:  time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
			want: time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC),
		},
		{
			name: "Should return next day at the exact minute",
			now:  time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
			want: time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC),
		},
		{
			name: "Should roll over month end",
			now:  time.Date(2024, 1, 31, 22, 0, 0, 0, time.UTC),
			want: time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextOccurrence(tt.now, time.UTC, eight))
		})
	}
}

func Test_nextOccurrence_LocalZone(t *testing.T) {
	london, err := loadLocation("Europe/London")
	require.NoError(t, err)

	// 07:30 BST is 06:30 UTC
	now := time.Date(2024, 6, 1, 6, 30, 0, 0, time.UTC)
	got := nextOccurrence(now, london, clockTime{Hour: 8})

	assert.True(t, time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC).Equal(got))
}

func Test_jobIDs_DoNotCollide(t *testing.T) {
	seen := map[int64]bool{}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for d := 0; d < 400; d++ {
		for _, clock := range []clockTime{{Hour: 7}, {Hour: 7, Minute: 1}, {Hour: 23, Minute: 59}} {
			at := atLocalDay(start, time.UTC, d, clock)
			id := dailyJobID(at, time.UTC)
			assert.False(t, seen[id], "duplicate daily id %d", id)
			assert.Less(t, id, domain.FixedJobIDBase)
			seen[id] = true
		}

		warning := warningJobID(atLocalDay(start, time.UTC, d, clockTime{}), time.UTC)
		assert.False(t, seen[warning], "duplicate warning id %d", warning)
		assert.GreaterOrEqual(t, warning, domain.WarningJobIDBase)
		seen[warning] = true
	}

	assert.Equal(t, domain.FixedJobIDBase+1430, fixedJobID(clockTime{Hour: 14, Minute: 30}))
}

func Test_queueService_randomClock(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	var gotN int
	s := newTestQueue(m, newTestClock(time.Now()), func(n int) int {
		gotN = n
		return n - 1
	}, 3)

	got := s.randomClock(clockTime{Hour: 7}, clockTime{Hour: 9})
	assert.Equal(t, 120, gotN)
	assert.Equal(t, clockTime{Hour: 8, Minute: 59}, got)

	gotN = 0
	got = s.randomClock(clockTime{Hour: 9}, clockTime{Hour: 9})
	assert.Zero(t, gotN, "degenerate range does not draw")
	assert.Equal(t, clockTime{Hour: 9}, got)
}
