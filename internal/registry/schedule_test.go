package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSchedule(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		days    []int
		start   string
		end     string
		wantErr bool
	}{
		{
			name:  "weekday evenings",
			input: "19:00-22:00, Mon-Fri",
			days:  []int{1, 2, 3, 4, 5},
			start: "19:00",
			end:   "22:00",
		},
		{
			name:  "single day",
			input: "09:00-12:00, Sat",
			days:  []int{6},
			start: "09:00",
			end:   "12:00",
		},
		{
			name:  "day list with range",
			input: "10:00-18:00, Mon, Wed, Sat-Sun",
			days:  []int{1, 3, 6, 7},
			start: "10:00",
			end:   "18:00",
		},
		{
			name:  "case insensitive days",
			input: "08:30-10:45, mon-tue",
			days:  []int{1, 2},
			start: "08:30",
			end:   "10:45",
		},
		{name: "missing days", input: "19:00-22:00", wantErr: true},
		{name: "bad time", input: "25:00-26:00, Mon", wantErr: true},
		{name: "unknown day", input: "19:00-22:00, Funday", wantErr: true},
		{name: "inverted day range", input: "19:00-22:00, Fri-Mon", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule, err := ParseSchedule(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSchedule)
				return
			}
			require.NoError(t, err)
			require.Len(t, schedule.Windows, 1)
			w := schedule.Windows[0]
			assert.Equal(t, tt.start, w.Start)
			assert.Equal(t, tt.end, w.End)
			assert.Equal(t, tt.days, w.Days)
		})
	}
}

func TestScheduleContains(t *testing.T) {
	schedule := &Schedule{Windows: []Window{
		{Start: "19:00", End: "22:00", Days: []int{1, 2, 3, 4, 5}},
	}}

	// 2026-08-24 is a Monday.
	monday := func(clock string) time.Time {
		t2, err := time.Parse("2006-01-02 15:04", "2026-08-24 "+clock)
		require.NoError(t, err)
		return t2
	}
	sunday := func(clock string) time.Time {
		t2, err := time.Parse("2006-01-02 15:04", "2026-08-23 "+clock)
		require.NoError(t, err)
		return t2
	}

	assert.True(t, schedule.Contains(monday("19:00")), "window start is inclusive")
	assert.True(t, schedule.Contains(monday("20:30")))
	assert.True(t, schedule.Contains(monday("22:00")), "window end is inclusive")
	assert.False(t, schedule.Contains(monday("18:59")))
	assert.False(t, schedule.Contains(monday("22:01")))
	assert.False(t, schedule.Contains(sunday("20:00")), "outside scheduled days")
}

func TestScheduleContainsSundayMapsToSeven(t *testing.T) {
	schedule := &Schedule{Windows: []Window{
		{Start: "00:00", End: "23:59", Days: []int{7}},
	}}

	sunday, err := time.Parse("2006-01-02 15:04", "2026-08-23 12:00")
	require.NoError(t, err)
	assert.True(t, schedule.Contains(sunday))
}
