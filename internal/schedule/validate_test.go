package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetdesk/booking-api/internal/model"
)

func validWeek() []model.WeeklyHoursEntry {
	days := make([]model.WeeklyHoursEntry, 7)
	for i := range days {
		days[i] = model.WeeklyHoursEntry{
			DayOfWeek: i,
			IsOpen:    true,
			OpenTime:  strPtr("09:00"),
			CloseTime: strPtr("18:00"),
		}
	}
	days[0].IsOpen = false
	days[0].OpenTime = nil
	days[0].CloseTime = nil
	return days
}

func TestValidateWeekOK(t *testing.T) {
	assert.NoError(t, ValidateWeek(validWeek()))
}

func TestValidateWeekWithBreak(t *testing.T) {
	days := validWeek()
	days[1].BreakStart = strPtr("12:00")
	days[1].BreakEnd = strPtr("13:00")
	assert.NoError(t, ValidateWeek(days))
}

func TestValidateWeekRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]model.WeeklyHoursEntry)
		field  string
	}{
		{
			name:   "missing open time",
			mutate: func(d []model.WeeklyHoursEntry) { d[2].OpenTime = nil },
			field:  "open_time",
		},
		{
			name:   "missing close time",
			mutate: func(d []model.WeeklyHoursEntry) { d[2].CloseTime = strPtr("") },
			field:  "close_time",
		},
		{
			name:   "open after close",
			mutate: func(d []model.WeeklyHoursEntry) { d[3].OpenTime = strPtr("19:00") },
			field:  "open_time",
		},
		{
			name: "break start after break end",
			mutate: func(d []model.WeeklyHoursEntry) {
				d[4].BreakStart = strPtr("14:00")
				d[4].BreakEnd = strPtr("13:00")
			},
			field: "break_start",
		},
		{
			name: "break equal bounds",
			mutate: func(d []model.WeeklyHoursEntry) {
				d[4].BreakStart = strPtr("13:00")
				d[4].BreakEnd = strPtr("13:00")
			},
			field: "break_start",
		},
		{
			name: "break starts before opening",
			mutate: func(d []model.WeeklyHoursEntry) {
				d[5].BreakStart = strPtr("08:00")
				d[5].BreakEnd = strPtr("10:00")
			},
			field: "break_start",
		},
		{
			name: "break ends after closing",
			mutate: func(d []model.WeeklyHoursEntry) {
				d[5].BreakStart = strPtr("17:00")
				d[5].BreakEnd = strPtr("19:00")
			},
			field: "break_end",
		},
		{
			name:   "break missing one bound",
			mutate: func(d []model.WeeklyHoursEntry) { d[6].BreakStart = strPtr("12:00") },
			field:  "break_start",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := validWeek()
			tt.mutate(days)

			err := ValidateWeek(days)
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidateWeekClosedDaySkipsTimeChecks(t *testing.T) {
	days := validWeek()
	days[2].IsOpen = false
	days[2].OpenTime = nil
	days[2].CloseTime = nil
	assert.NoError(t, ValidateWeek(days))
}

func TestValidateWeek24HSkipsTimeChecks(t *testing.T) {
	days := validWeek()
	days[2].Is24H = true
	days[2].OpenTime = nil
	days[2].CloseTime = nil
	assert.NoError(t, ValidateWeek(days))
}

func TestValidateWeekWrongLength(t *testing.T) {
	assert.Error(t, ValidateWeek(validWeek()[:6]))
}

func TestValidateWeekDuplicateDay(t *testing.T) {
	days := validWeek()
	days[6].DayOfWeek = 5
	assert.Error(t, ValidateWeek(days))
}

func TestApplyDayToWeekCopiesTemplate(t *testing.T) {
	days := validWeek()
	days[1].BreakStart = strPtr("12:00")
	days[1].BreakEnd = strPtr("13:00")

	out, err := ApplyDayToWeek(days, 1)
	require.NoError(t, err)
	require.Len(t, out, 7)

	for i, day := range out {
		assert.Equal(t, i, day.DayOfWeek)
		assert.True(t, day.IsOpen)
		assert.Equal(t, "12:00", *day.BreakStart)
	}
	assert.NoError(t, ValidateWeek(out))
}

func TestApplyDayToWeekRejectsUnknownDay(t *testing.T) {
	_, err := ApplyDayToWeek(validWeek(), 9)
	assert.Error(t, err)
}
