package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetdesk/booking-api/internal/model"
)

func strPtr(s string) *string { return &s }

func hours(open, close string) *model.WeeklyHours {
	return &model.WeeklyHours{
		IsOpen:    true,
		OpenTime:  strPtr(open),
		CloseTime: strPtr(close),
	}
}

func hoursWithBreak(open, close, breakStart, breakEnd string) *model.WeeklyHours {
	h := hours(open, close)
	h.BreakStart = strPtr(breakStart)
	h.BreakEnd = strPtr(breakEnd)
	return h
}

func TestSlotsClosedDay(t *testing.T) {
	assert.Nil(t, Slots(&model.WeeklyHours{IsOpen: false}))
	assert.Nil(t, Slots(nil))
}

func TestSlots24Hours(t *testing.T) {
	h := &model.WeeklyHours{IsOpen: true, Is24H: true}
	slots := Slots(h)
	require.Len(t, slots, 48)
	assert.Equal(t, "00:00", slots[0])
	assert.Equal(t, "23:30", slots[47])

	// open/close fields are ignored when 24h
	h.OpenTime = strPtr("10:00")
	h.CloseTime = strPtr("11:00")
	assert.Len(t, Slots(h), 48)
}

func TestSlotsWeekdayWithLunchBreak(t *testing.T) {
	slots := Slots(hoursWithBreak("09:00", "18:00", "12:00", "13:00"))

	require.Len(t, slots, 16)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "11:30", slots[5])
	assert.Equal(t, "13:00", slots[6])
	assert.Equal(t, "17:30", slots[15])
	assert.NotContains(t, slots, "12:00")
	assert.NotContains(t, slots, "12:30")
}

func TestSlotsBreakIntervalHalfOpen(t *testing.T) {
	slots := Slots(hoursWithBreak("09:00", "17:00", "12:30", "14:00"))

	assert.NotContains(t, slots, "12:30")
	assert.NotContains(t, slots, "13:30")
	assert.Contains(t, slots, "14:00")
	assert.Contains(t, slots, "12:00")
}

func TestSlotsSaturdayNoBreak(t *testing.T) {
	slots := Slots(hours("09:00", "14:00"))

	require.Len(t, slots, 10)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "13:30", slots[9])
}

func TestSlotsInvalidRange(t *testing.T) {
	assert.Nil(t, Slots(hours("18:00", "09:00")))
	assert.Nil(t, Slots(hours("09:00", "09:00")))
}

func TestSlotsMissingTimes(t *testing.T) {
	assert.Nil(t, Slots(&model.WeeklyHours{IsOpen: true}))
}

func TestSlotsDeterministic(t *testing.T) {
	h := hoursWithBreak("09:00", "18:00", "12:00", "13:00")
	assert.Equal(t, Slots(h), Slots(h))
}

func TestDefaultHours(t *testing.T) {
	slots := Slots(DefaultHours(3))
	require.Len(t, slots, 16)
	assert.Equal(t, "09:00", slots[0])
	assert.NotContains(t, slots, "12:00")
}

func TestIsSlotAligned(t *testing.T) {
	assert.True(t, IsSlotAligned("09:00"))
	assert.True(t, IsSlotAligned("09:30"))
	assert.False(t, IsSlotAligned("09:15"))
	assert.False(t, IsSlotAligned("9am"))
}
