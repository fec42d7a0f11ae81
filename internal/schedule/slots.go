package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vetdesk/booking-api/internal/model"
)

// SlotInterval is the fixed booking granularity.
const SlotInterval = 30

const minutesPerDay = 24 * 60

// DefaultHours returns the fallback weekday schedule used when a clinic has
// no hours configured yet: 09:00-18:00 with a 12:00-13:00 lunch break.
func DefaultHours(dayOfWeek int) *model.WeeklyHours {
	open, close := "09:00", "18:00"
	breakStart, breakEnd := "12:00", "13:00"
	return &model.WeeklyHours{
		DayOfWeek:  dayOfWeek,
		IsOpen:     true,
		OpenTime:   &open,
		CloseTime:  &close,
		BreakStart: &breakStart,
		BreakEnd:   &breakEnd,
	}
}

// Slots expands one weekday's hours into the ordered list of bookable "HH:MM"
// start times. A closed day yields nil. A 24h day covers 00:00-23:30
// regardless of the open/close fields. The break interval is half-open: a
// slot equal to break_start is excluded, one equal to break_end is kept.
func Slots(hours *model.WeeklyHours) []string {
	if hours == nil || !hours.IsOpen {
		return nil
	}

	openMin, closeMin := 0, minutesPerDay
	if !hours.Is24H {
		var err error
		openMin, err = parseClock(deref(hours.OpenTime))
		if err != nil {
			return nil
		}
		closeMin, err = parseClock(deref(hours.CloseTime))
		if err != nil {
			return nil
		}
		if openMin >= closeMin {
			return nil
		}
	}

	breakStart, breakEnd := -1, -1
	if !hours.Is24H && hours.BreakStart != nil && hours.BreakEnd != nil {
		bs, err1 := parseClock(*hours.BreakStart)
		be, err2 := parseClock(*hours.BreakEnd)
		if err1 == nil && err2 == nil && bs < be {
			breakStart, breakEnd = bs, be
		}
	}

	var slots []string
	for t := openMin; t < closeMin; t += SlotInterval {
		if breakStart >= 0 && t >= breakStart && t < breakEnd {
			continue
		}
		slots = append(slots, formatClock(t))
	}
	return slots
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
