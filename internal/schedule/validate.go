package schedule

import (
	"fmt"

	"github.com/vetdesk/booking-api/internal/model"
)

var dayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// ValidationError names the weekday and field that failed so the editor can
// surface it next to the offending input.
type ValidationError struct {
	DayOfWeek int    `json:"day_of_week"`
	Field     string `json:"field"`
	Message   string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", dayNames[e.DayOfWeek], e.Field, e.Message)
}

// ValidateWeek checks a full week of hours before any row is written. The
// first violation aborts the whole batch.
func ValidateWeek(days []model.WeeklyHoursEntry) error {
	if len(days) != 7 {
		return fmt.Errorf("expected 7 weekday entries, got %d", len(days))
	}

	seen := [7]bool{}
	for _, day := range days {
		if day.DayOfWeek < 0 || day.DayOfWeek > 6 {
			return fmt.Errorf("invalid day_of_week %d", day.DayOfWeek)
		}
		if seen[day.DayOfWeek] {
			return fmt.Errorf("duplicate entry for %s", dayNames[day.DayOfWeek])
		}
		seen[day.DayOfWeek] = true

		if err := validateDay(day); err != nil {
			return err
		}
	}
	return nil
}

func validateDay(day model.WeeklyHoursEntry) error {
	if !day.IsOpen || day.Is24H {
		return nil
	}

	if day.OpenTime == nil || *day.OpenTime == "" {
		return &ValidationError{day.DayOfWeek, "open_time", "required when open"}
	}
	if day.CloseTime == nil || *day.CloseTime == "" {
		return &ValidationError{day.DayOfWeek, "close_time", "required when open"}
	}

	open, err := parseClock(*day.OpenTime)
	if err != nil {
		return &ValidationError{day.DayOfWeek, "open_time", err.Error()}
	}
	closeAt, err := parseClock(*day.CloseTime)
	if err != nil {
		return &ValidationError{day.DayOfWeek, "close_time", err.Error()}
	}
	if open >= closeAt {
		return &ValidationError{day.DayOfWeek, "open_time", "must be before close time"}
	}

	hasStart := day.BreakStart != nil && *day.BreakStart != ""
	hasEnd := day.BreakEnd != nil && *day.BreakEnd != ""
	if !hasStart && !hasEnd {
		return nil
	}
	if hasStart != hasEnd {
		return &ValidationError{day.DayOfWeek, "break_start", "break requires both start and end"}
	}

	breakStart, err := parseClock(*day.BreakStart)
	if err != nil {
		return &ValidationError{day.DayOfWeek, "break_start", err.Error()}
	}
	breakEnd, err := parseClock(*day.BreakEnd)
	if err != nil {
		return &ValidationError{day.DayOfWeek, "break_end", err.Error()}
	}
	if breakStart >= breakEnd {
		return &ValidationError{day.DayOfWeek, "break_start", "must be before break end"}
	}
	if breakStart < open {
		return &ValidationError{day.DayOfWeek, "break_start", "must not start before opening"}
	}
	if breakEnd > closeAt {
		return &ValidationError{day.DayOfWeek, "break_end", "must not end after closing"}
	}
	return nil
}

// ApplyDayToWeek copies one weekday's hours over all 7 entries, the "apply
// to all days" editor shortcut. The copy happens before validation so a bad
// template day is reported once per target day it lands on.
func ApplyDayToWeek(days []model.WeeklyHoursEntry, from int) ([]model.WeeklyHoursEntry, error) {
	if from < 0 || from > 6 {
		return nil, fmt.Errorf("invalid day_of_week %d", from)
	}

	var template *model.WeeklyHoursEntry
	for i := range days {
		if days[i].DayOfWeek == from {
			template = &days[i]
			break
		}
	}
	if template == nil {
		return nil, fmt.Errorf("no entry for %s to apply", dayNames[from])
	}

	out := make([]model.WeeklyHoursEntry, 7)
	for i := 0; i < 7; i++ {
		day := *template
		day.DayOfWeek = i
		out[i] = day
	}
	return out, nil
}

// IsSlotAligned reports whether a clock string sits on the booking grid.
func IsSlotAligned(clock string) bool {
	minutes, err := parseClock(clock)
	if err != nil {
		return false
	}
	return minutes%SlotInterval == 0
}
